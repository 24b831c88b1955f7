package server

import (
	"fmt"
	"net"
	"os"
	"os/exec"
	"syscall"

	"perfbenchd/internal/errs"
)

// RequestSubcommand is the hidden cobra command name the dispatcher
// re-execs itself as. cmd/perfbenchd registers a command with this name
// whose RunE reads the inherited connection off file descriptor 3 and
// drives the request coordinator.
const RequestSubcommand = "bench-request"

// ConnFD is the file descriptor the request child finds its connection on;
// 0, 1, 2 are stdio, so the dispatched *os.File lands at 3. The sandbox
// filter gates write/lseek/fstat on exactly this descriptor number.
const ConnFD = 3

// AccessLogPathEnv and ErrorLogPathEnv carry the parent's configured log
// destinations to the request child, and LogLevelEnv its log level. The
// child opens its own handle on the error log rather than sharing the
// parent's; it does not open the access log.
const (
	AccessLogPathEnv = "PERFBENCHD_ACCESS_LOG"
	ErrorLogPathEnv  = "PERFBENCHD_ERROR_LOG"
	LogLevelEnv      = "PERFBENCHD_LOG_LEVEL"
)

// Dispatcher forks one request child per accepted connection by re-exec'ing
// the running binary, the way the teacher's container package re-execs
// itself as "init" for every container it creates.
type Dispatcher struct {
	self          string
	accessLogPath string
	errorLogPath  string
	logLevel      string
}

// NewDispatcher resolves the path to the running executable once at
// startup.
func NewDispatcher(accessLogPath, errorLogPath, logLevel string) (*Dispatcher, error) {
	self, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve executable path: %w", err)
	}
	return &Dispatcher{self: self, accessLogPath: accessLogPath, errorLogPath: errorLogPath, logLevel: logLevel}, nil
}

// Result reports how the request child exited.
type Result struct {
	ExitCode int
	Err      string
}

// Dispatch hands conn to a freshly forked child and waits for it to exit.
// The whole request coordinator sequence (parse, load, measure, report)
// runs inside that child; conn is never touched by the parent directly, so
// no header bytes are lost to a parent-side read buffer before the child
// takes over the socket.
func (d *Dispatcher) Dispatch(conn net.Conn) (Result, error) {
	tc, ok := conn.(*net.TCPConn)
	if !ok {
		return Result{}, fmt.Errorf("dispatch: connection is not a *net.TCPConn")
	}

	connFile, err := tc.File()
	if err != nil {
		return Result{}, fmt.Errorf("dispatch: dup connection fd: %w", err)
	}
	defer connFile.Close()

	cmd := exec.Command(d.self, RequestSubcommand)
	cmd.ExtraFiles = []*os.File{connFile}
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("%s=%s", AccessLogPathEnv, d.accessLogPath),
		fmt.Sprintf("%s=%s", ErrorLogPathEnv, d.errorLogPath),
		fmt.Sprintf("%s=%s", LogLevelEnv, d.logLevel),
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return Result{}, errs.ErrForkFailed.WithCause("start request child", err)
	}

	err = cmd.Wait()
	if err == nil {
		return Result{ExitCode: 0}, nil
	}

	var exitErr *exec.ExitError
	if !asExitError(err, &exitErr) {
		return Result{}, fmt.Errorf("dispatch: wait for request child: %w", err)
	}

	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return Result{ExitCode: 128 + int(ws.Signal()), Err: fmt.Sprintf("killed by signal %v", ws.Signal())}, nil
	}
	return Result{ExitCode: exitErr.ExitCode(), Err: exitErr.Error()}, nil
}

func asExitError(err error, target **exec.ExitError) bool {
	ee, ok := err.(*exec.ExitError)
	if ok {
		*target = ee
	}
	return ok
}

// ConnFromFD reconstructs the net.Conn a request child inherited on file
// descriptor 3.
func ConnFromFD() (net.Conn, error) {
	f := os.NewFile(ConnFD, "conn")
	conn, err := net.FileConn(f)
	if err != nil {
		return nil, fmt.Errorf("reconstruct connection from fd %d: %w", ConnFD, err)
	}
	f.Close()
	return conn, nil
}
