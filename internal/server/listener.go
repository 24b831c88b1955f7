package server

import (
	"fmt"
	"log/slog"
	"net"

	"perfbenchd/internal/logging"
)

// Listener runs the accept loop: connections are accepted as fast as the OS
// will hand them over into a bounded wait queue, but the dispatch loop that
// drains that queue forks and waits for one request child at a time, so the
// benchmark pipeline itself never sees two requests concurrently.
type Listener struct {
	ln         net.Listener
	queue      chan net.Conn
	dispatcher *Dispatcher
	accessLog  *slog.Logger
	errorLog   *slog.Logger
}

// New binds a TCP listener on port and prepares the accept/dispatch
// pipeline. queueSize bounds how many accepted connections may be pending
// a free request-child slot before Accept blocks upstream (the kernel's
// own SYN backlog is independent of this and not tuned here).
func New(port int, queueSize int, dispatcher *Dispatcher, accessLog, errorLog *slog.Logger) (*Listener, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", port, err)
	}
	if accessLog == nil {
		accessLog = logging.Default()
	}
	if errorLog == nil {
		errorLog = logging.Default()
	}
	return &Listener{
		ln:         ln,
		queue:      make(chan net.Conn, queueSize),
		dispatcher: dispatcher,
		accessLog:  accessLog,
		errorLog:   errorLog,
	}, nil
}

// Addr returns the bound address.
func (l *Listener) Addr() net.Addr { return l.ln.Addr() }

// Close stops the listener.
func (l *Listener) Close() error { return l.ln.Close() }

// Serve runs the accept goroutine and the dispatch loop until the listener
// is closed. It never returns a nil error: Close causes Accept to fail,
// which is the expected shutdown path.
func (l *Listener) Serve() error {
	go l.acceptLoop()

	for conn := range l.queue {
		l.dispatchOne(conn)
	}
	return fmt.Errorf("accept loop terminated")
}

func (l *Listener) acceptLoop() {
	defer close(l.queue)
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			l.errorLog.Error("accept failed, stopping", "error", err)
			return
		}
		l.queue <- conn
	}
}

func (l *Listener) dispatchOne(conn net.Conn) {
	defer conn.Close()

	remote := conn.RemoteAddr().String()
	accessLog := logging.WithRequestID(l.accessLog, remote)
	errorLog := logging.WithRequestID(l.errorLog, remote)

	result, err := l.dispatcher.Dispatch(conn)
	if err != nil {
		errorLog.Error("request dispatch failed", "error", err)
		return
	}

	if result.Err != "" {
		errorLog.Error("request child reported error", "exit_code", result.ExitCode, "detail", result.Err)
		return
	}

	accessLog.Info("request served", "exit_code", result.ExitCode)
}
