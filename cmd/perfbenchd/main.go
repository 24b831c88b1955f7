// Command perfbenchd is a remote micro-benchmarking server: it accepts a
// caller-supplied ELF image naming one benchmarkable kernel, runs it under
// a catalogue of CPU performance counters inside a sandboxed child process,
// and reports the measured counts back over the connection.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"perfbenchd/internal/bench"
	"perfbenchd/internal/logging"
	"perfbenchd/internal/server"
	"perfbenchd/pkg/cpuid"
	"perfbenchd/pkg/pmu"
)

var (
	accessLogPath string
	errorLogPath  string
	logLevel      string
	port          int
	queueSize     int
)

var rootCmd = &cobra.Command{
	Use:   "perfbenchd",
	Short: "remote CPU micro-benchmarking server",
	Long: `perfbenchd accepts a compiled ELF image naming one benchmarkable
kernel function, runs it under a catalogue of hardware performance counters
inside a sandboxed child process, and reports the measured counts back over
the connection.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var requestCmd = &cobra.Command{
	Use:    server.RequestSubcommand,
	Short:  "internal: serve one accepted connection (re-exec target, not for direct use)",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBenchRequest()
	},
}

var debugConsoleCmd = &cobra.Command{
	Use:   "debug-console",
	Short: "print the performance-counter catalogue resolved for this CPU",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDebugConsole()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&accessLogPath, "access-log", "", "path to the access log (default standard output, appended)")
	rootCmd.PersistentFlags().StringVar(&errorLogPath, "error-log", "", "path to the error log (default standard error, appended)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "minimum log level: debug, info, warn, error")
	rootCmd.Flags().IntVarP(&port, "port", "p", 8081, "TCP port to listen on")
	rootCmd.Flags().IntVarP(&queueSize, "queue-size", "q", 10, "bound on pending accepted connections awaiting a request child")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprint(os.Stderr, cmd.UsageString())
		return err
	})

	rootCmd.AddCommand(requestCmd)
	rootCmd.AddCommand(debugConsoleCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "perfbenchd: %v\n", err)
		os.Exit(1)
	}
}

func openLog(path string, fallback *os.File) (*os.File, error) {
	if path == "" {
		return fallback, nil
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func runServe() error {
	if queueSize <= 0 {
		return fmt.Errorf("--queue-size must be a positive integer, got %d", queueSize)
	}

	accessFile, err := openLog(accessLogPath, os.Stdout)
	if err != nil {
		return fmt.Errorf("open access log: %w", err)
	}
	errorFile, err := openLog(errorLogPath, os.Stderr)
	if err != nil {
		return fmt.Errorf("open error log: %w", err)
	}

	level := logging.ParseLevel(logLevel)
	accessLog := logging.NewLogger(logging.Config{Level: level, Output: accessFile})
	errorLog := logging.NewLogger(logging.Config{Level: level, Output: errorFile})
	logging.SetDefault(errorLog)

	resolvedAccessPath := accessLogPath
	if resolvedAccessPath == "" {
		resolvedAccessPath = "/dev/stdout"
	}
	resolvedErrorPath := errorLogPath
	if resolvedErrorPath == "" {
		resolvedErrorPath = "/dev/stderr"
	}

	dispatcher, err := server.NewDispatcher(resolvedAccessPath, resolvedErrorPath, logLevel)
	if err != nil {
		return fmt.Errorf("prepare dispatcher: %w", err)
	}

	ln, err := server.New(port, queueSize, dispatcher, accessLog, errorLog)
	if err != nil {
		return fmt.Errorf("bind listener: %w", err)
	}
	defer ln.Close()

	errorLog.Info("listening", "port", port, "queue_size", queueSize)
	return ln.Serve()
}

// runBenchRequest is the entry point for the re-exec'd request child: it
// owns the inherited connection exclusively and runs the full request
// coordinator sequence against it, exiting 0 on success and 1 on any
// fatal-to-request condition. A sandbox escape by the loaded kernel is
// never observed here — it ends in this process being killed by signal.
func runBenchRequest() error {
	level := logging.ParseLevel(os.Getenv(server.LogLevelEnv))
	errorLog := openInheritedLog(os.Getenv(server.ErrorLogPathEnv), os.Stderr, level)

	conn, err := server.ConnFromFD()
	if err != nil {
		errorLog.Error("reconstruct connection", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	coordinator := bench.New(errorLog)
	if err := coordinator.Handle(conn); err != nil {
		errorLog.Error("request failed", "error", err)
		os.Exit(1)
	}
	return nil
}

func openInheritedLog(path string, fallback *os.File, level slog.Level) *slog.Logger {
	f, err := openLog(path, fallback)
	if err != nil {
		f = fallback
	}
	return logging.NewLogger(logging.Config{Level: level, Output: f})
}

// runDebugConsole prints the performance-counter catalogue resolved for the
// CPU perfbenchd is running on, one screen at a time when standard output
// is an interactive terminal.
func runDebugConsole() error {
	family, model := cpuid.Identify()
	counters := pmu.Open(family, model)
	defer pmu.CloseAll(counters)

	fmt.Printf("display_family=0x%02x display_model=0x%02x\n\n", family, model)

	lines := make([]string, 0, len(counters))
	for _, c := range counters {
		status := "opened"
		if !c.Valid() {
			status = "unavailable"
		}
		lines = append(lines, fmt.Sprintf("%-16s %s", c.Name, status))
	}

	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		for _, line := range lines {
			fmt.Println(line)
		}
		return nil
	}

	return paginate(fd, lines)
}

// paginate prints lines one terminal-height page at a time, putting the
// terminal in raw mode so a single keypress advances to the next page.
func paginate(fd int, lines []string) error {
	_, height, err := term.GetSize(fd)
	if err != nil || height < 2 {
		height = 24
	}
	pageSize := height - 1

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		for _, line := range lines {
			fmt.Println(line)
		}
		return nil
	}
	defer term.Restore(fd, oldState)

	in := make([]byte, 1)
	for i := 0; i < len(lines); i += pageSize {
		end := i + pageSize
		if end > len(lines) {
			end = len(lines)
		}
		for _, line := range lines[i:end] {
			fmt.Print(line, "\r\n")
		}
		if end == len(lines) {
			break
		}
		fmt.Print("-- more --\r\n")
		if _, err := os.Stdin.Read(in); err != nil {
			break
		}
		if in[0] == 'q' {
			break
		}
	}
	return nil
}
