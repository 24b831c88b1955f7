// Package sandbox confines the child process that runs a loaded,
// untrusted kernel: a CPU-time limit, no-new-privileges, and a
// seccomp-BPF filter that allows only the syscalls a measurement
// actually needs, restricted to one connection's file descriptor.
package sandbox

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// cpuTimeLimitSeconds bounds how long a single request's child may run
// before the kernel delivers SIGXCPU/SIGKILL; soft and hard are equal so
// there is no grace period.
const cpuTimeLimitSeconds = 3

// Install applies the full sandbox to the calling process, in order:
// CPU-time rlimit, no-new-privileges, then the seccomp filter gating
// write/lseek/fstat on connFD and mmap on the anonymous descriptor -1. It must run in the
// child context, after argument construction and before the measurement
// loop; any failure here should cause the caller to exit immediately
// rather than proceed unsandboxed.
func Install(connFD int32) error {
	limit := &unix.Rlimit{Cur: cpuTimeLimitSeconds, Max: cpuTimeLimitSeconds}
	if err := unix.Setrlimit(unix.RLIMIT_CPU, limit); err != nil {
		return fmt.Errorf("sandbox: setrlimit RLIMIT_CPU: %w", err)
	}

	if _, _, errno := syscall.Syscall(syscall.SYS_PRCTL, prSetNoNewPrivs, 1, 0); errno != 0 {
		return fmt.Errorf("sandbox: prctl(PR_SET_NO_NEW_PRIVS): %w", errno)
	}

	filter := buildFilter(connFD)
	prog := sockFprog{
		Len:    uint16(len(filter)),
		Filter: &filter[0],
	}

	if _, _, errno := syscall.Syscall(syscall.SYS_PRCTL,
		prSetSeccomp, seccompModeFilter, uintptr(unsafe.Pointer(&prog))); errno != 0 {
		return fmt.Errorf("sandbox: prctl(PR_SET_SECCOMP): %w", errno)
	}

	return nil
}
