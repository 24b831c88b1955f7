package sandbox

// x86-64 syscall numbers the filter references, reusing the teacher's
// syscall-name-to-number table for the subset this policy needs.
const (
	sysRead          = 0
	sysWrite         = 1
	sysFstat         = 5
	sysLseek         = 8
	sysMmap          = 9
	sysMunmap        = 11
	sysIoctl         = 16
	sysRtSigreturn   = 15
	sysSchedYield    = 24
	sysFutex         = 202
	sysClockGettime  = 228
	sysExitGroup     = 231
	sysExit          = 60
)

// unconditionalAllow lists syscalls permitted regardless of their
// arguments: signal return, process/group exit, read, unmap, counter
// control, monotonic clock read, futex, cooperative yield.
var unconditionalAllow = []uint32{
	sysRtSigreturn,
	sysExit,
	sysExitGroup,
	sysRead,
	sysMunmap,
	sysIoctl,
	sysClockGettime,
	sysFutex,
	sysSchedYield,
}

// fdGatedSyscalls lists syscalls permitted only when their file
// descriptor argument (always argument 0 for these) equals the
// connection handle the sandbox was built for.
var fdGatedSyscalls = []uint32{
	sysWrite,
	sysLseek,
	sysFstat,
}

// buildFilter assembles the fixed seccomp-BPF program described for the
// measurement child: an x86-64-only filter that allows a small fixed set
// of syscalls unconditionally, gates write/lseek/fstat and anonymous
// mmap on specific argument values, and traps everything else.
//
// connFD is the one file descriptor value write/lseek/fstat may target,
// embedded into the filter at build time rather than checked against
// process state at run time (the teacher's table-driven filter has no
// such per-instance parameter; ours must, since the allowed descriptor
// changes with every accepted connection).
func buildFilter(connFD int32) []sockFilter {
	b := newBuilder()

	b.stmt(bpfLD|bpfW|bpfABS, offArch)
	b.jumpBoth(auditArchX8664, "check_nr", "kill")

	b.mark("check_nr")
	b.stmt(bpfLD|bpfW|bpfABS, offNR)

	for _, nr := range unconditionalAllow {
		b.jumpTo(nr, "allow")
	}

	for _, nr := range fdGatedSyscalls {
		label := fdCheckLabel(nr)
		b.jumpTo(nr, label)
	}
	b.jumpTo(sysMmap, "check_mmap_fd")

	b.stmt(bpfRET|bpfK, seccompRetTrap)

	for _, nr := range fdGatedSyscalls {
		b.mark(fdCheckLabel(nr))
		b.stmt(bpfLD|bpfW|bpfABS, argLowOffset(0))
		b.jumpBoth(uint32(connFD), "allow", "kill")
	}

	b.mark("check_mmap_fd")
	b.stmt(bpfLD|bpfW|bpfABS, argLowOffset(4))
	b.jumpBoth(0xFFFFFFFF, "check_mmap_fd_high", "kill")
	b.mark("check_mmap_fd_high")
	b.stmt(bpfLD|bpfW|bpfABS, argHighOffset(4))
	b.jumpBoth(0xFFFFFFFF, "allow", "kill")

	b.mark("allow")
	b.stmt(bpfRET|bpfK, seccompRetAllow)

	b.mark("kill")
	b.stmt(bpfRET|bpfK, seccompRetKillProcess)

	return b.build()
}

func fdCheckLabel(nr uint32) string {
	switch nr {
	case sysWrite:
		return "check_write_fd"
	case sysLseek:
		return "check_lseek_fd"
	case sysFstat:
		return "check_fstat_fd"
	default:
		panic("sandbox: no fd-check label for syscall")
	}
}
