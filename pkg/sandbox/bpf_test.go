package sandbox

import (
	"encoding/binary"
	"testing"
)

// seccompData mirrors struct seccomp_data's encoding: nr, arch, ip, then
// six 64-bit syscall arguments.
func seccompData(nr int32, arch uint32, args [6]uint64) []byte {
	buf := make([]byte, 64)
	le := binary.LittleEndian
	le.PutUint32(buf[0:], uint32(nr))
	le.PutUint32(buf[4:], arch)
	for i, a := range args {
		le.PutUint64(buf[16+8*i:], a)
	}
	return buf
}

// runFilter is a minimal classic-BPF interpreter covering exactly the
// instruction forms buildFilter emits, used to check the generated
// program's behavior without installing it into the test process (which
// would seccomp the test binary itself).
func runFilter(filter []sockFilter, data []byte) uint32 {
	var acc uint32
	pc := 0
	for {
		in := filter[pc]
		switch in.Code {
		case bpfLD | bpfW | bpfABS:
			acc = binary.LittleEndian.Uint32(data[in.K:])
			pc++
		case bpfJMP | bpfJEQ | bpfK:
			if acc == in.K {
				pc += int(in.Jt) + 1
			} else {
				pc += int(in.Jf) + 1
			}
		case bpfRET | bpfK:
			return in.K
		default:
			panic("runFilter: unsupported instruction")
		}
	}
}

func TestBuildFilterRejectsWrongArch(t *testing.T) {
	filter := buildFilter(5)
	data := seccompData(sysRead, 0xDEADBEEF, [6]uint64{})
	if got := runFilter(filter, data); got != seccompRetKillProcess {
		t.Fatalf("wrong-arch read: got %#x, want kill", got)
	}
}

func TestBuildFilterAllowsUnconditionalSyscalls(t *testing.T) {
	filter := buildFilter(5)
	for _, nr := range unconditionalAllow {
		data := seccompData(int32(nr), auditArchX8664, [6]uint64{99, 99, 99, 99, 99, 99})
		if got := runFilter(filter, data); got != seccompRetAllow {
			t.Fatalf("syscall %d: got %#x, want allow", nr, got)
		}
	}
}

func TestBuildFilterGatesWriteOnConnFD(t *testing.T) {
	filter := buildFilter(5)

	matching := seccompData(sysWrite, auditArchX8664, [6]uint64{5, 0, 0, 0, 0, 0})
	if got := runFilter(filter, matching); got != seccompRetAllow {
		t.Fatalf("write(fd=5): got %#x, want allow", got)
	}

	other := seccompData(sysWrite, auditArchX8664, [6]uint64{3, 0, 0, 0, 0, 0})
	if got := runFilter(filter, other); got != seccompRetKillProcess {
		t.Fatalf("write(fd=3): got %#x, want kill", got)
	}
}

func TestBuildFilterGatesMmapOnAnonymous(t *testing.T) {
	filter := buildFilter(5)

	anon := seccompData(sysMmap, auditArchX8664, [6]uint64{0, 4096, 0, 0, 0xFFFFFFFFFFFFFFFF, 0})
	if got := runFilter(filter, anon); got != seccompRetAllow {
		t.Fatalf("mmap(fd=-1): got %#x, want allow", got)
	}

	fileBacked := seccompData(sysMmap, auditArchX8664, [6]uint64{0, 4096, 0, 0, 7, 0})
	if got := runFilter(filter, fileBacked); got != seccompRetKillProcess {
		t.Fatalf("mmap(fd=7): got %#x, want kill", got)
	}
}

func TestBuildFilterTrapsUnlistedSyscalls(t *testing.T) {
	filter := buildFilter(5)
	// open() is not in any allow-list.
	data := seccompData(2, auditArchX8664, [6]uint64{})
	if got := runFilter(filter, data); got != seccompRetTrap {
		t.Fatalf("open(): got %#x, want trap", got)
	}
}
