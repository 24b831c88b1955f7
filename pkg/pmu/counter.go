package pmu

import (
	"encoding/binary"
	"syscall"

	"golang.org/x/sys/unix"
)

const (
	perfHWCPUCycles     = unix.PERF_COUNT_HW_CPU_CYCLES
	perfHWInstructions  = unix.PERF_COUNT_HW_INSTRUCTIONS
	perfCommonBits      = unix.PerfBitDisabled | unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv
)

// Counter is one open performance-counter file handle, task-scoped
// (pid=0, cpu=-1). A Counter whose Valid method returns false failed to
// open; it is kept in the catalogue's slice so the measurement loop can
// skip it silently rather than the caller having to track which indices
// are missing.
type Counter struct {
	Name string
	fd   int
	open bool
}

// Valid reports whether the counter file handle was opened successfully.
func (c *Counter) Valid() bool { return c.open }

// Enable starts counting. No-op (returns nil) on an invalid counter so
// callers can drive the measurement loop uniformly.
func (c *Counter) Enable() error {
	if !c.open {
		return nil
	}
	return ioctlNoArg(c.fd, unix.PERF_EVENT_IOC_ENABLE)
}

// Disable stops counting.
func (c *Counter) Disable() error {
	if !c.open {
		return nil
	}
	return ioctlNoArg(c.fd, unix.PERF_EVENT_IOC_DISABLE)
}

// Read reads the current count. It reports ok=false on a short read or a
// read error, leaving it to the caller to skip that iteration rather than
// treat a partial value as real.
func (c *Counter) Read() (count uint64, ok bool) {
	if !c.open {
		return 0, false
	}
	var buf [8]byte
	n, err := syscall.Read(c.fd, buf[:])
	if err != nil || n != len(buf) {
		return 0, false
	}
	return binary.LittleEndian.Uint64(buf[:]), true
}

// Close releases the counter's file descriptor.
func (c *Counter) Close() error {
	if !c.open {
		return nil
	}
	c.open = false
	return syscall.Close(c.fd)
}

func ioctlNoArg(fd int, req uint) error {
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, uintptr(fd), uintptr(req), 0)
	if errno != 0 {
		return errno
	}
	return nil
}

// openGeneric opens a PERF_TYPE_HARDWARE counter for a generic event.
func openGeneric(name string, config uint64) *Counter {
	attr := &unix.PerfEventAttr{
		Type:   unix.PERF_TYPE_HARDWARE,
		Config: config,
		Bits:   perfCommonBits,
	}
	return openAttr(name, attr)
}

// openRaw opens a PERF_TYPE_RAW counter for a catalogue entry, encoded as
// its raw event-select configuration word.
func openRaw(entry Entry) *Counter {
	attr := &unix.PerfEventAttr{
		Type:   unix.PERF_TYPE_RAW,
		Config: entry.Config(),
		Bits:   perfCommonBits,
	}
	return openAttr(entry.Name, attr)
}

func openAttr(name string, attr *unix.PerfEventAttr) *Counter {
	attr.Size = unix.PERF_ATTR_SIZE_VER1

	fd, err := unix.PerfEventOpen(attr, 0, -1, -1, 0)
	if err != nil {
		return &Counter{Name: name, open: false}
	}
	return &Counter{Name: name, fd: fd, open: true}
}
