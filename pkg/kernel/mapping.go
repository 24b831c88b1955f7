// Package kernel implements the benchmarkable-kernel registry: the
// parameter schemas, argument construction, and release hooks for each
// named operation a client may request.
package kernel

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Mapping is an anonymous, pre-faulted buffer owned by one request.
//
// Base is the address mmap returned; Ptr is the address the loaded kernel
// actually dereferences, which may be Base plus a parameter-supplied
// offset (the dot-product kernel's offx/offy). Keeping Base and Ptr as
// separate fields means Release never has to recover the mapping's start
// by masking an offset pointer down to a page boundary, it just uses Base.
type Mapping struct {
	Base uintptr
	Ptr  uintptr
	Len  int
}

// NewMapping allocates an anonymous buffer of size bytes and pre-faults it
// by touching the first byte of every page, so the benchmarked kernel
// never takes a page fault mid-measurement.
func NewMapping(size int) (Mapping, error) {
	if size <= 0 {
		return Mapping{}, fmt.Errorf("mapping: invalid size %d", size)
	}

	buf, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANONYMOUS|unix.MAP_PRIVATE)
	if err != nil {
		return Mapping{}, fmt.Errorf("mmap %d bytes: %w", size, err)
	}

	pageSize := unix.Getpagesize()
	for off := 0; off < len(buf); off += pageSize {
		buf[off] = 0
	}

	base := uintptr(unsafe.Pointer(&buf[0]))
	return Mapping{Base: base, Ptr: base, Len: size}, nil
}

// WithOffset returns a copy of the mapping whose Ptr is advanced by
// offset bytes from Base. Base and Len are unchanged, so Release still
// unmaps the whole original allocation.
func (m Mapping) WithOffset(offset int) Mapping {
	m.Ptr = m.Base + uintptr(offset)
	return m
}

// Release unmaps the buffer. It always unmaps from Base, never from Ptr,
// regardless of any offset applied by WithOffset.
func (m Mapping) Release() error {
	if m.Base == 0 {
		return nil
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(m.Base)), m.Len)
	return unix.Munmap(buf)
}
