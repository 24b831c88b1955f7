// Package loader maps a caller-supplied ELF image into an executable
// region and resolves a named symbol to a callable address inside it.
package loader

import (
	"bytes"
	"debug/elf"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sys/unix"
)

// Image is an executable region mapped from a submitted ELF binary. Addr
// is the address the named symbol resolves to; callers pass it straight
// to pkg/kernel.Call. Release must be called exactly once.
type Image struct {
	base uintptr
	size int
	Addr uintptr
}

// Sentinel errors distinguishing the ways a submitted image can fail to
// load; callers match against these with errors.Is rather than parsing
// error text.
var (
	ErrNotELF         = errors.New("loader: not a valid ELF file")
	ErrNoLoadSegments = errors.New("loader: image has no PT_LOAD segments")
	ErrSymbolNotFound = errors.New("loader: symbol not found")
)

// Load copies every PT_LOAD segment of the ELF image in data into a
// freshly mapped, executable region and resolves symbol to an address
// inside it.
//
// No relocation pass is applied: segments are copied as they are in the
// file. The only check on the resolved symbol is that its value lies
// inside the span of the mapped segments; an image that needs relocations
// is not detected and is loaded unrelocated. This keeps the loader a
// straight segment-copy-and-resolve operation rather than a
// general-purpose linker.
func Load(data []byte, symbol string) (*Image, error) {
	file, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotELF, err)
	}
	defer file.Close()

	loads := make([]*elf.Prog, 0, len(file.Progs))
	for _, p := range file.Progs {
		if p.Type == elf.PT_LOAD {
			loads = append(loads, p)
		}
	}
	if len(loads) == 0 {
		return nil, ErrNoLoadSegments
	}

	loadBias, span := segmentSpan(loads)

	region, err := unix.Mmap(-1, 0, span, unix.PROT_READ|unix.PROT_WRITE|unix.PROT_EXEC,
		unix.MAP_ANONYMOUS|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("loader: map %d bytes: %w", span, err)
	}

	for i, p := range loads {
		off := int64(p.Vaddr - loadBias)
		n, err := p.ReadAt(region[off:off+int64(p.Filesz)], 0)
		if (err != nil && !errors.Is(err, io.EOF)) || uint64(n) != p.Filesz {
			unix.Munmap(region)
			return nil, fmt.Errorf("loader: read segment %d: %d/%d bytes: %w", i, n, p.Filesz, err)
		}
	}

	symValue, err := resolveSymbol(file, symbol)
	if err != nil {
		unix.Munmap(region)
		return nil, err
	}
	if symValue < loadBias || symValue >= loadBias+uint64(span) {
		unix.Munmap(region)
		return nil, fmt.Errorf("loader: symbol %q value %#x outside mapped segments", symbol, symValue)
	}

	base := regionBase(region)
	return &Image{
		base: base,
		size: span,
		Addr: base + uintptr(symValue-loadBias),
	}, nil
}

// Release unmaps the executable region.
func (img *Image) Release() error {
	if img.base == 0 {
		return nil
	}
	return unix.Munmap(regionBytes(img.base, img.size))
}

func resolveSymbol(file *elf.File, name string) (uint64, error) {
	syms, err := file.Symbols()
	if err != nil {
		return 0, fmt.Errorf("loader: read symbol table: %w", err)
	}
	for _, s := range syms {
		if s.Name == name && elf.ST_TYPE(s.Info) == elf.STT_FUNC {
			return s.Value, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrSymbolNotFound, name)
}

// segmentSpan returns the lowest virtual address among the PT_LOAD
// segments and the number of bytes needed to hold all of them laid out at
// their relative offsets from that address.
func segmentSpan(loads []*elf.Prog) (loadBias uint64, span int) {
	loadBias = loads[0].Vaddr
	var high uint64
	for _, p := range loads {
		if p.Vaddr < loadBias {
			loadBias = p.Vaddr
		}
	}
	for _, p := range loads {
		end := p.Vaddr - loadBias + p.Memsz
		if end > high {
			high = end
		}
	}
	return loadBias, int(high)
}
