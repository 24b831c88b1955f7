package kernel

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"unsafe"
)

// dotArgs is the record the single-precision dot-product kernel reads:
// pointers into two float32 buffers, their strides, and the element
// count.
type dotArgs struct {
	X, Y       uintptr
	Incx, Incy uint64
	N          uint64
}

const dotParamSize = 40 // n, incx, offx, incy, offy: 5 * uint64

const (
	dotOffN    = 0
	dotOffIncx = 8
	dotOffOffx = 16
	dotOffIncy = 24
	dotOffOffy = 32
)

var dotDefaults = func() []byte {
	b := make([]byte, dotParamSize)
	binary.LittleEndian.PutUint64(b[dotOffN:], 1)
	binary.LittleEndian.PutUint64(b[dotOffIncx:], 1)
	binary.LittleEndian.PutUint64(b[dotOffOffx:], 0)
	binary.LittleEndian.PutUint64(b[dotOffIncy:], 1)
	binary.LittleEndian.PutUint64(b[dotOffOffy:], 0)
	return b
}()

var dotSpec = Spec{
	Name:       "sdot",
	Symbol:     "sdot",
	ParamSize:  dotParamSize,
	Defaults:   dotDefaults,
	ParseParam: parseDotParam,
	BuildArgs:  buildDotArgs,
}

func parseDotParam(params []byte, name, value string) (unknown bool, err error) {
	var off int
	switch name {
	case "n":
		off = dotOffN
	case "incx":
		off = dotOffIncx
	case "offx":
		off = dotOffOffx
	case "incy":
		off = dotOffIncy
	case "offy":
		off = dotOffOffy
	default:
		return true, nil
	}

	v, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return false, err
	}
	binary.LittleEndian.PutUint64(params[off:], v)
	return false, nil
}

func buildDotArgs(params []byte) (Args, []Mapping, error) {
	n := binary.LittleEndian.Uint64(params[dotOffN:])
	incx := binary.LittleEndian.Uint64(params[dotOffIncx:])
	offx := binary.LittleEndian.Uint64(params[dotOffOffx:])
	incy := binary.LittleEndian.Uint64(params[dotOffIncy:])
	offy := binary.LittleEndian.Uint64(params[dotOffOffy:])

	if n == 0 || incx == 0 || incy == 0 {
		return Args{}, nil, fmt.Errorf("sdot: n, incx, incy must be non-zero")
	}

	sizeX := n*incx*4 + 64
	sizeY := n*incy*4 + 64

	if offx*4+n*incx*4 > sizeX {
		return Args{}, nil, fmt.Errorf("sdot: offx out of bounds for buffer of %d bytes", sizeX)
	}
	if offy*4+n*incy*4 > sizeY {
		return Args{}, nil, fmt.Errorf("sdot: offy out of bounds for buffer of %d bytes", sizeY)
	}

	mapX, err := NewMapping(int(sizeX))
	if err != nil {
		return Args{}, nil, fmt.Errorf("sdot: allocate X: %w", err)
	}
	mapY, err := NewMapping(int(sizeY))
	if err != nil {
		mapX.Release()
		return Args{}, nil, fmt.Errorf("sdot: allocate Y: %w", err)
	}

	mapX = mapX.WithOffset(int(offx * 4))
	mapY = mapY.WithOffset(int(offy * 4))

	a := &dotArgs{
		X:    mapX.Ptr,
		Y:    mapY.Ptr,
		Incx: incx,
		Incy: incy,
		N:    n,
	}

	return Args{Ptr: unsafe.Pointer(a), keepAlive: a}, []Mapping{mapX, mapY}, nil
}
