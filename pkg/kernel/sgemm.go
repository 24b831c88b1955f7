package kernel

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"unsafe"
)

// gemmArgs is the record the single-precision GEMM micro-kernel reads:
// pointers into the A, B, C buffers, C's strides, the reduction and tile
// dimensions, and pointers to the scaling scalars alpha/beta.
//
// alpha and beta live as request-scoped fields on this struct rather than
// package globals: each request gets its own copies, referenced by address
// because the kernel's calling convention expects pointers to them, not
// because the values need to be shared across requests.
type gemmArgs struct {
	A, B, C        uintptr
	RSC, CSC       uint64
	K, MR, NR      uint64
	AlphaP, BetaP  uintptr
	Alpha, Beta    float32
}

const gemmParamSize = 40 // k, mr, nr, rs_c, cs_c: 5 * uint64

const (
	gemmOffK    = 0
	gemmOffMR   = 8
	gemmOffNR   = 16
	gemmOffRSC  = 24
	gemmOffCSC  = 32
)

var gemmDefaults = func() []byte {
	b := make([]byte, gemmParamSize)
	binary.LittleEndian.PutUint64(b[gemmOffK:], 64)
	binary.LittleEndian.PutUint64(b[gemmOffMR:], 4)
	binary.LittleEndian.PutUint64(b[gemmOffNR:], 4)
	binary.LittleEndian.PutUint64(b[gemmOffRSC:], 1)
	binary.LittleEndian.PutUint64(b[gemmOffCSC:], 4)
	return b
}()

var gemmSpec = Spec{
	Name:       "sgemm",
	Symbol:     "sgemm",
	ParamSize:  gemmParamSize,
	Defaults:   gemmDefaults,
	ParseParam: parseGemmParam,
	BuildArgs:  buildGemmArgs,
}

func parseGemmParam(params []byte, name, value string) (unknown bool, err error) {
	var off int
	switch name {
	case "k":
		off = gemmOffK
	case "mr":
		off = gemmOffMR
	case "nr":
		off = gemmOffNR
	case "rs_c":
		off = gemmOffRSC
	case "cs_c":
		off = gemmOffCSC
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

func buildGemmArgs(params []byte) (Args, []Mapping, error) {
	k := binary.LittleEndian.Uint64(params[gemmOffK:])
	mr := binary.LittleEndian.Uint64(params[gemmOffMR:])
	nr := binary.LittleEndian.Uint64(params[gemmOffNR:])
	rsc := binary.LittleEndian.Uint64(params[gemmOffRSC:])
	csc := binary.LittleEndian.Uint64(params[gemmOffCSC:])

	if k == 0 || mr == 0 || nr == 0 || rsc == 0 || csc == 0 {
		return Args{}, nil, fmt.Errorf("sgemm: k, mr, nr, rs_c, cs_c must be non-zero")
	}

	sizeA := k * mr * 4
	sizeB := k * nr * 4
	sizeC := (mr * rsc) * (nr * csc) * 4

	mapA, err := NewMapping(int(sizeA))
	if err != nil {
		return Args{}, nil, fmt.Errorf("sgemm: allocate A: %w", err)
	}
	mapB, err := NewMapping(int(sizeB))
	if err != nil {
		mapA.Release()
		return Args{}, nil, fmt.Errorf("sgemm: allocate B: %w", err)
	}
	mapC, err := NewMapping(int(sizeC))
	if err != nil {
		mapA.Release()
		mapB.Release()
		return Args{}, nil, fmt.Errorf("sgemm: allocate C: %w", err)
	}

	a := &gemmArgs{
		A: mapA.Ptr, B: mapB.Ptr, C: mapC.Ptr,
		RSC: rsc, CSC: csc,
		K: k, MR: mr, NR: nr,
		Alpha: 1.0, Beta: 0.0,
	}
	a.AlphaP = uintptr(unsafe.Pointer(&a.Alpha))
	a.BetaP = uintptr(unsafe.Pointer(&a.Beta))

	return Args{Ptr: unsafe.Pointer(a), keepAlive: a}, []Mapping{mapA, mapB, mapC}, nil
}
