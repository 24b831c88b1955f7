package kernel

import (
	"encoding/binary"
	"strconv"
	"unsafe"
)

// playgroundArgs is the record passed to the playground kernel: an
// iteration count and nothing else. The kernel exists purely to calibrate
// the measurement loop, spinning without touching memory so its counter
// readings isolate call/loop overhead from anything kernel-specific.
type playgroundArgs struct {
	Iterations uint64
}

const playgroundParamSize = 8 // iterations: uint64

var playgroundDefaults = func() []byte {
	b := make([]byte, playgroundParamSize)
	binary.LittleEndian.PutUint64(b, 0)
	return b
}()

var playgroundSpec = Spec{
	Name:       "playground",
	Symbol:     "playground",
	ParamSize:  playgroundParamSize,
	Defaults:   playgroundDefaults,
	ParseParam: parsePlaygroundParam,
	BuildArgs:  buildPlaygroundArgs,
}

func parsePlaygroundParam(params []byte, name, value string) (unknown bool, err error) {
	if name != "iterations" {
		return true, nil
	}
	v, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return false, err
	}
	binary.LittleEndian.PutUint64(params, v)
	return false, nil
}

func buildPlaygroundArgs(params []byte) (Args, []Mapping, error) {
	iterations := binary.LittleEndian.Uint64(params)
	a := &playgroundArgs{Iterations: iterations}
	return Args{Ptr: unsafe.Pointer(a), keepAlive: a}, nil, nil
}
