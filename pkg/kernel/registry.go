package kernel

import (
	"fmt"
	"unsafe"
)

// Identity is one of the finite set of benchmarkable kernels.
type Identity int

const (
	Playground Identity = iota
	Dot
	GEMM
)

// Args is the fully constructed argument record a loaded kernel function
// is called with. Ptr is passed to Call; keepAlive holds a reference to
// the Go allocation backing Ptr (when it is Go-managed rather than an
// mmap'd buffer) so it stays live for as long as the Args value does.
type Args struct {
	Ptr       unsafe.Pointer
	keepAlive any
}

// Spec is the immutable, process-wide description of one kernel.
type Spec struct {
	// Name is the identifier received on the wire.
	Name string
	// Symbol is the ELF symbol the loader must resolve.
	Symbol string
	// ParamSize is the byte length of the parameters record.
	ParamSize int
	// Defaults is the default parameters record, length ParamSize.
	Defaults []byte
	// ParseParam mutates params in place for one name/value override, or
	// reports an unknown parameter name.
	ParseParam func(params []byte, name, value string) (unknown bool, err error)
	// BuildArgs constructs the call arguments and the buffer mappings
	// backing them from a parameters record.
	BuildArgs func(params []byte) (Args, []Mapping, error)
}

var registry = map[Identity]Spec{
	Playground: playgroundSpec,
	Dot:        dotSpec,
	GEMM:       gemmSpec,
}

var nameToIdentity = map[string]Identity{
	"playground": Playground,
	"sdot":       Dot,
	"sgemm":      GEMM,
}

// Lookup resolves a wire kernel name to its identity. An unknown name is a
// client error, not a server fault.
func Lookup(name string) (Identity, bool) {
	id, ok := nameToIdentity[name]
	return id, ok
}

// Get returns the immutable spec for an identity. It panics if id is not
// a registered identity — callers must only pass values returned by
// Lookup.
func Get(id Identity) Spec {
	spec, ok := registry[id]
	if !ok {
		panic(fmt.Sprintf("kernel: unregistered identity %d", id))
	}
	return spec
}

// DefaultParams returns a fresh copy of a kernel's default parameters
// record, safe for the caller to mutate.
func DefaultParams(id Identity) []byte {
	spec := Get(id)
	params := make([]byte, spec.ParamSize)
	copy(params, spec.Defaults)
	return params
}

// ReleaseArgs unmaps every buffer backing an argument record, in order,
// collecting and returning the first error encountered while still
// attempting to release the rest.
func ReleaseArgs(mappings []Mapping) error {
	var first error
	for _, m := range mappings {
		if err := m.Release(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
