package kernel

import "unsafe"

// callFunc invokes the loaded kernel at fn, passing argsPtr as its single
// argument per the System V AMD64 calling convention (first integer
// argument in RDI). Implemented in call_amd64.s — there is no portable
// way to call an arbitrary in-memory function pointer from Go without a
// small assembly trampoline; cgo is unusable here because fn was not
// linked by the Go toolchain and has no Go-recognisable symbol.
func callFunc(fn uintptr, argsPtr uintptr)

// Call invokes a loaded kernel function with the argument record built by
// that kernel's BuildArgs. ptr must remain live (not garbage collected)
// for the duration of the call; callers keep their own reference to the
// backing allocation for exactly this reason.
func Call(fn uintptr, ptr unsafe.Pointer) {
	callFunc(fn, uintptr(ptr))
}
