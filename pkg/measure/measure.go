// Package measure drives the paired overhead/computation sampling loop
// that isolates a loaded kernel's cost on one performance counter.
package measure

import (
	"math"
	"unsafe"

	"perfbenchd/pkg/cpuid"
	"perfbenchd/pkg/kernel"
	"perfbenchd/pkg/median"
)

// Sentinel is returned when a counter produced no usable sample in
// either pass — the caller treats it as "this counter did not work" and
// omits it from the response rather than reporting a bogus zero.
const Sentinel = math.MaxUint64

// Counter is the subset of pmu.Counter's behavior a measurement pass
// needs; *pmu.Counter satisfies it, and tests can supply a fake.
type Counter interface {
	Read() (uint64, bool)
}

// Drive runs N overhead-only passes followed by N overhead-plus-kernel
// passes against one open counter, assumed already enabled by the
// caller, and returns the kernel's isolated cost as
// max(0, median(computation) - median(overhead)).
//
// fn and argsPtr are passed straight to kernel.Call; argsPtr must stay
// live for the duration of this call.
func Drive(fn uintptr, argsPtr unsafe.Pointer, counter Counter, n int) uint64 {
	overhead := samplePass(n, counter, func() {
		cpuid.Serialize()
		cpuid.Serialize()
	})
	if len(overhead) == 0 {
		return Sentinel
	}

	computation := samplePass(n, counter, func() {
		cpuid.Serialize()
		kernel.Call(fn, argsPtr)
		cpuid.Serialize()
	})
	if len(computation) == 0 {
		return Sentinel
	}

	o := median.Uint64(overhead)
	c := median.Uint64(computation)
	if c < o {
		return 0
	}
	return c - o
}

// samplePass runs n iterations of read-barrier-read around body,
// recording the counter delta for every iteration where both reads
// succeeded and discarding the rest.
func samplePass(n int, counter Counter, body func()) []uint64 {
	samples := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		before, ok := counter.Read()
		if !ok {
			continue
		}
		body()
		after, ok := counter.Read()
		if !ok {
			continue
		}
		samples = append(samples, after-before)
	}
	return samples
}
