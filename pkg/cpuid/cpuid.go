// Package cpuid identifies the running x86-64 processor's family and model,
// and issues the CPUID serialising instruction used to bracket timed regions.
//
// This mirrors the way golang.org/x/sys/cpu detects feature bits: a tiny
// Go-assembly stub executes CPUID and the Go code above it decodes the
// result. We only need leaf 1 (family/model/stepping) and leaf 0 (used
// purely for its serialising side effect), so we keep our own minimal stub
// rather than depend on x/sys/cpu's larger, feature-bitmask-oriented API.
package cpuid

// cpuid executes the CPUID instruction for the given leaf and returns
// eax, ebx, ecx, edx. Implemented in cpuid_amd64.s.
func cpuid(leaf uint32) (eax, ebx, ecx, edx uint32)

// Identify returns the display family and display model of the running
// core, derived from CPUID leaf 1 per the Intel/AMD extension rules:
//
//	display_family = family + (family == 0xF ? extended_family : 0)
//	display_model  = model + ((family == 0x6 || family == 0xF) ? extended_model<<4 : 0)
func Identify() (displayFamily, displayModel uint32) {
	eax, _, _, _ := cpuid(1)

	steppingModelFamily := eax
	family := (steppingModelFamily >> 8) & 0xF
	model := (steppingModelFamily >> 4) & 0xF
	extFamily := (steppingModelFamily >> 20) & 0xFF
	extModel := (steppingModelFamily >> 16) & 0xF

	displayFamily = family
	if family == 0xF {
		displayFamily += extFamily
	}

	displayModel = model
	if family == 0x6 || family == 0xF {
		displayModel += extModel << 4
	}

	return displayFamily, displayModel
}

// Serialize issues CPUID leaf 0 and discards the result. It is used in
// pkg/measure to bracket timed regions with an in-order-retirement fence,
// matching the "two back-to-back serialising instructions" and "one
// serialising instruction" calls described by the measurement loop.
func Serialize() {
	cpuid(0)
}
