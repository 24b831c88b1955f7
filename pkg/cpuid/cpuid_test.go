package cpuid

import "testing"

func TestIdentifyReturnsPlausibleValues(t *testing.T) {
	family, model := Identify()

	// x86-64 requires family >= 4 historically; modern cores report 6 or
	// (for AMD Zen and later) the extended family added to 0xF. We only
	// assert the values are in the representable byte range, since the
	// actual numbers are whatever silicon the test runs on.
	if family > 0xFF {
		t.Fatalf("display family out of range: %#x", family)
	}
	if model > 0xFF {
		t.Fatalf("display model out of range: %#x", model)
	}
}

func TestSerializeDoesNotPanic(t *testing.T) {
	Serialize()
}
