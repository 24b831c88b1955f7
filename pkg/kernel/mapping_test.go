package kernel

import "testing"

func TestNewMappingRejectsNonPositiveSize(t *testing.T) {
	if _, err := NewMapping(0); err == nil {
		t.Fatal("expected error for size 0")
	}
	if _, err := NewMapping(-1); err == nil {
		t.Fatal("expected error for negative size")
	}
}

func TestNewMappingReleaseRoundTrip(t *testing.T) {
	m, err := NewMapping(4096)
	if err != nil {
		t.Fatalf("NewMapping: %v", err)
	}
	if m.Base == 0 || m.Ptr != m.Base || m.Len != 4096 {
		t.Fatalf("unexpected mapping: %+v", m)
	}
	if err := m.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
}

func TestWithOffsetPreservesBaseForRelease(t *testing.T) {
	m, err := NewMapping(8192)
	if err != nil {
		t.Fatalf("NewMapping: %v", err)
	}

	offset := m.WithOffset(128)
	if offset.Base != m.Base {
		t.Fatalf("WithOffset changed Base: got %#x, want %#x", offset.Base, m.Base)
	}
	if offset.Ptr != m.Base+128 {
		t.Fatalf("WithOffset Ptr = %#x, want %#x", offset.Ptr, m.Base+128)
	}
	if offset.Len != m.Len {
		t.Fatalf("WithOffset changed Len: got %d, want %d", offset.Len, m.Len)
	}

	// Release must unmap from Base even though Ptr has moved.
	if err := offset.Release(); err != nil {
		t.Fatalf("Release on offset mapping: %v", err)
	}
}

func TestZeroMappingReleaseIsNoop(t *testing.T) {
	var m Mapping
	if err := m.Release(); err != nil {
		t.Fatalf("Release on zero Mapping should be a no-op, got %v", err)
	}
}
