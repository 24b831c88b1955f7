package pmu

import "testing"

// The configuration word for any catalogue entry must match the
// documented bit layout exactly.
func TestEntryConfigEncoding(t *testing.T) {
	tables := [][]Entry{broadwell, haswell, ivyBridge, atom, bulldozer, steamroller, bobcat}

	for _, table := range tables {
		for _, e := range table {
			want := uint64(e.Event) | uint64(e.UMask)<<8
			if e.Edge {
				want |= 1 << 18
			}
			if e.Inv {
				want |= 1 << 23
			}
			want |= uint64(e.CMask) << 24

			if got := e.Config(); got != want {
				t.Errorf("%s: Config() = %#x, want %#x", e.Name, got, want)
			}
		}
	}
}

func TestSelectModelTable(t *testing.T) {
	cases := []struct {
		family, model uint32
		want          []Entry
	}{
		{0x06, 0x3D, broadwell},
		{0x06, 0x3C, haswell},
		{0x06, 0x3A, ivyBridge},
		{0x06, 0x4C, atom},
		{0x15, 0x01, bulldozer},
		{0x15, 0x30, steamroller},
		{0x14, 0x01, bobcat},
		{0x06, 0xFF, nil}, // unrecognised model on a known family
		{0x99, 0x00, nil}, // unrecognised family entirely
	}

	for _, c := range cases {
		got := selectModelTable(c.family, c.model)
		if len(got) != len(c.want) {
			t.Errorf("selectModelTable(%#x, %#x): got %d entries, want %d", c.family, c.model, len(got), len(c.want))
		}
	}
}
