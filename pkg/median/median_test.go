package median

import (
	"math"
	"math/rand"
	"testing"
)

func TestUint64Odd(t *testing.T) {
	got := Uint64([]uint64{5, 1, 3})
	if got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
}

func TestUint64Even(t *testing.T) {
	got := Uint64([]uint64{1, 2, 3, 4})
	if got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
}

func TestUint64Single(t *testing.T) {
	got := Uint64([]uint64{42})
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestUint64EvenOverflowSafe(t *testing.T) {
	max := uint64(math.MaxUint64)
	got := Uint64([]uint64{max, max})
	if got != max {
		t.Fatalf("got %d, want %d", got, max)
	}

	got = Uint64([]uint64{max - 1, max})
	if got != max-1 {
		t.Fatalf("got %d, want %d", got, max-1)
	}
}

func TestUint64EmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on empty input")
		}
	}()
	Uint64(nil)
}

// Median stability: permuting the input must not change the result.
func TestUint64StableUnderPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	base := make([]uint64, 37)
	for i := range base {
		base[i] = rng.Uint64() % 1000
	}

	want := Uint64(append([]uint64(nil), base...))

	for trial := 0; trial < 20; trial++ {
		perm := append([]uint64(nil), base...)
		rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
		if got := Uint64(perm); got != want {
			t.Fatalf("trial %d: got %d, want %d", trial, got, want)
		}
	}
}
