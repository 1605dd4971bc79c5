package random

import (
	"errors"
	"testing"
)

func TestSeededIsDeterministic(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)
	for i := 0; i < 100; i++ {
		x, y := a.IntN(1000), b.IntN(1000)
		if x != y {
			t.Fatalf("draw %d = %d, want %d", i, y, x)
		}
		if x < 0 || x >= 1000 {
			t.Fatalf("draw %d = %d, out of range", i, x)
		}
	}
}

func TestScriptedReplaysAndRepeatsLast(t *testing.T) {
	src := NewScripted(3, 7, 12)
	got := []int{src.IntN(10), src.IntN(10), src.IntN(10), src.IntN(10), src.IntN(5)}
	want := []int{3, 7, 2, 2, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("draw %d = %d, want %d", i, got[i], want[i])
		}
	}
	if src.Draws() != 5 {
		t.Fatalf("draws = %d, want 5", src.Draws())
	}
}

func TestScriptedEmptyDrawsZero(t *testing.T) {
	src := NewScripted()
	if v := src.IntN(6); v != 0 {
		t.Fatalf("draw = %d, want 0", v)
	}
}

func TestResolveSeed(t *testing.T) {
	seed, generated, err := ResolveSeed(99, nil)
	if err != nil || seed != 99 || generated {
		t.Fatalf("ResolveSeed(99) = %d, %t, %v", seed, generated, err)
	}

	seed, generated, err = ResolveSeed(0, func() (int64, error) { return 7, nil })
	if err != nil || seed != 7 || !generated {
		t.Fatalf("ResolveSeed(0) = %d, %t, %v", seed, generated, err)
	}

	boom := errors.New("boom")
	if _, _, err := ResolveSeed(0, func() (int64, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("ResolveSeed error = %v, want %v", err, boom)
	}
}

func TestNewSeed(t *testing.T) {
	if _, err := NewSeed(); err != nil {
		t.Fatalf("NewSeed returned error: %v", err)
	}
}
