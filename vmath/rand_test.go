package vmath

import "testing"

func TestFastRandZeroSeed(t *testing.T) {
	r := NewFastRand(0)
	if r.Next() == 0 {
		t.Error("Expected zero seed to be replaced with a non-zero state")
	}
}

func TestFastRandFloat64Range(t *testing.T) {
	r := NewFastRand(7)
	for i := 0; i < 10000; i++ {
		f := r.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64() = %f, out of [0, 1)", f)
		}
	}
}

func TestFastRandIntRange(t *testing.T) {
	r := NewFastRand(99)
	seen := make(map[int]bool)
	for i := 0; i < 10000; i++ {
		v := r.IntRange(2, 10)
		if v < 2 || v >= 10 {
			t.Fatalf("IntRange(2, 10) = %d, out of [2, 10)", v)
		}
		seen[v] = true
	}
	if len(seen) != 8 {
		t.Errorf("Expected all 8 values to appear, saw %d", len(seen))
	}

	if got := r.IntRange(2, 2); got != 2 {
		t.Errorf("IntRange(2, 2) = %d, want 2", got)
	}
	if got := r.IntRange(5, 1); got != 5 {
		t.Errorf("IntRange(5, 1) = %d, want 5", got)
	}
}

func TestFastRandDeterministic(t *testing.T) {
	a := NewFastRand(1234)
	b := NewFastRand(1234)
	for i := 0; i < 100; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("Sequences diverged at %d", i)
		}
	}
}
