package vmath

import "math"

// FastRand is a xorshift64 generator; not safe for concurrent use
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0, 1)
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns a value in [min, max)
func (r *FastRand) Range(min, max float64) float64 {
	return Scale(r.Float64(), min, max)
}

// IntRange returns floor(Range(min, max)), a value in [min, max) for max > min
func (r *FastRand) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return int(math.Floor(r.Range(float64(min), float64(max))))
}
