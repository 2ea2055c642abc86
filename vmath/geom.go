package vmath

import (
	"math"

	"github.com/lixenwraith/band-battle/core"
)

// Scale maps percent in [0, 1] linearly onto [min, max]
func Scale(percent, min, max float64) float64 {
	return (max-min)*percent + min
}

// Direction returns the velocity for travelling at speed along rad
func Direction(rad, speed float64) (dx, dy float64) {
	return math.Cos(rad) * speed, math.Sin(rad) * speed
}

// RandomDirection returns a velocity of the given speed along a uniformly random heading
func RandomDirection(rng *FastRand, speed float64) (dx, dy float64) {
	return Direction(rng.Range(0, 2*math.Pi), speed)
}

// Overlaps is the separating-axis test for two boxes; shared edges do not overlap
func Overlaps(a, b core.Rect) bool {
	if a.MaxX <= b.MinX {
		return false
	}
	if b.MaxX <= a.MinX {
		return false
	}
	if a.MaxY <= b.MinY {
		return false
	}
	if b.MaxY <= a.MinY {
		return false
	}
	return true
}
