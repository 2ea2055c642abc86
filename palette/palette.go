// Package palette generates team colors and health-driven border colors.
package palette

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/band-battle/core"
	"github.com/lixenwraith/band-battle/vmath"
)

// Generator produces a fresh color per call
type Generator func(rng *vmath.FastRand) core.RGB

// BorderFunc maps band health in [0, 1] to its border color
type BorderFunc func(health float64) core.RGB

// ParticleOpacity is the opacity of Random colors
const ParticleOpacity = 0.5

// Backdrop is the color borders fade into as health drops
var Backdrop = colorful.Color{R: 0, G: 0, B: 0}

// channel ranges are inclusive-exclusive, in 0..255
func rgbIn(rng *vmath.FastRand, rMin, rMax, gMin, gMax, bMin, bMax float64) core.RGB {
	c := colorful.Color{
		R: rng.Range(rMin, rMax) / 255,
		G: rng.Range(gMin, gMax) / 255,
		B: rng.Range(bMin, bMax) / 255,
	}
	return toRGB(c)
}

// Random returns any color; callers render it at ParticleOpacity
func Random(rng *vmath.FastRand) core.RGB {
	return rgbIn(rng, 0, 255, 0, 255, 0, 255)
}

// RandomRed returns a saturated red-dominant color
func RandomRed(rng *vmath.FastRand) core.RGB {
	return rgbIn(rng, 150, 255, 0, 100, 0, 50)
}

// RandomBlue returns a blue-dominant color
func RandomBlue(rng *vmath.FastRand) core.RGB {
	return rgbIn(rng, 0, 50, 0, 255, 150, 255)
}

// RedBorder fades from bright red at full health to the backdrop at zero
func RedBorder(health float64) core.RGB {
	return border(colorful.Color{R: health, G: 5.0 / 255, B: 5.0 / 255}, health)
}

// BlueBorder fades from bright blue at full health to the backdrop at zero
func BlueBorder(health float64) core.RGB {
	return border(colorful.Color{R: 5.0 / 255, G: 5.0 / 255, B: health}, health)
}

// border composites c over the backdrop at alpha 0.5 + health/2
func border(c colorful.Color, health float64) core.RGB {
	health = clamp01(health)
	c.R, c.G, c.B = clamp01(c.R), clamp01(c.G), clamp01(c.B)
	return toRGB(Backdrop.BlendRgb(c, 0.5+health/2))
}

func toRGB(c colorful.Color) core.RGB {
	r, g, b := c.Clamped().RGB255()
	return core.RGB{R: r, G: g, B: b}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
