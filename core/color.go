package core

import "fmt"

// RGB is an 8-bit color shared by palette, entities and the terminal renderer
type RGB struct {
	R, G, B uint8
}

var (
	RGBBlack = RGB{}
	RGBWhite = RGB{255, 255, 255}
)

// mix moves channel a toward b by t in [0,1]
func mix(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

// Blend lays src over c with the given opacity; alpha outside (0,1) picks one side
func (c RGB) Blend(src RGB, alpha float64) RGB {
	switch {
	case alpha <= 0:
		return c
	case alpha >= 1:
		return src
	}
	return RGB{mix(c.R, src.R, alpha), mix(c.G, src.G, alpha), mix(c.B, src.B, alpha)}
}

// Scale darkens c toward black; factor 1 keeps it, 0 or less gives black
func (c RGB) Scale(factor float64) RGB {
	if factor >= 1 {
		return c
	}
	return RGBBlack.Blend(c, factor)
}

// String formats c as #rrggbb
func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
