package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/colornames"

	"github.com/lixenwraith/band-battle/core"
)

var (
	RgbBackground = fromNamed(colornames.Midnightblue).Scale(0.35) // Field backdrop
	RgbHudBg      = fromNamed(colornames.Black)
	RgbHudText    = fromNamed(colornames.Lightgray)
	RgbHudDim     = fromNamed(colornames.Dimgray)
	RgbRedTeam    = fromNamed(colornames.Crimson)
	RgbBlueTeam   = fromNamed(colornames.Royalblue)
	RgbPlaying    = fromNamed(colornames.Limegreen)
	RgbPaused     = fromNamed(colornames.Orange)
	RgbWinner     = fromNamed(colornames.Gold)
)

func fromNamed(c color.RGBA) core.RGB {
	return core.RGB{R: c.R, G: c.G, B: c.B}
}

// tcellColor converts an RGB value to a true-color tcell color
func tcellColor(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// GetHealthColor returns the health bar color: red when low, through yellow, to green when full
func GetHealthColor(health float64) core.RGB {
	if health <= 0.0 {
		return core.RGBBlack
	}
	if health > 1.0 {
		health = 1.0
	}

	if health < 0.5 { // Red to Yellow
		t := health / 0.5
		return core.RGB{R: 220, G: uint8(40 + (215-40)*t), B: 30}
	}
	t := (health - 0.5) / 0.5 // Yellow to Green
	return core.RGB{R: uint8(220 - (220-50)*t), G: uint8(215 - (215-205)*t), B: uint8(30 + (50-30)*t)}
}
