package entities

import (
	"github.com/lixenwraith/band-battle/constants"
	"github.com/lixenwraith/band-battle/core"
	"github.com/lixenwraith/band-battle/engine"
	"github.com/lixenwraith/band-battle/vmath"
)

// Bubble is a projectile that bounces off the field edges until its countdown runs out.
// Each bounce costs BubbleBouncePenalty seconds of lifetime.
type Bubble struct {
	engine.Body
	DX, DY    float64
	Countdown float64
	Team      Team
}

// NewBubble creates a bubble anchored at (x, y) moving at (dx, dy) units per second
func NewBubble(s engine.Surface, x, y, dx, dy float64, color core.RGB, team Team) *Bubble {
	b := &Bubble{
		DX:        dx,
		DY:        dy,
		Countdown: constants.BubbleLifetime,
		Team:      team,
	}
	b.Attach(s, engine.ProxySpec{
		Name:     "bubble." + team.String(),
		X:        x,
		Y:        y,
		Place:    true,
		W:        constants.BubbleWidth,
		H:        constants.BubbleHeight,
		Color:    color,
		HasColor: true,
	})
	return b
}

// Tick replaces the base out-of-bounds destroy: a bubble outside the field is
// clamped back to the edge and reflected.
func (b *Bubble) Tick(w *engine.World) {
	dt := w.Elapsed()
	b.X += b.DX * dt
	b.Y += b.DY * dt
	b.Countdown -= dt

	bounds := w.Bounds()
	if b.X < bounds.MinX {
		b.X = bounds.MinX
		b.DX = -b.DX
		b.Countdown -= constants.BubbleBouncePenalty
	} else if b.X > bounds.MaxX {
		b.X = bounds.MaxX
		b.DX = -b.DX
		b.Countdown -= constants.BubbleBouncePenalty
	}
	if b.Y < bounds.MinY {
		b.Y = bounds.MinY
		b.DY = -b.DY
		b.Countdown -= constants.BubbleBouncePenalty
	} else if b.Y > bounds.MaxY {
		b.Y = bounds.MaxY
		b.DY = -b.DY
		b.Countdown -= constants.BubbleBouncePenalty
	}

	if b.Countdown <= 0 {
		b.Destroy()
	}
}

func (b *Bubble) Render(w *engine.World) {
	b.Body.Render(w)
	b.Set(engine.PropOpacity, b.Opacity())
}

// Opacity fades the bubble over its last BubbleOpacityRange seconds
func (b *Bubble) Opacity() float64 {
	return vmath.Scale(b.Countdown/constants.BubbleOpacityRange, constants.BubbleOpacityMin, constants.BubbleOpacityMax)
}
