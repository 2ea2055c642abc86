package entities

import (
	"math"

	"github.com/lixenwraith/band-battle/constants"
	"github.com/lixenwraith/band-battle/engine"
	"github.com/lixenwraith/band-battle/palette"
	"github.com/lixenwraith/band-battle/vmath"
)

// Poof is a short-lived particle drifting in a random direction
type Poof struct {
	engine.Body
	DX, DY    float64
	Countdown float64
}

// NewPoof creates a square particle of the given size at (x, y)
func NewPoof(w *engine.World, x, y float64, size int, countdown float64) *Poof {
	rng := w.Rand()
	p := &Poof{Countdown: countdown}
	p.DX, p.DY = vmath.RandomDirection(rng, rng.Range(constants.PoofSpeedMin, constants.PoofSpeedMax))
	p.Attach(w.Surface(), engine.ProxySpec{
		Name:     "poof",
		X:        x,
		Y:        y,
		Place:    true,
		W:        float64(size),
		H:        float64(size),
		Color:    palette.Random(rng),
		HasColor: true,
		Opacity:  palette.ParticleOpacity,
	})
	return p
}

func (p *Poof) Tick(w *engine.World) {
	p.Body.Tick(w)
	dt := w.Elapsed()
	p.X += p.DX * dt
	p.Y += p.DY * dt
	p.Countdown -= dt
	if p.Countdown < 0 {
		p.Destroy()
	}
}

// Blam spawns ceil(sqrt(size)) non-colliding poofs at (x, y), each with a random
// size in [2, size) and a lifetime of ln(size)/4 seconds. Returns the number spawned.
func Blam(w *engine.World, x, y float64, size int) int {
	if size < 1 {
		return 0
	}
	num := int(math.Ceil(math.Sqrt(float64(size))))
	countdown := math.Log(float64(size)) / 4
	rng := w.Rand()
	for i := 0; i < num; i++ {
		sub := rng.IntRange(constants.PoofMinSize, size)
		w.Add(NewPoof(w, x, y, sub, countdown), engine.NonColliding())
	}
	return num
}
