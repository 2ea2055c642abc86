package entities

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/band-battle/constants"
	"github.com/lixenwraith/band-battle/core"
	"github.com/lixenwraith/band-battle/engine"
	"github.com/lixenwraith/band-battle/palette"
	"github.com/lixenwraith/band-battle/vmath"
)

var (
	ErrNoColorGen    = errors.New("band: color generator required")
	ErrNoPlayback    = errors.New("band: playback source required")
	ErrNoBorderColor = errors.New("band: border color function required")
	ErrNoTeam        = errors.New("band: team required")
	ErrMaxVolume     = errors.New("band: max volume must be within [0, 1]")
)

// Analyser is the level tap a playback source exposes while connected
type Analyser = core.Analyser

// Playback is the audio source a band plays. Start/stop events arrive on Signals.
type Playback interface {
	Signals() <-chan core.PlaybackEvent
	SetVolume(v float64)
	// SetLoop(false) lets the current pass finish and then ends playback
	SetLoop(loop bool)
	// Connect routes the source through its analysis tap, creating it on first use
	Connect() Analyser
	Disconnect()
}

// BandConfig configures NewBand
type BandConfig struct {
	Team        Team
	ColorGen    palette.Generator
	BorderColor palette.BorderFunc
	Playback    Playback
	MaxVolume   float64

	// Optional; zero selects the default
	AngularSpeed float64
	BubbleRate   float64
	BubbleSpeed  float64

	// Layout places the band's proxy; W/H default to the band size
	Layout engine.ProxySpec
}

// Validate reports the first missing or out-of-range field
func (c *BandConfig) Validate() error {
	switch {
	case c.ColorGen == nil:
		return ErrNoColorGen
	case c.Playback == nil:
		return ErrNoPlayback
	case c.BorderColor == nil:
		return ErrNoBorderColor
	case c.Team == TeamNone:
		return ErrNoTeam
	case c.MaxVolume < 0 || c.MaxVolume > 1:
		return fmt.Errorf("%w: %v", ErrMaxVolume, c.MaxVolume)
	}
	return nil
}

// Band is the emitter: while its playback is running it rotates and fires bubbles.
// Damage moves health to the opponent; at zero health it bursts and leaves the field.
type Band struct {
	engine.Body

	team        Team
	colorGen    palette.Generator
	borderColor palette.BorderFunc
	playback    Playback
	analyser    Analyser

	maxVolume    float64
	angularSpeed float64
	bubbleRate   float64
	bubbleSpeed  float64

	health         float64
	angle          float64
	sinceBubble    float64
	active         bool
	opponent       *Band
	bubblesEmitted int
}

// NewBand validates cfg and attaches the band's proxy to the surface
func NewBand(s engine.Surface, cfg BandConfig) (*Band, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Band{
		team:         cfg.Team,
		colorGen:     cfg.ColorGen,
		borderColor:  cfg.BorderColor,
		playback:     cfg.Playback,
		maxVolume:    cfg.MaxVolume,
		angularSpeed: cfg.AngularSpeed,
		bubbleRate:   cfg.BubbleRate,
		bubbleSpeed:  cfg.BubbleSpeed,
		health:       constants.BandMaxHealth,
	}
	if b.angularSpeed == 0 {
		b.angularSpeed = constants.BandAngularSpeed
	}
	if b.bubbleRate <= 0 {
		b.bubbleRate = constants.BandBubbleRate
	}
	if b.bubbleSpeed <= 0 {
		b.bubbleSpeed = constants.BandBubbleSpeed
	}

	spec := cfg.Layout
	if spec.Name == "" {
		spec.Name = "band." + cfg.Team.String()
	}
	if spec.W <= 0 {
		spec.W = constants.BandWidth
	}
	if spec.H <= 0 {
		spec.H = constants.BandHeight
	}
	b.Attach(s, spec)

	b.playback.SetVolume(b.maxVolume)
	return b, nil
}

// SetOpponent links the band that receives this band's lost health
func (b *Band) SetOpponent(o *Band) { b.opponent = o }

func (b *Band) Opponent() *Band { return b.opponent }

func (b *Band) Team() Team { return b.team }

func (b *Band) Health() float64 { return b.health }

func (b *Band) Active() bool { return b.active }

func (b *Band) Angle() float64 { return b.angle }

// BubblesEmitted returns the number of bubbles fired so far
func (b *Band) BubblesEmitted() int { return b.bubblesEmitted }

// Damage lowers health by amount and heals the opponent by the same amount.
// A zero amount counts as a full hit; negative amounts pass through.
func (b *Band) Damage(amount float64) {
	if amount == 0 {
		amount = constants.BandDefaultDamage
	}
	b.health = min(constants.BandMaxHealth, b.health-amount)
	if b.opponent != nil {
		b.opponent.Heal(amount)
	}
}

// Heal raises health by amount, capped at full. A zero amount fully heals.
func (b *Band) Heal(amount float64) {
	if amount == 0 {
		amount = constants.BandDefaultDamage
	}
	b.health = min(constants.BandMaxHealth, b.health+amount)
}

// drainSignals applies playback events received since the last frame
func (b *Band) drainSignals() {
	ch := b.playback.Signals()
	for {
		select {
		case ev := <-ch:
			switch ev {
			case core.PlaybackStart:
				b.start()
			case core.PlaybackStop:
				b.stop()
			}
		default:
			return
		}
	}
}

func (b *Band) start() {
	if b.active {
		return
	}
	b.active = true
	b.analyser = b.playback.Connect()
}

func (b *Band) stop() {
	if !b.active {
		return
	}
	b.active = false
	b.playback.Disconnect()
}

func (b *Band) Tick(w *engine.World) {
	b.drainSignals()

	if b.health <= 0 {
		Blam(w, b.X, b.Y, constants.BurstKnockout)
		b.Destroy()
		if b.opponent != nil {
			b.opponent.playback.SetLoop(false)
		}
		return
	}
	if !b.active {
		return
	}

	dt := w.Elapsed()
	b.angle += b.angularSpeed * dt
	b.sinceBubble += dt
	b.playback.SetVolume(b.maxVolume * max(0, b.health))

	interval := 1 / b.bubbleRate
	for b.sinceBubble > interval {
		b.sinceBubble -= interval
		b.emit(w)
	}
}

func (b *Band) emit(w *engine.World) {
	cx, cy := b.Center()
	dx, dy := vmath.Direction(b.angle, b.bubbleSpeed)
	bubble := NewBubble(w.Surface(), cx, cy, dx, dy, b.colorGen(w.Rand()), b.team)
	w.Add(bubble, engine.WithTags(b.team.BulletTag()))
	b.bubblesEmitted++
}

func (b *Band) Render(w *engine.World) {
	b.Set(engine.PropBorder, b.borderColor(b.health))
	level := 0.0
	if b.active && b.analyser != nil {
		level = b.analyser.Level()
	}
	b.Set(engine.PropLevel, level)
}
