// Package game wires two bands into a match: placement, collision rules,
// linked transport and the knockout.
package game

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/segmentio/ksuid"

	"github.com/lixenwraith/band-battle/audio"
	"github.com/lixenwraith/band-battle/config"
	"github.com/lixenwraith/band-battle/constants"
	"github.com/lixenwraith/band-battle/core"
	"github.com/lixenwraith/band-battle/engine"
	"github.com/lixenwraith/band-battle/entities"
	"github.com/lixenwraith/band-battle/palette"
	"github.com/lixenwraith/band-battle/render"
)

// Transport is a band's playback source with play/pause control
type Transport interface {
	entities.Playback
	Play() error
	Pause()
	Playing() bool
}

// Sounds plays one-shot effects
type Sounds interface {
	PlayEffect(st audio.SoundType)
}

type silent struct{}

func (silent) PlayEffect(audio.SoundType) {}

// Match is one red-versus-blue game on a world
type Match struct {
	ID ksuid.KSUID

	world  *engine.World
	red    *entities.Band
	blue   *entities.Band
	tracks [2]Transport
	sounds Sounds

	mu     sync.Mutex
	over   bool
	winner *entities.Band
}

// New places both bands on the world and registers the collision rules
func New(world *engine.World, cfg *config.Config, redTrack, blueTrack Transport, sounds Sounds) (*Match, error) {
	if redTrack == nil || blueTrack == nil {
		return nil, errors.New("game: both tracks required")
	}
	if sounds == nil {
		sounds = silent{}
	}

	m := &Match{
		ID:     ksuid.New(),
		world:  world,
		tracks: [2]Transport{redTrack, blueTrack},
		sounds: sounds,
	}

	var err error
	m.red, err = entities.NewBand(world.Surface(), bandConfig(world, entities.TeamRed, cfg.Red, redTrack))
	if err != nil {
		return nil, fmt.Errorf("red band: %w", err)
	}
	m.blue, err = entities.NewBand(world.Surface(), bandConfig(world, entities.TeamBlue, cfg.Blue, blueTrack))
	if err != nil {
		return nil, fmt.Errorf("blue band: %w", err)
	}
	m.red.SetOpponent(m.blue)
	m.blue.SetOpponent(m.red)

	world.Add(m.red, engine.WithTags(entities.TagRedBand))
	world.Add(m.blue, engine.WithTags(entities.TagBlueBand))

	world.OnCollide(entities.TagRedBand, entities.TagBlueBullet, m.bandBullet)
	world.OnCollide(entities.TagBlueBand, entities.TagRedBullet, m.bandBullet)
	world.OnCollide(entities.TagRedBullet, entities.TagBlueBullet, m.bulletBullet)

	log.Printf("match %s: red at (%.0f,%.0f), blue at (%.0f,%.0f)", m.ID, m.red.X, m.red.Y, m.blue.X, m.blue.Y)
	return m, nil
}

// bandConfig places the band at its fractional position, kept inside the field.
// Surfaces with layout slots get the placement registered under the band's slot name.
func bandConfig(world *engine.World, team entities.Team, bc config.BandConfig, pb entities.Playback) entities.BandConfig {
	w, h := world.Surface().Size()
	x := max(0, min(bc.X*w, w-constants.BandWidth))
	y := max(0, min(bc.Y*h, h-constants.BandHeight))

	name := "band." + team.String()
	layout := engine.ProxySpec{Name: name, X: x, Y: y, Place: true}
	if slots, ok := world.Surface().(engine.SlotSurface); ok {
		slots.SetSlot(name, core.RectFromSize(x, y, constants.BandWidth, constants.BandHeight))
		layout = engine.ProxySpec{Name: name}
	}

	cfg := entities.BandConfig{
		Team:         team,
		Playback:     pb,
		MaxVolume:    bc.MaxVolume,
		AngularSpeed: bc.AngularSpeed,
		BubbleRate:   bc.BubbleRate,
		BubbleSpeed:  bc.BubbleSpeed,
		Layout:       layout,
	}
	switch team {
	case entities.TeamRed:
		cfg.ColorGen, cfg.BorderColor = palette.RandomRed, palette.RedBorder
	case entities.TeamBlue:
		cfg.ColorGen, cfg.BorderColor = palette.RandomBlue, palette.BlueBorder
	}
	return cfg
}

// bandBullet: a bubble strikes the opposing band
func (m *Match) bandBullet(w *engine.World, a, b engine.Entity) {
	band, ok := a.(*entities.Band)
	if !ok || b.Destroyed() {
		return
	}
	bullet := b.Base()
	entities.Blam(w, bullet.X, bullet.Y, constants.BurstBandHit)
	b.Destroy()
	band.Damage(constants.BandHitDamage)
	m.sounds.PlayEffect(audio.SoundHit)
}

// bulletBullet: opposing bubbles cancel each other
func (m *Match) bulletBullet(w *engine.World, a, b engine.Entity) {
	if a.Destroyed() || b.Destroyed() {
		return
	}
	first := a.Base()
	entities.Blam(w, first.X, first.Y, constants.BurstBubblePop)
	a.Destroy()
	b.Destroy()
	m.sounds.PlayEffect(audio.SoundPop)
}

func (m *Match) World() *engine.World { return m.world }

func (m *Match) Red() *entities.Band { return m.red }

func (m *Match) Blue() *entities.Band { return m.blue }

// SetPlaying plays or pauses both bands together
func (m *Match) SetPlaying(playing bool) {
	for _, t := range m.tracks {
		if !playing {
			t.Pause()
			continue
		}
		if err := t.Play(); err != nil && !errors.Is(err, audio.ErrTrackFinished) {
			log.Printf("match %s: play: %v", m.ID, err)
		}
	}
}

// TogglePlaying pauses both bands if either plays, otherwise starts both; returns the new state
func (m *Match) TogglePlaying() bool {
	playing := !m.Playing()
	m.SetPlaying(playing)
	return playing
}

// Playing reports whether either band's track is running
func (m *Match) Playing() bool {
	return m.tracks[0].Playing() || m.tracks[1].Playing()
}

// Update checks for a knockout after a frame; the knockout sound plays once
func (m *Match) Update() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.over {
		return
	}
	redOut, blueOut := m.red.Destroyed(), m.blue.Destroyed()
	if !redOut && !blueOut {
		return
	}

	m.over = true
	switch {
	case redOut && !blueOut:
		m.winner = m.blue
	case blueOut && !redOut:
		m.winner = m.red
	}
	m.sounds.PlayEffect(audio.SoundKnockout)
	if m.winner != nil {
		log.Printf("match %s: %s wins with %.2f health", m.ID, m.winner.Team(), m.winner.Health())
	} else {
		log.Printf("match %s: double knockout", m.ID)
	}
}

// Winner returns the surviving band, or nil while both stand or after a double knockout
func (m *Match) Winner() *entities.Band {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.winner
}

// Over reports whether at least one band has been knocked out
func (m *Match) Over() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.over
}

// HUD summarizes the match for the status line
func (m *Match) HUD(objects int, paused bool, dropped uint64) render.HUD {
	hud := render.HUD{
		MatchID:    m.ID.String(),
		Objects:    objects,
		RedHealth:  health(m.red),
		BlueHealth: health(m.blue),
		Playing:    m.Playing(),
		Paused:     paused,
		Dropped:    dropped,
	}
	if w := m.Winner(); w != nil {
		hud.Winner = w.Team().String()
	} else if m.Over() {
		hud.Winner = "nobody"
	}
	return hud
}

func health(b *entities.Band) float64 {
	if b.Destroyed() {
		return 0
	}
	return max(0, b.Health())
}

var _ Transport = (*audio.Track)(nil)
