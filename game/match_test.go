package game

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/band-battle/audio"
	"github.com/lixenwraith/band-battle/config"
	"github.com/lixenwraith/band-battle/constants"
	"github.com/lixenwraith/band-battle/core"
	"github.com/lixenwraith/band-battle/engine"
	"github.com/lixenwraith/band-battle/entities"
	"github.com/lixenwraith/band-battle/vmath"
)

// soundLog records effects in play order
type soundLog struct {
	mu     sync.Mutex
	played []audio.SoundType
}

func (s *soundLog) PlayEffect(st audio.SoundType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.played = append(s.played, st)
}

func (s *soundLog) count(st audio.SoundType) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.played {
		if p == st {
			n++
		}
	}
	return n
}

type fixture struct {
	match   *Match
	world   *engine.World
	surface *engine.MemorySurface
	clock   *engine.MockTimeProvider
	sounds  *soundLog
	red     *audio.Track
	blue    *audio.Track
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	surface := engine.NewMemorySurface(1000, 1000)
	clock := engine.NewMockTimeProvider(time.Unix(0, 0))
	world := engine.NewWorld(surface, clock, vmath.NewFastRand(5))

	rate := beep.SampleRate(8000)
	red, err := audio.NewTrack("red", audio.RedRiff, rate)
	if err != nil {
		t.Fatalf("NewTrack failed: %v", err)
	}
	blue, _ := audio.NewTrack("blue", audio.BlueRiff, rate)

	sounds := &soundLog{}
	m, err := New(world, config.Default(), red, blue, sounds)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return &fixture{match: m, world: world, surface: surface, clock: clock, sounds: sounds, red: red, blue: blue}
}

func (f *fixture) step() int {
	f.clock.Advance(10 * time.Millisecond)
	live := f.world.Advance()
	f.match.Update()
	return live
}

// addBullet drops a stationary bubble at (x, y)
func (f *fixture) addBullet(team entities.Team, x, y float64) *entities.Bubble {
	b := entities.NewBubble(f.surface, x, y, 0, 0, core.RGB{}, team)
	f.world.Add(b, engine.WithTags(team.BulletTag()))
	return b
}

func TestNewPlacesBands(t *testing.T) {
	f := newFixture(t)

	red, blue := f.match.Red(), f.match.Blue()
	if red.X != 150 || red.Y != 200 {
		t.Errorf("Expected red at (150,200), got (%v,%v)", red.X, red.Y)
	}
	if blue.X != 700 || blue.Y != 550 {
		t.Errorf("Expected blue at (700,550), got (%v,%v)", blue.X, blue.Y)
	}
	if red.Opponent() != blue || blue.Opponent() != red {
		t.Error("Expected bands to be mutual opponents")
	}
	if !red.HasTag(entities.TagRedBand) || !blue.HasTag(entities.TagBlueBand) {
		t.Error("Expected band tags")
	}
	if f.match.ID.IsNil() {
		t.Error("Expected a match id")
	}
}

func TestBandsPlacedThroughLayoutSlots(t *testing.T) {
	f := newFixture(t)

	want := map[string]core.Rect{
		"band.red":  core.RectFromSize(150, 200, constants.BandWidth, constants.BandHeight),
		"band.blue": core.RectFromSize(700, 550, constants.BandWidth, constants.BandHeight),
	}
	for name, r := range want {
		if got, ok := f.surface.Layout[name]; !ok || got != r {
			t.Errorf("Expected slot %s at %v, got %v (registered=%v)", name, r, got, ok)
		}
	}

	for _, p := range f.surface.Proxies() {
		if _, isBand := want[p.Spec.Name]; isBand && p.Spec.Place {
			t.Errorf("Expected %s placed by its slot, not explicit position", p.Spec.Name)
		}
	}
	if f.match.Red().Bounds() != want["band.red"] {
		t.Errorf("Expected red bounds %v, got %v", want["band.red"], f.match.Red().Bounds())
	}
}

func TestBandsStayInsideSmallField(t *testing.T) {
	surface := engine.NewMemorySurface(100, 80)
	world := engine.NewWorld(surface, engine.NewMockTimeProvider(time.Unix(0, 0)), nil)
	red, _ := audio.NewTrack("red", audio.RedRiff, 8000)
	blue, _ := audio.NewTrack("blue", audio.BlueRiff, 8000)

	m, err := New(world, config.Default(), red, blue, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b := m.Blue()
	if b.X+b.W > 100 || b.Y+b.H > 80 {
		t.Errorf("Expected blue inside the field, got %v", b.Bounds())
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Red.MaxVolume = 3
	world := engine.NewWorld(engine.NewMemorySurface(100, 100), engine.NewMockTimeProvider(time.Unix(0, 0)), nil)
	red, _ := audio.NewTrack("red", audio.RedRiff, 8000)
	blue, _ := audio.NewTrack("blue", audio.BlueRiff, 8000)

	if _, err := New(world, cfg, red, blue, nil); err == nil {
		t.Error("Expected error for out-of-range max volume")
	}
	if _, err := New(world, config.Default(), nil, blue, nil); err == nil {
		t.Error("Expected error for missing track")
	}
}

func TestBulletHitsBand(t *testing.T) {
	f := newFixture(t)

	bullet := f.addBullet(entities.TeamBlue, 160, 210)
	live := f.step()

	if !bullet.Destroyed() {
		t.Error("Expected bullet destroyed on hit")
	}
	if got := f.match.Red().Health(); math.Abs(got-0.89) > 1e-9 {
		t.Errorf("Expected red health 0.89, got %f", got)
	}
	if f.match.Blue().Health() != 1 {
		t.Errorf("Expected blue clamped at 1, got %f", f.match.Blue().Health())
	}
	// 2 bands + ceil(sqrt(30)) poofs
	if live != 8 {
		t.Errorf("Expected 8 live entities, got %d", live)
	}
	if n := f.sounds.count(audio.SoundHit); n != 1 {
		t.Errorf("Expected one hit sound, got %d", n)
	}
}

func TestOwnBulletPassesThrough(t *testing.T) {
	f := newFixture(t)

	bullet := f.addBullet(entities.TeamRed, 160, 210)
	f.step()

	if bullet.Destroyed() {
		t.Error("Expected a band's own bullet to pass through")
	}
	if f.match.Red().Health() != 1 {
		t.Errorf("Expected red untouched, got %f", f.match.Red().Health())
	}
}

func TestBulletsCancel(t *testing.T) {
	f := newFixture(t)

	a := f.addBullet(entities.TeamRed, 500, 100)
	b := f.addBullet(entities.TeamBlue, 504, 104)
	live := f.step()

	if !a.Destroyed() || !b.Destroyed() {
		t.Error("Expected both bullets destroyed")
	}
	// 2 bands + ceil(sqrt(10)) poofs
	if live != 6 {
		t.Errorf("Expected 6 live entities, got %d", live)
	}
	if n := f.sounds.count(audio.SoundPop); n != 1 {
		t.Errorf("Expected one pop sound, got %d", n)
	}
}

func TestSixHits(t *testing.T) {
	f := newFixture(t)

	for i := 0; i < 6; i++ {
		f.addBullet(entities.TeamRed, 700+float64(i)*10, 560)
		f.step()
	}
	if got := f.match.Blue().Health(); math.Abs(got-0.34) > 1e-9 {
		t.Errorf("Expected blue 0.34, got %f", got)
	}
	if f.match.Red().Health() != 1 {
		t.Errorf("Expected red 1.0, got %f", f.match.Red().Health())
	}
	if n := f.sounds.count(audio.SoundHit); n != 6 {
		t.Errorf("Expected 6 hit sounds, got %d", n)
	}
}

func TestKnockout(t *testing.T) {
	f := newFixture(t)

	f.match.Red().Damage(1)
	f.step()

	if w := f.match.Winner(); w != f.match.Blue() {
		t.Fatalf("Expected blue to win, got %v", w)
	}
	if f.blue.Looping() {
		t.Error("Expected winner's loop disabled")
	}
	for i := 0; i < 5; i++ {
		f.step()
	}
	if n := f.sounds.count(audio.SoundKnockout); n != 1 {
		t.Errorf("Expected knockout sound once, got %d", n)
	}

	hud := f.match.HUD(f.world.Len(), false, 0)
	if hud.Winner != "blue" || hud.RedHealth != 0 || hud.MatchID == "" {
		t.Errorf("Unexpected HUD after knockout: %+v", hud)
	}
}

func TestLinkedTransport(t *testing.T) {
	f := newFixture(t)

	if f.match.Playing() {
		t.Fatal("Expected match to start paused")
	}

	f.match.SetPlaying(true)
	if !f.red.Playing() || !f.blue.Playing() {
		t.Error("Expected both tracks playing")
	}
	f.step()
	if !f.match.Red().Active() || !f.match.Blue().Active() {
		t.Error("Expected both bands active after start")
	}

	if f.match.TogglePlaying() {
		t.Error("Expected toggle to pause")
	}
	if f.red.Playing() || f.blue.Playing() {
		t.Error("Expected both tracks paused")
	}
	f.step()
	if f.match.Red().Active() || f.match.Blue().Active() {
		t.Error("Expected both bands inactive after stop")
	}

	if !f.match.TogglePlaying() {
		t.Error("Expected toggle to resume")
	}
}

func TestPlayingBandsFire(t *testing.T) {
	f := newFixture(t)
	f.match.SetPlaying(true)

	for i := 0; i < 10; i++ {
		f.step()
	}
	if f.match.Red().BubblesEmitted() == 0 || f.match.Blue().BubblesEmitted() == 0 {
		t.Error("Expected both bands to fire while playing")
	}
	if f.match.Red().Angle() <= 0 || f.match.Blue().Angle() >= 0 {
		t.Errorf("Expected opposite rotation, got %f and %f", f.match.Red().Angle(), f.match.Blue().Angle())
	}
	if f.world.Len() <= 2 {
		t.Errorf("Expected bubbles in flight, got %d live", f.world.Len())
	}
}

func TestMatchIDsUnique(t *testing.T) {
	a, b := newFixture(t), newFixture(t)
	if a.match.ID == b.match.ID {
		t.Error("Expected distinct match ids")
	}
	if constants.BandHitDamage != 0.11 {
		t.Errorf("Expected hit damage 0.11, got %v", constants.BandHitDamage)
	}
}
