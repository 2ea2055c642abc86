package engine

import (
	"testing"
	"time"

	"github.com/lixenwraith/band-battle/core"
	"github.com/lixenwraith/band-battle/vmath"
)

// dummy is a minimal entity that counts calls and can run a hook during Tick
type dummy struct {
	Body
	ticks   int
	renders int
	onTick  func(w *World)
}

func (p *dummy) Tick(w *World) {
	p.ticks++
	if p.onTick != nil {
		p.onTick(w)
	}
	p.Body.Tick(w)
}

func (p *dummy) Render(w *World) {
	p.renders++
	p.Body.Render(w)
}

func newDummy(s Surface, x, y, w, h float64) *dummy {
	p := &dummy{}
	p.Attach(s, ProxySpec{X: x, Y: y, Place: true, W: w, H: h})
	return p
}

func newTestWorld() (*World, *MemorySurface, *MockTimeProvider) {
	surface := NewMemorySurface(800, 600)
	clock := NewMockTimeProvider(time.Unix(1000, 0))
	return NewWorld(surface, clock, vmath.NewFastRand(42)), surface, clock
}

func TestAddRendersOnceAndIssuesIncreasingIDs(t *testing.T) {
	w, s, _ := newTestWorld()

	var last EntityID
	for i := 0; i < 5; i++ {
		p := newDummy(s, 10, 10, 5, 5)
		id := w.Add(p)
		if i > 0 && id <= last {
			t.Errorf("Expected increasing ids, got %d after %d", id, last)
		}
		last = id
		if p.renders != 1 {
			t.Errorf("Expected 1 render on add, got %d", p.renders)
		}
		if p.ticks != 0 {
			t.Errorf("Expected no tick on add, got %d", p.ticks)
		}
	}
	if w.Len() != 5 || w.CollidableLen() != 5 {
		t.Errorf("Expected 5 live and 5 collidable, got %d and %d", w.Len(), w.CollidableLen())
	}
}

func TestNonCollidingStaysOutOfCollidableSet(t *testing.T) {
	w, s, _ := newTestWorld()

	w.Add(newDummy(s, 10, 10, 5, 5))
	w.Add(newDummy(s, 10, 10, 5, 5), NonColliding())

	if w.Len() != 2 {
		t.Errorf("Expected 2 live entities, got %d", w.Len())
	}
	if w.CollidableLen() != 1 {
		t.Errorf("Expected 1 collidable entity, got %d", w.CollidableLen())
	}
}

func TestAdvanceComputesElapsedAndNoAnimate(t *testing.T) {
	w, _, clock := newTestWorld()

	clock.Advance(30 * time.Millisecond)
	w.Advance()
	if got := w.Elapsed(); got < 0.0299 || got > 0.0301 {
		t.Errorf("Expected elapsed 0.03, got %f", got)
	}

	// Paused interval must not leak into the next frame
	clock.Advance(5 * time.Second)
	w.NoAnimate()
	clock.Advance(10 * time.Millisecond)
	w.Advance()
	if got := w.Elapsed(); got < 0.0099 || got > 0.0101 {
		t.Errorf("Expected elapsed 0.01 after NoAnimate, got %f", got)
	}
	if w.Frame() != 2 {
		t.Errorf("Expected frame 2, got %d", w.Frame())
	}
}

func TestAdvanceTicksInIDOrder(t *testing.T) {
	w, s, _ := newTestWorld()

	var order []int
	for i := 0; i < 4; i++ {
		p := newDummy(s, 10, 10, 1, 1)
		n := i
		p.onTick = func(*World) { order = append(order, n) }
		w.Add(p)
	}
	w.Advance()

	for i, n := range order {
		if n != i {
			t.Fatalf("Expected id-ordered ticks, got %v", order)
		}
	}
	if len(order) != 4 {
		t.Errorf("Expected 4 ticks, got %d", len(order))
	}
}

func TestSpawnDuringTickDeferredToNextFrame(t *testing.T) {
	w, s, _ := newTestWorld()

	var child *dummy
	parent := newDummy(s, 10, 10, 1, 1)
	parent.onTick = func(w *World) {
		if child == nil {
			child = newDummy(s, 20, 20, 1, 1)
			w.Add(child)
		}
	}
	w.Add(parent)

	if live := w.Advance(); live != 2 {
		t.Errorf("Expected 2 live after spawn frame, got %d", live)
	}
	if child.ticks != 0 {
		t.Errorf("Expected spawned entity untouched in spawn frame, got %d ticks", child.ticks)
	}

	w.Advance()
	if child.ticks != 1 {
		t.Errorf("Expected spawned entity ticked next frame, got %d ticks", child.ticks)
	}
}

func TestOutOfBoundsDestroyed(t *testing.T) {
	tests := []struct {
		name  string
		x, y  float64
		alive bool
	}{
		{"inside", 100, 100, true},
		{"on min edge", 0, 0, true},
		{"on max edge", 800, 600, true},
		{"left", -0.5, 100, false},
		{"right", 800.5, 100, false},
		{"above", 100, -1, false},
		{"below", 100, 601, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, s, _ := newTestWorld()
			p := newDummy(s, tt.x, tt.y, 1, 1)
			id := w.Add(p)
			w.Advance()

			_, ok := w.Entity(id)
			if ok != tt.alive {
				t.Errorf("Expected alive=%v, got %v", tt.alive, ok)
			}
			if p.Destroyed() == tt.alive {
				t.Errorf("Expected destroyed=%v, got %v", !tt.alive, p.Destroyed())
			}
		})
	}
}

func TestDestroyedNotRenderedAndSwept(t *testing.T) {
	w, s, _ := newTestWorld()

	p := newDummy(s, 10, 10, 1, 1)
	p.onTick = func(*World) { p.Destroy() }
	w.Add(p)
	proxy := s.Proxies()[0]

	if live := w.Advance(); live != 0 {
		t.Errorf("Expected 0 live, got %d", live)
	}
	if p.renders != 1 {
		t.Errorf("Expected only the add render, got %d", p.renders)
	}
	if w.CollidableLen() != 0 {
		t.Errorf("Expected empty collidable set, got %d", w.CollidableLen())
	}

	// Destroy is idempotent
	p.Destroy()
	if proxy.Removed != 1 {
		t.Errorf("Expected proxy removed once, got %d", proxy.Removed)
	}

	w.Advance()
	if p.ticks != 1 {
		t.Errorf("Expected no tick after destroy, got %d", p.ticks)
	}
}

func TestBoundsFollowSurfaceResize(t *testing.T) {
	w, s, _ := newTestWorld()

	s.Resize(100, 50)
	w.Advance()
	want := core.Rect{MaxX: 100, MaxY: 50}
	if w.Bounds() != want {
		t.Errorf("Expected bounds %v, got %v", want, w.Bounds())
	}
}

func TestAttachUsesLayoutSlot(t *testing.T) {
	s := NewMemorySurface(800, 600)
	s.Layout["band.red"] = core.RectFromSize(40, 50, 96, 64)

	var b Body
	b.Attach(s, ProxySpec{Name: "band.red"})
	if b.X != 40 || b.Y != 50 || b.W != 96 || b.H != 64 {
		t.Errorf("Expected slot placement, got (%v,%v,%v,%v)", b.X, b.Y, b.W, b.H)
	}

	var c Body
	c.Attach(s, ProxySpec{Name: "band.red", X: 1, Y: 2, Place: true, W: 8})
	if c.X != 1 || c.Y != 2 || c.W != 8 || c.H != 64 {
		t.Errorf("Expected overrides applied, got (%v,%v,%v,%v)", c.X, c.Y, c.W, c.H)
	}
}
