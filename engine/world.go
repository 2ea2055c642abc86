package engine

import (
	"time"

	"github.com/lixenwraith/band-battle/core"
	"github.com/lixenwraith/band-battle/vmath"
)

// record is one arena slot; order of the records slice is id order
type record struct {
	id         EntityID
	e          Entity
	collidable bool
}

// World owns the live entity set and runs the frame loop.
// Not safe for concurrent use; the Scheduler serializes frames.
type World struct {
	surface Surface
	clock   TimeProvider
	rng     *vmath.FastRand

	records    []record
	collidable []record
	index      map[EntityID]Entity
	pending    []record
	iterating  bool
	nextID     EntityID

	lastUpdate time.Time
	elapsed    float64
	bounds     core.Rect
	frame      uint64

	handlers map[tagPair]handlerEntry
}

// NewWorld creates an empty world drawing through surface and timed by clock
func NewWorld(surface Surface, clock TimeProvider, rng *vmath.FastRand) *World {
	if rng == nil {
		rng = vmath.NewFastRand(uint64(clock.Now().UnixNano()))
	}
	w := &World{
		surface:    surface,
		clock:      clock,
		rng:        rng,
		index:      make(map[EntityID]Entity),
		handlers:   make(map[tagPair]handlerEntry),
		lastUpdate: clock.Now(),
	}
	w.refreshBounds()
	return w
}

// AddOption configures World.Add
type AddOption func(*record, *Body)

// WithTags attaches collision tags to the entity
func WithTags(tags ...Tag) AddOption {
	return func(_ *record, b *Body) {
		for _, t := range tags {
			b.addTag(t)
		}
	}
}

// NonColliding excludes the entity from collision detection
func NonColliding() AddOption {
	return func(r *record, _ *Body) {
		r.collidable = false
	}
}

// Add registers e under a fresh id and renders it once.
// Entities added while the world iterates become visible after the current pass.
func (w *World) Add(e Entity, opts ...AddOption) EntityID {
	r := record{id: w.nextID, e: e, collidable: true}
	w.nextID++
	for _, opt := range opts {
		opt(&r, e.Base())
	}

	e.Render(w)

	if w.iterating {
		w.pending = append(w.pending, r)
	} else {
		w.insert(r)
	}
	return r.id
}

// Tag attaches one more tag to a live entity
func (w *World) Tag(e Entity, t Tag) {
	e.Base().addTag(t)
}

func (w *World) insert(r record) {
	w.records = append(w.records, r)
	if r.collidable {
		w.collidable = append(w.collidable, r)
	}
	w.index[r.id] = r.e
}

// flush applies inserts deferred during iteration
func (w *World) flush() {
	if len(w.pending) == 0 {
		return
	}
	pending := w.pending
	w.pending = nil
	for _, r := range pending {
		w.insert(r)
	}
}

// sweep drops destroyed entities from every collection, preserving id order
func (w *World) sweep() {
	live := w.records[:0]
	for _, r := range w.records {
		if r.e.Destroyed() {
			delete(w.index, r.id)
			continue
		}
		live = append(live, r)
	}
	clear(w.records[len(live):])
	w.records = live

	coll := w.collidable[:0]
	for _, r := range w.collidable {
		if !r.e.Destroyed() {
			coll = append(coll, r)
		}
	}
	clear(w.collidable[len(coll):])
	w.collidable = coll
}

func (w *World) refreshBounds() {
	width, height := w.surface.Size()
	w.bounds = core.Rect{MaxX: width, MaxY: height}
}

// Advance runs one frame: tick and render every live entity in id order,
// then detect collisions. Returns the number of live entities.
func (w *World) Advance() int {
	now := w.clock.Now()
	w.elapsed = now.Sub(w.lastUpdate).Seconds()
	w.lastUpdate = now
	w.refreshBounds()
	w.frame++

	w.iterating = true
	for _, r := range w.records {
		if r.e.Destroyed() {
			continue
		}
		r.e.Tick(w)
		if r.e.Destroyed() {
			continue
		}
		r.e.Render(w)
	}
	w.iterating = false

	w.sweep()
	w.flush()

	w.DetectCollisions()

	w.sweep()
	return len(w.records)
}

// NoAnimate resynchronizes the clock without advancing state, so a resumed
// world does not see the paused interval as one large elapsed step
func (w *World) NoAnimate() {
	w.lastUpdate = w.clock.Now()
}

// Elapsed returns the seconds covered by the current frame
func (w *World) Elapsed() float64 { return w.elapsed }

// Bounds returns the field rectangle for the current frame
func (w *World) Bounds() core.Rect { return w.bounds }

// Surface returns the rendering surface new entities attach to
func (w *World) Surface() Surface { return w.surface }

// Rand returns the world's random source
func (w *World) Rand() *vmath.FastRand { return w.rng }

// Frame returns the number of frames advanced so far
func (w *World) Frame() uint64 { return w.frame }

// Len returns the number of live entities
func (w *World) Len() int { return len(w.records) }

// CollidableLen returns the size of the collidable subset
func (w *World) CollidableLen() int { return len(w.collidable) }

// Entity looks up a live entity by id
func (w *World) Entity(id EntityID) (Entity, bool) {
	e, ok := w.index[id]
	return e, ok
}

// ForEach visits live entities in id order
func (w *World) ForEach(fn func(EntityID, Entity)) {
	for _, r := range w.records {
		fn(r.id, r.e)
	}
}
