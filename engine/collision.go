package engine

import "github.com/lixenwraith/band-battle/vmath"

// CollisionHandler receives the owners of a tag pair in the order the pair was registered.
// Either entity may already be destroyed when the handler runs.
type CollisionHandler func(w *World, a, b Entity)

// tagPair is the canonical (lo <= hi) key of an unordered tag pair
type tagPair struct {
	lo, hi Tag
}

type handlerEntry struct {
	first Tag // tag whose owner is passed as the handler's first argument
	fn    CollisionHandler
}

func pairKey(a, b Tag) tagPair {
	if a > b {
		a, b = b, a
	}
	return tagPair{lo: a, hi: b}
}

// OnCollide registers fn for the unordered pair (a, b); a later registration of the same pair replaces it
func (w *World) OnCollide(a, b Tag, fn CollisionHandler) {
	w.handlers[pairKey(a, b)] = handlerEntry{first: a, fn: fn}
}

// lookup finds the handler for (t1, t2); swapped reports that the owners must be passed reversed
func (w *World) lookup(t1, t2 Tag) (fn CollisionHandler, swapped bool, ok bool) {
	entry, ok := w.handlers[pairKey(t1, t2)]
	if !ok {
		return nil, false, false
	}
	return entry.fn, entry.first != t1, true
}

func (w *World) collide(t1, t2 Tag, o1, o2 Entity) {
	fn, swapped, ok := w.lookup(t1, t2)
	if !ok {
		return
	}
	if swapped {
		fn(w, o2, o1)
	} else {
		fn(w, o1, o2)
	}
}

// Colliding reports whether two distinct entities' boxes overlap
func Colliding(a, b Entity) bool {
	if a == b {
		return false
	}
	return vmath.Overlaps(a.Base().Bounds(), b.Base().Bounds())
}

// DetectCollisions tests every ordered pair of collidable entities and dispatches
// each overlapping pair's tag combinations. O(n²); entity counts stay small.
func (w *World) DetectCollisions() {
	w.iterating = true
	snapshot := w.collidable
	for _, r1 := range snapshot {
		for _, r2 := range snapshot {
			if !Colliding(r1.e, r2.e) {
				continue
			}
			for _, t1 := range r1.e.Base().Tags() {
				for _, t2 := range r2.e.Base().Tags() {
					w.collide(t1, t2, r1.e, r2.e)
				}
			}
		}
	}
	w.iterating = false
	w.flush()
}
