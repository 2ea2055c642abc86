package engine

import "github.com/lixenwraith/band-battle/core"

// EntityID is issued by World.Add and never reused
type EntityID uint64

// Tag labels an entity for collision handler lookup
type Tag uint16

// TagNone is the zero tag, never dispatched
const TagNone Tag = 0

// Entity is the per-frame behavior contract shared by all variants.
// Variants embed Body and override Tick/Render where their policy differs.
type Entity interface {
	Base() *Body
	Tick(w *World)
	Render(w *World)
	Destroy()
	Destroyed() bool
}

// Body carries position, size, tags and the visual proxy of an entity
type Body struct {
	X, Y float64
	W, H float64

	tags      []Tag
	destroyed bool
	proxy     Proxy
}

// Attach creates the visual proxy on the surface and adopts its initial placement
func (b *Body) Attach(s Surface, spec ProxySpec) {
	b.proxy = s.Attach(spec)
	r := b.proxy.Initial()
	b.X, b.Y = r.MinX, r.MinY
	b.W, b.H = r.Width(), r.Height()
}

func (b *Body) Base() *Body { return b }

// Tick destroys the entity once its anchor leaves the field
func (b *Body) Tick(w *World) {
	if w.Bounds().Outside(b.X, b.Y) {
		b.Destroy()
	}
}

// Render pushes the current position to the proxy
func (b *Body) Render(w *World) {
	if b.proxy != nil {
		b.proxy.SetPosition(b.X, b.Y)
	}
}

// Destroy is idempotent; the proxy is removed on the first call only
func (b *Body) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	if b.proxy != nil {
		b.proxy.Remove()
	}
}

func (b *Body) Destroyed() bool { return b.destroyed }

// Bounds returns the collision box
func (b *Body) Bounds() core.Rect {
	return core.RectFromSize(b.X, b.Y, b.W, b.H)
}

// Center returns the midpoint of the collision box
func (b *Body) Center() (x, y float64) {
	return b.Bounds().Center()
}

func (b *Body) Tags() []Tag { return b.tags }

func (b *Body) HasTag(t Tag) bool {
	for _, tag := range b.tags {
		if tag == t {
			return true
		}
	}
	return false
}

// Set writes a visual property through the proxy
func (b *Body) Set(p Property, v any) {
	if b.proxy != nil {
		b.proxy.Set(p, v)
	}
}

func (b *Body) addTag(t Tag) {
	b.tags = append(b.tags, t)
}
