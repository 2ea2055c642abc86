package engine

import "github.com/lixenwraith/band-battle/core"

// Property names a visual attribute a proxy can carry
type Property uint8

const (
	PropBackground Property = iota // core.RGB
	PropBorder                     // core.RGB
	PropOpacity                    // float64 in [0, 1]
	PropLevel                      // float64 in [0, 1], audio meter
)

// ProxySpec describes the visual proxy requested for a new entity
type ProxySpec struct {
	// Name selects a surface layout slot (e.g. "band.red"); empty means no slot
	Name string

	// X, Y override the layout position when Place is set
	X, Y  float64
	Place bool

	// W, H override the layout size when positive
	W, H float64

	Color    core.RGB
	HasColor bool
	Opacity  float64 // zero means opaque
}

// Surface is the rendering surface the world draws through
type Surface interface {
	// Size returns the playable field size, re-queried every frame
	Size() (width, height float64)
	// Attach creates a visual proxy for one entity
	Attach(spec ProxySpec) Proxy
}

// SlotSurface is a Surface that resolves proxy placement from named layout slots
type SlotSurface interface {
	Surface
	SetSlot(name string, r core.Rect)
}

// Proxy is the visual representation of one entity
type Proxy interface {
	Initial() core.Rect
	SetPosition(x, y float64)
	Set(p Property, v any)
	Remove()
}

// ResolveSpec computes the initial rect of a proxy from an optional layout slot and the spec overrides
func ResolveSpec(spec ProxySpec, slot core.Rect, hasSlot bool) core.Rect {
	r := core.Rect{}
	if hasSlot {
		r = slot
	}
	w, h := r.Width(), r.Height()
	if spec.W > 0 {
		w = spec.W
	}
	if spec.H > 0 {
		h = spec.H
	}
	x, y := r.MinX, r.MinY
	if spec.Place {
		x, y = spec.X, spec.Y
	}
	return core.RectFromSize(x, y, w, h)
}
