package engine

import (
	"sync"

	"github.com/lixenwraith/band-battle/core"
)

// MemorySurface is an in-memory Surface for tests and headless runs
type MemorySurface struct {
	mu sync.Mutex

	Width, Height float64
	// Layout maps proxy names to their initial placement
	Layout map[string]core.Rect

	proxies []*MemoryProxy
}

// NewMemorySurface creates a surface of the given field size
func NewMemorySurface(width, height float64) *MemorySurface {
	return &MemorySurface{
		Width:  width,
		Height: height,
		Layout: make(map[string]core.Rect),
	}
}

func (s *MemorySurface) Size() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Width, s.Height
}

// Resize changes the field size seen from the next frame on
func (s *MemorySurface) Resize(width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Width, s.Height = width, height
}

// SetSlot registers the initial placement for proxies attached under name
func (s *MemorySurface) SetSlot(name string, r core.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Layout[name] = r
}

func (s *MemorySurface) Attach(spec ProxySpec) Proxy {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.Layout[spec.Name]
	p := &MemoryProxy{
		Spec:  spec,
		Rect:  ResolveSpec(spec, slot, ok),
		Props: make(map[Property]any),
	}
	p.X, p.Y = p.Rect.MinX, p.Rect.MinY
	if spec.HasColor {
		p.Props[PropBackground] = spec.Color
	}
	s.proxies = append(s.proxies, p)
	return p
}

// Proxies returns every proxy ever attached, removed ones included
func (s *MemorySurface) Proxies() []*MemoryProxy {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*MemoryProxy, len(s.proxies))
	copy(out, s.proxies)
	return out
}

// Visible counts proxies not yet removed
func (s *MemorySurface) Visible() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.proxies {
		if p.Removed == 0 {
			n++
		}
	}
	return n
}

// MemoryProxy records every call made by the world
type MemoryProxy struct {
	Spec  ProxySpec
	Rect  core.Rect
	X, Y  float64
	Props map[Property]any

	Removed int
	Moves   int
}

func (p *MemoryProxy) Initial() core.Rect { return p.Rect }

func (p *MemoryProxy) SetPosition(x, y float64) {
	p.X, p.Y = x, y
	p.Moves++
}

func (p *MemoryProxy) Set(prop Property, v any) {
	p.Props[prop] = v
}

func (p *MemoryProxy) Remove() {
	p.Removed++
}

var _ SlotSurface = (*MemorySurface)(nil)
