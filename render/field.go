package render

import (
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/band-battle/core"
	"github.com/lixenwraith/band-battle/engine"
)

// HudRows is the number of terminal rows reserved below the field
const HudRows = 1

// Field draws the world onto a tcell screen. One terminal cell covers
// CellWidth x CellHeight field units; the bottom HudRows rows hold the HUD.
type Field struct {
	mu      sync.Mutex
	screen  tcell.Screen
	cellW   float64
	cellH   float64
	slots   map[string]core.Rect
	proxies []*proxy
}

// NewField creates a field over an initialized screen
func NewField(screen tcell.Screen, cellW, cellH float64) *Field {
	if cellW <= 0 {
		cellW = 1
	}
	if cellH <= 0 {
		cellH = 1
	}
	return &Field{
		screen: screen,
		cellW:  cellW,
		cellH:  cellH,
		slots:  make(map[string]core.Rect),
	}
}

// Size returns the playable area in field units
func (f *Field) Size() (float64, float64) {
	w, h := f.screen.Size()
	h -= HudRows
	if h < 0 {
		h = 0
	}
	return float64(w) * f.cellW, float64(h) * f.cellH
}

// SetSlot registers the initial placement for proxies attached under name
func (f *Field) SetSlot(name string, r core.Rect) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slots[name] = r
}

func (f *Field) Attach(spec engine.ProxySpec) engine.Proxy {
	f.mu.Lock()
	defer f.mu.Unlock()

	slot, ok := f.slots[spec.Name]
	p := &proxy{
		field:   f,
		rect:    engine.ResolveSpec(spec, slot, ok),
		opacity: 1,
	}
	p.initial = p.rect
	if spec.HasColor {
		p.bg, p.hasBg = spec.Color, true
	}
	if spec.Opacity > 0 {
		p.opacity = spec.Opacity
	}
	f.proxies = append(f.proxies, p)
	return p
}

// Len returns the number of proxies still on screen
func (f *Field) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.proxies {
		if !p.removed {
			n++
		}
	}
	return n
}

// Show redraws every proxy in attach order, then the HUD, and flushes the screen
func (f *Field) Show(hud HUD) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.screen.Fill(' ', tcell.StyleDefault.Background(tcellColor(RgbBackground)))

	live := f.proxies[:0]
	for _, p := range f.proxies {
		if p.removed {
			continue
		}
		f.drawProxy(p)
		live = append(live, p)
	}
	clear(f.proxies[len(live):])
	f.proxies = live

	f.drawHUD(hud)
	f.screen.Show()
}

// cells maps a field rect to an inclusive cell range, at least one cell wide and tall
func (f *Field) cells(r core.Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(r.MinX / f.cellW))
	y0 = int(math.Floor(r.MinY / f.cellH))
	x1 = max(x0, int(math.Ceil(r.MaxX/f.cellW))-1)
	y1 = max(y0, int(math.Ceil(r.MaxY/f.cellH))-1)
	return x0, y0, x1, y1
}

func (f *Field) drawProxy(p *proxy) {
	sw, sh := f.screen.Size()
	sh -= HudRows
	x0, y0, x1, y1 := f.cells(p.rect)

	fill := RgbBackground
	if p.hasBg {
		fill = RgbBackground.Blend(p.bg, p.opacity)
	}
	fillStyle := tcell.StyleDefault.Background(tcellColor(fill))
	borderStyle := fillStyle.Foreground(tcellColor(p.border))

	// Level meter rises from the bottom row
	levelRows := int(math.Round(p.level * float64(y1-y0+1)))

	for y := y0; y <= y1; y++ {
		if y < 0 || y >= sh {
			continue
		}
		for x := x0; x <= x1; x++ {
			if x < 0 || x >= sw {
				continue
			}
			edge := x == x0 || x == x1 || y == y0 || y == y1
			switch {
			case p.hasBorder && edge:
				f.screen.SetContent(x, y, borderRune(x, y, x0, y0, x1, y1), nil, borderStyle)
			case p.hasBorder && y1-y < levelRows:
				f.screen.SetContent(x, y, '░', nil, borderStyle)
			default:
				f.screen.SetContent(x, y, ' ', nil, fillStyle)
			}
		}
	}
}

func borderRune(x, y, x0, y0, x1, y1 int) rune {
	switch {
	case x == x0 && y == y0:
		return '┌'
	case x == x1 && y == y0:
		return '┐'
	case x == x0 && y == y1:
		return '└'
	case x == x1 && y == y1:
		return '┘'
	case y == y0 || y == y1:
		return '─'
	default:
		return '│'
	}
}

// proxy is the on-screen rectangle of one entity
type proxy struct {
	field     *Field
	initial   core.Rect
	rect      core.Rect
	bg        core.RGB
	hasBg     bool
	border    core.RGB
	hasBorder bool
	opacity   float64
	level     float64
	removed   bool
}

func (p *proxy) Initial() core.Rect { return p.initial }

func (p *proxy) SetPosition(x, y float64) {
	p.field.mu.Lock()
	defer p.field.mu.Unlock()
	p.rect = core.RectFromSize(x, y, p.rect.Width(), p.rect.Height())
}

func (p *proxy) Set(prop engine.Property, v any) {
	p.field.mu.Lock()
	defer p.field.mu.Unlock()

	switch prop {
	case engine.PropBackground:
		if c, ok := v.(core.RGB); ok {
			p.bg, p.hasBg = c, true
		}
	case engine.PropBorder:
		if c, ok := v.(core.RGB); ok {
			p.border, p.hasBorder = c, true
		}
	case engine.PropOpacity:
		if o, ok := v.(float64); ok {
			p.opacity = min(1, max(0, o))
		}
	case engine.PropLevel:
		if l, ok := v.(float64); ok {
			p.level = min(1, max(0, l))
		}
	}
}

func (p *proxy) Remove() {
	p.field.mu.Lock()
	defer p.field.mu.Unlock()
	p.removed = true
}

var _ engine.SlotSurface = (*Field)(nil)
