package core

// Rect is an axis-aligned box in field units
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// RectFromSize builds a rect anchored at (x, y)
func RectFromSize(x, y, w, h float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Outside reports whether the point lies strictly outside r; points on the edge are inside
func (r Rect) Outside(x, y float64) bool {
	return x < r.MinX || x > r.MaxX || y < r.MinY || y > r.MaxY
}

// Center returns the midpoint of r
func (r Rect) Center() (x, y float64) {
	return r.MinX + r.Width()/2, r.MinY + r.Height()/2
}
