package components

// Bounds is an axis-aligned box in world units, Y grows upward
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// BoxAt returns a box of the given size centred on (cx, cy)
func BoxAt(cx, cy, w, h float64) Bounds {
	return Bounds{
		MinX: cx - w/2,
		MinY: cy - h/2,
		MaxX: cx + w/2,
		MaxY: cy + h/2,
	}
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Center returns the box midpoint
func (b Bounds) Center() (float64, float64) {
	return (b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2
}

// Empty reports a box with no area
func (b Bounds) Empty() bool {
	return b.MaxX <= b.MinX || b.MaxY <= b.MinY
}

// Overlaps reports strict intersection; touching edges do not overlap
func (b Bounds) Overlaps(o Bounds) bool {
	return b.MinX < o.MaxX && o.MinX < b.MaxX &&
		b.MinY < o.MaxY && o.MinY < b.MaxY
}

// Union returns the smallest box containing both
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		MinX: min(b.MinX, o.MinX),
		MinY: min(b.MinY, o.MinY),
		MaxX: max(b.MaxX, o.MaxX),
		MaxY: max(b.MaxY, o.MaxY),
	}
}

// Translate returns the box moved by (dx, dy)
func (b Bounds) Translate(dx, dy float64) Bounds {
	return Bounds{MinX: b.MinX + dx, MinY: b.MinY + dy, MaxX: b.MaxX + dx, MaxY: b.MaxY + dy}
}
