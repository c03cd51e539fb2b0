package components

// PlatformComponent is one slot of the platform ring
// Floor is reassigned on every recycle and never decreases for a slot
type PlatformComponent struct {
	Floor  int
	Bounds Bounds
	Bouncy bool
	Sticky bool
}

// Top returns the landing height
func (p PlatformComponent) Top() float64 {
	return p.Bounds.MaxY
}

// WallSide identifies which side of the shaft a wall segment covers
type WallSide uint8

const (
	WallLeft WallSide = iota
	WallRight
)

// WallComponent is one recycled wall segment
type WallComponent struct {
	Side   WallSide
	Bounds Bounds
}
