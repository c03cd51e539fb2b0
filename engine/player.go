package engine

import (
	"github.com/lixenwraith/tower-jumper/components"
	"github.com/lixenwraith/tower-jumper/constants"
)

// PlayerState is the single player's world position
// Y is the feet height; Floor is the last landed floor index
type PlayerState struct {
	X, Y     float64
	Floor    int
	Grounded bool
}

// Bounds returns the player box standing on Y
func (p PlayerState) Bounds() components.Bounds {
	return components.Bounds{
		MinX: p.X - constants.PlayerWidth/2,
		MinY: p.Y,
		MaxX: p.X + constants.PlayerWidth/2,
		MaxY: p.Y + constants.PlayerHeight,
	}
}

// CameraState is the vertical scroll position of the view
type CameraState struct {
	Y      float64 // View centre
	Speed  float64 // Climb speed in world units per second
	Timer  float64 // Seconds since the last speed increment
	Moving bool    // Set once the player passed the start threshold
}

// Bottom returns the lowest visible world height
func (c CameraState) Bottom(halfHeight float64) float64 {
	return c.Y - halfHeight
}
