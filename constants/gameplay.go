// @focus: #constants { gameplay }
package constants

import "time"

// Combo Engine
const (
	// ComboTimeout is how long an open combo waits for the next qualifying landing before it resolves
	ComboTimeout = 3 * time.Second

	// ComboMinFloorSkip is the smallest landing delta that counts as a combo jump
	ComboMinFloorSkip = 2

	// ComboMinJumps is the number of combo jumps required before a combo banks score
	ComboMinJumps = 2
)

// Score Aggregator
const (
	// FloorPoints is the score awarded per highest floor reached
	FloorPoints = 10

	// MilestoneStep is the floor interval between milestone signals
	MilestoneStep = 100
)

// Climb
const (
	// MoveSpeed is horizontal speed in world units per second before boosts
	MoveSpeed = 5.0

	// HopChargePerFloor is the jump hold time that adds one floor to a hop
	HopChargePerFloor = 150 * time.Millisecond

	// HopMaxCharge auto-releases a charging hop
	HopMaxCharge = 600 * time.Millisecond

	// HopMaxFloors caps a single hop
	HopMaxFloors = 6

	// HopMomentumBonus is added to a hop taken while moving horizontally
	HopMomentumBonus = 1

	// HopMidStrength and HopHighStrength select jump cues relative to a one-floor hop
	HopMidStrength  = 1.2
	HopHighStrength = 1.8

	// PlayerWidth and PlayerHeight size the player box for pickup sweeps
	PlayerWidth  = 0.6
	PlayerHeight = 0.9
)
