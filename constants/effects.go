package constants

import "time"

// Timed Effects
const (
	SpeedBoostMultiplier = 1.5
	SpeedBoostDuration   = 6 * time.Second

	SpeedBoostPlusMultiplier = 1.6
	SpeedBoostPlusDuration   = 5 * time.Second

	JetpackDuration = 8 * time.Second

	// JetpackRise is climb speed in world units per second while the jetpack burns
	JetpackRise = 6.0

	// StickyDuration blocks hops after landing on a sticky platform
	StickyDuration = 2 * time.Second
)
