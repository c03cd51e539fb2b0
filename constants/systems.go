package constants

import "time"

// System Priorities (lower runs first)
const (
	PriorityClimb    = 10
	PriorityEffect   = 20
	PriorityScore    = 30
	PriorityRecycler = 40
	PriorityPickup   = 50
	PriorityCamera   = 60
	PriorityMetrics  = 90
	PriorityJournal  = 100
)

// Game Loop
const (
	// FrameInterval is the fixed step of the binary's game loop
	FrameInterval = 16 * time.Millisecond

	// InputHoldWindow treats a key as held while repeats arrive within this window
	InputHoldWindow = 120 * time.Millisecond
)

// Observer
const (
	// ObserverClientBuffer is the per-client outbound queue; overflow drops messages
	ObserverClientBuffer = 64

	ObserverWriteTimeout = 2 * time.Second
)
