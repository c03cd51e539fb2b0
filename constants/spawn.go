package constants

// Platform Recycler
const (
	// PlatformCount is the number of platforms kept in the ring
	PlatformCount = 10

	// PlatformSpacing is the vertical distance between consecutive platforms
	PlatformSpacing = 2.0

	// PlatformStartY is the height of the first seeded platform
	PlatformStartY = 2.0

	// PlatformXMin and PlatformXMax bound the platform centre
	PlatformXMin = -5.0
	PlatformXMax = 5.0

	PlatformWidth     = 2.0
	PlatformThickness = 0.3

	// PlatformSpawnAhead recycles once the highest platform is closer than this to the player
	PlatformSpawnAhead = 10.0

	// FirstFloorIndex is the floor index issued to the first seeded platform
	FirstFloorIndex = 1

	// BouncyChance and StickyChance roll platform traits on every assignment
	BouncyChance = 0.3
	StickyChance = 0.1

	// BouncyBonusFloors is added to the next hop taken from a bouncy platform
	BouncyBonusFloors = 2
)

// Wall Recycler
const (
	WallCount      = 4
	WallHeight     = 10.0
	WallSpawnAhead = 10.0

	// WallGapMin and WallGapMax bound the vertical step between stacked wall pairs
	WallGapMin = WallHeight
	WallGapMax = WallHeight

	// WallHalfWidth is the horizontal distance from centre to each wall
	WallHalfWidth = 6.0
	WallThickness = 0.5
)

// Power-Up Placement
const (
	// PickupPadding keeps pickups away from platform edges
	PickupPadding = 0.3

	// PickupVerticalOffset lifts the pickup above the platform top
	PickupVerticalOffset = 0.25

	// PickupProbeWidth and PickupProbeHeight size the overlap tolerance box
	PickupProbeWidth  = 0.35
	PickupProbeHeight = 0.35

	// PickupMaxAttempts caps placement retries on the reactive path
	PickupMaxAttempts = 15

	// PickupMinLead keeps pre-placed pickups this far above the player
	PickupMinLead = 2.5

	// PickupSize is the footprint of a placed pickup
	PickupSize = 0.5

	// UnlimitedConcurrent disables the alive cap
	UnlimitedConcurrent = -1

	SpeedBoostCadence       = 20
	SpeedBoostMaxConcurrent = 2

	// JetpackCadence doubles as the first jetpack floor
	JetpackCadence       = 50
	JetpackMaxConcurrent = 1
)
