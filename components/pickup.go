package components

// PickupType groups pickups for concurrency caps
type PickupType uint8

const (
	PickupSpeedBoost PickupType = iota
	PickupJetpack
	pickupTypeCount
)

// PickupTypeCount is the number of pickup types
const PickupTypeCount = int(pickupTypeCount)

func (t PickupType) String() string {
	switch t {
	case PickupSpeedBoost:
		return "speed_boost"
	case PickupJetpack:
		return "jetpack"
	default:
		return "unknown"
	}
}

// ParsePickupType maps a configuration name to a PickupType
func ParsePickupType(name string) (PickupType, bool) {
	switch name {
	case "speed_boost":
		return PickupSpeedBoost, true
	case "jetpack":
		return PickupJetpack, true
	}
	return 0, false
}

// PickupComponent is a placed power-up
type PickupComponent struct {
	Type    PickupType
	Variant string // Tuning key of the effect granted on collection
	X, Y    float64
	Bounds  Bounds
}
