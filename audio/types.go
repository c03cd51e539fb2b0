package audio

import (
	"errors"

	"github.com/lixenwraith/tower-jumper/constants"
)

// SoundType represents different sound effects
type SoundType int

const (
	SoundJumpLow    SoundType = iota // Short hop
	SoundJumpMid                     // Charged hop
	SoundJumpHigh                    // Full or boosted hop
	SoundComboStart                  // First qualifying skip
	SoundMilestone                   // Milestone floor crossed
	SoundSpeedUp                     // Camera speed increment
	SoundPickup                      // Power-up collected
	soundTypeCount
)

var soundNames = [...]string{
	SoundJumpLow:    "jump_low",
	SoundJumpMid:    "jump_mid",
	SoundJumpHigh:   "jump_high",
	SoundComboStart: "combo_start",
	SoundMilestone:  "milestone",
	SoundSpeedUp:    "speed_up",
	SoundPickup:     "pickup",
}

func (s SoundType) String() string {
	if s < 0 || s >= soundTypeCount {
		return "unknown"
	}
	return soundNames[s]
}

// ParseSoundType maps a configuration name to a SoundType
func ParseSoundType(name string) (SoundType, bool) {
	for i, n := range soundNames {
		if n == name {
			return SoundType(i), true
		}
	}
	return 0, false
}

// JumpSound picks the jump cue for a hop strength relative to a one-floor hop
func JumpSound(strength float64) SoundType {
	switch {
	case strength >= constants.HopHighStrength:
		return SoundJumpHigh
	case strength >= constants.HopMidStrength:
		return SoundJumpMid
	default:
		return SoundJumpLow
	}
}

// ComboTier is the announcement level reached by a combo's floor total
type ComboTier int

const (
	TierNone ComboTier = iota
	TierGood
	TierSweet
	TierGreat
	TierSuper
	TierWow
	TierAmazing
	TierExtreme
	TierFantastic
	TierSplendid
	TierNoWay
	tierCount
)

var tierFloors = [...]int{
	TierGood:      constants.TierGoodFloors,
	TierSweet:     constants.TierSweetFloors,
	TierGreat:     constants.TierGreatFloors,
	TierSuper:     constants.TierSuperFloors,
	TierWow:       constants.TierWowFloors,
	TierAmazing:   constants.TierAmazingFloors,
	TierExtreme:   constants.TierExtremeFloors,
	TierFantastic: constants.TierFantasticFloors,
	TierSplendid:  constants.TierSplendidFloors,
	TierNoWay:     constants.TierNoWayFloors,
}

var tierNames = [...]string{
	TierNone:      "none",
	TierGood:      "good",
	TierSweet:     "sweet",
	TierGreat:     "great",
	TierSuper:     "super",
	TierWow:       "wow",
	TierAmazing:   "amazing",
	TierExtreme:   "extreme",
	TierFantastic: "fantastic",
	TierSplendid:  "splendid",
	TierNoWay:     "no_way",
}

func (t ComboTier) String() string {
	if t < 0 || t >= tierCount {
		return "unknown"
	}
	return tierNames[t]
}

// TierFor returns the highest tier whose threshold floors has reached
func TierFor(floors int) ComboTier {
	tier := TierNone
	for t := TierGood; t < tierCount; t++ {
		if floors < tierFloors[t] {
			break
		}
		tier = t
	}
	return tier
}

// Threshold returns the combo floors needed for the tier
func (t ComboTier) Threshold() int {
	if t <= TierNone || t >= tierCount {
		return 0
	}
	return tierFloors[t]
}

// Sentinel errors
var (
	ErrNoAudioDevice = errors.New("no audio output device")
)
