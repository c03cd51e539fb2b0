package events

import (
	"time"

	"github.com/lixenwraith/tower-jumper/components"
	"github.com/lixenwraith/tower-jumper/core"
)

// PlayerLandedPayload carries the landed floor index
type PlayerLandedPayload struct {
	Floor int `json:"floor"`
}

// ComboStartedPayload carries the opening jump delta
type ComboStartedPayload struct {
	Floor int `json:"floor"`
	Delta int `json:"delta"`
}

// ComboProgressPayload carries the running combo totals
type ComboProgressPayload struct {
	Jumps       int `json:"jumps"`
	TotalFloors int `json:"total_floors"`
}

// ComboResetPayload describes how the combo resolved
type ComboResetPayload struct {
	Jumps       int  `json:"jumps"`
	TotalFloors int  `json:"total_floors"`
	Confirmed   bool `json:"confirmed"`
	Banked      int  `json:"banked"`
	TimedOut    bool `json:"timed_out"`
}

// MilestonePayload carries the crossed threshold
type MilestonePayload struct {
	Threshold int `json:"threshold"`
	Floor     int `json:"floor"`
}

// ScoreChangedPayload carries the derived score and its inputs
type ScoreChangedPayload struct {
	Score          int `json:"score"`
	HighestFloor   int `json:"highest_floor"`
	ConfirmedCombo int `json:"confirmed_combo"`
}

// FloorAssignedPayload carries a platform slot's new index
type FloorAssignedPayload struct {
	Entity core.Entity       `json:"entity"`
	Floor  int               `json:"floor"`
	Bounds components.Bounds `json:"bounds"`
	Bouncy bool              `json:"bouncy"`
	Sticky bool              `json:"sticky"`
}

// PickupSpawnedPayload carries a placed pickup
type PickupSpawnedPayload struct {
	Entity   core.Entity           `json:"entity"`
	Type     components.PickupType `json:"type"`
	Variant  string                `json:"variant"`
	X        float64               `json:"x"`
	Y        float64               `json:"y"`
	Floor    int                   `json:"floor"`
	Reactive bool                  `json:"reactive"`
}

// PickupCollectedPayload carries a collected pickup
type PickupCollectedPayload struct {
	Entity  core.Entity           `json:"entity"`
	Type    components.PickupType `json:"type"`
	Variant string                `json:"variant"`
}

// PickupExpiredPayload carries a culled pickup
type PickupExpiredPayload struct {
	Entity core.Entity           `json:"entity"`
	Type   components.PickupType `json:"type"`
}

// EffectRequestPayload starts a timed effect
type EffectRequestPayload struct {
	Kind       components.EffectKind `json:"kind"`
	Duration   time.Duration         `json:"duration"`
	Multiplier float64               `json:"multiplier"`
}

// EffectStartedPayload carries an activated effect
type EffectStartedPayload struct {
	Kind       components.EffectKind `json:"kind"`
	ExpiresAt  time.Duration         `json:"expires_at"`
	Multiplier float64               `json:"multiplier"`
	Restarted  bool                  `json:"restarted"`
}

// EffectExpiredPayload carries an expired effect
type EffectExpiredPayload struct {
	Kind components.EffectKind `json:"kind"`
}

// PlayerJumpedPayload carries hop size and relative strength
type PlayerJumpedPayload struct {
	Floors   int     `json:"floors"`
	Strength float64 `json:"strength"`
}

// PlayerMovedPayload carries the swept segment of a move
type PlayerMovedPayload struct {
	FromX float64 `json:"from_x"`
	FromY float64 `json:"from_y"`
	ToX   float64 `json:"to_x"`
	ToY   float64 `json:"to_y"`
}

// CameraSpeedUpPayload carries the new camera speed
type CameraSpeedUpPayload struct {
	Speed float64 `json:"speed"`
}

// GameOverPayload carries the final result
type GameOverPayload struct {
	Score        int `json:"score"`
	HighestFloor int `json:"highest_floor"`
}
