package events

import (
	"time"
)

// EventType represents the type of game event
type EventType int

const (
	// EventPlayerLanded reports a landing on a numbered platform
	// Trigger: ClimbSystem after a hop or jetpack burn-out
	// Consumer: ScoreSystem, PowerUpSpawner (reactive placement) | Payload: *PlayerLandedPayload
	EventPlayerLanded EventType = iota

	// EventComboStarted marks the first qualifying jump of a combo
	// Trigger: ScoreSystem | Payload: *ComboStartedPayload
	// Consumer: FeedbackSystem
	EventComboStarted

	// EventComboProgress carries the running floors total of the open combo
	// Trigger: every qualifying jump | Consumer: FeedbackSystem (tier cues) | Payload: *ComboProgressPayload
	EventComboProgress

	// EventComboReset signals the combo resolved, banked or discarded
	// Trigger: non-qualifying landing or timeout | Consumer: FeedbackSystem | Payload: *ComboResetPayload
	EventComboReset

	// EventMilestoneReached fires once per crossed milestone threshold
	// Consumer: FeedbackSystem | Payload: *MilestonePayload
	EventMilestoneReached

	// EventScoreChanged reports the derived score after it moved
	// Consumer: observer feed | Payload: *ScoreChangedPayload
	EventScoreChanged

	// EventFloorAssigned reports a platform slot receiving a new floor index
	// Trigger: RecyclerSystem seed and recycle | Payload: *FloorAssignedPayload
	EventFloorAssigned

	// EventPickupSpawned reports a placed pickup for instancing by the presentation layer
	// Trigger: PowerUpSpawner | Payload: *PickupSpawnedPayload
	EventPickupSpawned

	// EventPickupCollected reports the player touching a pickup
	// Trigger: PickupSystem | Consumer: FeedbackSystem | Payload: *PickupCollectedPayload
	EventPickupCollected

	// EventPickupExpired reports a pickup culled below the camera
	// Trigger: PickupSystem | Payload: *PickupExpiredPayload
	EventPickupExpired

	// EventEffectRequest starts or restarts a timed effect
	// Trigger: PickupSystem, ClimbSystem (sticky) | Consumer: EffectSystem | Payload: *EffectRequestPayload
	EventEffectRequest

	// EventEffectStarted reports an effect activation with its expiry
	// Trigger: EffectSystem | Payload: *EffectStartedPayload
	EventEffectStarted

	// EventEffectExpired reports an effect running out
	// Trigger: EffectSystem | Consumer: ClimbSystem (jetpack landing) | Payload: *EffectExpiredPayload
	EventEffectExpired

	// EventPlayerJumped reports a hop leaving the ground
	// Trigger: ClimbSystem | Consumer: FeedbackSystem (jump cue) | Payload: *PlayerJumpedPayload
	EventPlayerJumped

	// EventPlayerMoved reports the swept segment of a player move
	// Trigger: ClimbSystem | Consumer: PickupSystem | Payload: *PlayerMovedPayload
	EventPlayerMoved

	// EventCameraSpeedUp reports a camera speed increment
	// Trigger: CameraSystem | Consumer: FeedbackSystem | Payload: *CameraSpeedUpPayload
	EventCameraSpeedUp

	// EventGameOver ends the run with the final score
	// Trigger: CameraSystem when the player drops below the view | Payload: *GameOverPayload
	EventGameOver

	eventTypeCount
)

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type      EventType
	Payload   any
	Frame     int64 // Step number the event was emitted in
	Timestamp time.Time
}

// String returns the registered name of the event type
func (e EventType) String() string {
	if name := GetEventName(e); name != "" {
		return name
	}
	return "Unknown"
}
