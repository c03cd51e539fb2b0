package events

import (
	"reflect"
	"sort"
	"sync"
)

var (
	registryMu    sync.RWMutex
	nameToType    = make(map[string]EventType)
	typeToName    = make(map[EventType]string)
	typeToPayload = make(map[EventType]reflect.Type)
	registryOnce  sync.Once
)

// RegisterType maps a string name to an EventType and its payload struct type
// payloadInstance should be a pointer to the payload struct (e.g., &PlayerLandedPayload{})
// Pass nil if the event has no payload
func RegisterType(name string, et EventType, payloadInstance any) {
	registryMu.Lock()
	defer registryMu.Unlock()

	nameToType[name] = et
	typeToName[et] = name
	if payloadInstance != nil {
		t := reflect.TypeOf(payloadInstance)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		typeToPayload[et] = t
	}
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	InitRegistry()
	registryMu.RLock()
	defer registryMu.RUnlock()
	et, ok := nameToType[name]
	return et, ok
}

// GetEventName returns the string name for an EventType, empty if unregistered
func GetEventName(et EventType) string {
	InitRegistry()
	registryMu.RLock()
	defer registryMu.RUnlock()
	return typeToName[et]
}

// NewPayloadStruct returns a new pointer to a zero-value payload struct for the event type
// Returns nil if no payload is registered
func NewPayloadStruct(et EventType) any {
	InitRegistry()
	registryMu.RLock()
	t, ok := typeToPayload[et]
	registryMu.RUnlock()
	if !ok {
		return nil
	}
	return reflect.New(t).Interface()
}

// AllTypes returns every registered event type in ascending order
func AllTypes() []EventType {
	InitRegistry()
	registryMu.RLock()
	defer registryMu.RUnlock()

	types := make([]EventType, 0, len(typeToName))
	for et := range typeToName {
		types = append(types, et)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// InitRegistry populates the registry with all game events
// Safe to call repeatedly; lookups call it lazily
func InitRegistry() {
	registryOnce.Do(func() {
		RegisterType("PlayerLanded", EventPlayerLanded, &PlayerLandedPayload{})
		RegisterType("ComboStarted", EventComboStarted, &ComboStartedPayload{})
		RegisterType("ComboProgress", EventComboProgress, &ComboProgressPayload{})
		RegisterType("ComboReset", EventComboReset, &ComboResetPayload{})
		RegisterType("MilestoneReached", EventMilestoneReached, &MilestonePayload{})
		RegisterType("ScoreChanged", EventScoreChanged, &ScoreChangedPayload{})
		RegisterType("FloorAssigned", EventFloorAssigned, &FloorAssignedPayload{})
		RegisterType("PickupSpawned", EventPickupSpawned, &PickupSpawnedPayload{})
		RegisterType("PickupCollected", EventPickupCollected, &PickupCollectedPayload{})
		RegisterType("PickupExpired", EventPickupExpired, &PickupExpiredPayload{})
		RegisterType("EffectRequest", EventEffectRequest, &EffectRequestPayload{})
		RegisterType("EffectStarted", EventEffectStarted, &EffectStartedPayload{})
		RegisterType("EffectExpired", EventEffectExpired, &EffectExpiredPayload{})
		RegisterType("PlayerJumped", EventPlayerJumped, &PlayerJumpedPayload{})
		RegisterType("PlayerMoved", EventPlayerMoved, &PlayerMovedPayload{})
		RegisterType("CameraSpeedUp", EventCameraSpeedUp, &CameraSpeedUpPayload{})
		RegisterType("GameOver", EventGameOver, &GameOverPayload{})
	})
}
