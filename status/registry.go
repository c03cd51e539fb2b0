package status

import "sync/atomic"

// Metric keys written by the game loop, grouped by prefix
const (
	KeyScore            Key = "score.current"
	KeyHighestFloor     Key = "score.highest_floor"
	KeyConfirmedCombo   Key = "score.confirmed_combo"
	KeyComboJumps       Key = "combo.jumps"
	KeyComboFloors      Key = "combo.floors"
	KeyMilestones       Key = "score.milestones"
	KeyPickupsAlive     Key = "pickups.alive"
	KeyPickupsSpawned   Key = "pickups.spawned"
	KeyPickupsCollected Key = "pickups.collected"
	KeyPlatformsIssued  Key = "platforms.issued"
	KeyFrames           Key = "loop.frames"
	KeyCameraSpeed      Key = "camera.speed"
	KeyCameraY          Key = "camera.y"
	KeyPlayerY          Key = "player.y"
	KeyGameOver         Key = "game.over"
	KeyRunID            Key = "run.id"
)

// Registry is the central metrics facade
// Systems cache pointers during construction; Update loops write directly to atomics
// Readers on other goroutines (observer) only ever see these values, never game state
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot copies the current values of group, or of every metric when group is empty
func (r *Registry) Snapshot(group string) map[Key]any {
	out := make(map[Key]any)
	r.Bools.Range(group, func(k Key, v *atomic.Bool) { out[k] = v.Load() })
	r.Ints.Range(group, func(k Key, v *atomic.Int64) { out[k] = v.Load() })
	r.Floats.Range(group, func(k Key, v *AtomicFloat) { out[k] = v.Get() })
	r.Strings.Range(group, func(k Key, v *AtomicString) { out[k] = v.Load() })
	return out
}
