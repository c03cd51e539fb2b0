// Package tuning loads the run's gameplay parameters: built-in defaults, overlaid by an optional YAML
// document, overlaid by environment variables, then validated against an embedded JSON schema.
package tuning

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/tower-jumper/constants"
)

// ErrInvalidTuning wraps every validation failure
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning is the complete parameter set of a run
type Tuning struct {
	Seed     int64                    `yaml:"seed" json:"seed"`
	Combo    ComboTuning              `yaml:"combo" json:"combo"`
	Score    ScoreTuning              `yaml:"score" json:"score"`
	Recycler RecyclerTuning           `yaml:"recycler" json:"recycler"`
	Place    PlacementTuning          `yaml:"placement" json:"placement"`
	Spawners []SpawnerTuning          `yaml:"spawners" json:"spawners"`
	Variants map[string]VariantTuning `yaml:"variants" json:"variants"`
	Effects  EffectTuning             `yaml:"effects" json:"effects"`
	Climb    ClimbTuning              `yaml:"climb" json:"climb"`
	Camera   CameraTuning             `yaml:"camera" json:"camera"`
	Input    InputTuning              `yaml:"input" json:"input"`
	Observer ObserverTuning           `yaml:"observer" json:"observer"`
	Journal  JournalTuning            `yaml:"journal" json:"journal"`
}

type ComboTuning struct {
	TimeoutSeconds float64 `yaml:"timeout_seconds" json:"timeout_seconds"`
	MinFloorSkip   int     `yaml:"min_floor_skip" json:"min_floor_skip"`
	MinJumps       int     `yaml:"min_jumps" json:"min_jumps"`
}

// Timeout returns the combo timeout as a duration
func (c ComboTuning) Timeout() time.Duration { return Seconds(c.TimeoutSeconds) }

type ScoreTuning struct {
	FloorPoints   int `yaml:"floor_points" json:"floor_points"`
	MilestoneStep int `yaml:"milestone_step" json:"milestone_step"`
}

type RecyclerTuning struct {
	PlatformCount      int     `yaml:"platform_count" json:"platform_count"`
	PlatformSpacing    float64 `yaml:"platform_spacing" json:"platform_spacing"`
	PlatformStartY     float64 `yaml:"platform_start_y" json:"platform_start_y"`
	PlatformXMin       float64 `yaml:"platform_x_min" json:"platform_x_min"`
	PlatformXMax       float64 `yaml:"platform_x_max" json:"platform_x_max"`
	PlatformWidth      float64 `yaml:"platform_width" json:"platform_width"`
	PlatformThickness  float64 `yaml:"platform_thickness" json:"platform_thickness"`
	PlatformSpawnAhead float64 `yaml:"platform_spawn_ahead" json:"platform_spawn_ahead"`
	FirstFloor         int     `yaml:"first_floor" json:"first_floor"`
	WallCount          int     `yaml:"wall_count" json:"wall_count"`
	WallHeight         float64 `yaml:"wall_height" json:"wall_height"`
	WallSpawnAhead     float64 `yaml:"wall_spawn_ahead" json:"wall_spawn_ahead"`
	WallGapMin         float64 `yaml:"wall_gap_min" json:"wall_gap_min"` // Zero falls back to wall_height
	WallGapMax         float64 `yaml:"wall_gap_max" json:"wall_gap_max"`
	WallHalfWidth      float64 `yaml:"wall_half_width" json:"wall_half_width"`
	WallThickness      float64 `yaml:"wall_thickness" json:"wall_thickness"`
	BouncyChance       float64 `yaml:"bouncy_chance" json:"bouncy_chance"`
	StickyChance       float64 `yaml:"sticky_chance" json:"sticky_chance"`
}

type PlacementTuning struct {
	Padding        float64 `yaml:"padding" json:"padding"`
	VerticalOffset float64 `yaml:"vertical_offset" json:"vertical_offset"`
	ProbeWidth     float64 `yaml:"probe_width" json:"probe_width"`
	ProbeHeight    float64 `yaml:"probe_height" json:"probe_height"`
	MaxAttempts    int     `yaml:"max_attempts" json:"max_attempts"`
	MinLead        float64 `yaml:"min_lead" json:"min_lead"`
	PickupSize     float64 `yaml:"pickup_size" json:"pickup_size"`
}

// SpawnerTuning configures one power-up spawner
// MaxConcurrent below zero means unlimited
type SpawnerTuning struct {
	Type          string   `yaml:"type" json:"type"`
	Cadence       int      `yaml:"cadence" json:"cadence"`
	FirstFloor    int      `yaml:"first_floor" json:"first_floor"`
	MaxConcurrent int      `yaml:"max_concurrent" json:"max_concurrent"`
	Variants      []string `yaml:"variants" json:"variants"`
}

// VariantTuning is the effect granted by collecting a pickup variant
type VariantTuning struct {
	Effect          string  `yaml:"effect" json:"effect"`
	Multiplier      float64 `yaml:"multiplier" json:"multiplier"`
	DurationSeconds float64 `yaml:"duration_seconds" json:"duration_seconds"`
}

// Duration returns the effect duration
func (v VariantTuning) Duration() time.Duration { return Seconds(v.DurationSeconds) }

type EffectTuning struct {
	StickySeconds float64 `yaml:"sticky_seconds" json:"sticky_seconds"`
	JetpackRise   float64 `yaml:"jetpack_rise" json:"jetpack_rise"`
	BouncyBonus   int     `yaml:"bouncy_bonus" json:"bouncy_bonus"`
}

type ClimbTuning struct {
	MoveSpeed             float64 `yaml:"move_speed" json:"move_speed"`
	ChargePerFloorSeconds float64 `yaml:"charge_per_floor_seconds" json:"charge_per_floor_seconds"`
	MaxChargeSeconds      float64 `yaml:"max_charge_seconds" json:"max_charge_seconds"`
	MaxHopFloors          int     `yaml:"max_hop_floors" json:"max_hop_floors"`
	MomentumBonus         int     `yaml:"momentum_bonus" json:"momentum_bonus"`
}

type CameraTuning struct {
	StartThreshold  float64 `yaml:"start_threshold" json:"start_threshold"`
	CatchUp         float64 `yaml:"catch_up" json:"catch_up"`
	BaseSpeed       float64 `yaml:"base_speed" json:"base_speed"`
	SpeedStep       float64 `yaml:"speed_step" json:"speed_step"`
	IntervalSeconds float64 `yaml:"interval_seconds" json:"interval_seconds"`
	MaxSpeed        float64 `yaml:"max_speed" json:"max_speed"`
	HalfHeight      float64 `yaml:"half_height" json:"half_height"`
}

type InputTuning struct {
	Source            string  `yaml:"source" json:"source"`
	HoldWindowSeconds float64 `yaml:"hold_window_seconds" json:"hold_window_seconds"`
}

type ObserverTuning struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Addr    string `yaml:"addr" json:"addr"`
}

type JournalTuning struct {
	Path string `yaml:"path" json:"path"`
}

// Seconds converts fractional seconds to a duration
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Defaults returns the built-in tuning
func Defaults() *Tuning {
	return &Tuning{
		Seed: 0,
		Combo: ComboTuning{
			TimeoutSeconds: constants.ComboTimeout.Seconds(),
			MinFloorSkip:   constants.ComboMinFloorSkip,
			MinJumps:       constants.ComboMinJumps,
		},
		Score: ScoreTuning{
			FloorPoints:   constants.FloorPoints,
			MilestoneStep: constants.MilestoneStep,
		},
		Recycler: RecyclerTuning{
			PlatformCount:      constants.PlatformCount,
			PlatformSpacing:    constants.PlatformSpacing,
			PlatformStartY:     constants.PlatformStartY,
			PlatformXMin:       constants.PlatformXMin,
			PlatformXMax:       constants.PlatformXMax,
			PlatformWidth:      constants.PlatformWidth,
			PlatformThickness:  constants.PlatformThickness,
			PlatformSpawnAhead: constants.PlatformSpawnAhead,
			FirstFloor:         constants.FirstFloorIndex,
			WallCount:          constants.WallCount,
			WallHeight:         constants.WallHeight,
			WallSpawnAhead:     constants.WallSpawnAhead,
			WallGapMin:         constants.WallGapMin,
			WallGapMax:         constants.WallGapMax,
			WallHalfWidth:      constants.WallHalfWidth,
			WallThickness:      constants.WallThickness,
			BouncyChance:       constants.BouncyChance,
			StickyChance:       constants.StickyChance,
		},
		Place: PlacementTuning{
			Padding:        constants.PickupPadding,
			VerticalOffset: constants.PickupVerticalOffset,
			ProbeWidth:     constants.PickupProbeWidth,
			ProbeHeight:    constants.PickupProbeHeight,
			MaxAttempts:    constants.PickupMaxAttempts,
			MinLead:        constants.PickupMinLead,
			PickupSize:     constants.PickupSize,
		},
		Spawners: []SpawnerTuning{
			{
				Type:          "speed_boost",
				Cadence:       constants.SpeedBoostCadence,
				FirstFloor:    constants.SpeedBoostCadence,
				MaxConcurrent: constants.SpeedBoostMaxConcurrent,
				Variants:      []string{"speed_boost", "speed_boost_plus"},
			},
			{
				Type:          "jetpack",
				Cadence:       constants.JetpackCadence,
				FirstFloor:    constants.JetpackCadence,
				MaxConcurrent: constants.JetpackMaxConcurrent,
				Variants:      []string{"jetpack"},
			},
		},
		Variants: map[string]VariantTuning{
			"speed_boost": {
				Effect:          "speed_boost",
				Multiplier:      constants.SpeedBoostMultiplier,
				DurationSeconds: constants.SpeedBoostDuration.Seconds(),
			},
			"speed_boost_plus": {
				Effect:          "speed_boost",
				Multiplier:      constants.SpeedBoostPlusMultiplier,
				DurationSeconds: constants.SpeedBoostPlusDuration.Seconds(),
			},
			"jetpack": {
				Effect:          "jetpack",
				Multiplier:      1,
				DurationSeconds: constants.JetpackDuration.Seconds(),
			},
		},
		Effects: EffectTuning{
			StickySeconds: constants.StickyDuration.Seconds(),
			JetpackRise:   constants.JetpackRise,
			BouncyBonus:   constants.BouncyBonusFloors,
		},
		Climb: ClimbTuning{
			MoveSpeed:             constants.MoveSpeed,
			ChargePerFloorSeconds: constants.HopChargePerFloor.Seconds(),
			MaxChargeSeconds:      constants.HopMaxCharge.Seconds(),
			MaxHopFloors:          constants.HopMaxFloors,
			MomentumBonus:         constants.HopMomentumBonus,
		},
		Camera: CameraTuning{
			StartThreshold:  constants.CameraStartThreshold,
			CatchUp:         constants.CameraCatchUp,
			BaseSpeed:       constants.CameraBaseSpeed,
			SpeedStep:       constants.CameraSpeedStep,
			IntervalSeconds: constants.CameraSpeedInterval.Seconds(),
			MaxSpeed:        constants.CameraMaxSpeed,
			HalfHeight:      constants.CameraHalfHeight,
		},
		Input: InputTuning{
			Source:            "keyboard",
			HoldWindowSeconds: constants.InputHoldWindow.Seconds(),
		},
		Observer: ObserverTuning{
			Enabled: false,
			Addr:    "127.0.0.1:8787",
		},
	}
}

// Load reads a YAML tuning file over the defaults and validates the result
// An empty path returns validated defaults
func Load(path string) (*Tuning, error) {
	t := Defaults()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := t.decode(bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Parse decodes a YAML document over the defaults and validates the result
func Parse(r io.Reader) (*Tuning, error) {
	t := Defaults()
	if err := t.decode(r); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tuning) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(t); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("tuning yaml: %w", err)
	}
	return nil
}

// Variant returns the named variant
func (t *Tuning) Variant(name string) (VariantTuning, bool) {
	v, ok := t.Variants[name]
	return v, ok
}
