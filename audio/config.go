package audio

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/lixenwraith/tower-jumper/constants"
)

// AudioConfig holds volumes and output format
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64
	TierVolume    float64
	EffectVolumes map[SoundType]float64
	SampleRate    int
}

// DefaultAudioConfig returns the built-in audio settings
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		TierVolume:   0.8,
		EffectVolumes: map[SoundType]float64{
			SoundJumpLow:    0.4,
			SoundJumpMid:    0.5,
			SoundJumpHigh:   0.6,
			SoundComboStart: 0.6,
			SoundMilestone:  1.0,
			SoundSpeedUp:    0.7,
			SoundPickup:     0.8,
		},
		SampleRate: constants.AudioSampleRate,
	}
}

// LoadAudioConfig loads audio configuration from environment variables
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv("TOWER_JUMPER_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume is 0-100 on the environment, 0.0-1.0 internally
	if volume := os.Getenv("TOWER_JUMPER_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = min(max(float64(val)/100.0, 0), 1)
		}
	}

	// Effect volumes come as a JSON object keyed by sound name, plus "tier"
	if effectVols := os.Getenv("TOWER_JUMPER_SFX_VOLUMES"); effectVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(effectVols), &volumes); err == nil {
			for name, v := range volumes {
				if name == "tier" {
					cfg.TierVolume = v
					continue
				}
				if st, ok := ParseSoundType(name); ok {
					cfg.EffectVolumes[st] = v
				}
			}
		}
	}

	if sampleRate := os.Getenv("TOWER_JUMPER_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}
