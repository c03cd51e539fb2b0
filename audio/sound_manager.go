package audio

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/tower-jumper/constants"
)

// SoundManager plays generated cues through the speaker
// Without an output device it stays silent and counts drops
type SoundManager struct {
	mu          sync.Mutex
	config      *AudioConfig
	mixer       *beep.Mixer
	initialized bool
	silent      bool

	played  atomic.Uint64
	dropped atomic.Uint64
}

// NewSoundManager creates a sound manager; a nil config loads defaults
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &SoundManager{
		config: cfg,
		mixer:  &beep.Mixer{},
	}
}

// Initialize opens the speaker; a disabled config initializes silent
// A missing device also leaves the manager silent and returns ErrNoAudioDevice
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	sm.initialized = true

	if !sm.config.Enabled {
		sm.silent = true
		return nil
	}

	rate := beep.SampleRate(sm.config.SampleRate)
	if err := speaker.Init(rate, rate.N(constants.AudioBufferDuration)); err != nil {
		sm.silent = true
		return fmt.Errorf("%w: %v", ErrNoAudioDevice, err)
	}

	speaker.Play(sm.mixer)
	return nil
}

// Cleanup stops all sounds and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if !sm.silent {
		speaker.Lock()
		sm.mixer.Clear()
		speaker.Unlock()
		speaker.Close()
	}
	sm.initialized = false
	sm.silent = false
}

// Play queues a sound for playback; false when nothing was queued
func (sm *SoundManager) Play(st SoundType) bool {
	return sm.add(func(cfg *AudioConfig) beep.Streamer { return GetSoundEffect(st, cfg) })
}

// PlayTier queues the arpeggio of a combo tier
func (sm *SoundManager) PlayTier(tier ComboTier) bool {
	return sm.add(func(cfg *AudioConfig) beep.Streamer { return CreateTierSound(cfg, tier) })
}

func (sm *SoundManager) add(build func(*AudioConfig) beep.Streamer) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.silent {
		sm.dropped.Add(1)
		return false
	}

	s := build(sm.config)
	if s == nil {
		return false
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played.Add(1)
	return true
}

// IsSilent reports a manager that drops every sound
func (sm *SoundManager) IsSilent() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return !sm.initialized || sm.silent
}

// SetVolume updates master volume (0.0-1.0)
func (sm *SoundManager) SetVolume(vol float64) {
	sm.mu.Lock()
	sm.config.MasterVolume = min(max(vol, 0), 1)
	sm.mu.Unlock()
}

// GetStats returns played and dropped counts
func (sm *SoundManager) GetStats() (played, dropped uint64) {
	return sm.played.Load(), sm.dropped.Load()
}
