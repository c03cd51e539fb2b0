package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/tower-jumper/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// sweep is a sine whose frequency glides linearly from one pitch to another
type sweep struct {
	from, to float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

// NewSweep creates a gliding sine from one frequency to another
func NewSweep(from, to float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{from: from, to: to, duration: rate.N(duration), rate: rate}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}
		progress := float64(s.position) / float64(s.duration)
		freq := s.from + (s.to-s.from)*progress

		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a volume effect; math.Log2(0) is -Inf so zero is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func effectVolume(cfg *AudioConfig, st SoundType) float64 {
	return cfg.EffectVolumes[st] * cfg.MasterVolume
}

// Sound effect generators

// jumpPitch is the glide start per jump cue
var jumpPitch = map[SoundType]float64{
	SoundJumpLow:  330.0,
	SoundJumpMid:  440.0,
	SoundJumpHigh: 587.33,
}

// CreateJumpSound generates an upward chirp; stronger hops start higher
func CreateJumpSound(cfg *AudioConfig, st SoundType) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	base := jumpPitch[st]

	glide := NewSweep(base, base*2, constants.JumpSoundDuration, rate)
	shaped := NewEnvelope(glide, constants.JumpSoundDuration, constants.JumpSoundAttack, constants.JumpSoundRelease, rate)

	return newVolume(shaped, effectVolume(cfg, st))
}

// CreateComboStartSound generates a short rising noise burst
func CreateComboStartSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewOscillator(0, constants.WhooshSoundDuration, WaveNoise, rate)
	shaped := NewEnvelope(noise, constants.WhooshSoundDuration, constants.WhooshSoundAttack, constants.WhooshSoundRelease, rate)

	return newVolume(shaped, effectVolume(cfg, SoundComboStart))
}

// CreateMilestoneSound generates a bell with an octave overtone
func CreateMilestoneSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	// Fundamental (A5)
	fund := NewOscillator(880.0, constants.MilestoneSoundDuration, WaveSine, rate)
	fundShaped := NewEnvelope(fund, constants.MilestoneSoundDuration, constants.MilestoneSoundAttack, constants.MilestoneSoundFundamentalRelease, rate)

	// Octave up
	over := NewOscillator(1760.0, constants.MilestoneSoundDuration, WaveSine, rate)
	overShaped := NewEnvelope(over, constants.MilestoneSoundDuration, constants.MilestoneSoundAttack, constants.MilestoneSoundOvertoneRelease, rate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)

	return newVolume(mixed, effectVolume(cfg, SoundMilestone))
}

// CreateSpeedUpSound generates a saw riser under a noise whoosh
func CreateSpeedUpSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewOscillator(0, constants.WhooshSoundDuration, WaveNoise, rate)
	noiseShaped := NewEnvelope(noise, constants.WhooshSoundDuration, constants.WhooshSoundAttack, constants.WhooshSoundRelease, rate)

	saw := NewOscillator(110.0, constants.WhooshSoundDuration, WaveSaw, rate)
	sawShaped := NewEnvelope(saw, constants.WhooshSoundDuration, constants.WhooshSoundAttack, constants.WhooshSoundRelease, rate)

	mixed := beep.Mix(
		newVolume(noiseShaped, 0.5),
		newVolume(sawShaped, 0.3),
	)

	return newVolume(mixed, effectVolume(cfg, SoundSpeedUp))
}

// CreatePickupSound generates a two-note chime
func CreatePickupSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	// B5
	n1 := NewOscillator(987.77, constants.PickupSoundNote1Duration, WaveSquare, rate)
	n1Shaped := NewEnvelope(n1, constants.PickupSoundNote1Duration, constants.PickupSoundAttack, constants.PickupSoundNote1Release, rate)

	// E6
	n2 := NewOscillator(1318.51, constants.PickupSoundNote2Duration, WaveSquare, rate)
	n2Shaped := NewEnvelope(n2, constants.PickupSoundNote2Duration, constants.PickupSoundAttack, constants.PickupSoundNote2Release, rate)

	return newVolume(beep.Seq(n1Shaped, n2Shaped), effectVolume(cfg, SoundPickup))
}

// tierScale is a C major scale from C5, one step per announced tier
var tierScale = [...]float64{523.25, 587.33, 659.25, 698.46, 783.99, 880.00, 987.77, 1046.50, 1174.66, 1318.51, 1396.91}

// CreateTierSound generates an ascending arpeggio, one note per tier level
func CreateTierSound(cfg *AudioConfig, tier ComboTier) beep.Streamer {
	if tier <= TierNone || tier >= tierCount {
		return nil
	}
	rate := beep.SampleRate(cfg.SampleRate)

	notes := make([]beep.Streamer, 0, int(tier)+1)
	for i := 0; i <= int(tier) && i < len(tierScale); i++ {
		osc := NewOscillator(tierScale[i], constants.TierSoundNoteDuration, WaveSquare, rate)
		notes = append(notes, NewEnvelope(osc, constants.TierSoundNoteDuration, constants.TierSoundAttack, constants.TierSoundRelease, rate))
	}

	return newVolume(beep.Seq(notes...), cfg.TierVolume*cfg.MasterVolume)
}

// GetSoundEffect returns the appropriate sound effect streamer for the given type
func GetSoundEffect(soundType SoundType, cfg *AudioConfig) beep.Streamer {
	switch soundType {
	case SoundJumpLow, SoundJumpMid, SoundJumpHigh:
		return CreateJumpSound(cfg, soundType)
	case SoundComboStart:
		return CreateComboStartSound(cfg)
	case SoundMilestone:
		return CreateMilestoneSound(cfg)
	case SoundSpeedUp:
		return CreateSpeedUpSound(cfg)
	case SoundPickup:
		return CreatePickupSound(cfg)
	default:
		return nil
	}
}
