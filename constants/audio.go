package constants

import "time"

// Audio Output
const (
	// AudioSampleRate is the speaker sample rate
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer size
	AudioBufferDuration = 100 * time.Millisecond
)

// Combo Tier Thresholds (floors in combo)
const (
	TierGoodFloors      = 4
	TierSweetFloors     = 7
	TierGreatFloors     = 15
	TierSuperFloors     = 25
	TierWowFloors       = 35
	TierAmazingFloors   = 50
	TierExtremeFloors   = 70
	TierFantasticFloors = 100
	TierSplendidFloors  = 140
	TierNoWayFloors     = 200
)

// Jump Sound Timing
const (
	JumpSoundDuration = 120 * time.Millisecond
	JumpSoundAttack   = 5 * time.Millisecond
	JumpSoundRelease  = 80 * time.Millisecond
)

// Tier Sound Timing
const (
	TierSoundNoteDuration = 70 * time.Millisecond
	TierSoundAttack       = 5 * time.Millisecond
	TierSoundRelease      = 40 * time.Millisecond
)

// Milestone Sound Timing
const (
	MilestoneSoundDuration           = 600 * time.Millisecond
	MilestoneSoundAttack             = 5 * time.Millisecond
	MilestoneSoundFundamentalRelease = 550 * time.Millisecond
	MilestoneSoundOvertoneRelease    = 200 * time.Millisecond
)

// Whoosh Sound Timing (combo start, camera speed-up)
const (
	WhooshSoundDuration = 300 * time.Millisecond
	WhooshSoundAttack   = 150 * time.Millisecond
	WhooshSoundRelease  = 150 * time.Millisecond
)

// Pickup Sound Timing
const (
	PickupSoundNote1Duration = 80 * time.Millisecond
	PickupSoundNote2Duration = 280 * time.Millisecond
	PickupSoundAttack        = 5 * time.Millisecond
	PickupSoundNote1Release  = 40 * time.Millisecond
	PickupSoundNote2Release  = 200 * time.Millisecond
)
