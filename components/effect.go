package components

import "time"

// EffectKind identifies a timed player effect
type EffectKind uint8

const (
	EffectSpeedBoost EffectKind = iota
	EffectJetpack
	EffectSticky
	effectKindCount
)

// EffectKindCount is the number of effect kinds
const EffectKindCount = int(effectKindCount)

func (k EffectKind) String() string {
	switch k {
	case EffectSpeedBoost:
		return "speed_boost"
	case EffectJetpack:
		return "jetpack"
	case EffectSticky:
		return "sticky"
	default:
		return "unknown"
	}
}

// ParseEffectKind maps a configuration name to an EffectKind
func ParseEffectKind(name string) (EffectKind, bool) {
	switch name {
	case "speed_boost":
		return EffectSpeedBoost, true
	case "jetpack":
		return EffectJetpack, true
	case "sticky":
		return EffectSticky, true
	}
	return 0, false
}

// TimedEffect is an expiring effect record checked every step
// ExpiresAt is run time, not wall time; restarting overwrites it
type TimedEffect struct {
	Active     bool
	ExpiresAt  time.Duration
	Multiplier float64
}

// Remaining returns time left at run time now
func (e TimedEffect) Remaining(now time.Duration) time.Duration {
	if !e.Active || now >= e.ExpiresAt {
		return 0
	}
	return e.ExpiresAt - now
}
