package systems

import (
	"github.com/lixenwraith/tower-jumper/audio"
	"github.com/lixenwraith/tower-jumper/engine"
	"github.com/lixenwraith/tower-jumper/events"
)

// SoundSink plays feedback cues; *audio.SoundManager satisfies it
type SoundSink interface {
	Play(st audio.SoundType) bool
	PlayTier(tier audio.ComboTier) bool
}

type silentSink struct{}

func (silentSink) Play(audio.SoundType) bool     { return false }
func (silentSink) PlayTier(audio.ComboTier) bool { return false }

// FeedbackSystem turns gameplay events into sound cues
// A tier cue plays only when a combo climbs into a higher tier than it already announced
type FeedbackSystem struct {
	ctx      *engine.GameContext
	sink     SoundSink
	lastTier audio.ComboTier
}

// NewFeedbackSystem creates a feedback handler; a nil sink drops every cue
func NewFeedbackSystem(ctx *engine.GameContext, sink SoundSink) *FeedbackSystem {
	if sink == nil {
		sink = silentSink{}
	}
	return &FeedbackSystem{ctx: ctx, sink: sink}
}

func (f *FeedbackSystem) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventComboStarted,
		events.EventComboProgress,
		events.EventComboReset,
		events.EventMilestoneReached,
		events.EventPlayerJumped,
		events.EventCameraSpeedUp,
		events.EventPickupCollected,
	}
}

func (f *FeedbackSystem) HandleEvent(world *engine.World, event events.GameEvent) {
	switch payload := event.Payload.(type) {
	case *events.ComboStartedPayload:
		f.sink.Play(audio.SoundComboStart)
	case *events.ComboProgressPayload:
		if tier := audio.TierFor(payload.TotalFloors); tier > f.lastTier {
			f.lastTier = tier
			f.sink.PlayTier(tier)
			f.ctx.Log.Debug().Str("tier", tier.String()).Int("floors", payload.TotalFloors).Msg("combo tier")
		}
	case *events.ComboResetPayload:
		f.lastTier = audio.TierNone
	case *events.MilestonePayload:
		f.sink.Play(audio.SoundMilestone)
	case *events.PlayerJumpedPayload:
		f.sink.Play(audio.JumpSound(payload.Strength))
	case *events.CameraSpeedUpPayload:
		f.sink.Play(audio.SoundSpeedUp)
	case *events.PickupCollectedPayload:
		f.sink.Play(audio.SoundPickup)
	}
}

// LastTier returns the highest tier announced for the open combo
func (f *FeedbackSystem) LastTier() audio.ComboTier { return f.lastTier }
