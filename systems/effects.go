package systems

import (
	"time"

	"github.com/lixenwraith/tower-jumper/components"
	"github.com/lixenwraith/tower-jumper/constants"
	"github.com/lixenwraith/tower-jumper/engine"
	"github.com/lixenwraith/tower-jumper/events"
)

// EffectSystem owns the timed player effects, one record per kind
// Starting an active effect overwrites its expiry, which cancels the previous timer
type EffectSystem struct {
	ctx     *engine.GameContext
	effects [components.EffectKindCount]components.TimedEffect
}

func NewEffectSystem(ctx *engine.GameContext) *EffectSystem {
	return &EffectSystem{ctx: ctx}
}

func (s *EffectSystem) Priority() int {
	return constants.PriorityEffect
}

func (s *EffectSystem) EventTypes() []events.EventType {
	return []events.EventType{events.EventEffectRequest}
}

func (s *EffectSystem) HandleEvent(world *engine.World, event events.GameEvent) {
	if payload, ok := event.Payload.(*events.EffectRequestPayload); ok {
		s.Start(payload.Kind, payload.Duration, payload.Multiplier)
	}
}

// Start activates kind for duration from the current run time
func (s *EffectSystem) Start(kind components.EffectKind, duration time.Duration, multiplier float64) {
	if int(kind) >= components.EffectKindCount {
		return
	}
	e := &s.effects[kind]
	restarted := e.Active
	*e = components.TimedEffect{
		Active:     true,
		ExpiresAt:  s.ctx.Elapsed() + duration,
		Multiplier: multiplier,
	}
	s.ctx.Emit(events.EventEffectStarted, &events.EffectStartedPayload{
		Kind:       kind,
		ExpiresAt:  e.ExpiresAt,
		Multiplier: multiplier,
		Restarted:  restarted,
	})
}

// Update expires effects whose time is up
func (s *EffectSystem) Update(world *engine.World, dt time.Duration) {
	now := s.ctx.Elapsed()
	for kind := range s.effects {
		e := &s.effects[kind]
		if e.Active && now >= e.ExpiresAt {
			*e = components.TimedEffect{}
			s.ctx.Emit(events.EventEffectExpired, &events.EffectExpiredPayload{Kind: components.EffectKind(kind)})
		}
	}
}

// Active reports whether kind is running
func (s *EffectSystem) Active(kind components.EffectKind) bool {
	if int(kind) >= components.EffectKindCount {
		return false
	}
	return s.effects[kind].Active
}

// Multiplier returns the multiplier of kind, or 1 when inactive
func (s *EffectSystem) Multiplier(kind components.EffectKind) float64 {
	if !s.Active(kind) {
		return 1
	}
	return s.effects[kind].Multiplier
}

// Effect returns the record of kind
func (s *EffectSystem) Effect(kind components.EffectKind) components.TimedEffect {
	if int(kind) >= components.EffectKindCount {
		return components.TimedEffect{}
	}
	return s.effects[kind]
}
