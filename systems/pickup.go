package systems

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/tower-jumper/components"
	"github.com/lixenwraith/tower-jumper/constants"
	"github.com/lixenwraith/tower-jumper/core"
	"github.com/lixenwraith/tower-jumper/engine"
	"github.com/lixenwraith/tower-jumper/events"
	"github.com/lixenwraith/tower-jumper/status"
)

// PickupSystem collects pickups the player sweeps through and culls those the camera left behind
type PickupSystem struct {
	ctx *engine.GameContext

	aliveMetric     *atomic.Int64
	collectedMetric *atomic.Int64
}

func NewPickupSystem(ctx *engine.GameContext) *PickupSystem {
	return &PickupSystem{
		ctx:             ctx,
		aliveMetric:     ctx.Status.Ints.Get(status.KeyPickupsAlive),
		collectedMetric: ctx.Status.Ints.Get(status.KeyPickupsCollected),
	}
}

func (s *PickupSystem) Priority() int {
	return constants.PriorityPickup
}

func (s *PickupSystem) EventTypes() []events.EventType {
	return []events.EventType{events.EventPlayerMoved}
}

func (s *PickupSystem) HandleEvent(world *engine.World, event events.GameEvent) {
	if payload, ok := event.Payload.(*events.PlayerMovedPayload); ok {
		s.Sweep(payload.FromX, payload.FromY, payload.ToX, payload.ToY)
	}
}

// Sweep collects every pickup touched by the player box moving between two positions
func (s *PickupSystem) Sweep(fromX, fromY, toX, toY float64) {
	from := engine.PlayerState{X: fromX, Y: fromY}.Bounds()
	to := engine.PlayerState{X: toX, Y: toY}.Bounds()
	swept := from.Union(to)

	var hit []core.Entity
	s.ctx.World.Pickups.Each(func(e core.Entity, p components.PickupComponent) {
		if p.Bounds.Overlaps(swept) {
			hit = append(hit, e)
		}
	})
	for _, e := range hit {
		s.collect(e)
	}
}

func (s *PickupSystem) collect(e core.Entity) {
	p, ok := s.ctx.World.Pickups.Get(e)
	if !ok {
		return
	}
	s.ctx.World.DestroyEntity(e)
	s.collectedMetric.Add(1)

	s.ctx.Emit(events.EventPickupCollected, &events.PickupCollectedPayload{
		Entity:  e,
		Type:    p.Type,
		Variant: p.Variant,
	})

	v, ok := s.ctx.Tuning.Variant(p.Variant)
	if !ok {
		s.ctx.Log.Warn().Str("variant", p.Variant).Msg("collected pickup has no variant tuning")
		return
	}
	kind, ok := components.ParseEffectKind(v.Effect)
	if !ok {
		s.ctx.Log.Warn().Str("variant", p.Variant).Str("effect", v.Effect).Msg("unknown effect")
		return
	}
	s.ctx.Emit(events.EventEffectRequest, &events.EffectRequestPayload{
		Kind:       kind,
		Duration:   v.Duration(),
		Multiplier: v.Multiplier,
	})
}

// Update culls pickups wholly below the camera's bottom edge
func (s *PickupSystem) Update(world *engine.World, dt time.Duration) {
	bottom := s.ctx.Camera.Bottom(s.ctx.Tuning.Camera.HalfHeight)

	var gone []core.Entity
	world.Pickups.Each(func(e core.Entity, p components.PickupComponent) {
		if p.Bounds.MaxY < bottom {
			gone = append(gone, e)
		}
	})
	for _, e := range gone {
		p, _ := world.Pickups.Get(e)
		world.DestroyEntity(e)
		s.ctx.Emit(events.EventPickupExpired, &events.PickupExpiredPayload{Entity: e, Type: p.Type})
	}

	s.aliveMetric.Store(int64(world.Pickups.Count()))
}
