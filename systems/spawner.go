package systems

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/lixenwraith/tower-jumper/components"
	"github.com/lixenwraith/tower-jumper/engine"
	"github.com/lixenwraith/tower-jumper/events"
	"github.com/lixenwraith/tower-jumper/status"
	"github.com/lixenwraith/tower-jumper/tuning"
)

var (
	ErrNoPlatforms        = errors.New("no platforms registered")
	ErrNoVariants         = errors.New("no pickup variants configured")
	ErrPlacementExhausted = errors.New("no free placement point")
	ErrUnknownPickupType  = errors.New("unknown pickup type")
)

// SpawnerConfig is the resolved parameter set of one power-up spawner
type SpawnerConfig struct {
	Type          components.PickupType
	Variants      []string
	Cadence       int
	FirstFloor    int
	MaxConcurrent int // Below zero means unlimited

	Padding        float64
	VerticalOffset float64
	ProbeWidth     float64
	ProbeHeight    float64
	MinLead        float64
	PickupSize     float64
	MaxAttempts    int
}

// NewSpawnerConfig resolves one spawner entry against the shared placement tuning
func NewSpawnerConfig(st tuning.SpawnerTuning, place tuning.PlacementTuning) (SpawnerConfig, error) {
	pt, ok := components.ParsePickupType(st.Type)
	if !ok {
		return SpawnerConfig{}, fmt.Errorf("%w: %q", ErrUnknownPickupType, st.Type)
	}
	return SpawnerConfig{
		Type:           pt,
		Variants:       append([]string(nil), st.Variants...),
		Cadence:        st.Cadence,
		FirstFloor:     st.FirstFloor,
		MaxConcurrent:  st.MaxConcurrent,
		Padding:        place.Padding,
		VerticalOffset: place.VerticalOffset,
		ProbeWidth:     place.ProbeWidth,
		ProbeHeight:    place.ProbeHeight,
		MinLead:        place.MinLead,
		PickupSize:     place.PickupSize,
		MaxAttempts:    place.MaxAttempts,
	}, nil
}

// PowerUpSpawner places one pickup type at floor cadence under an alive cap
// Two paths share the gates: pre-placement on a freshly indexed platform and
// a reactive retry loop over random platforms when the player reaches a floor
type PowerUpSpawner struct {
	ctx *engine.GameContext
	cfg SpawnerConfig

	nextSpawnFloor int

	spawnedMetric *atomic.Int64
}

// NewPowerUpSpawner creates a spawner whose first eligible floor is cfg.FirstFloor
func NewPowerUpSpawner(ctx *engine.GameContext, cfg SpawnerConfig) *PowerUpSpawner {
	return &PowerUpSpawner{
		ctx:            ctx,
		cfg:            cfg,
		nextSpawnFloor: cfg.FirstFloor,
		spawnedMetric:  ctx.Status.Ints.Get(status.KeyPickupsSpawned),
	}
}

// Type returns the pickup type this spawner places
func (s *PowerUpSpawner) Type() components.PickupType { return s.cfg.Type }

// NextSpawnFloor returns the lowest floor at which the next spawn may happen
func (s *PowerUpSpawner) NextSpawnFloor() int { return s.nextSpawnFloor }

// AliveCount returns placed pickups of this type still in the world
func (s *PowerUpSpawner) AliveCount() int {
	return s.ctx.World.CountPickups(s.cfg.Type)
}

func (s *PowerUpSpawner) EventTypes() []events.EventType {
	return []events.EventType{events.EventPlayerLanded}
}

func (s *PowerUpSpawner) HandleEvent(world *engine.World, event events.GameEvent) {
	if payload, ok := event.Payload.(*events.PlayerLandedPayload); ok {
		s.NotifyReachedFloor(payload.Floor)
	}
}

func (s *PowerUpSpawner) eligible(floor int) bool {
	if floor < s.nextSpawnFloor {
		return false
	}
	if s.cfg.MaxConcurrent >= 0 && s.AliveCount() >= s.cfg.MaxConcurrent {
		return false
	}
	return true
}

// MaybePreplace tries one pickup above a platform that just received floor
// Any failed condition leaves state untouched
func (s *PowerUpSpawner) MaybePreplace(floor int, platform components.Bounds) {
	if !s.eligible(floor) {
		return
	}
	if len(s.cfg.Variants) == 0 {
		s.ctx.Log.Warn().Err(ErrNoVariants).Str("type", s.cfg.Type.String()).Msg("preplace skipped")
		return
	}

	x, ok := s.pickX(platform)
	if !ok {
		return
	}
	y := platform.MaxY + s.cfg.VerticalOffset
	y = max(y, s.ctx.Player.Y+s.cfg.MinLead)

	if placementBlocked(s.ctx.World, components.BoxAt(x, y, s.cfg.ProbeWidth, s.cfg.ProbeHeight)) {
		return
	}

	s.place(x, y, floor, false)
}

// NotifyReachedFloor runs the reactive path for a floor the player reached
func (s *PowerUpSpawner) NotifyReachedFloor(floor int) {
	if !s.eligible(floor) {
		return
	}
	if err := s.trySpawn(floor); err != nil {
		if errors.Is(err, ErrPlacementExhausted) {
			s.ctx.Log.Debug().Err(err).Int("floor", floor).Str("type", s.cfg.Type.String()).Msg("reactive spawn failed")
		} else {
			s.ctx.Log.Warn().Err(err).Int("floor", floor).Str("type", s.cfg.Type.String()).Msg("reactive spawn failed")
		}
	}
}

func (s *PowerUpSpawner) trySpawn(floor int) error {
	platforms := s.ctx.World.Platforms.All()
	if len(platforms) == 0 {
		return ErrNoPlatforms
	}
	if len(s.cfg.Variants) == 0 {
		return ErrNoVariants
	}

	for attempt := 0; attempt < s.cfg.MaxAttempts; attempt++ {
		e := platforms[s.ctx.Rand.Intn(len(platforms))]
		p, ok := s.ctx.World.Platforms.Get(e)
		if !ok {
			continue
		}
		x, ok := s.pickX(p.Bounds)
		if !ok {
			continue
		}
		y := p.Top() + s.cfg.VerticalOffset
		if placementBlocked(s.ctx.World, components.BoxAt(x, y, s.cfg.ProbeWidth, s.cfg.ProbeHeight)) {
			continue
		}
		s.place(x, y, floor, true)
		return nil
	}
	return fmt.Errorf("%w after %d attempts", ErrPlacementExhausted, s.cfg.MaxAttempts)
}

// pickX draws a uniform x inside the padded platform span
func (s *PowerUpSpawner) pickX(platform components.Bounds) (float64, bool) {
	left := platform.MinX + s.cfg.Padding
	right := platform.MaxX - s.cfg.Padding
	if right <= left {
		return 0, false
	}
	return left + s.ctx.Rand.Float64()*(right-left), true
}

func (s *PowerUpSpawner) place(x, y float64, floor int, reactive bool) {
	variant := s.cfg.Variants[s.ctx.Rand.Intn(len(s.cfg.Variants))]

	e := s.ctx.World.CreateEntity()
	s.ctx.World.Pickups.Set(e, components.PickupComponent{
		Type:    s.cfg.Type,
		Variant: variant,
		X:       x,
		Y:       y,
		Bounds:  components.BoxAt(x, y, s.cfg.PickupSize, s.cfg.PickupSize),
	})
	s.nextSpawnFloor += s.cfg.Cadence
	s.spawnedMetric.Add(1)

	s.ctx.Log.Debug().
		Str("type", s.cfg.Type.String()).
		Str("variant", variant).
		Int("floor", floor).
		Int("next", s.nextSpawnFloor).
		Bool("reactive", reactive).
		Msg("pickup spawned")

	s.ctx.Emit(events.EventPickupSpawned, &events.PickupSpawnedPayload{
		Entity:   e,
		Type:     s.cfg.Type,
		Variant:  variant,
		X:        x,
		Y:        y,
		Floor:    floor,
		Reactive: reactive,
	})
}
