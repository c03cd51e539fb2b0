package engine

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/tower-jumper/events"
	"github.com/lixenwraith/tower-jumper/status"
	"github.com/lixenwraith/tower-jumper/tuning"
)

// Options configures a new GameContext; zero fields get defaults
type Options struct {
	Tuning *tuning.Tuning
	Log    *zerolog.Logger
	Time   TimeSource
	Status *status.Registry
	RunID  uuid.UUID
}

// GameContext holds all run state shared by systems
// Every field is owned by the game loop goroutine; other goroutines read Status only
type GameContext struct {
	World  *World
	Router *events.Router[*World]
	Tuning *tuning.Tuning
	Log    zerolog.Logger
	Rand   *rand.Rand
	Time   TimeSource
	Status *status.Registry

	RunID uuid.UUID
	Seed  int64

	Player PlayerState
	Camera CameraState

	frame   int64
	elapsed time.Duration
	over    bool
}

// NewGameContext creates a context with an empty world and router
// A zero tuning seed picks a time-based seed, recorded in Seed for replay
func NewGameContext(opts Options) *GameContext {
	tu := opts.Tuning
	if tu == nil {
		tu = tuning.Defaults()
	}

	ts := opts.Time
	if ts == nil {
		ts = NewTimeProvider()
	}

	reg := opts.Status
	if reg == nil {
		reg = status.NewRegistry()
	}

	runID := opts.RunID
	if runID == uuid.Nil {
		runID = uuid.New()
	}

	seed := tu.Seed
	if seed == 0 {
		seed = ts.Now().UnixNano()
	}

	base := zerolog.Nop()
	if opts.Log != nil {
		base = *opts.Log
	}

	reg.Strings.Get(status.KeyRunID).Store(runID.String())

	return &GameContext{
		World:  NewWorld(),
		Router: events.NewRouter[*World](),
		Tuning: tu,
		Log:    base.With().Str("run", runID.String()).Logger(),
		Rand:   rand.New(rand.NewSource(seed)),
		Time:   ts,
		Status: reg,
		RunID:  runID,
		Seed:   seed,
		Camera: CameraState{
			Y:     tu.Camera.HalfHeight - 1,
			Speed: tu.Camera.BaseSpeed,
		},
	}
}

// Emit dispatches an event to its handlers before returning
func (ctx *GameContext) Emit(t events.EventType, payload any) {
	ctx.Router.Dispatch(ctx.World, events.GameEvent{
		Type:      t,
		Payload:   payload,
		Frame:     ctx.frame,
		Timestamp: ctx.Time.Now(),
	})
}

// Register adds a handler to the router
func (ctx *GameContext) Register(h events.Handler[*World]) {
	ctx.Router.Register(h)
}

// Step advances run time by dt and runs every system once
// A finished run ignores further steps
func (ctx *GameContext) Step(dt time.Duration) {
	if ctx.over {
		return
	}
	ctx.frame++
	ctx.elapsed += dt
	ctx.World.Update(dt)
}

// Frame returns the number of steps taken
func (ctx *GameContext) Frame() int64 { return ctx.frame }

// Elapsed returns run time, the clock timed effects expire against
func (ctx *GameContext) Elapsed() time.Duration { return ctx.elapsed }

// Over reports whether the run has ended
func (ctx *GameContext) Over() bool { return ctx.over }

// EndRun marks the run finished; returns false if it already was
func (ctx *GameContext) EndRun() bool {
	if ctx.over {
		return false
	}
	ctx.over = true
	ctx.Status.Bools.Get(status.KeyGameOver).Store(true)
	return true
}
