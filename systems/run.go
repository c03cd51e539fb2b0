package systems

import (
	"fmt"

	"github.com/lixenwraith/tower-jumper/engine"
	"github.com/lixenwraith/tower-jumper/input"
)

// Run is a fully wired game: every system registered with the world and router, platforms seeded
type Run struct {
	Ctx      *engine.GameContext
	Score    *ScoreSystem
	Recycler *RecyclerSystem
	Spawners []*PowerUpSpawner
	Effects  *EffectSystem
	Climb    *ClimbSystem
	Pickups  *PickupSystem
	Camera   *CameraSystem
	Feedback *FeedbackSystem
	Metrics  *MetricsSystem
}

// NewRun wires a run on ctx; in and sink may be nil for headless play
// Score handles each landing before any spawner sees it
func NewRun(ctx *engine.GameContext, in input.PlayerInput, sink SoundSink) (*Run, error) {
	r := &Run{Ctx: ctx}

	r.Score = NewScoreSystem(ctx)
	r.Effects = NewEffectSystem(ctx)
	r.Climb = NewClimbSystem(ctx, in, r.Effects)
	r.Recycler = NewRecyclerSystem(ctx)
	r.Pickups = NewPickupSystem(ctx)
	r.Camera = NewCameraSystem(ctx, r.Score)
	r.Feedback = NewFeedbackSystem(ctx, sink)
	r.Metrics = NewMetricsSystem(ctx)

	ctx.Register(r.Score)
	for _, st := range ctx.Tuning.Spawners {
		cfg, err := NewSpawnerConfig(st, ctx.Tuning.Place)
		if err != nil {
			return nil, fmt.Errorf("spawner %q: %w", st.Type, err)
		}
		sp := NewPowerUpSpawner(ctx, cfg)
		r.Spawners = append(r.Spawners, sp)
		r.Recycler.AddPreplacer(sp)
		ctx.Register(sp)
	}
	ctx.Register(r.Pickups)
	ctx.Register(r.Effects)
	ctx.Register(r.Climb)
	ctx.Register(r.Feedback)

	ctx.World.AddSystem(r.Climb)
	ctx.World.AddSystem(r.Effects)
	ctx.World.AddSystem(r.Score)
	ctx.World.AddSystem(r.Recycler)
	ctx.World.AddSystem(r.Pickups)
	ctx.World.AddSystem(r.Camera)
	ctx.World.AddSystem(r.Metrics)

	r.Recycler.Seed()

	ctx.Log.Info().
		Int64("seed", ctx.Seed).
		Int("spawners", len(r.Spawners)).
		Msg("run wired")
	return r, nil
}
