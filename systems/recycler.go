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
	"github.com/lixenwraith/tower-jumper/tuning"
)

// Preplacer is notified each time a platform slot receives a floor index
type Preplacer interface {
	MaybePreplace(floor int, platform components.Bounds)
}

// RecyclerSystem keeps a fixed ring of platforms and wall pairs ahead of the player
// The lowest slot is always the one moved to the top; indices come from the ledger
type RecyclerSystem struct {
	ctx    *engine.GameContext
	tu     tuning.RecyclerTuning
	ledger *FloorLedger

	platforms []core.Entity // Oldest first
	walls     [][2]core.Entity

	highestPlatformY float64
	highestWallY     float64
	seeded           bool

	preplacers []Preplacer

	issuedMetric *atomic.Int64
}

// NewRecyclerSystem creates an unseeded recycler
func NewRecyclerSystem(ctx *engine.GameContext) *RecyclerSystem {
	tu := ctx.Tuning.Recycler
	return &RecyclerSystem{
		ctx:          ctx,
		tu:           tu,
		ledger:       NewFloorLedger(tu.FirstFloor),
		issuedMetric: ctx.Status.Ints.Get(status.KeyPlatformsIssued),
	}
}

func (r *RecyclerSystem) Priority() int {
	return constants.PriorityRecycler
}

// AddPreplacer subscribes p to floor assignments, in registration order
func (r *RecyclerSystem) AddPreplacer(p Preplacer) {
	r.preplacers = append(r.preplacers, p)
}

// Ledger returns the floor ledger
func (r *RecyclerSystem) Ledger() *FloorLedger { return r.ledger }

// Platforms returns the ring, oldest slot first
func (r *RecyclerSystem) Platforms() []core.Entity {
	out := make([]core.Entity, len(r.platforms))
	copy(out, r.platforms)
	return out
}

// HighestPlatformY returns the top of the highest assigned platform
func (r *RecyclerSystem) HighestPlatformY() float64 { return r.highestPlatformY }

// Seed creates the initial platform ring and wall pairs; later calls are no-ops
func (r *RecyclerSystem) Seed() {
	if r.seeded {
		return
	}
	r.seeded = true

	y := r.tu.PlatformStartY
	for i := 0; i < r.tu.PlatformCount; i++ {
		e := r.ctx.World.CreateEntity()
		r.platforms = append(r.platforms, e)
		r.assign(e, y)
		y += r.tu.PlatformSpacing
	}

	wy := 0.0
	for i := 0; i < r.tu.WallCount; i++ {
		pair := [2]core.Entity{r.ctx.World.CreateEntity(), r.ctx.World.CreateEntity()}
		r.walls = append(r.walls, pair)
		r.placeWalls(pair, wy)
		wy += r.wallGap()
	}

	r.ctx.Log.Info().
		Int("platforms", len(r.platforms)).
		Int("walls", len(r.walls)).
		Int("next_floor", r.ledger.Peek()).
		Msg("recycler seeded")
}

// Update recycles against the current player height
func (r *RecyclerSystem) Update(world *engine.World, dt time.Duration) {
	r.Tick(r.ctx.Player.Y)
}

// Tick moves the oldest slots to the top until enough lies above playerY
func (r *RecyclerSystem) Tick(playerY float64) {
	if len(r.platforms) > 0 {
		for r.highestPlatformY-playerY < r.tu.PlatformSpawnAhead {
			r.recyclePlatform()
		}
	}
	if len(r.walls) > 0 {
		for r.highestWallY-playerY < r.tu.WallSpawnAhead {
			r.recycleWalls()
		}
	}
}

func (r *RecyclerSystem) recyclePlatform() {
	e := r.platforms[0]
	copy(r.platforms, r.platforms[1:])
	r.platforms[len(r.platforms)-1] = e
	r.assign(e, r.highestPlatformY+r.tu.PlatformSpacing)
}

func (r *RecyclerSystem) recycleWalls() {
	pair := r.walls[0]
	copy(r.walls, r.walls[1:])
	r.walls[len(r.walls)-1] = pair
	r.placeWalls(pair, r.highestWallY+r.wallGap())
}

// wallGap draws the step to the next wall pair from the configured range
// A fixed range consumes no randomness
func (r *RecyclerSystem) wallGap() float64 {
	lo, hi := r.tu.WallGapMin, r.tu.WallGapMax
	if lo <= 0 {
		lo = r.tu.WallHeight
	}
	if hi <= lo {
		return lo
	}
	return lo + r.ctx.Rand.Float64()*(hi-lo)
}

// assign places slot e with its top at y and hands it the next floor index
func (r *RecyclerSystem) assign(e core.Entity, y float64) {
	rng := r.ctx.Rand
	x := r.tu.PlatformXMin + rng.Float64()*(r.tu.PlatformXMax-r.tu.PlatformXMin)

	// One roll per assignment keeps the traits exclusive
	roll := rng.Float64()
	bouncy := roll < r.tu.BouncyChance
	sticky := !bouncy && roll < r.tu.BouncyChance+r.tu.StickyChance

	p := components.PlatformComponent{
		Floor: r.ledger.Next(),
		Bounds: components.Bounds{
			MinX: x - r.tu.PlatformWidth/2,
			MinY: y - r.tu.PlatformThickness,
			MaxX: x + r.tu.PlatformWidth/2,
			MaxY: y,
		},
		Bouncy: bouncy,
		Sticky: sticky,
	}
	r.ctx.World.Platforms.Set(e, p)
	r.highestPlatformY = y
	r.issuedMetric.Store(int64(r.ledger.Issued()))

	r.ctx.Emit(events.EventFloorAssigned, &events.FloorAssignedPayload{
		Entity: e,
		Floor:  p.Floor,
		Bounds: p.Bounds,
		Bouncy: p.Bouncy,
		Sticky: p.Sticky,
	})

	for _, pp := range r.preplacers {
		pp.MaybePreplace(p.Floor, p.Bounds)
	}
}

// placeWalls centres a left/right pair vertically on y
func (r *RecyclerSystem) placeWalls(pair [2]core.Entity, y float64) {
	half := r.tu.WallHeight / 2
	thick := r.tu.WallThickness / 2
	r.ctx.World.Walls.Set(pair[0], components.WallComponent{
		Side:   components.WallLeft,
		Bounds: components.Bounds{MinX: -r.tu.WallHalfWidth - thick, MinY: y - half, MaxX: -r.tu.WallHalfWidth + thick, MaxY: y + half},
	})
	r.ctx.World.Walls.Set(pair[1], components.WallComponent{
		Side:   components.WallRight,
		Bounds: components.Bounds{MinX: r.tu.WallHalfWidth - thick, MinY: y - half, MaxX: r.tu.WallHalfWidth + thick, MaxY: y + half},
	})
	r.highestWallY = y
}
