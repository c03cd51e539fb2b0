package systems

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/tower-jumper/constants"
	"github.com/lixenwraith/tower-jumper/engine"
	"github.com/lixenwraith/tower-jumper/status"
)

// MetricsSystem publishes loop counters once per step, after gameplay systems ran
type MetricsSystem struct {
	ctx          *engine.GameContext
	framesMetric *atomic.Int64
	aliveMetric  *atomic.Int64
}

func NewMetricsSystem(ctx *engine.GameContext) *MetricsSystem {
	return &MetricsSystem{
		ctx:          ctx,
		framesMetric: ctx.Status.Ints.Get(status.KeyFrames),
		aliveMetric:  ctx.Status.Ints.Get(status.KeyPickupsAlive),
	}
}

func (s *MetricsSystem) Priority() int {
	return constants.PriorityMetrics
}

func (s *MetricsSystem) Update(world *engine.World, dt time.Duration) {
	s.framesMetric.Store(s.ctx.Frame())
	s.aliveMetric.Store(int64(world.Pickups.Count()))
}
