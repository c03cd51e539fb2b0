package systems

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/tower-jumper/constants"
	"github.com/lixenwraith/tower-jumper/engine"
	"github.com/lixenwraith/tower-jumper/events"
	"github.com/lixenwraith/tower-jumper/status"
)

// ErrNegativeFloor rejects a landing below floor zero; state is left untouched
var ErrNegativeFloor = errors.New("negative floor index")

// ScoreSnapshot is a copy of the score state at one instant
type ScoreSnapshot struct {
	HighestFloor        int
	LastLandedFloor     int
	ComboJumpCount      int
	ComboFloorsTotal    int
	ComboTimerLeft      time.Duration
	ConfirmedComboScore int
	CurrentScore        int
	NextMilestone       int
}

// ComboActive reports an open combo
func (s ScoreSnapshot) ComboActive() bool { return s.ComboJumpCount > 0 }

// ScoreSystem is the combo engine and score aggregator
// Single writer: landings and ticks come from the game loop only
type ScoreSystem struct {
	ctx *engine.GameContext

	timeout       time.Duration
	minSkip       int
	minJumps      int
	floorPoints   int
	milestoneStep int

	highestFloor    int
	lastLandedFloor int
	comboJumps      int
	comboFloors     int
	comboTimer      time.Duration
	confirmed       int
	nextMilestone   int
	milestones      int

	scoreMetric      *atomic.Int64
	highestMetric    *atomic.Int64
	confirmedMetric  *atomic.Int64
	jumpsMetric      *atomic.Int64
	floorsMetric     *atomic.Int64
	milestonesMetric *atomic.Int64
}

// NewScoreSystem creates a score system with tuning from the context
func NewScoreSystem(ctx *engine.GameContext) *ScoreSystem {
	tu := ctx.Tuning
	s := &ScoreSystem{
		ctx:           ctx,
		timeout:       tu.Combo.Timeout(),
		minSkip:       tu.Combo.MinFloorSkip,
		minJumps:      tu.Combo.MinJumps,
		floorPoints:   tu.Score.FloorPoints,
		milestoneStep: tu.Score.MilestoneStep,

		scoreMetric:      ctx.Status.Ints.Get(status.KeyScore),
		highestMetric:    ctx.Status.Ints.Get(status.KeyHighestFloor),
		confirmedMetric:  ctx.Status.Ints.Get(status.KeyConfirmedCombo),
		jumpsMetric:      ctx.Status.Ints.Get(status.KeyComboJumps),
		floorsMetric:     ctx.Status.Ints.Get(status.KeyComboFloors),
		milestonesMetric: ctx.Status.Ints.Get(status.KeyMilestones),
	}
	if s.milestoneStep <= 0 {
		s.milestoneStep = constants.MilestoneStep
	}
	s.nextMilestone = s.milestoneStep
	s.publish()
	return s
}

func (s *ScoreSystem) Priority() int {
	return constants.PriorityScore
}

func (s *ScoreSystem) EventTypes() []events.EventType {
	return []events.EventType{events.EventPlayerLanded}
}

func (s *ScoreSystem) HandleEvent(world *engine.World, event events.GameEvent) {
	if payload, ok := event.Payload.(*events.PlayerLandedPayload); ok {
		if err := s.ReportLanding(payload.Floor); err != nil {
			s.ctx.Log.Warn().Err(err).Int("floor", payload.Floor).Msg("landing rejected")
		}
	}
}

// Update advances the combo timer
func (s *ScoreSystem) Update(world *engine.World, dt time.Duration) {
	s.Tick(dt)
}

// ReportLanding accounts one landing on floor
func (s *ScoreSystem) ReportLanding(floor int) error {
	if floor < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeFloor, floor)
	}

	before := s.CurrentScore()
	diff := floor - s.lastLandedFloor

	if diff >= s.minSkip {
		if s.comboJumps == 0 {
			s.ctx.Emit(events.EventComboStarted, &events.ComboStartedPayload{Floor: floor, Delta: diff})
		}
		s.comboJumps++
		s.comboFloors += diff
		s.comboTimer = s.timeout
		s.ctx.Emit(events.EventComboProgress, &events.ComboProgressPayload{
			Jumps:       s.comboJumps,
			TotalFloors: s.comboFloors,
		})
	} else if s.comboJumps > 0 {
		s.resolve(false)
	}

	s.lastLandedFloor = floor
	if floor > s.highestFloor {
		s.raiseFloor(floor)
	}

	s.publish()
	s.emitScoreIfChanged(before)
	return nil
}

// Tick counts the open combo down and resolves it on expiry
func (s *ScoreSystem) Tick(dt time.Duration) {
	if s.comboJumps == 0 {
		return
	}
	before := s.CurrentScore()
	s.comboTimer -= dt
	if s.comboTimer <= 0 {
		s.resolve(true)
		s.publish()
		s.emitScoreIfChanged(before)
	}
}

// raiseFloor sets a new highest floor and fires one milestone per crossed threshold
func (s *ScoreSystem) raiseFloor(floor int) {
	s.highestFloor = floor
	for s.highestFloor >= s.nextMilestone {
		s.milestones++
		s.ctx.Emit(events.EventMilestoneReached, &events.MilestonePayload{
			Threshold: s.nextMilestone,
			Floor:     floor,
		})
		s.nextMilestone += s.milestoneStep
	}
}

// resolve banks or discards the open combo, then clears it
func (s *ScoreSystem) resolve(timedOut bool) {
	payload := &events.ComboResetPayload{
		Jumps:       s.comboJumps,
		TotalFloors: s.comboFloors,
		TimedOut:    timedOut,
	}
	if s.comboJumps >= s.minJumps {
		payload.Confirmed = true
		payload.Banked = s.comboFloors * s.comboFloors
		s.confirmed += payload.Banked
	}

	s.comboJumps = 0
	s.comboFloors = 0
	s.comboTimer = 0

	s.ctx.Log.Debug().
		Int("jumps", payload.Jumps).
		Int("floors", payload.TotalFloors).
		Bool("confirmed", payload.Confirmed).
		Bool("timed_out", timedOut).
		Msg("combo resolved")
	s.ctx.Emit(events.EventComboReset, payload)
}

func (s *ScoreSystem) emitScoreIfChanged(before int) {
	if after := s.CurrentScore(); after != before {
		s.ctx.Emit(events.EventScoreChanged, &events.ScoreChangedPayload{
			Score:          after,
			HighestFloor:   s.highestFloor,
			ConfirmedCombo: s.confirmed,
		})
	}
}

func (s *ScoreSystem) publish() {
	s.scoreMetric.Store(int64(s.CurrentScore()))
	s.highestMetric.Store(int64(s.highestFloor))
	s.confirmedMetric.Store(int64(s.confirmed))
	s.jumpsMetric.Store(int64(s.comboJumps))
	s.floorsMetric.Store(int64(s.comboFloors))
	s.milestonesMetric.Store(int64(s.milestones))
}

// CurrentScore is highest floor points plus banked combo score
func (s *ScoreSystem) CurrentScore() int {
	return s.highestFloor*s.floorPoints + s.confirmed
}

// GameOverScore is the final score; an unresolved combo is not banked
func (s *ScoreSystem) GameOverScore() int {
	return s.CurrentScore()
}

// Snapshot copies the score state
func (s *ScoreSystem) Snapshot() ScoreSnapshot {
	return ScoreSnapshot{
		HighestFloor:        s.highestFloor,
		LastLandedFloor:     s.lastLandedFloor,
		ComboJumpCount:      s.comboJumps,
		ComboFloorsTotal:    s.comboFloors,
		ComboTimerLeft:      s.comboTimer,
		ConfirmedComboScore: s.confirmed,
		CurrentScore:        s.CurrentScore(),
		NextMilestone:       s.nextMilestone,
	}
}
