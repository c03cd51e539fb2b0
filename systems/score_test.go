package systems

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/lixenwraith/tower-jumper/events"
	"github.com/lixenwraith/tower-jumper/status"
)

func land(t *testing.T, s *ScoreSystem, floors ...int) {
	t.Helper()
	for _, f := range floors {
		if err := s.ReportLanding(f); err != nil {
			t.Fatalf("ReportLanding(%d): %v", f, err)
		}
	}
}

// TestSingleFloorStepsNoCombo verifies one-floor steps only raise the highest floor
func TestSingleFloorStepsNoCombo(t *testing.T) {
	ctx := newTestContext()
	s := NewScoreSystem(ctx)
	log := listen(ctx, events.EventComboStarted, events.EventScoreChanged)

	land(t, s, 1, 2)

	snap := s.Snapshot()
	if snap.ComboActive() || snap.ConfirmedComboScore != 0 {
		t.Errorf("Expected no combo, got %+v", snap)
	}
	if snap.HighestFloor != 2 || snap.LastLandedFloor != 2 {
		t.Errorf("Expected highest and last 2, got %d and %d", snap.HighestFloor, snap.LastLandedFloor)
	}
	if s.CurrentScore() != 20 {
		t.Errorf("Expected score 20, got %d", s.CurrentScore())
	}
	if log.count(events.EventComboStarted) != 0 {
		t.Error("Expected no ComboStarted")
	}
	if log.count(events.EventScoreChanged) != 2 {
		t.Errorf("Expected 2 ScoreChanged, got %d", log.count(events.EventScoreChanged))
	}
}

// TestComboBanksSquareOnBreak verifies a two-jump combo banks floors squared when a short landing ends it
func TestComboBanksSquareOnBreak(t *testing.T) {
	ctx := newTestContext()
	s := NewScoreSystem(ctx)
	log := listen(ctx, events.EventComboStarted, events.EventComboProgress, events.EventComboReset)

	land(t, s, 1, 4, 8)

	snap := s.Snapshot()
	if snap.ComboJumpCount != 2 || snap.ComboFloorsTotal != 7 {
		t.Fatalf("Expected jumps 2 floors 7, got %d %d", snap.ComboJumpCount, snap.ComboFloorsTotal)
	}
	if snap.ComboTimerLeft != 3*time.Second {
		t.Errorf("Expected timer reset to 3s, got %v", snap.ComboTimerLeft)
	}
	if log.count(events.EventComboStarted) != 1 || log.count(events.EventComboProgress) != 2 {
		t.Errorf("Expected 1 start and 2 progress, got %d and %d",
			log.count(events.EventComboStarted), log.count(events.EventComboProgress))
	}

	land(t, s, 9)

	snap = s.Snapshot()
	if snap.ConfirmedComboScore != 49 {
		t.Errorf("Expected confirmed 49, got %d", snap.ConfirmedComboScore)
	}
	if snap.ComboActive() || snap.ComboTimerLeft != 0 {
		t.Errorf("Expected combo cleared, got %+v", snap)
	}
	if s.CurrentScore() != 9*10+49 {
		t.Errorf("Expected score 139, got %d", s.CurrentScore())
	}

	ev, ok := log.last(events.EventComboReset)
	if !ok {
		t.Fatal("Expected ComboReset")
	}
	p := ev.Payload.(*events.ComboResetPayload)
	if !p.Confirmed || p.Banked != 49 || p.TimedOut {
		t.Errorf("Unexpected reset payload %+v", p)
	}
}

// TestSingleJumpComboDiscardedOnTimeout verifies a one-jump combo banks nothing when it times out
func TestSingleJumpComboDiscardedOnTimeout(t *testing.T) {
	ctx := newTestContext()
	s := NewScoreSystem(ctx)
	log := listen(ctx, events.EventComboReset)

	land(t, s, 1, 5)
	if s.Snapshot().ComboJumpCount != 1 {
		t.Fatalf("Expected one combo jump, got %d", s.Snapshot().ComboJumpCount)
	}

	s.Tick(2 * time.Second)
	if !s.Snapshot().ComboActive() {
		t.Fatal("Expected combo still open before the timeout")
	}
	s.Tick(time.Second)

	snap := s.Snapshot()
	if snap.ComboActive() || snap.ConfirmedComboScore != 0 {
		t.Errorf("Expected combo discarded, got %+v", snap)
	}
	if s.CurrentScore() != 50 {
		t.Errorf("Expected score 50, got %d", s.CurrentScore())
	}

	ev, _ := log.last(events.EventComboReset)
	p := ev.Payload.(*events.ComboResetPayload)
	if p.Confirmed || !p.TimedOut {
		t.Errorf("Expected unconfirmed timeout, got %+v", p)
	}
}

// TestComboTimerRefreshedByEachJump verifies the timeout restarts on every qualifying landing
func TestComboTimerRefreshedByEachJump(t *testing.T) {
	ctx := newTestContext()
	s := NewScoreSystem(ctx)

	land(t, s, 3)
	s.Tick(2 * time.Second)
	land(t, s, 6)
	s.Tick(2 * time.Second)

	if !s.Snapshot().ComboActive() {
		t.Fatal("Expected combo alive after refresh")
	}

	s.Tick(time.Second)
	if got := s.Snapshot().ConfirmedComboScore; got != 36 {
		t.Errorf("Expected 36 banked on timeout, got %d", got)
	}
}

// TestMilestonesFireOncePerThreshold verifies a large jump fires every crossed milestone in order
func TestMilestonesFireOncePerThreshold(t *testing.T) {
	ctx := newTestContext()
	s := NewScoreSystem(ctx)
	log := listen(ctx, events.EventMilestoneReached)

	land(t, s, 95)
	if log.count(events.EventMilestoneReached) != 0 {
		t.Fatal("Expected no milestone below 100")
	}

	land(t, s, 210)
	if log.count(events.EventMilestoneReached) != 2 {
		t.Fatalf("Expected 2 milestones, got %d", log.count(events.EventMilestoneReached))
	}
	for i, want := range []int{100, 200} {
		p := log.events[i].Payload.(*events.MilestonePayload)
		if p.Threshold != want {
			t.Errorf("Milestone %d: expected threshold %d, got %d", i, want, p.Threshold)
		}
	}
	if s.Snapshot().NextMilestone != 300 {
		t.Errorf("Expected next milestone 300, got %d", s.Snapshot().NextMilestone)
	}

	// Falling back and climbing again never refires
	land(t, s, 150, 210)
	if log.count(events.EventMilestoneReached) != 2 {
		t.Errorf("Expected no repeated milestones, got %d", log.count(events.EventMilestoneReached))
	}
}

// TestNegativeFloorRejected verifies invalid input leaves state unchanged
func TestNegativeFloorRejected(t *testing.T) {
	ctx := newTestContext()
	s := NewScoreSystem(ctx)
	land(t, s, 4)
	before := s.Snapshot()

	err := s.ReportLanding(-1)
	if !errors.Is(err, ErrNegativeFloor) {
		t.Fatalf("Expected ErrNegativeFloor, got %v", err)
	}
	if s.Snapshot() != before {
		t.Errorf("State changed: %+v -> %+v", before, s.Snapshot())
	}
}

// TestLandingResolution verifies non-qualifying landings close an open combo
func TestLandingResolution(t *testing.T) {
	tests := []struct {
		name      string
		landings  []int
		confirmed int
		highest   int
	}{
		{"same floor ends combo", []int{2, 4, 4}, 16, 4},
		{"downward landing ends combo", []int{3, 6, 2}, 36, 6},
		{"one jump combo broken", []int{3, 4}, 0, 4},
		{"three jumps", []int{2, 4, 6, 7}, 36, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newTestContext()
			s := NewScoreSystem(ctx)
			land(t, s, tt.landings...)

			snap := s.Snapshot()
			if snap.ConfirmedComboScore != tt.confirmed {
				t.Errorf("Expected confirmed %d, got %d", tt.confirmed, snap.ConfirmedComboScore)
			}
			if snap.HighestFloor != tt.highest {
				t.Errorf("Expected highest %d, got %d", tt.highest, snap.HighestFloor)
			}
			if snap.ComboActive() {
				t.Error("Expected no open combo")
			}
		})
	}
}

// TestTickWithoutCombo verifies ticking is a no-op when no combo is open
func TestTickWithoutCombo(t *testing.T) {
	ctx := newTestContext()
	s := NewScoreSystem(ctx)
	log := listen(ctx, events.EventComboReset)

	land(t, s, 1)
	s.Tick(10 * time.Second)

	if log.count(events.EventComboReset) != 0 {
		t.Error("Expected no reset without a combo")
	}
	if s.Snapshot().ComboTimerLeft != 0 {
		t.Errorf("Expected zero timer, got %v", s.Snapshot().ComboTimerLeft)
	}
}

// TestGameOverForfeitsPendingCombo verifies the final score ignores an unresolved combo
func TestGameOverForfeitsPendingCombo(t *testing.T) {
	ctx := newTestContext()
	s := NewScoreSystem(ctx)

	land(t, s, 3, 6, 9)
	if s.GameOverScore() != 90 {
		t.Errorf("Expected 90, got %d", s.GameOverScore())
	}
}

// TestScoreMetricsPublished verifies the status registry mirrors score state
func TestScoreMetricsPublished(t *testing.T) {
	ctx := newTestContext()
	s := NewScoreSystem(ctx)

	land(t, s, 2, 5)

	if got := ctx.Status.Ints.Get(status.KeyScore).Load(); got != 50 {
		t.Errorf("Expected score metric 50, got %d", got)
	}
	if got := ctx.Status.Ints.Get(status.KeyComboFloors).Load(); got != 5 {
		t.Errorf("Expected combo floors metric 5, got %d", got)
	}
}

// TestLandingEventRoutesToScore verifies the score system reacts to PlayerLanded events
func TestLandingEventRoutesToScore(t *testing.T) {
	ctx := newTestContext()
	s := NewScoreSystem(ctx)
	ctx.Register(s)

	ctx.Emit(events.EventPlayerLanded, &events.PlayerLandedPayload{Floor: 7})
	ctx.Emit(events.EventPlayerLanded, &events.PlayerLandedPayload{Floor: -3})

	if s.Snapshot().HighestFloor != 7 {
		t.Errorf("Expected highest 7, got %d", s.Snapshot().HighestFloor)
	}
}

// TestScoreInvariantsRandomSequences verifies score, milestone and combo invariants after every landing and tick
func TestScoreInvariantsRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(testSeed))

	for trial := 0; trial < 200; trial++ {
		ctx := newTestContext()
		s := NewScoreSystem(ctx)
		log := listen(ctx, events.EventMilestoneReached)
		points := ctx.Tuning.Score.FloorPoints
		step := ctx.Tuning.Score.MilestoneStep

		prev := s.Snapshot()
		for op := 0; op < 100; op++ {
			milestonesBefore := log.count(events.EventMilestoneReached)

			if rng.Intn(3) == 0 {
				s.Tick(time.Duration(rng.Int63n(int64(1500 * time.Millisecond))))
			} else {
				delta := rng.Intn(12) - 3
				if rng.Intn(20) == 0 {
					delta = 100 + rng.Intn(200)
				}
				if err := s.ReportLanding(max(prev.LastLandedFloor+delta, 0)); err != nil {
					t.Fatalf("Trial %d op %d: %v", trial, op, err)
				}
			}

			snap := s.Snapshot()
			if want := snap.HighestFloor*points + snap.ConfirmedComboScore; s.CurrentScore() != want || snap.CurrentScore != want {
				t.Fatalf("Trial %d op %d: score %d, expected %d from %+v", trial, op, s.CurrentScore(), want, snap)
			}
			if snap.HighestFloor < prev.HighestFloor || snap.ConfirmedComboScore < prev.ConfirmedComboScore {
				t.Fatalf("Trial %d op %d: score parts decreased from %+v to %+v", trial, op, prev, snap)
			}
			fired := log.count(events.EventMilestoneReached) - milestonesBefore
			if want := snap.HighestFloor/step - prev.HighestFloor/step; fired != want {
				t.Fatalf("Trial %d op %d: %d milestones from floor %d to %d, expected %d", trial, op, fired, prev.HighestFloor, snap.HighestFloor, want)
			}
			if (snap.ComboJumpCount == 0) != (snap.ComboFloorsTotal == 0) {
				t.Fatalf("Trial %d op %d: combo jumps %d with floors %d", trial, op, snap.ComboJumpCount, snap.ComboFloorsTotal)
			}
			if snap.ComboJumpCount == 0 && snap.ComboTimerLeft != 0 {
				t.Fatalf("Trial %d op %d: idle combo holds timer %v", trial, op, snap.ComboTimerLeft)
			}
			prev = snap
		}
	}
}
