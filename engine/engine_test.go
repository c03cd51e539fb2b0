package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/tower-jumper/components"
	"github.com/lixenwraith/tower-jumper/core"
	"github.com/lixenwraith/tower-jumper/events"
	"github.com/lixenwraith/tower-jumper/status"
	"github.com/lixenwraith/tower-jumper/tuning"
)

type orderSystem struct {
	name     string
	priority int
	log      *[]string
}

func (s *orderSystem) Priority() int { return s.priority }

func (s *orderSystem) Update(world *World, dt time.Duration) {
	*s.log = append(*s.log, s.name)
}

type captureHandler struct {
	types []events.EventType
	got   []events.GameEvent
}

func (h *captureHandler) EventTypes() []events.EventType { return h.types }

func (h *captureHandler) HandleEvent(world *World, ev events.GameEvent) {
	h.got = append(h.got, ev)
}

// TestStoreInsertionOrder verifies iteration order survives removal
func TestStoreInsertionOrder(t *testing.T) {
	s := NewStore[int]()
	for i := core.Entity(1); i <= 5; i++ {
		s.Set(i, int(i)*10)
	}
	s.Remove(2)
	s.Remove(99)
	s.Set(3, 300)

	all := s.All()
	want := []core.Entity{1, 3, 4, 5}
	if len(all) != len(want) {
		t.Fatalf("Expected %v, got %v", want, all)
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("Index %d: expected %d, got %d", i, want[i], all[i])
		}
	}
	if v, ok := s.Get(3); !ok || v != 300 {
		t.Errorf("Expected updated value 300, got %d", v)
	}
	if s.Has(2) {
		t.Error("Removed entity still present")
	}
	if s.Count() != 4 {
		t.Errorf("Expected count 4, got %d", s.Count())
	}
}

// TestStoreEachAllowsMutation verifies Each iterates a snapshot
func TestStoreEachAllowsMutation(t *testing.T) {
	s := NewStore[string]()
	s.Set(1, "a")
	s.Set(2, "b")
	s.Set(3, "c")

	visited := 0
	s.Each(func(e core.Entity, v string) {
		visited++
		s.Remove(e)
	})

	if visited != 3 {
		t.Errorf("Expected 3 visits, got %d", visited)
	}
	if s.Count() != 0 {
		t.Errorf("Expected empty store, got %d", s.Count())
	}

	s.Set(7, "x")
	s.Clear()
	if s.Count() != 0 || s.Has(7) {
		t.Error("Clear left entries behind")
	}
}

// TestWorldSystemOrder verifies systems run by priority with stable ties
func TestWorldSystemOrder(t *testing.T) {
	w := NewWorld()
	var log []string
	w.AddSystem(&orderSystem{name: "late", priority: 50, log: &log})
	w.AddSystem(&orderSystem{name: "early", priority: 10, log: &log})
	w.AddSystem(&orderSystem{name: "tie-a", priority: 30, log: &log})
	w.AddSystem(&orderSystem{name: "tie-b", priority: 30, log: &log})

	w.Update(time.Millisecond)

	want := []string{"early", "tie-a", "tie-b", "late"}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], log[i])
		}
	}
}

// TestWorldEntities verifies ids are unique and destroy clears every store
func TestWorldEntities(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	if a == 0 || a == b {
		t.Fatalf("Expected distinct non-zero ids, got %d and %d", a, b)
	}

	w.Platforms.Set(a, components.PlatformComponent{Floor: 1})
	w.Pickups.Set(b, components.PickupComponent{Type: components.PickupJetpack})
	w.Pickups.Set(w.CreateEntity(), components.PickupComponent{Type: components.PickupSpeedBoost})

	if got := w.CountPickups(components.PickupJetpack); got != 1 {
		t.Errorf("Expected 1 jetpack, got %d", got)
	}

	w.DestroyEntity(a)
	w.DestroyEntity(b)
	if w.Platforms.Has(a) || w.Pickups.Has(b) {
		t.Error("DestroyEntity left components behind")
	}
	if got := w.CountPickups(components.PickupJetpack); got != 0 {
		t.Errorf("Expected 0 jetpacks, got %d", got)
	}
}

// TestEmitStampsFrame verifies events carry the current frame and mock time
func TestEmitStampsFrame(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)
	ctx := NewGameContext(Options{Time: mock})

	h := &captureHandler{types: []events.EventType{events.EventPlayerLanded}}
	ctx.Register(h)

	ctx.Step(10 * time.Millisecond)
	mock.Advance(time.Second)
	ctx.Emit(events.EventPlayerLanded, &events.PlayerLandedPayload{Floor: 4})

	if len(h.got) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(h.got))
	}
	ev := h.got[0]
	if ev.Frame != 1 {
		t.Errorf("Expected frame 1, got %d", ev.Frame)
	}
	if !ev.Timestamp.Equal(start.Add(time.Second)) {
		t.Errorf("Unexpected timestamp %v", ev.Timestamp)
	}
	if p, ok := ev.Payload.(*events.PlayerLandedPayload); !ok || p.Floor != 4 {
		t.Errorf("Unexpected payload %+v", ev.Payload)
	}
}

// TestStepAfterEndRun verifies a finished run ignores steps
func TestStepAfterEndRun(t *testing.T) {
	ctx := NewGameContext(Options{})
	var log []string
	ctx.World.AddSystem(&orderSystem{name: "s", priority: 1, log: &log})

	ctx.Step(time.Second)
	if !ctx.EndRun() {
		t.Fatal("First EndRun should succeed")
	}
	if ctx.EndRun() {
		t.Error("Second EndRun should report already over")
	}
	ctx.Step(time.Second)

	if len(log) != 1 {
		t.Errorf("Expected 1 update, got %d", len(log))
	}
	if ctx.Elapsed() != time.Second || ctx.Frame() != 1 {
		t.Errorf("Clock advanced after game over: %v frame %d", ctx.Elapsed(), ctx.Frame())
	}
	if !ctx.Status.Bools.Get(status.KeyGameOver).Load() {
		t.Error("Game over metric not set")
	}
}

// TestSeedAndRunID verifies explicit seeds are kept and run ids are published
func TestSeedAndRunID(t *testing.T) {
	tu := tuning.Defaults()
	tu.Seed = 1234
	id := uuid.New()
	ctx := NewGameContext(Options{Tuning: tu, RunID: id})

	if ctx.Seed != 1234 {
		t.Errorf("Expected seed 1234, got %d", ctx.Seed)
	}
	if ctx.RunID != id {
		t.Error("Run id not kept")
	}
	if got := ctx.Status.Strings.Get(status.KeyRunID).Load(); got != id.String() {
		t.Errorf("Run id metric %q, want %q", got, id.String())
	}

	a := NewGameContext(Options{Tuning: tu})
	b := NewGameContext(Options{Tuning: tu})
	if a.Rand.Int63() != b.Rand.Int63() {
		t.Error("Equal seeds should produce equal random streams")
	}

	auto := NewGameContext(Options{})
	if auto.Seed == 0 {
		t.Error("Zero tuning seed should be replaced")
	}
}

// TestPlayerBounds verifies the player box stands on its feet height
func TestPlayerBounds(t *testing.T) {
	p := PlayerState{X: 1, Y: 2}
	b := p.Bounds()
	if b.MinY != 2 || b.MaxY <= 2 {
		t.Errorf("Unexpected player bounds %+v", b)
	}
	cx, _ := b.Center()
	if cx != 1 {
		t.Errorf("Expected centre x 1, got %v", cx)
	}
	c := CameraState{Y: 10}
	if c.Bottom(6) != 4 {
		t.Errorf("Expected bottom 4, got %v", c.Bottom(6))
	}
}
