package systems

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tower-jumper/components"
	"github.com/lixenwraith/tower-jumper/core"
	"github.com/lixenwraith/tower-jumper/engine"
	"github.com/lixenwraith/tower-jumper/events"
	"github.com/lixenwraith/tower-jumper/tuning"
)

const testSeed = 42

func newTestContext() *engine.GameContext {
	tu := tuning.Defaults()
	tu.Seed = testSeed
	return engine.NewGameContext(engine.Options{Tuning: tu})
}

// eventLog records dispatched events of the listed types
type eventLog struct {
	types  []events.EventType
	events []events.GameEvent
}

func listen(ctx *engine.GameContext, types ...events.EventType) *eventLog {
	l := &eventLog{types: types}
	ctx.Register(l)
	return l
}

func (l *eventLog) EventTypes() []events.EventType { return l.types }

func (l *eventLog) HandleEvent(world *engine.World, ev events.GameEvent) {
	l.events = append(l.events, ev)
}

func (l *eventLog) count(t events.EventType) int {
	n := 0
	for _, ev := range l.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func (l *eventLog) last(t events.EventType) (events.GameEvent, bool) {
	for i := len(l.events) - 1; i >= 0; i-- {
		if l.events[i].Type == t {
			return l.events[i], true
		}
	}
	return events.GameEvent{}, false
}

// addPlatform places a platform with its top at y
func addPlatform(ctx *engine.GameContext, floor int, minX, maxX, y float64) core.Entity {
	e := ctx.World.CreateEntity()
	ctx.World.Platforms.Set(e, components.PlatformComponent{
		Floor:  floor,
		Bounds: components.Bounds{MinX: minX, MinY: y - 0.3, MaxX: maxX, MaxY: y},
	})
	return e
}

// addPickup places a pickup of type pt centred on (x, y)
func addPickup(ctx *engine.GameContext, pt components.PickupType, x, y float64) core.Entity {
	e := ctx.World.CreateEntity()
	ctx.World.Pickups.Set(e, components.PickupComponent{
		Type:    pt,
		Variant: pt.String(),
		X:       x,
		Y:       y,
		Bounds:  components.BoxAt(x, y, 0.5, 0.5),
	})
	return e
}

// scriptedInput is a PlayerInput whose intent is set directly by the test
type scriptedInput struct {
	move    float64
	pressed bool
	held    bool
}

func (s *scriptedInput) HandleEvent(ev tcell.Event) bool { return false }
func (s *scriptedInput) UpdateInput(now time.Time)       {}
func (s *scriptedInput) MoveX() float64                  { return s.move }
func (s *scriptedInput) JumpPressed() bool               { return s.pressed }
func (s *scriptedInput) JumpHeld() bool                  { return s.held }
