package events

import (
	"testing"
)

type recordingHandler struct {
	types []EventType
	seen  []GameEvent
	onEv  func(ctx *[]string, ev GameEvent)
}

func (h *recordingHandler) EventTypes() []EventType { return h.types }

func (h *recordingHandler) HandleEvent(ctx *[]string, ev GameEvent) {
	h.seen = append(h.seen, ev)
	if h.onEv != nil {
		h.onEv(ctx, ev)
	}
}

// TestRouterDispatchOrder verifies handlers run in registration order for matching types only
func TestRouterDispatchOrder(t *testing.T) {
	r := NewRouter[*[]string]()
	var log []string

	first := &recordingHandler{
		types: []EventType{EventPlayerLanded},
		onEv:  func(ctx *[]string, ev GameEvent) { *ctx = append(*ctx, "first") },
	}
	second := &recordingHandler{
		types: []EventType{EventPlayerLanded, EventGameOver},
		onEv:  func(ctx *[]string, ev GameEvent) { *ctx = append(*ctx, "second") },
	}
	r.Register(first)
	r.Register(second)

	r.Dispatch(&log, GameEvent{Type: EventPlayerLanded, Payload: &PlayerLandedPayload{Floor: 3}})
	r.Dispatch(&log, GameEvent{Type: EventGameOver})
	r.Dispatch(&log, GameEvent{Type: EventComboReset})

	if len(log) != 3 || log[0] != "first" || log[1] != "second" || log[2] != "second" {
		t.Errorf("Unexpected dispatch order: %v", log)
	}
	if len(first.seen) != 1 {
		t.Errorf("Expected first handler to see 1 event, saw %d", len(first.seen))
	}
	if r.HandlerCount(EventPlayerLanded) != 2 {
		t.Errorf("Expected 2 handlers for PlayerLanded, got %d", r.HandlerCount(EventPlayerLanded))
	}
	if r.HasHandlers(EventComboReset) {
		t.Error("No handler should be registered for ComboReset")
	}
	if _, ok := r.GetHandlers(EventGameOver); !ok {
		t.Error("Expected GameOver handlers to be present")
	}
}

// TestRouterNestedDispatch verifies events emitted from a handler are delivered before the outer call returns
func TestRouterNestedDispatch(t *testing.T) {
	r := NewRouter[*[]string]()
	var log []string

	r.Register(&recordingHandler{
		types: []EventType{EventPlayerLanded},
		onEv: func(ctx *[]string, ev GameEvent) {
			*ctx = append(*ctx, "landed")
			r.Dispatch(ctx, GameEvent{Type: EventMilestoneReached})
			*ctx = append(*ctx, "landed-done")
		},
	})
	r.Register(&recordingHandler{
		types: []EventType{EventMilestoneReached},
		onEv:  func(ctx *[]string, ev GameEvent) { *ctx = append(*ctx, "milestone") },
	})

	r.Dispatch(&log, GameEvent{Type: EventPlayerLanded})

	want := []string{"landed", "milestone", "landed-done"}
	if len(log) != len(want) {
		t.Fatalf("Expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("Step %d: expected %s, got %s", i, want[i], log[i])
		}
	}
}

// TestRegistryCoversAllTypes verifies every event type has a name and a payload
func TestRegistryCoversAllTypes(t *testing.T) {
	all := AllTypes()
	if len(all) != int(eventTypeCount) {
		t.Fatalf("Expected %d registered types, got %d", eventTypeCount, len(all))
	}
	for _, et := range all {
		name := GetEventName(et)
		if name == "" {
			t.Errorf("Event type %d has no name", et)
			continue
		}
		back, ok := GetEventType(name)
		if !ok || back != et {
			t.Errorf("Name %q does not map back to %d", name, et)
		}
		if NewPayloadStruct(et) == nil {
			t.Errorf("Event %s has no payload struct", name)
		}
	}
	if EventPlayerLanded.String() != "PlayerLanded" {
		t.Errorf("Unexpected String(): %s", EventPlayerLanded.String())
	}
	if EventType(999).String() != "Unknown" {
		t.Error("Unregistered type should stringify as Unknown")
	}
}

// TestNewPayloadStructType verifies the payload factory returns the registered struct pointer
func TestNewPayloadStructType(t *testing.T) {
	p := NewPayloadStruct(EventComboReset)
	if _, ok := p.(*ComboResetPayload); !ok {
		t.Errorf("Expected *ComboResetPayload, got %T", p)
	}
}
