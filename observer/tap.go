package observer

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/tower-jumper/engine"
	"github.com/lixenwraith/tower-jumper/events"
)

// Message is the websocket wire form of a routed event
type Message struct {
	Type    string `json:"type"`
	Frame   int64  `json:"frame"`
	Payload any    `json:"payload,omitempty"`
}

// Tap is a router handler that encodes events on the game loop and hands them to the hub
type Tap struct {
	hub   *Hub
	log   zerolog.Logger
	types []events.EventType
}

// NewTap subscribes to every event except player movement
func NewTap(hub *Hub, log zerolog.Logger) *Tap {
	var types []events.EventType
	for _, et := range events.AllTypes() {
		if et != events.EventPlayerMoved {
			types = append(types, et)
		}
	}
	return &Tap{hub: hub, log: log, types: types}
}

func (t *Tap) EventTypes() []events.EventType {
	return t.types
}

func (t *Tap) HandleEvent(world *engine.World, ev events.GameEvent) {
	if t.hub.Clients() == 0 {
		return
	}
	raw, err := json.Marshal(Message{
		Type:    events.GetEventName(ev.Type),
		Frame:   ev.Frame,
		Payload: ev.Payload,
	})
	if err != nil {
		t.log.Warn().Err(err).Str("event", ev.Type.String()).Msg("observer encode failed")
		return
	}
	t.hub.Broadcast(raw)
}
