// Package journal records a run as a zstd-compressed stream of msgpack records and replays the
// recorded landings through a fresh score system to verify the recorded scores.
package journal

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/tower-jumper/events"
	"github.com/lixenwraith/tower-jumper/tuning"
)

// FormatVersion is written into every header; readers reject other versions
const FormatVersion = 1

var (
	// ErrJournalHeader marks a stream that does not open with a valid header
	ErrJournalHeader = errors.New("journal header")
	// ErrUnknownEvent marks an event record whose name is not registered
	ErrUnknownEvent = errors.New("unknown journal event")
)

// Kind discriminates journal records
type Kind uint8

const (
	KindHeader Kind = iota + 1
	KindEvent
	KindStep
)

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindEvent:
		return "event"
	case KindStep:
		return "step"
	default:
		return "unknown"
	}
}

// Header opens every journal
type Header struct {
	Version int            `json:"version"`
	RunID   string         `json:"run_id"`
	Seed    int64          `json:"seed"`
	Digest  string         `json:"digest"`
	Tuning  *tuning.Tuning `json:"tuning"`
}

// Record is one journal entry
// Header is set on KindHeader; Event and Payload on KindEvent; Delta and Score on KindStep
type Record struct {
	Kind    Kind               `json:"kind"`
	Frame   int64              `json:"frame"`
	Header  *Header            `json:"header,omitempty"`
	Event   string             `json:"event,omitempty"`
	Payload msgpack.RawMessage `json:"payload,omitempty"`
	Delta   time.Duration      `json:"delta,omitempty"`
	Score   int64              `json:"score,omitempty"`
}

// TuningDigest fingerprints a tuning set so replays can detect a parameter mismatch
func TuningDigest(tu *tuning.Tuning) (string, error) {
	raw, err := yaml.Marshal(tu)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// NewEventRecord encodes an event payload under its registered name
func NewEventRecord(ev events.GameEvent) (Record, error) {
	name := events.GetEventName(ev.Type)
	if name == "" {
		return Record{}, fmt.Errorf("%w: type %d", ErrUnknownEvent, ev.Type)
	}
	rec := Record{Kind: KindEvent, Frame: ev.Frame, Event: name}
	if ev.Payload != nil {
		raw, err := marshalPayload(ev.Payload)
		if err != nil {
			return Record{}, fmt.Errorf("encode %s: %w", name, err)
		}
		rec.Payload = raw
	}
	return rec, nil
}

// DecodeEvent rebuilds the routed event of an event record
func (r Record) DecodeEvent() (events.GameEvent, error) {
	if r.Kind != KindEvent {
		return events.GameEvent{}, fmt.Errorf("record kind %s is not an event", r.Kind)
	}
	et, ok := events.GetEventType(r.Event)
	if !ok {
		return events.GameEvent{}, fmt.Errorf("%w: %q", ErrUnknownEvent, r.Event)
	}
	ev := events.GameEvent{Type: et, Frame: r.Frame}
	payload := events.NewPayloadStruct(et)
	if payload != nil && len(r.Payload) > 0 {
		if err := unmarshalPayload(r.Payload, payload); err != nil {
			return events.GameEvent{}, fmt.Errorf("decode %s: %w", r.Event, err)
		}
	}
	ev.Payload = payload
	return ev, nil
}

// Payloads reuse their json tags as msgpack keys
func marshalPayload(v any) (msgpack.RawMessage, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func unmarshalPayload(raw []byte, dst any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(raw))
	dec.SetCustomStructTag("json")
	return dec.Decode(dst)
}
