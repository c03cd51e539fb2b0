package journal

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/tower-jumper/constants"
	"github.com/lixenwraith/tower-jumper/engine"
	"github.com/lixenwraith/tower-jumper/events"
	"github.com/lixenwraith/tower-jumper/status"
)

// Recorder writes routed events and one step record per frame into a journal
// Register it before the run is wired so seeding events are captured
type Recorder struct {
	ctx   *engine.GameContext
	w     *Writer
	types []events.EventType

	scoreMetric *atomic.Int64
	err         error
}

// NewRecorder writes the header and returns a recorder for ctx
// Player movement is not recorded; it is the bulk of traffic and replay does not need it
func NewRecorder(ctx *engine.GameContext, w *Writer) (*Recorder, error) {
	digest, err := TuningDigest(ctx.Tuning)
	if err != nil {
		return nil, err
	}
	hdr := &Header{
		Version: FormatVersion,
		RunID:   ctx.RunID.String(),
		Seed:    ctx.Seed,
		Digest:  digest,
		Tuning:  ctx.Tuning,
	}
	if err := w.Write(Record{Kind: KindHeader, Frame: ctx.Frame(), Header: hdr}); err != nil {
		return nil, err
	}

	var types []events.EventType
	for _, et := range events.AllTypes() {
		if et != events.EventPlayerMoved {
			types = append(types, et)
		}
	}

	return &Recorder{
		ctx:         ctx,
		w:           w,
		types:       types,
		scoreMetric: ctx.Status.Ints.Get(status.KeyScore),
	}, nil
}

func (r *Recorder) Priority() int {
	return constants.PriorityJournal
}

func (r *Recorder) EventTypes() []events.EventType {
	return r.types
}

func (r *Recorder) HandleEvent(world *engine.World, ev events.GameEvent) {
	if r.err != nil {
		return
	}
	rec, err := NewEventRecord(ev)
	if err != nil {
		r.fail(err)
		return
	}
	r.fail(r.w.Write(rec))
	if ev.Type == events.EventGameOver {
		r.fail(r.w.Flush())
	}
}

// Update writes the step record after every gameplay system ran
func (r *Recorder) Update(world *engine.World, dt time.Duration) {
	if r.err != nil {
		return
	}
	r.fail(r.w.Write(Record{
		Kind:  KindStep,
		Frame: r.ctx.Frame(),
		Delta: dt,
		Score: r.scoreMetric.Load(),
	}))
}

// Err returns the first write error; recording stops after it
func (r *Recorder) Err() error { return r.err }

func (r *Recorder) fail(err error) {
	if err == nil || r.err != nil {
		return
	}
	r.err = err
	r.ctx.Log.Error().Err(err).Msg("journal write failed, recording stopped")
}
