package journal

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/lixenwraith/tower-jumper/engine"
	"github.com/lixenwraith/tower-jumper/events"
	"github.com/lixenwraith/tower-jumper/status"
	"github.com/lixenwraith/tower-jumper/systems"
	"github.com/lixenwraith/tower-jumper/tuning"
)

// Mismatch is a step whose recomputed score differs from the recorded one
type Mismatch struct {
	Frame    int64 `json:"frame"`
	Recorded int64 `json:"recorded"`
	Replayed int64 `json:"replayed"`
}

// Result summarizes a replay
type Result struct {
	RunID          string    `json:"run_id"`
	Seed           int64     `json:"seed"`
	DigestMatch    bool      `json:"digest_match"`
	Frames         int64     `json:"frames"`
	Events         int       `json:"events"`
	Landings       int       `json:"landings"`
	Rejected       int       `json:"rejected"`
	FinalScore     int       `json:"final_score"`
	HighestFloor   int       `json:"highest_floor"`
	ConfirmedCombo int       `json:"confirmed_combo"`
	GameOver       bool      `json:"game_over"`
	GameOverScore  int       `json:"game_over_score"`
	Mismatches     int       `json:"mismatches"`
	FirstMismatch  *Mismatch `json:"first_mismatch,omitempty"`
}

// OK reports a replay that reproduced every recorded score
func (r Result) OK() bool { return r.Mismatches == 0 }

// Replay feeds recorded landings and step deltas into a fresh score system
// A nil tu replays with the tuning stored in the header
// Each frame's landings precede its step record, matching the live system order
func Replay(r *Reader, tu *tuning.Tuning) (Result, error) {
	hdr := r.Header()
	res := Result{RunID: hdr.RunID, Seed: hdr.Seed}

	if tu == nil {
		if hdr.Tuning == nil {
			return res, fmt.Errorf("%w: no tuning recorded", ErrJournalHeader)
		}
		tu = hdr.Tuning
	}
	digest, err := TuningDigest(tu)
	if err != nil {
		return res, err
	}
	res.DigestMatch = digest == hdr.Digest

	ctx := engine.NewGameContext(engine.Options{
		Tuning: tu,
		Status: status.NewRegistry(),
		Time:   engine.NewMockTimeProvider(time.Unix(0, 0)),
	})
	score := systems.NewScoreSystem(ctx)

	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("frame %d: %w", res.Frames, err)
		}

		switch rec.Kind {
		case KindEvent:
			res.Events++
			ev, err := rec.DecodeEvent()
			if err != nil {
				return res, err
			}
			switch p := ev.Payload.(type) {
			case *events.PlayerLandedPayload:
				res.Landings++
				if score.ReportLanding(p.Floor) != nil {
					res.Rejected++
				}
			case *events.GameOverPayload:
				res.GameOver = true
				res.GameOverScore = p.Score
			}

		case KindStep:
			res.Frames++
			score.Tick(rec.Delta)
			got := int64(score.CurrentScore())
			if got != rec.Score {
				res.Mismatches++
				if res.FirstMismatch == nil {
					res.FirstMismatch = &Mismatch{Frame: rec.Frame, Recorded: rec.Score, Replayed: got}
				}
			}

		case KindHeader:
			return res, fmt.Errorf("%w: repeated at frame %d", ErrJournalHeader, rec.Frame)
		}
	}

	snap := score.Snapshot()
	res.FinalScore = snap.CurrentScore
	res.HighestFloor = snap.HighestFloor
	res.ConfirmedCombo = snap.ConfirmedComboScore
	return res, nil
}
