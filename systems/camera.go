package systems

import (
	"time"

	"github.com/lixenwraith/tower-jumper/constants"
	"github.com/lixenwraith/tower-jumper/engine"
	"github.com/lixenwraith/tower-jumper/events"
	"github.com/lixenwraith/tower-jumper/status"
	"github.com/lixenwraith/tower-jumper/tuning"
)

// FinalScore reports the score a run ends with
type FinalScore interface {
	GameOverScore() int
	Snapshot() ScoreSnapshot
}

// CameraSystem scrolls the view upward and ends the run when the player drops below it
// The camera chases a player far above centre, otherwise it climbs at a speed that steps up on an interval
type CameraSystem struct {
	ctx   *engine.GameContext
	tu    tuning.CameraTuning
	score FinalScore

	speedMetric  *status.AtomicFloat
	cameraMetric *status.AtomicFloat
	playerMetric *status.AtomicFloat
}

func NewCameraSystem(ctx *engine.GameContext, score FinalScore) *CameraSystem {
	return &CameraSystem{
		ctx:          ctx,
		tu:           ctx.Tuning.Camera,
		score:        score,
		speedMetric:  ctx.Status.Floats.Get(status.KeyCameraSpeed),
		cameraMetric: ctx.Status.Floats.Get(status.KeyCameraY),
		playerMetric: ctx.Status.Floats.Get(status.KeyPlayerY),
	}
}

func (s *CameraSystem) Priority() int {
	return constants.PriorityCamera
}

func (s *CameraSystem) Update(world *engine.World, dt time.Duration) {
	cam := &s.ctx.Camera
	secs := dt.Seconds()

	cam.Timer += secs
	if cam.Timer >= s.tu.IntervalSeconds {
		cam.Timer = 0
		if next := min(cam.Speed+s.tu.SpeedStep, s.tu.MaxSpeed); next > cam.Speed {
			cam.Speed = next
			s.ctx.Emit(events.EventCameraSpeedUp, &events.CameraSpeedUpPayload{Speed: next})
		}
	}

	py := s.ctx.Player.Y
	if py >= s.tu.StartThreshold {
		cam.Moving = true
		distance := py - cam.Y
		if distance > s.tu.CatchUp {
			cam.Y += distance * min(1, distance*secs)
		} else {
			cam.Y += cam.Speed * secs
		}
	}

	s.speedMetric.Set(cam.Speed)
	s.cameraMetric.Set(cam.Y)
	s.playerMetric.Set(py)

	if py < cam.Bottom(s.tu.HalfHeight) {
		s.gameOver()
	}
}

func (s *CameraSystem) gameOver() {
	if !s.ctx.EndRun() {
		return
	}
	snap := s.score.Snapshot()
	final := s.score.GameOverScore()
	s.ctx.Log.Info().
		Int("score", final).
		Int("highest_floor", snap.HighestFloor).
		Int("forfeited_combo_floors", snap.ComboFloorsTotal).
		Int64("frame", s.ctx.Frame()).
		Msg("game over")
	s.ctx.Emit(events.EventGameOver, &events.GameOverPayload{Score: final, HighestFloor: snap.HighestFloor})
}
