package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/tower-jumper/audio"
	"github.com/lixenwraith/tower-jumper/constants"
	"github.com/lixenwraith/tower-jumper/core"
	"github.com/lixenwraith/tower-jumper/engine"
	"github.com/lixenwraith/tower-jumper/input"
	"github.com/lixenwraith/tower-jumper/journal"
	"github.com/lixenwraith/tower-jumper/observer"
	"github.com/lixenwraith/tower-jumper/status"
	"github.com/lixenwraith/tower-jumper/systems"
	"github.com/lixenwraith/tower-jumper/tuning"
)

var (
	tuningFlag   = flag.String("tuning", "", "YAML tuning file (defaults when empty)")
	envFlag      = flag.String("env", ".env", "environment file loaded before tuning overrides")
	debugFlag    = flag.Bool("debug", false, "write debug log to logs/tower-jumper.log")
	journalFlag  = flag.String("journal", "", "record the run to this journal file")
	observerFlag = flag.String("observer", "", "serve the observer feed on this address")
)

// errQuit ends the loop on a player request
var errQuit = errors.New("quit")

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	result, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tower-jumper: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Final score %d, highest floor %d\n", result.CurrentScore, result.HighestFloor)
}

func loadTuning() (*tuning.Tuning, error) {
	if err := tuning.LoadEnvFile(*envFlag); err != nil {
		return nil, fmt.Errorf("env file: %w", err)
	}
	tu, err := tuning.Load(*tuningFlag)
	if err != nil {
		return nil, err
	}
	if *journalFlag != "" {
		tu.Journal.Path = *journalFlag
	}
	if *observerFlag != "" {
		tu.Observer.Enabled = true
		tu.Observer.Addr = *observerFlag
	}
	if err := tu.ApplyEnv(); err != nil {
		return nil, err
	}
	return tu, nil
}

func run() (systems.ScoreSnapshot, error) {
	var none systems.ScoreSnapshot

	tu, err := loadTuning()
	if err != nil {
		return none, err
	}

	logger, logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	in, err := input.New(tu.Input.Source, tuning.Seconds(tu.Input.HoldWindowSeconds))
	if err != nil {
		return none, err
	}

	reg := status.NewRegistry()
	ctx := engine.NewGameContext(engine.Options{
		Tuning: tu,
		Log:    &logger,
		Status: reg,
		RunID:  uuid.New(),
	})

	if tu.Journal.Path != "" {
		w, err := journal.Create(tu.Journal.Path)
		if err != nil {
			return none, fmt.Errorf("journal: %w", err)
		}
		defer func() {
			if err := w.Close(); err != nil {
				ctx.Log.Error().Err(err).Msg("journal close failed")
			}
		}()
		rec, err := journal.NewRecorder(ctx, w)
		if err != nil {
			return none, fmt.Errorf("journal: %w", err)
		}
		ctx.Register(rec)
		ctx.World.AddSystem(rec)
	}

	hub := observer.NewHub(constants.ObserverClientBuffer)
	if tu.Observer.Enabled {
		ctx.Register(observer.NewTap(hub, ctx.Log))
	}

	sound := audio.NewSoundManager(audio.LoadAudioConfig())
	if err := sound.Initialize(); err != nil {
		ctx.Log.Warn().Err(err).Msg("audio unavailable, continuing silent")
	}
	defer sound.Cleanup()

	game, err := systems.NewRun(ctx, in, sound)
	if err != nil {
		return none, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return none, fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return none, fmt.Errorf("screen: %w", err)
	}
	core.SetCrashReset(screen.Fini)
	defer screen.Fini()
	if tu.Input.Source == "touch" {
		screen.EnableMouse()
	}
	screen.HideCursor()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()
	loopCtx, stop := context.WithCancel(sigCtx)
	defer stop()

	g, gctx := errgroup.WithContext(loopCtx)
	if tu.Observer.Enabled {
		srv := observer.NewServer(reg, hub, ctx.Log)
		g.Go(func() error {
			return srv.ListenAndServe(gctx, tu.Observer.Addr)
		})
	}
	g.Go(func() error {
		defer stop()
		return loop(gctx, screen, game, in)
	})

	err = g.Wait()
	snap := game.Score.Snapshot()
	ctx.Log.Info().
		Int("score", game.Score.GameOverScore()).
		Int("highest_floor", snap.HighestFloor).
		Int64("frames", ctx.Frame()).
		Bool("over", ctx.Over()).
		Msg("run finished")

	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		err = nil
	}
	return snap, err
}

// loop polls terminal events on its own goroutine and steps the run at a fixed interval
func loop(ctx context.Context, screen tcell.Screen, game *systems.Run, in input.PlayerInput) (err error) {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	evCh := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case evCh <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	ticker := time.NewTicker(constants.FrameInterval)
	defer ticker.Stop()

	draw(screen, game)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-evCh:
			if quitRequested(ev) {
				return errQuit
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
			in.HandleEvent(ev)

		case <-ticker.C:
			game.Ctx.Step(constants.FrameInterval)
			draw(screen, game)
		}
	}
}

func quitRequested(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return key.Rune() == 'q' || key.Rune() == 'Q'
	}
	return false
}
