// Package input turns terminal events into the player's move and jump intent.
// Terminals report key presses but not releases, so keyboard holds are inferred from repeat events
// arriving within a hold window. Mouse buttons do report releases and are tracked directly.
package input

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

// ErrUnknownSource rejects an input source name
var ErrUnknownSource = errors.New("unknown input source")

// PlayerInput is the intent the climb system reads once per step
type PlayerInput interface {
	// HandleEvent consumes a terminal event; false when the event is not input for play
	HandleEvent(ev tcell.Event) bool

	// UpdateInput resolves held state at now; called once per step before reads
	UpdateInput(now time.Time)

	// MoveX is -1 left, 1 right, 0 idle
	MoveX() float64

	// JumpPressed is true for the one step in which a jump press began
	JumpPressed() bool

	// JumpHeld is true while the jump control is down
	JumpHeld() bool
}

// New creates the input adapter named by source
func New(source string, holdWindow time.Duration) (PlayerInput, error) {
	switch source {
	case "keyboard", "":
		return NewKeyboardInput(holdWindow), nil
	case "touch":
		return NewTouchInput(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
}
