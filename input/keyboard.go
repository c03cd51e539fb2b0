package input

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// KeyboardInput maps arrows, a/d/h/l and space/w/k to play intent
type KeyboardInput struct {
	window time.Duration

	lastLeft  time.Time
	lastRight time.Time
	lastJump  time.Time

	pendingJump bool

	moveX       float64
	jumpPressed bool
	jumpHeld    bool
}

// NewKeyboardInput creates a keyboard adapter with the given hold window
func NewKeyboardInput(holdWindow time.Duration) *KeyboardInput {
	return &KeyboardInput{window: holdWindow}
}

type keyAction uint8

const (
	keyNone keyAction = iota
	keyLeft
	keyRight
	keyJump
)

func classifyKey(ev *tcell.EventKey) keyAction {
	switch ev.Key() {
	case tcell.KeyLeft:
		return keyLeft
	case tcell.KeyRight:
		return keyRight
	case tcell.KeyUp:
		return keyJump
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A', 'h':
			return keyLeft
		case 'd', 'D', 'l':
			return keyRight
		case ' ', 'w', 'W', 'k':
			return keyJump
		}
	}
	return keyNone
}

func (k *KeyboardInput) HandleEvent(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	now := key.When()

	switch classifyKey(key) {
	case keyLeft:
		k.lastLeft = now
		k.lastRight = time.Time{}
	case keyRight:
		k.lastRight = now
		k.lastLeft = time.Time{}
	case keyJump:
		// Repeats inside the window extend the hold instead of pressing again
		if !k.recent(k.lastJump, now) {
			k.pendingJump = true
		}
		k.lastJump = now
	default:
		return false
	}
	return true
}

func (k *KeyboardInput) recent(t, now time.Time) bool {
	return !t.IsZero() && now.Sub(t) <= k.window
}

func (k *KeyboardInput) UpdateInput(now time.Time) {
	k.moveX = 0
	if k.recent(k.lastLeft, now) {
		k.moveX = -1
	} else if k.recent(k.lastRight, now) {
		k.moveX = 1
	}

	k.jumpPressed = k.pendingJump
	k.pendingJump = false
	k.jumpHeld = k.jumpPressed || k.recent(k.lastJump, now)
}

func (k *KeyboardInput) MoveX() float64    { return k.moveX }
func (k *KeyboardInput) JumpPressed() bool { return k.jumpPressed }
func (k *KeyboardInput) JumpHeld() bool    { return k.jumpHeld }
