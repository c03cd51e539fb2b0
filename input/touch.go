package input

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// TouchInput splits the screen in thirds: outer thirds move, the centre third jumps
type TouchInput struct {
	width int

	region      touchRegion
	pendingJump bool

	moveX       float64
	jumpPressed bool
	jumpHeld    bool
}

type touchRegion uint8

const (
	regionNone touchRegion = iota
	regionLeft
	regionCentre
	regionRight
)

// NewTouchInput creates a touch adapter; width arrives with the first resize event
func NewTouchInput() *TouchInput {
	return &TouchInput{}
}

// SetWidth sets the screen width used to split regions
func (t *TouchInput) SetWidth(w int) { t.width = w }

func (t *TouchInput) regionAt(x int) touchRegion {
	if t.width <= 0 {
		return regionCentre
	}
	switch third := x * 3 / t.width; {
	case third <= 0:
		return regionLeft
	case third == 1:
		return regionCentre
	default:
		return regionRight
	}
}

func (t *TouchInput) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, _ := ev.Size()
		t.width = w
		return false
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			t.region = regionNone
			return true
		}
		x, _ := ev.Position()
		region := t.regionAt(x)
		if region == regionCentre && t.region != regionCentre {
			t.pendingJump = true
		}
		t.region = region
		return true
	}
	return false
}

func (t *TouchInput) UpdateInput(now time.Time) {
	switch t.region {
	case regionLeft:
		t.moveX = -1
	case regionRight:
		t.moveX = 1
	default:
		t.moveX = 0
	}
	t.jumpPressed = t.pendingJump
	t.pendingJump = false
	t.jumpHeld = t.jumpPressed || t.region == regionCentre
}

func (t *TouchInput) MoveX() float64    { return t.moveX }
func (t *TouchInput) JumpPressed() bool { return t.jumpPressed }
func (t *TouchInput) JumpHeld() bool    { return t.jumpHeld }
