package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tower-jumper/components"
	"github.com/lixenwraith/tower-jumper/core"
	"github.com/lixenwraith/tower-jumper/systems"
)

var (
	styleHUD      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleGameOver = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	stylePlatform = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBouncy   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleSticky   = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleWall     = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleBoost    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleJetpack  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	styleLabel    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// viewport maps world coordinates onto the playfield below the HUD row
// World y grows upward, screen rows grow downward
type viewport struct {
	width, height int     // Playfield size in cells
	halfWidth     float64 // Shaft half width in world units
	halfHeight    float64 // Camera half height in world units
	cameraY       float64
}

func (v viewport) col(x float64) int {
	span := 2 * v.halfWidth
	return int(math.Round((x + v.halfWidth) / span * float64(v.width-1)))
}

// row returns the screen row including the HUD offset
func (v viewport) row(y float64) int {
	top := v.cameraY + v.halfHeight
	return 1 + int(math.Round((top-y)/(2*v.halfHeight)*float64(v.height-1)))
}

func (v viewport) visible(col, row int) bool {
	return col >= 0 && col < v.width && row >= 1 && row <= v.height
}

// hudLine formats the status row
func hudLine(run *systems.Run) string {
	snap := run.Score.Snapshot()
	var b strings.Builder
	fmt.Fprintf(&b, "Score %d  Floor %d", snap.CurrentScore, snap.HighestFloor)
	if snap.ComboActive() {
		fmt.Fprintf(&b, "  Combo %dx%d %.1fs", snap.ComboJumpCount, snap.ComboFloorsTotal, snap.ComboTimerLeft.Seconds())
	}
	fmt.Fprintf(&b, "  Cam %.1f", run.Ctx.Camera.Speed)
	for _, kind := range []components.EffectKind{components.EffectSpeedBoost, components.EffectJetpack, components.EffectSticky} {
		if run.Effects.Active(kind) {
			b.WriteString("  [" + strings.ToUpper(kind.String()) + "]")
		}
	}
	return b.String()
}

// draw renders one frame of the run
func draw(screen tcell.Screen, run *systems.Run) {
	screen.Clear()
	w, h := screen.Size()
	if w < 10 || h < 4 {
		screen.Show()
		return
	}

	ctx := run.Ctx
	v := viewport{
		width:      w,
		height:     h - 1,
		halfWidth:  ctx.Tuning.Recycler.WallHalfWidth,
		halfHeight: ctx.Tuning.Camera.HalfHeight,
		cameraY:    ctx.Camera.Y,
	}

	ctx.World.Walls.Each(func(_ core.Entity, wall components.WallComponent) {
		col := 0
		if wall.Side == components.WallRight {
			col = v.width - 1
		}
		for row := v.row(wall.Bounds.MaxY); row <= v.row(wall.Bounds.MinY); row++ {
			if v.visible(col, row) {
				screen.SetContent(col, row, '|', nil, styleWall)
			}
		}
	})

	ctx.World.Platforms.Each(func(_ core.Entity, p components.PlatformComponent) {
		ch, style := '=', stylePlatform
		switch {
		case p.Bouncy:
			ch, style = '~', styleBouncy
		case p.Sticky:
			ch, style = '#', styleSticky
		}
		row := v.row(p.Top())
		last := v.col(p.Bounds.MaxX)
		for col := v.col(p.Bounds.MinX); col <= last; col++ {
			if v.visible(col, row) {
				screen.SetContent(col, row, ch, nil, style)
			}
		}
		if p.Floor%10 == 0 {
			drawText(screen, last+2, row, fmt.Sprintf("%d", p.Floor), styleLabel)
		}
	})

	ctx.World.Pickups.Each(func(_ core.Entity, p components.PickupComponent) {
		ch, style := 'S', styleBoost
		if p.Type == components.PickupJetpack {
			ch, style = 'J', styleJetpack
		}
		col, row := v.col(p.X), v.row(p.Y)
		if v.visible(col, row) {
			screen.SetContent(col, row, ch, nil, style)
		}
	})

	col, row := v.col(ctx.Player.X), v.row(ctx.Player.Y)-1
	if v.visible(col, row) {
		screen.SetContent(col, row, '@', nil, stylePlayer)
	}

	drawText(screen, 0, 0, hudLine(run), styleHUD)
	if ctx.Over() {
		msg := fmt.Sprintf(" GAME OVER  final score %d  [q] quit ", run.Score.GameOverScore())
		drawText(screen, (w-len(msg))/2, h/2, msg, styleGameOver)
	}
	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	w, _ := screen.Size()
	for _, r := range text {
		if x >= w {
			return
		}
		if x >= 0 {
			screen.SetContent(x, y, r, nil, style)
		}
		x++
	}
}
