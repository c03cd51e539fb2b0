package systems

import (
	"math"
	"time"

	"github.com/lixenwraith/tower-jumper/components"
	"github.com/lixenwraith/tower-jumper/constants"
	"github.com/lixenwraith/tower-jumper/core"
	"github.com/lixenwraith/tower-jumper/engine"
	"github.com/lixenwraith/tower-jumper/events"
	"github.com/lixenwraith/tower-jumper/input"
	"github.com/lixenwraith/tower-jumper/tuning"
)

// EffectQuery is the read side of the timed effects
type EffectQuery interface {
	Active(kind components.EffectKind) bool
	Multiplier(kind components.EffectKind) float64
}

// ClimbSystem moves the player: horizontal steps between the walls, charged hops between floors,
// and jetpack flight
type ClimbSystem struct {
	ctx     *engine.GameContext
	tu      tuning.ClimbTuning
	in      input.PlayerInput
	effects EffectQuery

	chargePerFloor time.Duration
	maxCharge      time.Duration

	charging    bool
	charge      time.Duration
	bouncyBonus int
	flying      bool
}

// NewClimbSystem creates a climb system; a nil input leaves the player driven by Hop and Move only
func NewClimbSystem(ctx *engine.GameContext, in input.PlayerInput, effects EffectQuery) *ClimbSystem {
	tu := ctx.Tuning.Climb
	return &ClimbSystem{
		ctx:            ctx,
		tu:             tu,
		in:             in,
		effects:        effects,
		chargePerFloor: tuning.Seconds(tu.ChargePerFloorSeconds),
		maxCharge:      tuning.Seconds(tu.MaxChargeSeconds),
	}
}

func (c *ClimbSystem) Priority() int {
	return constants.PriorityClimb
}

func (c *ClimbSystem) EventTypes() []events.EventType {
	return []events.EventType{events.EventEffectStarted, events.EventEffectExpired}
}

func (c *ClimbSystem) HandleEvent(world *engine.World, event events.GameEvent) {
	switch payload := event.Payload.(type) {
	case *events.EffectStartedPayload:
		if payload.Kind == components.EffectJetpack {
			c.flying = true
			c.charging = false
			c.charge = 0
			c.ctx.Player.Grounded = false
		}
	case *events.EffectExpiredPayload:
		if payload.Kind == components.EffectJetpack && c.flying {
			c.flying = false
			c.landBelow()
		}
	}
}

// Charging reports a hop being charged and its current charge
func (c *ClimbSystem) Charging() (bool, time.Duration) { return c.charging, c.charge }

// Flying reports jetpack flight
func (c *ClimbSystem) Flying() bool { return c.flying }

func (c *ClimbSystem) Update(world *engine.World, dt time.Duration) {
	if c.in == nil {
		if c.flying {
			c.fly(dt)
		}
		return
	}
	c.in.UpdateInput(c.ctx.Time.Now())

	c.Move(c.in.MoveX(), dt)

	if c.flying {
		c.fly(dt)
		return
	}
	c.chargeHop(dt)
}

func (c *ClimbSystem) stuck() bool {
	return c.effects != nil && c.effects.Active(components.EffectSticky)
}

func (c *ClimbSystem) speedMultiplier() float64 {
	if c.effects == nil {
		return 1
	}
	return c.effects.Multiplier(components.EffectSpeedBoost)
}

// chargeHop accumulates charge while jump is held and hops on release or full charge
func (c *ClimbSystem) chargeHop(dt time.Duration) {
	if c.stuck() {
		c.charging = false
		c.charge = 0
		return
	}
	if !c.charging {
		if !c.in.JumpPressed() {
			return
		}
		c.charging = true
		c.charge = 0
	}

	held := c.in.JumpHeld()
	if held {
		c.charge += dt
	}
	if !held || c.charge >= c.maxCharge {
		c.Hop(c.HopFloors(min(c.charge, c.maxCharge), c.in.MoveX() != 0))
		c.charging = false
		c.charge = 0
	}
}

// HopFloors sizes a hop from charge and momentum, including the pending bouncy bonus and speed boost
func (c *ClimbSystem) HopFloors(charge time.Duration, moving bool) int {
	floors := 1
	if c.chargePerFloor > 0 {
		floors += int(charge / c.chargePerFloor)
	}
	if moving {
		floors += c.tu.MomentumBonus
	}
	floors += c.bouncyBonus

	floors = int(math.Round(float64(floors) * c.speedMultiplier()))
	return max(min(floors, c.tu.MaxHopFloors), 1)
}

// Move steps the player horizontally, clamped between the walls
func (c *ClimbSystem) Move(dir float64, dt time.Duration) {
	if dir == 0 || c.stuck() {
		return
	}
	p := &c.ctx.Player
	fromX := p.X

	limit := c.ctx.Tuning.Recycler.WallHalfWidth - c.ctx.Tuning.Recycler.WallThickness/2 - constants.PlayerWidth/2
	x := p.X + dir*c.tu.MoveSpeed*c.speedMultiplier()*dt.Seconds()
	p.X = max(min(x, limit), -limit)

	if p.X != fromX {
		c.ctx.Emit(events.EventPlayerMoved, &events.PlayerMovedPayload{FromX: fromX, FromY: p.Y, ToX: p.X, ToY: p.Y})
	}
}

// Hop jumps the given number of floors above the current one
// The player lands on the target floor's platform, or the highest existing one below it
func (c *ClimbSystem) Hop(floors int) bool {
	if floors <= 0 || c.flying || c.stuck() {
		return false
	}
	c.ctx.Emit(events.EventPlayerJumped, &events.PlayerJumpedPayload{
		Floors:   floors,
		Strength: math.Sqrt(float64(floors)),
	})

	target := c.ctx.Player.Floor + floors
	e, plat, ok := c.platformAtOrBelow(func(p components.PlatformComponent) bool { return p.Floor <= target })
	if !ok {
		return false
	}
	c.land(e, plat)
	return true
}

// fly raises the player at jetpack speed
func (c *ClimbSystem) fly(dt time.Duration) {
	p := &c.ctx.Player
	fromY := p.Y
	p.Y += c.ctx.Tuning.Effects.JetpackRise * dt.Seconds()
	p.Grounded = false
	c.ctx.Emit(events.EventPlayerMoved, &events.PlayerMovedPayload{FromX: p.X, FromY: fromY, ToX: p.X, ToY: p.Y})
}

// landBelow drops the player onto the highest platform at or below its feet
func (c *ClimbSystem) landBelow() {
	feet := c.ctx.Player.Y
	if e, plat, ok := c.platformAtOrBelow(func(p components.PlatformComponent) bool { return p.Top() <= feet }); ok {
		c.land(e, plat)
	}
}

// platformAtOrBelow returns the highest-floor platform accepted by keep
func (c *ClimbSystem) platformAtOrBelow(keep func(components.PlatformComponent) bool) (core.Entity, components.PlatformComponent, bool) {
	var (
		best  core.Entity
		bestP components.PlatformComponent
		found bool
	)
	c.ctx.World.Platforms.Each(func(e core.Entity, p components.PlatformComponent) {
		if keep(p) && (!found || p.Floor > bestP.Floor) {
			best, bestP, found = e, p, true
		}
	})
	return best, bestP, found
}

func (c *ClimbSystem) land(e core.Entity, plat components.PlatformComponent) {
	p := &c.ctx.Player
	fromX, fromY := p.X, p.Y

	// Keep x when the platform is under the player, otherwise step onto its nearest edge
	lo := plat.Bounds.MinX + constants.PlayerWidth/2
	hi := plat.Bounds.MaxX - constants.PlayerWidth/2
	if lo <= hi {
		p.X = max(min(p.X, hi), lo)
	} else {
		p.X, _ = plat.Bounds.Center()
	}
	p.Y = plat.Top()
	p.Floor = plat.Floor
	p.Grounded = true

	c.bouncyBonus = 0
	if plat.Bouncy {
		c.bouncyBonus = c.ctx.Tuning.Effects.BouncyBonus
	}

	c.ctx.Emit(events.EventPlayerMoved, &events.PlayerMovedPayload{FromX: fromX, FromY: fromY, ToX: p.X, ToY: p.Y})
	c.ctx.Emit(events.EventPlayerLanded, &events.PlayerLandedPayload{Floor: plat.Floor})

	if plat.Sticky {
		c.ctx.Emit(events.EventEffectRequest, &events.EffectRequestPayload{
			Kind:       components.EffectSticky,
			Duration:   tuning.Seconds(c.ctx.Tuning.Effects.StickySeconds),
			Multiplier: 1,
		})
	}
}
