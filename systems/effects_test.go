package systems

import (
	"testing"
	"time"

	"github.com/lixenwraith/tower-jumper/components"
	"github.com/lixenwraith/tower-jumper/events"
)

// TestEffectLifecycle verifies start, query and expiry against run time
func TestEffectLifecycle(t *testing.T) {
	ctx := newTestContext()
	s := NewEffectSystem(ctx)
	log := listen(ctx, events.EventEffectStarted, events.EventEffectExpired)

	s.Start(components.EffectSpeedBoost, 6*time.Second, 1.5)
	if !s.Active(components.EffectSpeedBoost) || s.Multiplier(components.EffectSpeedBoost) != 1.5 {
		t.Fatal("Expected active 1.5x boost")
	}
	if s.Multiplier(components.EffectJetpack) != 1 {
		t.Error("Expected inactive effect multiplier 1")
	}

	ctx.Step(5 * time.Second)
	s.Update(ctx.World, 5*time.Second)
	if !s.Active(components.EffectSpeedBoost) {
		t.Fatal("Expected boost still active at 5s")
	}

	ctx.Step(time.Second)
	s.Update(ctx.World, time.Second)
	if s.Active(components.EffectSpeedBoost) {
		t.Error("Expected boost expired at 6s")
	}
	if log.count(events.EventEffectExpired) != 1 {
		t.Errorf("Expected one expiry, got %d", log.count(events.EventEffectExpired))
	}
}

// TestEffectRestartOverwrites verifies a restart replaces expiry and multiplier instead of stacking
func TestEffectRestartOverwrites(t *testing.T) {
	ctx := newTestContext()
	s := NewEffectSystem(ctx)
	log := listen(ctx, events.EventEffectStarted, events.EventEffectExpired)

	s.Start(components.EffectSpeedBoost, 6*time.Second, 1.5)
	ctx.Step(4 * time.Second)
	s.Start(components.EffectSpeedBoost, 5*time.Second, 1.6)

	e := s.Effect(components.EffectSpeedBoost)
	if e.ExpiresAt != 9*time.Second || e.Multiplier != 1.6 {
		t.Errorf("Expected expiry 9s at 1.6x, got %v at %v", e.ExpiresAt, e.Multiplier)
	}
	ev, _ := log.last(events.EventEffectStarted)
	if !ev.Payload.(*events.EffectStartedPayload).Restarted {
		t.Error("Expected restart flag")
	}

	ctx.Step(2 * time.Second)
	s.Update(ctx.World, 0)
	if !s.Active(components.EffectSpeedBoost) {
		t.Error("Expected the first timer to be cancelled by the restart")
	}
	if log.count(events.EventEffectExpired) != 0 {
		t.Error("Expected no expiry at 6s")
	}
}

// TestEffectRequestEvent verifies effects start from routed requests
func TestEffectRequestEvent(t *testing.T) {
	ctx := newTestContext()
	s := NewEffectSystem(ctx)
	ctx.Register(s)

	ctx.Emit(events.EventEffectRequest, &events.EffectRequestPayload{
		Kind:       components.EffectJetpack,
		Duration:   8 * time.Second,
		Multiplier: 1,
	})

	if !s.Active(components.EffectJetpack) {
		t.Error("Expected jetpack active")
	}
	if s.Effect(components.EffectJetpack).Remaining(ctx.Elapsed()) != 8*time.Second {
		t.Errorf("Expected 8s remaining, got %v", s.Effect(components.EffectJetpack).Remaining(ctx.Elapsed()))
	}
}
