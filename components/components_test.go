package components

import (
	"testing"
	"time"
)

func TestBoundsOverlaps(t *testing.T) {
	base := Bounds{MinX: 0, MinY: 0, MaxX: 2, MaxY: 1}

	tests := []struct {
		name  string
		other Bounds
		want  bool
	}{
		{"Inside", Bounds{MinX: 0.5, MinY: 0.2, MaxX: 1, MaxY: 0.8}, true},
		{"Partial", Bounds{MinX: 1.5, MinY: 0.5, MaxX: 3, MaxY: 2}, true},
		{"TouchingEdge", Bounds{MinX: 2, MinY: 0, MaxX: 3, MaxY: 1}, false},
		{"Above", Bounds{MinX: 0, MinY: 1.1, MaxX: 2, MaxY: 2}, false},
		{"Left", Bounds{MinX: -3, MinY: 0, MaxX: -0.1, MaxY: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps(%+v) = %v, want %v", tt.other, got, tt.want)
			}
			if got := tt.other.Overlaps(base); got != tt.want {
				t.Errorf("Overlaps is not symmetric for %+v", tt.other)
			}
		})
	}
}

func TestBoxAt(t *testing.T) {
	b := BoxAt(1, 2, 0.5, 0.25)
	cx, cy := b.Center()
	if cx != 1 || cy != 2 {
		t.Errorf("Expected centre (1,2), got (%v,%v)", cx, cy)
	}
	if b.Width() != 0.5 || b.Height() != 0.25 {
		t.Errorf("Expected size 0.5x0.25, got %vx%v", b.Width(), b.Height())
	}
	if b.Empty() {
		t.Error("Box should not be empty")
	}
	if !(Bounds{}).Empty() {
		t.Error("Zero box should be empty")
	}
}

func TestBoundsUnionTranslate(t *testing.T) {
	a := Bounds{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}
	b := a.Translate(2, 3)
	if b.MinX != 2 || b.MaxY != 4 {
		t.Errorf("Unexpected translate result %+v", b)
	}
	u := a.Union(b)
	if u.MinX != 0 || u.MinY != 0 || u.MaxX != 3 || u.MaxY != 4 {
		t.Errorf("Unexpected union %+v", u)
	}
}

func TestTimedEffectRemaining(t *testing.T) {
	e := TimedEffect{Active: true, ExpiresAt: 5 * time.Second}
	if got := e.Remaining(2 * time.Second); got != 3*time.Second {
		t.Errorf("Expected 3s remaining, got %v", got)
	}
	if got := e.Remaining(6 * time.Second); got != 0 {
		t.Errorf("Expected 0 remaining after expiry, got %v", got)
	}
	e.Active = false
	if got := e.Remaining(0); got != 0 {
		t.Errorf("Inactive effect should report 0, got %v", got)
	}
}

func TestKindNames(t *testing.T) {
	for i := 0; i < EffectKindCount; i++ {
		k := EffectKind(i)
		parsed, ok := ParseEffectKind(k.String())
		if !ok || parsed != k {
			t.Errorf("Effect kind %d does not round-trip through its name", i)
		}
	}
	for i := 0; i < PickupTypeCount; i++ {
		pt := PickupType(i)
		parsed, ok := ParsePickupType(pt.String())
		if !ok || parsed != pt {
			t.Errorf("Pickup type %d does not round-trip through its name", i)
		}
	}
	if _, ok := ParsePickupType("shield"); ok {
		t.Error("Unknown pickup name should not parse")
	}
}
