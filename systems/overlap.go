package systems

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/lixenwraith/tower-jumper/components"
	"github.com/lixenwraith/tower-jumper/core"
	"github.com/lixenwraith/tower-jumper/engine"
)

// resolv works in integer cells from a non-negative origin; world units are scaled into it
const (
	overlapScale  = 100.0
	overlapCell   = 16
	overlapMargin = 1.0
)

// overlapIndex is a throwaway resolv space covering the neighbourhood of one probe
type overlapIndex struct {
	space  *resolv.Space
	window components.Bounds
}

func newOverlapIndex(around components.Bounds) *overlapIndex {
	window := components.Bounds{
		MinX: around.MinX - overlapMargin,
		MinY: around.MinY - overlapMargin,
		MaxX: around.MaxX + overlapMargin,
		MaxY: around.MaxY + overlapMargin,
	}
	w := int(math.Ceil(window.Width() * overlapScale))
	h := int(math.Ceil(window.Height() * overlapScale))
	return &overlapIndex{
		space:  resolv.NewSpace(w, h, overlapCell, overlapCell),
		window: window,
	}
}

// add indexes b if it reaches into the window
func (ix *overlapIndex) add(b components.Bounds, tag string) {
	if !b.Overlaps(ix.window) {
		return
	}
	obj := ix.object(b, tag)
	obj.Data = b
	ix.space.Add(obj)
}

func (ix *overlapIndex) object(b components.Bounds, tags ...string) *resolv.Object {
	return resolv.NewObject(
		(b.MinX-ix.window.MinX)*overlapScale,
		(b.MinY-ix.window.MinY)*overlapScale,
		b.Width()*overlapScale,
		b.Height()*overlapScale,
		tags...,
	)
}

// hits reports whether any indexed box strictly overlaps probe
// resolv narrows the candidates by cell; the exact test runs on world bounds
func (ix *overlapIndex) hits(probe components.Bounds) bool {
	obj := ix.object(probe, "probe")
	ix.space.Add(obj)
	defer ix.space.Remove(obj)

	col := obj.Check(0, 0)
	if col == nil {
		return false
	}
	for _, o := range col.Objects {
		if b, ok := o.Data.(components.Bounds); ok && b.Overlaps(probe) {
			return true
		}
	}
	return false
}

// placementBlocked reports whether probe overlaps any platform or pickup in world
func placementBlocked(world *engine.World, probe components.Bounds) bool {
	ix := newOverlapIndex(probe)
	world.Platforms.Each(func(_ core.Entity, p components.PlatformComponent) {
		ix.add(p.Bounds, "platform")
	})
	world.Pickups.Each(func(_ core.Entity, p components.PickupComponent) {
		ix.add(p.Bounds, "pickup")
	})
	return ix.hits(probe)
}
