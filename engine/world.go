package engine

import (
	"sort"
	"sync"
	"time"

	"github.com/lixenwraith/tower-jumper/components"
	"github.com/lixenwraith/tower-jumper/core"
)

// System is an interface that all systems must implement
type System interface {
	Update(world *World, dt time.Duration)
	Priority() int // Lower values run first
}

// World contains all entities, their component stores and the ordered systems
type World struct {
	mu           sync.Mutex
	nextEntityID core.Entity
	systems      []System

	Platforms *Store[components.PlatformComponent]
	Walls     *Store[components.WallComponent]
	Pickups   *Store[components.PickupComponent]
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{
		nextEntityID: 1,
		Platforms:    NewStore[components.PlatformComponent](),
		Walls:        NewStore[components.WallComponent](),
		Pickups:      NewStore[components.PickupComponent](),
	}
}

// CreateEntity returns a fresh entity id
func (w *World) CreateEntity() core.Entity {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextEntityID
	w.nextEntityID++
	return id
}

// DestroyEntity removes an entity from every store
func (w *World) DestroyEntity(e core.Entity) {
	w.Platforms.Remove(e)
	w.Walls.Remove(e)
	w.Pickups.Remove(e)
}

// AddSystem registers a system, keeping systems sorted by priority
// Systems with equal priority keep registration order
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.systems = append(w.systems, system)
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].Priority() < w.systems[j].Priority()
	})
}

// Systems returns the registered systems in run order
func (w *World) Systems() []System {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]System, len(w.systems))
	copy(out, w.systems)
	return out
}

// Update runs all systems once
func (w *World) Update(dt time.Duration) {
	for _, system := range w.Systems() {
		system.Update(w, dt)
	}
}

// CountPickups returns alive pickups of the given type
func (w *World) CountPickups(t components.PickupType) int {
	n := 0
	w.Pickups.Each(func(_ core.Entity, p components.PickupComponent) {
		if p.Type == t {
			n++
		}
	})
	return n
}
