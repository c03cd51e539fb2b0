package events

// Handler processes specific event types within a context T
// Systems implement this interface to receive routed events
type Handler[T any] interface {
	// HandleEvent processes a single event
	// Called synchronously from Dispatch, in the same step as the emitter
	HandleEvent(ctx T, event GameEvent)

	// EventTypes returns the event types this handler processes
	// The router uses this for registration
	EventTypes() []EventType
}

// Router dispatches events to registered handlers
//
// Architecture:
//   - Synchronous dispatch, no queue: the emitter returns after every handler ran
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
//   - Handlers may emit further events; those dispatch depth-first
//   - Context T is passed to handlers (typically *engine.World)
type Router[T any] struct {
	handlers map[EventType][]Handler[T]
}

// NewRouter creates an empty router
func NewRouter[T any]() *Router[T] {
	return &Router[T]{
		handlers: make(map[EventType][]Handler[T]),
	}
}

// Register adds a handler for its declared event types
func (r *Router[T]) Register(handler Handler[T]) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// Dispatch routes one event to every handler registered for its type
func (r *Router[T]) Dispatch(ctx T, ev GameEvent) {
	for _, h := range r.handlers[ev.Type] {
		h.HandleEvent(ctx, ev)
	}
}

// HasHandlers returns true if any handlers are registered for the given type
func (r *Router[T]) HasHandlers(t EventType) bool {
	return len(r.handlers[t]) > 0
}

// HandlerCount returns the number of handlers registered for the given type
func (r *Router[T]) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}

// GetHandlers returns the slice of handlers for a specific event type
func (r *Router[T]) GetHandlers(t EventType) ([]Handler[T], bool) {
	handlers, ok := r.handlers[t]
	return handlers, ok
}
