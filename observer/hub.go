// Package observer serves score snapshots, metrics and a websocket feed of game events to external viewers.
// It only reads the status registry and receives pre-encoded messages; game state never leaves the loop.
package observer

import (
	"sync"
	"sync/atomic"
)

// Hub fans messages out to subscribed clients
// Broadcast never blocks: a client whose queue is full loses the message
type Hub struct {
	mu      sync.Mutex
	clients map[uint64]chan []byte
	buffer  int
	closed  bool

	nextID  atomic.Uint64
	sent    atomic.Int64
	dropped atomic.Int64
}

// NewHub creates a hub with per-client queues of the given size
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 1
	}
	return &Hub{
		clients: make(map[uint64]chan []byte),
		buffer:  buffer,
	}
}

// Subscribe registers a client; the channel closes on Unsubscribe or Close
// A closed hub returns an already closed channel
func (h *Hub) Subscribe() (uint64, <-chan []byte) {
	id := h.nextID.Add(1)
	ch := make(chan []byte, h.buffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return id, ch
	}
	h.clients[id] = ch
	return id, ch
}

// Unsubscribe removes a client and closes its channel
func (h *Hub) Unsubscribe(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(ch)
	}
}

// Broadcast queues msg for every client
func (h *Hub) Broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.clients {
		select {
		case ch <- msg:
			h.sent.Add(1)
		default:
			h.dropped.Add(1)
		}
	}
}

// Close disconnects every client; later subscriptions close immediately
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.clients {
		delete(h.clients, id)
		close(ch)
	}
}

// Clients returns the number of subscribed clients
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Sent returns messages queued so far
func (h *Hub) Sent() int64 { return h.sent.Load() }

// Dropped returns messages lost to full client queues
func (h *Hub) Dropped() int64 { return h.dropped.Load() }
