// Package hub fans published records out to every live subscriber and
// keeps a bounded recent history for snapshot queries. One hub object
// owns all shared mutable state; nothing leaks outside it.
package hub

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ppiankov/wikiwire/internal/model"
)

// Subscriber is one connected reader: a bounded queue of records plus
// its registration id. Created on connect, destroyed on disconnect.
type Subscriber struct {
	ID    string
	Queue chan model.Record
}

// Hub holds the recent-history buffer and the dynamic subscriber set.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string]*Subscriber
	recent      *recentBuffer
	queueCap    int
	closed      bool

	log *zap.Logger

	// OnDrop, when set, observes each per-subscriber message drop
	// (metrics hook).
	OnDrop func()
}

// New creates a hub with the given history and per-subscriber queue
// capacities.
func New(recentCap, queueCap int, log *zap.Logger) *Hub {
	if queueCap <= 0 {
		queueCap = 256
	}
	return &Hub{
		subscribers: make(map[string]*Subscriber),
		recent:      newRecentBuffer(recentCap),
		queueCap:    queueCap,
		log:         log,
	}
}

// Publish appends the record to history and enqueues it for every live
// subscriber. The enqueue is non-blocking: a full queue drops the
// message for that subscriber only, never blocking the publisher and
// never affecting other subscribers.
func (h *Hub) Publish(rec model.Record) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.recent.append(rec)
	for _, sub := range h.subscribers {
		select {
		case sub.Queue <- rec:
		default:
			if h.OnDrop != nil {
				h.OnDrop()
			}
		}
	}
}

// Subscribe registers a new reader and returns it. The caller owns the
// queue read side and must Unsubscribe when done.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{
		ID:    uuid.NewString(),
		Queue: make(chan model.Record, h.queueCap),
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.Queue)
		return sub
	}
	h.subscribers[sub.ID] = sub
	h.log.Debug("subscriber added", zap.String("id", sub.ID), zap.Int("total", len(h.subscribers)))
	return sub
}

// Unsubscribe removes a reader. Safe to call concurrently with an
// in-flight Publish and safe to call twice.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	sub, ok := h.subscribers[id]
	if !ok {
		return
	}
	delete(h.subscribers, id)
	close(sub.Queue)
	h.log.Debug("subscriber removed", zap.String("id", id), zap.Int("total", len(h.subscribers)))
}

// Snapshot returns up to n recent records without mutating history.
// newestFirst selects the ordering.
func (h *Hub) Snapshot(n int, newestFirst bool) []model.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.recent.snapshot(n, newestFirst)
}

// Len returns the current history size
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.recent.len()
}

// Subscribers returns the current subscriber count
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Close unregisters every subscriber and rejects further publishes.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, sub := range h.subscribers {
		delete(h.subscribers, id)
		close(sub.Queue)
	}
}
