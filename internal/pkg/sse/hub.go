package sse

import (
	"log/slog"
	"sync"
)

// Event is one server-sent event addressed to a user.
type Event[T any] struct {
	UserID string
	Event  string
	Data   T
}

// Hub fans events out to the open streams of each user. Publishing never
// blocks: a subscriber whose buffer is full misses the event.
type Hub[T any] struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event[T]]struct{}
	buffer      int
	closed      bool
}

// NewHub creates a hub whose subscriber channels hold buffer events.
func NewHub[T any](buffer int) *Hub[T] {
	if buffer <= 0 {
		buffer = 10
	}
	return &Hub[T]{
		subscribers: make(map[string]map[chan Event[T]]struct{}),
		buffer:      buffer,
	}
}

// Subscribe registers a stream for userID. The returned cleanup may be called
// more than once. After Close the channel is returned already closed.
func (h *Hub[T]) Subscribe(userID string) (<-chan Event[T], func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event[T], h.buffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[chan Event[T]]struct{})
	}
	h.subscribers[userID][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subscribers[userID][ch]; !ok {
				return // already closed by Close
			}
			delete(h.subscribers[userID], ch)
			close(ch)
			if len(h.subscribers[userID]) == 0 {
				delete(h.subscribers, userID)
			}
		})
	}

	return ch, cleanup
}

// Publish sends event to all streams of userID.
func (h *Hub[T]) Publish(userID string, event Event[T]) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[userID] {
		select {
		case ch <- event:
		default:
			slog.Warn("sse subscriber buffer full, event dropped", "user_id", userID, "event", event.Event)
		}
	}
}

// TotalSubscribers returns the number of open streams across all users.
func (h *Hub[T]) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}

// Close ends every stream. Later subscriptions get a closed channel.
func (h *Hub[T]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, subs := range h.subscribers {
		for ch := range subs {
			close(ch)
		}
		delete(h.subscribers, userID)
	}
	h.closed = true
}
