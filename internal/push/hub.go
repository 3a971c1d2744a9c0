// AngelaMos | 2026
// hub.go

package push

import (
	"log/slog"
	"sync"
	"time"
)

const (
	EventGeneratedChunk    = "generated_content_chunk"
	EventGeneratedComplete = "generated_content_complete"
	EventGeneratedError    = "generated_content_error"
)

// Event is one push-channel frame. Data carries the event-specific
// payload documented per event type.
type Event struct {
	Type      string         `json:"type"`
	Data      map[string]any `json:"data"`
	Timestamp time.Time      `json:"timestamp"`
}

// Hub fans events out to the live connections of a single user. A
// user may hold several connections at once (multiple tabs); every
// one of them receives every event addressed to the user.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[chan Event]struct{}
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[chan Event]struct{}),
		logger:  logger,
	}
}

// Subscribe registers a connection for the user and returns its event
// channel plus an unsubscribe func. The channel is buffered; a client
// that cannot drain it fast enough loses frames rather than blocking
// the producer.
func (h *Hub) Subscribe(userID string) (<-chan Event, func()) {
	ch := make(chan Event, 64)

	h.mu.Lock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[chan Event]struct{})
	}
	h.clients[userID][ch] = struct{}{}
	h.mu.Unlock()

	unsubscribe := func() {
		h.mu.Lock()
		if set, ok := h.clients[userID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.clients, userID)
			}
		}
		h.mu.Unlock()
		close(ch)
	}

	return ch, unsubscribe
}

// Publish delivers the event to every live connection of the user.
// Users with no connection drop the event silently.
func (h *Hub) Publish(userID string, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.clients[userID] {
		select {
		case ch <- event:
		default:
			h.logger.Warn("push channel full, dropping event",
				slog.String("user_id", userID),
				slog.String("event", event.Type),
			)
		}
	}
}

func (h *Hub) PublishChunk(userID, chunk string) {
	h.Publish(userID, Event{
		Type: EventGeneratedChunk,
		Data: map[string]any{"chunk": chunk},
	})
}

func (h *Hub) PublishComplete(userID, fullContent string) {
	h.Publish(userID, Event{
		Type: EventGeneratedComplete,
		Data: map[string]any{"full_content": fullContent},
	})
}

func (h *Hub) PublishError(userID, message, details string) {
	h.Publish(userID, Event{
		Type: EventGeneratedError,
		Data: map[string]any{"error": message, "details": details},
	})
}

// ConnectionCount reports the number of live connections across all
// users.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, set := range h.clients {
		total += len(set)
	}
	return total
}
