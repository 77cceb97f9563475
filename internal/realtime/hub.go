package realtime

import "sync"

// Event is one change pushed to live subscribers.
type Event struct {
	Topic      string      `json:"topic"`
	Collection string      `json:"collection"`
	Payload    interface{} `json:"payload"`
}

// Hub fans store change events out to in-process subscribers. Subscribe
// returns an unsubscribe function; callers must invoke it on teardown so
// callbacks stop firing. Subscriptions are separate from one-shot fetches:
// the hub only ever pushes, it never answers queries.
type Hub struct {
	mu     sync.RWMutex
	nextID int64
	subs   map[string]map[int64]func(Event)
}

// NewHub creates an empty Hub
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int64]func(Event))}
}

// Subscribe registers fn for every event published to topic and returns the
// matching unsubscribe function. Unsubscribing twice is safe.
func (h *Hub) Subscribe(topic string, fn func(Event)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[int64]func(Event))
	}
	h.subs[topic][id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if subs, ok := h.subs[topic]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(h.subs, topic)
			}
		}
	}
}

// Publish delivers an event to every subscriber of its topic. Callbacks run
// on the publisher's goroutine; subscribers that need to block hand off to
// their own channel (the websocket client does).
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	fns := make([]func(Event), 0, len(h.subs[event.Topic]))
	for _, fn := range h.subs[event.Topic] {
		fns = append(fns, fn)
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(event)
	}
}
