package realtime

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDeliversToTopicSubscribers(t *testing.T) {
	hub := NewHub()

	var got []Event
	unsubscribe := hub.Subscribe("user:alice:messages", func(e Event) {
		got = append(got, e)
	})
	defer unsubscribe()

	hub.Publish(Event{Topic: "user:alice:messages", Collection: "direct_messages", Payload: "hi"})
	hub.Publish(Event{Topic: "user:bob:messages", Collection: "direct_messages", Payload: "not for alice"})

	require.Len(t, got, 1)
	assert.Equal(t, "hi", got[0].Payload)
	assert.Equal(t, "direct_messages", got[0].Collection)
}

func TestHubMultipleSubscribersSameTopic(t *testing.T) {
	hub := NewHub()

	var first, second int
	defer hub.Subscribe("group:g1:messages", func(Event) { first++ })()
	defer hub.Subscribe("group:g1:messages", func(Event) { second++ })()

	hub.Publish(Event{Topic: "group:g1:messages"})

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub()

	var calls int
	unsubscribe := hub.Subscribe("user:alice:notifications", func(Event) { calls++ })

	hub.Publish(Event{Topic: "user:alice:notifications"})
	unsubscribe()
	hub.Publish(Event{Topic: "user:alice:notifications"})

	assert.Equal(t, 1, calls)

	// A second unsubscribe is safe.
	unsubscribe()
}

func TestHubUnsubscribeOnlyRemovesOwnSubscription(t *testing.T) {
	hub := NewHub()

	var kept int
	stopFirst := hub.Subscribe("t", func(Event) {})
	defer hub.Subscribe("t", func(Event) { kept++ })()

	stopFirst()
	hub.Publish(Event{Topic: "t"})

	assert.Equal(t, 1, kept)
}

func TestHubPublishWithoutSubscribers(t *testing.T) {
	hub := NewHub()
	// Must not panic.
	hub.Publish(Event{Topic: "nobody-listens"})
}

func TestHubConcurrentPublishAndSubscribe(t *testing.T) {
	hub := NewHub()

	var mu sync.Mutex
	total := 0
	defer hub.Subscribe("busy", func(Event) {
		mu.Lock()
		total++
		mu.Unlock()
	})()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				hub.Publish(Event{Topic: "busy"})
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			stop := hub.Subscribe("busy", func(Event) {})
			stop()
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 400, total)
}
