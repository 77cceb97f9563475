package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/campuslink/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances only when told to, so TTL expiry is exact.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestProfileCacheServesFreshEntry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	c := NewProfileCache(5*time.Minute, clock.Now)

	c.Put("alice", &models.Profile{UserID: "alice", Name: "Alice"})

	got := c.Get("alice")
	require.NotNil(t, got)
	assert.Equal(t, "Alice", got.Name)
}

func TestProfileCacheExpiresOnTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	c := NewProfileCache(5*time.Minute, clock.Now)

	c.Put("alice", &models.Profile{UserID: "alice"})

	clock.Advance(5*time.Minute - time.Second)
	assert.NotNil(t, c.Get("alice"), "one second before the TTL the entry is still fresh")

	clock.Advance(time.Second)
	assert.Nil(t, c.Get("alice"), "at the TTL the entry is expired")
}

func TestProfileCachePutRefreshesTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	c := NewProfileCache(5*time.Minute, clock.Now)

	c.Put("alice", &models.Profile{UserID: "alice", Name: "Alice"})
	clock.Advance(4 * time.Minute)
	c.Put("alice", &models.Profile{UserID: "alice", Name: "Alicia"})
	clock.Advance(4 * time.Minute)

	got := c.Get("alice")
	require.NotNil(t, got)
	assert.Equal(t, "Alicia", got.Name)
}

func TestProfileCacheInvalidate(t *testing.T) {
	c := NewProfileCache(5*time.Minute, nil)

	c.Put("alice", &models.Profile{UserID: "alice"})
	c.Put("bob", &models.Profile{UserID: "bob"})
	c.Invalidate("alice")

	assert.Nil(t, c.Get("alice"))
	assert.NotNil(t, c.Get("bob"))
	// Invalidating an absent key is a no-op.
	c.Invalidate("nobody")
}

func TestProfileCacheMissingKey(t *testing.T) {
	c := NewProfileCache(5*time.Minute, nil)
	assert.Nil(t, c.Get("nobody"))
}

func TestProfileCacheZeroTTLFallsBackToDefault(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	c := NewProfileCache(0, clock.Now)

	c.Put("alice", &models.Profile{UserID: "alice"})
	clock.Advance(DefaultProfileTTL - time.Second)
	assert.NotNil(t, c.Get("alice"))
	clock.Advance(2 * time.Second)
	assert.Nil(t, c.Get("alice"))
}
