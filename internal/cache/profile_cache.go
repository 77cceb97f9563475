package cache

import (
	"sync"
	"time"

	"github.com/campuslink/backend/internal/models"
)

// DefaultProfileTTL bounds how long a cached profile is served before the
// next Get falls through to the store.
const DefaultProfileTTL = 5 * time.Minute

type entry struct {
	profile  *models.Profile
	cachedAt time.Time
}

// ProfileCache is a process-local TTL cache mapping user id to profile.
// It avoids redundant store lookups during fan-out joins (attaching author
// snippets to posts, comments and messages). Entries are only evicted by the
// TTL check on read; there is no size bound.
type ProfileCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewProfileCache creates a ProfileCache with the given TTL. A nil clock
// defaults to time.Now; tests inject their own.
func NewProfileCache(ttl time.Duration, now func() time.Time) *ProfileCache {
	if ttl <= 0 {
		ttl = DefaultProfileTTL
	}
	if now == nil {
		now = time.Now
	}
	return &ProfileCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the cached profile for userID, or nil when absent or expired
func (c *ProfileCache) Get(userID string) *models.Profile {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[userID]
	if !ok || c.now().Sub(e.cachedAt) >= c.ttl {
		return nil
	}
	return e.profile
}

// Put stores a profile under its user id
func (c *ProfileCache) Put(userID string, profile *models.Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = entry{profile: profile, cachedAt: c.now()}
}

// Invalidate removes a user's entry, called after profile updates
func (c *ProfileCache) Invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
}
