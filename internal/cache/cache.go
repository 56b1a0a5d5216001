// Package cache provides asset parameter caching.
//
// Asset precision is immutable after creation, so cached entries stay
// valid indefinitely; the staleness window only bounds how long mutable
// fields like the unit name may lag behind a reconfiguration.
package cache

import (
	"sync"
	"time"
)

// DefaultStaleness is the default duration after which cache entries are considered stale.
const DefaultStaleness = 15 * time.Minute

// Entry represents one cached asset's parameters.
type Entry struct {
	AssetID   uint64    `json:"asset_id"`
	Decimals  uint32    `json:"decimals"`
	Name      string    `json:"name,omitempty"`
	UnitName  string    `json:"unit_name,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AssetCache stores cached asset parameters keyed by asset identifier.
type AssetCache struct {
	mu      sync.RWMutex     `json:"-"`
	Entries map[uint64]Entry `json:"entries"`
}

// New creates a new empty asset cache.
func New() *AssetCache {
	return &AssetCache{
		Entries: make(map[uint64]Entry),
	}
}

// Get retrieves a cached entry.
// Returns the entry, whether it exists, and its age.
func (c *AssetCache) Get(assetID uint64) (*Entry, bool, time.Duration) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.Entries[assetID]
	if !exists {
		return nil, false, 0
	}

	age := time.Since(entry.UpdatedAt)
	return &entry, true, age
}

// Set stores an entry in the cache.
func (c *AssetCache) Set(entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry.UpdatedAt = time.Now()
	c.Entries[entry.AssetID] = entry
}

// IsStale checks if a cache entry is stale based on the default staleness duration.
func (c *AssetCache) IsStale(assetID uint64) bool {
	return c.IsStaleWithDuration(assetID, DefaultStaleness)
}

// IsStaleWithDuration checks if a cache entry is stale based on a custom duration.
func (c *AssetCache) IsStaleWithDuration(assetID uint64, staleness time.Duration) bool {
	_, exists, age := c.Get(assetID)
	if !exists {
		return true
	}
	return age > staleness
}

// Delete removes a cache entry.
func (c *AssetCache) Delete(assetID uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.Entries, assetID)
}

// Clear removes all cache entries.
func (c *AssetCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Entries = make(map[uint64]Entry)
}

// Size returns the number of cache entries.
func (c *AssetCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.Entries)
}

// Prune removes entries older than the specified duration.
func (c *AssetCache) Prune(maxAge time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	cutoff := time.Now().Add(-maxAge)

	for id, entry := range c.Entries {
		if entry.UpdatedAt.Before(cutoff) {
			delete(c.Entries, id)
			removed++
		}
	}

	return removed
}
