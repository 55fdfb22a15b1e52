package catalog

import (
	"sync"

	"datanorm/internal/datanorm"
)

// Cache holds built indexes process-wide, keyed by group id and
// invalidated by content fingerprint. Index builds are expensive (full
// re-parse of every file), so construction is serialized per group;
// concurrent scans share the immutable result.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	mu    sync.Mutex
	index *Index
}

func NewCache() *Cache {
	return &Cache{entries: map[string]*cacheEntry{}}
}

// IndexFor returns the group's index, rebuilding only when the files'
// fingerprint changed since the last build. Other callers for the same
// group block on the entry lock until the single builder finishes.
func (c *Cache) IndexFor(group SupplierGroup, profile datanorm.Profile) (*Index, error) {
	c.mu.Lock()
	entry, ok := c.entries[group.ID]
	if !ok {
		entry = &cacheEntry{}
		c.entries[group.ID] = entry
	}
	c.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	fingerprint := Fingerprint(group)
	if entry.index != nil && entry.index.Fingerprint == fingerprint {
		return entry.index, nil
	}

	index, err := BuildIndex(group, profile)
	if err != nil {
		return nil, err
	}
	entry.index = index
	return index, nil
}

// Invalidate drops a group's cached index; the next lookup rebuilds.
func (c *Cache) Invalidate(groupID string) {
	c.mu.Lock()
	delete(c.entries, groupID)
	c.mu.Unlock()
}
