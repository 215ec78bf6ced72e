package query

import (
	"slices"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultTTL is how long a page stays cached without invalidation.
const DefaultTTL = 5 * time.Minute

type entry struct {
	tags  []string
	value any
}

// Cache is the process-wide page cache. It is safe for concurrent use.
//
// Every invalidation bumps a generation counter for the affected tags. A
// fetch that started before an invalidation carries the old generation and
// its result is not stored.
type Cache struct {
	store *gocache.Cache

	mu    sync.Mutex
	epoch uint64
	gens  map[string]uint64
}

// NewCache creates a cache whose entries live for ttl.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{store: gocache.New(ttl, 2*ttl), gens: make(map[string]uint64)}
}

// Get returns the value cached under k.
func (c *Cache) Get(k Key) (any, bool) {
	v, ok := c.store.Get(k.String())
	if !ok {
		return nil, false
	}
	return v.(entry).value, true
}

// Set stores value under k, tagged with k.Tags().
func (c *Cache) Set(k Key, value any) {
	c.store.Set(k.String(), entry{tags: k.Tags(), value: value}, gocache.DefaultExpiration)
}

// Generation returns the invalidation generation of k's tags. It changes
// whenever any of them is invalidated.
func (c *Cache) Generation(k Key) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generationLocked(k)
}

func (c *Cache) generationLocked(k Key) uint64 {
	gen := c.epoch
	for _, tag := range k.Tags() {
		gen += c.gens[tag]
	}
	return gen
}

// SetIfCurrent stores value under k unless k's tags were invalidated after
// gen was read. It reports whether the value was stored.
func (c *Cache) SetIfCurrent(k Key, value any, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generationLocked(k) != gen {
		return false
	}
	c.Set(k, value)
	return true
}

// InvalidateTag drops every entry carrying tag and returns how many were
// removed.
func (c *Cache) InvalidateTag(tag string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[tag]++

	n := 0
	for key, item := range c.store.Items() {
		e, ok := item.Object.(entry)
		if ok && slices.Contains(e.tags, tag) {
			c.store.Delete(key)
			n++
		}
	}
	return n
}

// InvalidateAll empties the cache.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	c.store.Flush()
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	return c.store.ItemCount()
}
