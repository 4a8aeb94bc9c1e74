package calendar

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/calendar"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the memoized months between two writes.
const DefaultCacheSize = 512

type cacheKey struct {
	viewMode calendar.ViewMode
	userID   string
	teamID   string
	month    string
	pending  bool
	version  uint64
}

// entryCache memoizes aggregated month entries. Every write to the feeding
// stores bumps the version, which retires all earlier keys. At most size
// results are kept; the least recently used one goes first.
type entryCache struct {
	mu      sync.Mutex
	entries *lru.Cache[cacheKey, []calendar.Entry]
	version atomic.Uint64
}

func newEntryCache(size int) *entryCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	// lru.New only fails on a non-positive size.
	entries, _ := lru.New[cacheKey, []calendar.Entry](size)
	return &entryCache{entries: entries}
}

func (c *entryCache) Version() uint64 {
	return c.version.Load()
}

// Invalidate bumps the data version and drops every cached result.
func (c *entryCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version.Add(1)
	c.entries.Purge()
}

func (c *entryCache) get(k cacheKey) ([]calendar.Entry, bool) {
	v, ok := c.entries.Get(k)
	if !ok {
		return nil, false
	}
	return slices.Clone(v), true
}

// put stores v unless the version moved on while v was computed.
func (c *entryCache) put(k cacheKey, v []calendar.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if k.version != c.version.Load() {
		return
	}
	c.entries.Add(k, slices.Clone(v))
}

func (c *entryCache) len() int {
	return c.entries.Len()
}
