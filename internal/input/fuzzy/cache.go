package fuzzy

import (
	"container/list"
	"sync"
)

// Cache is an LRU cache of match outcomes keyed by (query, text). Palettes
// re-score the same labels on every keystroke, so hits are common.
// It is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	maxSize int
	items   map[cacheKey]*list.Element
	lru     *list.List
}

type cacheKey struct {
	query string
	text  string
}

// entry is one cached match outcome.
type entry struct {
	score     int
	positions []int
	ok        bool
}

type cacheItem struct {
	key   cacheKey
	value entry
}

// NewCache creates a new LRU cache with the given maximum size.
func NewCache(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &Cache{
		maxSize: maxSize,
		items:   make(map[cacheKey]*list.Element),
		lru:     list.New(),
	}
}

// Get retrieves the cached outcome for query against text.
func (c *Cache) Get(query, text string) (entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[cacheKey{query, text}]
	if !ok {
		return entry{}, false
	}
	c.lru.MoveToFront(elem)

	item := elem.Value.(*cacheItem) //nolint:errcheck // list only contains *cacheItem
	return copyEntry(item.value), true
}

// Set stores an outcome, evicting the least recently used entry when full.
func (c *Cache) Set(query, text string, value entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey{query, text}
	if elem, ok := c.items[key]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*cacheItem).value = copyEntry(value) //nolint:errcheck // list only contains *cacheItem
		return
	}

	if c.lru.Len() >= c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.lru.Remove(oldest)
			delete(c.items, oldest.Value.(*cacheItem).key) //nolint:errcheck // list only contains *cacheItem
		}
	}

	c.items[key] = c.lru.PushFront(&cacheItem{key: key, value: copyEntry(value)})
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[cacheKey]*list.Element)
	c.lru.Init()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

func copyEntry(e entry) entry {
	if e.positions != nil {
		e.positions = append([]int(nil), e.positions...)
	}
	return e
}
