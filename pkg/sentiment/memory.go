package sentiment

import (
	"container/list"
	"context"
	"sync"
)

// MemoryCache is the process-local cascade tier: a size-capped LRU keyed by
// normalized term. The original scoring layer used an unbounded map here;
// the cap keeps long-running processes from growing without bound while
// write idempotence keeps eviction harmless (a recomputed entry is
// identical).
type MemoryCache struct {
	mu    sync.Mutex
	cap   int
	order *list.List
	items map[string]*list.Element
}

type memoryEntry struct {
	term string
	res  Result
}

// NewMemoryCache creates an LRU cache holding at most capacity entries.
func NewMemoryCache(capacity int) *MemoryCache {
	if capacity <= 0 {
		capacity = defaultCacheCap
	}
	return &MemoryCache{
		cap:   capacity,
		order: list.New(),
		items: make(map[string]*list.Element),
	}
}

// Name identifies the tier in logs.
func (c *MemoryCache) Name() string { return "memory" }

// Lookup returns the cached result and marks it recently used.
func (c *MemoryCache) Lookup(ctx context.Context, term string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[term]
	if !ok {
		return Result{}, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*memoryEntry).res, true
}

// Put stores a result, evicting the least recently used entry when full.
func (c *MemoryCache) Put(term string, res Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[term]; ok {
		el.Value.(*memoryEntry).res = res
		c.order.MoveToFront(el)
		return
	}

	c.items[term] = c.order.PushFront(&memoryEntry{term: term, res: res})

	if c.order.Len() > c.cap {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*memoryEntry).term)
	}
}

// Len returns the current entry count.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

var _ Tier = (*MemoryCache)(nil)
