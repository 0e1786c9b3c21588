// Package colorcache memoizes palette color parsing.
//
// Beams refer to their color by the palette string, so every stroke of
// every frame would parse the same handful of strings again. Cache keeps
// the parsed result in a small LRU.
//
// Cache is safe for concurrent use and must not be copied after creation.
package colorcache

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// DefaultCapacity is the number of colors kept when New gets a
// non-positive capacity. Palettes are far smaller.
const DefaultCapacity = 64

// Entry is a parsed color. Hex is true for six-digit hex colors.
type Entry struct {
	Color gg.RGBA
	Hex   bool
}

// Cache is an LRU of parsed colors keyed by their source string.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*node
	head     *node // most recently used
	tail     *node // least recently used

	hits   atomic.Uint64
	misses atomic.Uint64
}

type node struct {
	key        string
	entry      Entry
	prev, next *node
}

// New returns an empty cache holding at most capacity colors.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*node, capacity),
	}
}

// get returns the cached entry for key.
func (c *Cache) get(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		return Entry{}, false
	}
	c.moveToFront(n)
	c.hits.Add(1)
	return n.entry, true
}

// GetOrCreate returns the cached entry for key, calling parse to fill it
// on a miss. parse runs under the cache lock and must not use the cache.
func (c *Cache) GetOrCreate(key string, parse func(string) Entry) Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n, ok := c.entries[key]; ok {
		c.moveToFront(n)
		c.hits.Add(1)
		return n.entry
	}
	c.misses.Add(1)
	e := parse(key)
	c.insert(key, e)
	return e
}

// Len returns the number of cached colors.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the hit and miss counters.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *Cache) insert(key string, e Entry) {
	for len(c.entries) >= c.capacity && c.tail != nil {
		oldest := c.tail
		c.unlink(oldest)
		delete(c.entries, oldest.key)
	}
	n := &node{key: key, entry: e}
	c.pushFront(n)
	c.entries[key] = n
}

func (c *Cache) pushFront(n *node) {
	n.prev, n.next = nil, c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

func (c *Cache) moveToFront(n *node) {
	if n == c.head {
		return
	}
	c.unlink(n)
	c.pushFront(n)
}

func (c *Cache) unlink(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev, n.next = nil, nil
}
