package filter

import (
	"container/list"
	"sync"
)

// programCache keeps the most recently compiled filters, keyed by their
// trimmed expression.
type programCache struct {
	capacity int
	order    *list.List
	items    map[string]*list.Element
	mu       sync.Mutex
}

type cached struct {
	expression string
	filter     CompiledFilter
}

func newProgramCache(capacity int) *programCache {
	return &programCache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element),
	}
}

// Get returns the filter compiled from expression and marks it recently used
func (c *programCache) Get(expression string) (CompiledFilter, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.items[expression]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(node)
	return node.Value.(*cached).filter, true
}

// Put stores a compiled filter, evicting the least recently used one when full
func (c *programCache) Put(filter CompiledFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := filter.Expression()
	if node, ok := c.items[key]; ok {
		node.Value.(*cached).filter = filter
		c.order.MoveToFront(node)
		return
	}

	c.items[key] = c.order.PushFront(&cached{expression: key, filter: filter})

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*cached).expression)
	}
}

// Clear drops every cached filter
func (c *programCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.order.Init()
}

// Len returns the number of cached filters
func (c *programCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.Len()
}
