package loader

import "container/list"

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

// lru is a capacity-bounded index of live values. It is not safe for
// concurrent use; the Loader guards it with its own mutex. put reports the
// evicted entry instead of firing a callback so the caller can act on it
// after unlocking.
type lru[K comparable, V any] struct {
	capacity int
	items    map[K]*list.Element
	order    *list.List
}

func newLRU[K comparable, V any](capacity int) *lru[K, V] {
	if capacity <= 0 {
		panic("loader: capacity must be positive")
	}
	return &lru[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element),
		order:    list.New(),
	}
}

// get retrieves a value and marks it as recently used.
func (c *lru[K, V]) get(key K) (V, bool) {
	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*lruEntry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// put adds or replaces a value. When the index is over capacity it removes
// the least recently used entry and returns its value with true.
func (c *lru[K, V]) put(key K, value V) (V, bool) {
	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*lruEntry[K, V]).value = value
		var zero V
		return zero, false
	}

	c.items[key] = c.order.PushFront(&lruEntry[K, V]{key: key, value: value})
	if c.order.Len() <= c.capacity {
		var zero V
		return zero, false
	}

	oldest := c.order.Back()
	entry := oldest.Value.(*lruEntry[K, V])
	c.order.Remove(oldest)
	delete(c.items, entry.key)
	return entry.value, true
}

// remove deletes key and returns its value if it was present.
func (c *lru[K, V]) remove(key K) (V, bool) {
	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*lruEntry[K, V])
		c.order.Remove(elem)
		delete(c.items, entry.key)
		return entry.value, true
	}
	var zero V
	return zero, false
}

func (c *lru[K, V]) len() int {
	return c.order.Len()
}
