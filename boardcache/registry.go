package boardcache

import "sync"

// registry memoizes one Cache per (dimension, side) shape for the
// process's lifetime, since BoardCache construction is the same work
// every board of that shape would otherwise repeat.
type shapeKey struct {
	dimension int
	side      int
}

var (
	registryMu sync.Mutex
	registry   = map[shapeKey]*Cache{}
)

// Get returns the shared Cache for (dimension, side), building it on
// first use.
func Get(dimension, side int) *Cache {
	key := shapeKey{dimension, side}
	registryMu.Lock()
	defer registryMu.Unlock()
	if c, ok := registry[key]; ok {
		return c
	}
	c := New(dimension, side)
	registry[key] = c
	return c
}
