// Package cache provides a small generic LRU cache.
//
//	c := cache.New[float64, []float64](32)
//	if k, ok := c.Get(1.5); !ok {
//	    c.Set(1.5, build(1.5))
//	}
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
