// Package parsecache memoizes date-expression parse results across
// detection runs. Parsing is pure, so cached results never go stale on
// their own; the TTL only bounds memory.
package parsecache

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/lorecheck/lorecheck/chronotext"
	"github.com/lorecheck/lorecheck/timeline"
)

// Cache wraps an in-memory TTL cache of ParsedDate values keyed by
// expression plus resolution options.
type Cache struct {
	cache *gocache.Cache
}

// New creates a cache with the given TTL and cleanup interval.
func New(ttl, cleanupInterval time.Duration) *Cache {
	return &Cache{
		cache: gocache.New(ttl, cleanupInterval),
	}
}

// ParseFunc returns a memoizing wrapper suitable for
// timeline.WithParseFunc.
func (c *Cache) ParseFunc() timeline.ParseFunc {
	return func(text string, opts chronotext.Options) chronotext.ParsedDate {
		key := cacheKey(text, opts)
		if val, found := c.cache.Get(key); found {
			return val.(chronotext.ParsedDate)
		}
		pd := chronotext.Parse(text, opts)
		c.cache.Set(key, pd, gocache.DefaultExpiration)
		return pd
	}
}

// Flush removes all cached results.
func (c *Cache) Flush() {
	c.cache.Flush()
}

// Len reports the number of cached expressions.
func (c *Cache) Len() int {
	return c.cache.ItemCount()
}

// cacheKey folds every option that influences resolution into the key. The
// reference anchor matters for relative phrases, so two runs with different
// anchors never share entries.
func cacheKey(text string, opts chronotext.Options) string {
	return fmt.Sprintf("%s|%v|%s|%d", text, opts.ForwardDate, opts.Timezone, opts.ReferenceDate.UnixNano())
}
