// Package cache holds rendered GET responses until the quote list changes
// or their TTL runs out.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Entry is a rendered response body.
type Entry struct {
	Status int
	Body   []byte
}

// Cache wraps go-cache for HTTP response bodies.
type Cache struct {
	store *gocache.Cache
}

// New creates a cache whose entries live for ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{store: gocache.New(ttl, 2*ttl)}
}

// Key builds the cache key of a request.
func Key(path, rawQuery string) string {
	if rawQuery == "" {
		return path
	}
	return path + "?" + rawQuery
}

// Get returns the cached entry for key.
func (c *Cache) Get(key string) (Entry, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return Entry{}, false
	}
	return v.(Entry), true
}

// Set stores an entry with the default TTL.
func (c *Cache) Set(key string, e Entry) {
	c.store.Set(key, e, gocache.DefaultExpiration)
}

// Invalidate drops every entry. Called whenever the list changes.
func (c *Cache) Invalidate() {
	c.store.Flush()
}

// ItemCount returns the number of cached responses.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}
