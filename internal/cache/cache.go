// Package cache provides the TTL key-value cache the config store reads
// through. Entries live in process memory; cross-process readers are bounded
// only by the TTL window.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/spf13/afero"
)

const (
	keyPrefix = "mcpforge_"

	// DefaultTTL is the fallback expiry for entries stored without an
	// explicit duration.
	DefaultTTL = time.Hour

	cleanupInterval = 10 * time.Minute
)

// Cache is a prefix-namespaced TTL cache.
type Cache struct {
	store *gocache.Cache
}

// New creates a cache with the default TTL.
func New() *Cache {
	return &Cache{store: gocache.New(DefaultTTL, cleanupInterval)}
}

// Remember returns the cached value for key, or runs producer, caches its
// result for ttl and returns it. Producer errors are returned uncached.
func (c *Cache) Remember(key string, ttl time.Duration, producer func() (any, error)) (any, error) {
	if v, ok := c.store.Get(keyPrefix + key); ok {
		return v, nil
	}
	v, err := producer()
	if err != nil {
		return nil, err
	}
	c.store.Set(keyPrefix+key, v, ttl)
	return v, nil
}

// Get returns the cached value for key.
func (c *Cache) Get(key string) (any, bool) {
	return c.store.Get(keyPrefix + key)
}

// Put stores a value under key for ttl.
func (c *Cache) Put(key string, value any, ttl time.Duration) {
	c.store.Set(keyPrefix+key, value, ttl)
}

// Forget removes the entry for key.
func (c *Cache) Forget(key string) {
	c.store.Delete(keyPrefix + key)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.store.Flush()
}

// HasFileChanged reports whether the file's content hash differs from the
// cached hash, updating the cached hash when it does. A missing file always
// reports changed.
func (c *Cache) HasFileChanged(fs afero.Fs, path string) bool {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return true
	}

	sum := sha256.Sum256(content)
	current := hex.EncodeToString(sum[:])

	key := "file_hash_" + path
	if cached, ok := c.Get(key); ok {
		if cachedHash, ok := cached.(string); ok && cachedHash == current {
			return false
		}
	}
	c.Put(key, current, DefaultTTL)
	return true
}
