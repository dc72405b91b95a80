package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"Nutripedia-Backend/entities"
)

// DefaultTTL is the fixed expiry of a cache entry (3600000 ms).
const DefaultTTL = 3600000 * time.Millisecond

type (
	// ItemCache is a TTL-gated point cache keyed by name fingerprint. Entries
	// past their TTL are reported absent but never swept; a later Set for the
	// same key overwrites them lazily. Concurrent writers to one key are
	// last-write-wins with no atomicity guarantee beyond that. Construct one
	// per process and inject it; there is no package-level instance.
	ItemCache interface {
		Get(key string) (*entities.Item, bool)
		Set(key string, item *entities.Item)
	}

	itemCache struct {
		entries *gocache.Cache
	}
)

// NewItemCache builds a cache with the given TTL. The cleanup interval is
// disabled so stale entries stay in place until overwritten.
func NewItemCache(ttl time.Duration) ItemCache {
	return &itemCache{
		entries: gocache.New(ttl, 0),
	}
}

func (c *itemCache) Get(key string) (*entities.Item, bool) {
	value, found := c.entries.Get(key)
	if !found {
		return nil, false
	}

	item, ok := value.(*entities.Item)
	if !ok {
		return nil, false
	}
	return item, true
}

func (c *itemCache) Set(key string, item *entities.Item) {
	c.entries.Set(key, item, gocache.DefaultExpiration)
}
