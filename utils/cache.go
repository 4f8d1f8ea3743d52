package utils

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// DefaultCacheTTL matches the catalog read-mostly refresh window.
const DefaultCacheTTL = 5 * time.Minute

type cacheEntry struct {
	data      interface{}
	timestamp time.Time
}

// TTLCache is a small in-memory memoization store with per-entry expiry.
// It is safe for concurrent use.
type TTLCache struct {
	mu    sync.Mutex
	store map[string]cacheEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewTTLCache(ttl time.Duration) *TTLCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &TTLCache{
		store: make(map[string]cacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the cached value, or false when absent or expired. Expired
// entries are dropped on read.
func (c *TTLCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.store[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.timestamp) > c.ttl {
		delete(c.store, key)
		return nil, false
	}
	return entry.data, true
}

func (c *TTLCache) Set(key string, data interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = cacheEntry{data: data, timestamp: c.now()}
}

func (c *TTLCache) Clear(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
}

func (c *TTLCache) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]cacheEntry)
}

// CacheKey builds a deterministic key from an endpoint and its parameters.
// Parameters are serialized in sorted order so equivalent requests share an
// entry.
func CacheKey(endpoint string, params map[string]interface{}) string {
	if len(params) == 0 {
		return endpoint
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(endpoint)
	b.WriteString(":")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(",")
		}
		v, err := json.Marshal(params[k])
		if err != nil {
			b.WriteString(fmt.Sprintf("%s=%v", k, params[k]))
			continue
		}
		b.WriteString(fmt.Sprintf("%s=%s", k, v))
	}
	return b.String()
}
