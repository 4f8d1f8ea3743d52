package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetSet(t *testing.T) {
	cache := NewTTLCache(DefaultCacheTTL)

	_, ok := cache.Get("products")
	assert.False(t, ok)

	cache.Set("products", []int{1, 2, 3})

	v, ok := cache.Get("products")
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, v)
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	cache := NewTTLCache(5 * time.Minute)

	base := time.Now()
	cache.now = func() time.Time { return base }
	cache.Set("products", "fresh")

	cache.now = func() time.Time { return base.Add(4 * time.Minute) }
	_, ok := cache.Get("products")
	assert.True(t, ok)

	cache.now = func() time.Time { return base.Add(5*time.Minute + time.Second) }
	_, ok = cache.Get("products")
	assert.False(t, ok)

	// The expired entry is gone even if the clock moves back.
	cache.now = func() time.Time { return base }
	_, ok = cache.Get("products")
	assert.False(t, ok)
}

func TestCacheClear(t *testing.T) {
	cache := NewTTLCache(DefaultCacheTTL)
	cache.Set("a", 1)
	cache.Set("b", 2)

	cache.Clear("a")
	_, ok := cache.Get("a")
	assert.False(t, ok)
	_, ok = cache.Get("b")
	assert.True(t, ok)

	cache.ClearAll()
	_, ok = cache.Get("b")
	assert.False(t, ok)
}

func TestNonPositiveTTLFallsBackToDefault(t *testing.T) {
	cache := NewTTLCache(0)
	assert.Equal(t, DefaultCacheTTL, cache.ttl)
}

func TestCacheKeyDeterministic(t *testing.T) {
	a := CacheKey("products", map[string]interface{}{"category": "sneakers", "sort": "price-asc"})
	b := CacheKey("products", map[string]interface{}{"sort": "price-asc", "category": "sneakers"})
	assert.Equal(t, a, b)
}

func TestCacheKeyDistinguishesParams(t *testing.T) {
	assert.Equal(t, "products", CacheKey("products", nil))
	assert.NotEqual(t,
		CacheKey("products", map[string]interface{}{"category": "sneakers"}),
		CacheKey("products", map[string]interface{}{"category": "boots"}))
	assert.NotEqual(t,
		CacheKey("products", nil),
		CacheKey("banners", nil))
}
