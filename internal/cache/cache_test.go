package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mkoiev/gridpeek/internal/cache"
)

func TestCache(t *testing.T) {
	t.Run("can get existing item", func(t *testing.T) {
		c := cache.New()
		c.Set("k1", "xyz", time.Minute)
		v, ok := c.Get("k1")
		assert.True(t, ok)
		assert.Equal(t, "xyz", v)
	})
	t.Run("should report when item does not exist", func(t *testing.T) {
		c := cache.New()
		_, ok := c.Get("other")
		assert.False(t, ok)
	})
	t.Run("should report when item has expired", func(t *testing.T) {
		c := cache.New()
		c.Set("k1", "xyz", -time.Second)
		_, ok := c.Get("k1")
		assert.False(t, ok)
	})
	t.Run("items without timeout never expire", func(t *testing.T) {
		c := cache.New()
		c.Set("k1", "xyz", cache.NoTimeout)
		v, ok := c.Get("k1")
		assert.True(t, ok)
		assert.Equal(t, "xyz", v)
	})
	t.Run("can delete item", func(t *testing.T) {
		c := cache.New()
		c.Set("k1", "xyz", time.Minute)
		c.Delete("k1")
		assert.False(t, c.Exists("k1"))
	})
	t.Run("can clear all items", func(t *testing.T) {
		c := cache.New()
		c.Set("k1", "xyz", time.Minute)
		c.Set("k2", "abc", time.Minute)
		c.Clear()
		assert.False(t, c.Exists("k1"))
		assert.False(t, c.Exists("k2"))
	})
}
