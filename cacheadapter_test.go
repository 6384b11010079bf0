package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoiev/gridpeek/internal/app/pcache"
	"github.com/mkoiev/gridpeek/internal/app/testutil"
)

func TestCacheAdapter(t *testing.T) {
	db, st := testutil.NewDBInMemory()
	defer db.Close()
	pc := pcache.New(st, 0)
	defer pc.Close()
	t.Run("can set and get an entry", func(t *testing.T) {
		// given
		testutil.MustTruncateTables(db)
		ca := newCacheAdapter(pc, "test-", 0)
		value := []byte("value")
		// when
		ca.Set("key", value)
		// then
		got, found := ca.Get("key")
		require.True(t, found)
		assert.Equal(t, value, got)
	})
	t.Run("keys are namespaced by prefix", func(t *testing.T) {
		// given
		testutil.MustTruncateTables(db)
		ca1 := newCacheAdapter(pc, "one-", 0)
		ca2 := newCacheAdapter(pc, "two-", 0)
		// when
		ca1.Set("key", []byte("value"))
		// then
		_, found := ca2.Get("key")
		assert.False(t, found)
		_, found = pc.Get("one-key")
		assert.True(t, found)
	})
	t.Run("can delete an entry", func(t *testing.T) {
		// given
		testutil.MustTruncateTables(db)
		ca := newCacheAdapter(pc, "test-", 0)
		ca.Set("key", []byte("value"))
		// when
		ca.Delete("key")
		// then
		_, found := ca.Get("key")
		assert.False(t, found)
	})
}
