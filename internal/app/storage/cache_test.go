package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoiev/gridpeek/internal/app/storage"
	"github.com/mkoiev/gridpeek/internal/app/testutil"
)

func TestCache(t *testing.T) {
	db, st := testutil.NewDBInMemory()
	defer db.Close()
	ctx := context.Background()
	t.Run("can set and get an entry", func(t *testing.T) {
		// given
		testutil.MustTruncateTables(db)
		// when
		err := st.CacheSet(ctx, storage.CacheSetParams{Key: "key", Value: []byte("value")})
		// then
		require.NoError(t, err)
		got, err := st.CacheGet(ctx, "key")
		require.NoError(t, err)
		assert.Equal(t, []byte("value"), got)
	})
	t.Run("set overwrites existing entry", func(t *testing.T) {
		// given
		testutil.MustTruncateTables(db)
		err := st.CacheSet(ctx, storage.CacheSetParams{Key: "key", Value: []byte("old")})
		require.NoError(t, err)
		// when
		err = st.CacheSet(ctx, storage.CacheSetParams{Key: "key", Value: []byte("new")})
		// then
		require.NoError(t, err)
		got, err := st.CacheGet(ctx, "key")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), got)
	})
	t.Run("get returns specific error when key does not exist", func(t *testing.T) {
		// given
		testutil.MustTruncateTables(db)
		// when
		_, err := st.CacheGet(ctx, "key")
		// then
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
	t.Run("get ignores expired entries", func(t *testing.T) {
		// given
		testutil.MustTruncateTables(db)
		arg := storage.CacheSetParams{
			Key:       "key",
			Value:     []byte("value"),
			ExpiresAt: time.Now().Add(-time.Minute),
		}
		err := st.CacheSet(ctx, arg)
		require.NoError(t, err)
		// when
		_, err = st.CacheGet(ctx, "key")
		// then
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
	t.Run("can report whether a key exists", func(t *testing.T) {
		// given
		testutil.MustTruncateTables(db)
		err := st.CacheSet(ctx, storage.CacheSetParams{Key: "key", Value: []byte("value")})
		require.NoError(t, err)
		// when/then
		found, err := st.CacheExists(ctx, "key")
		require.NoError(t, err)
		assert.True(t, found)
		found, err = st.CacheExists(ctx, "other")
		require.NoError(t, err)
		assert.False(t, found)
	})
	t.Run("can delete an entry", func(t *testing.T) {
		// given
		testutil.MustTruncateTables(db)
		err := st.CacheSet(ctx, storage.CacheSetParams{Key: "key", Value: []byte("value")})
		require.NoError(t, err)
		// when
		err = st.CacheDelete(ctx, "key")
		// then
		require.NoError(t, err)
		_, err = st.CacheGet(ctx, "key")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
	t.Run("clean up removes expired entries and keeps alive ones", func(t *testing.T) {
		// given
		testutil.MustTruncateTables(db)
		err := st.CacheSet(ctx, storage.CacheSetParams{
			Key:       "expired",
			Value:     []byte("value"),
			ExpiresAt: time.Now().Add(-time.Minute),
		})
		require.NoError(t, err)
		err = st.CacheSet(ctx, storage.CacheSetParams{
			Key:       "alive",
			Value:     []byte("value"),
			ExpiresAt: time.Now().Add(time.Minute),
		})
		require.NoError(t, err)
		err = st.CacheSet(ctx, storage.CacheSetParams{Key: "forever", Value: []byte("value")})
		require.NoError(t, err)
		// when
		err = st.CacheCleanUp(ctx)
		// then
		require.NoError(t, err)
		for key, want := range map[string]bool{"expired": false, "alive": true, "forever": true} {
			found, err := st.CacheExists(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, want, found, key)
		}
	})
	t.Run("can clear all entries", func(t *testing.T) {
		// given
		testutil.MustTruncateTables(db)
		err := st.CacheSet(ctx, storage.CacheSetParams{Key: "key", Value: []byte("value")})
		require.NoError(t, err)
		// when
		err = st.CacheClear(ctx)
		// then
		require.NoError(t, err)
		found, err := st.CacheExists(ctx, "key")
		require.NoError(t, err)
		assert.False(t, found)
	})
}
