package texture_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoiev/gridpeek/internal/app/texture"
)

func TestSizeForDiscard(t *testing.T) {
	cases := []struct {
		level int
		want  int
	}{
		{0, 1024},
		{1, 512},
		{2, 256},
		{3, 128},
		{4, 64},
		{-1, 1024},
		{texture.DiscardNone, 64},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("level %d", tc.level), func(t *testing.T) {
			assert.Equal(t, tc.want, texture.SizeForDiscard(tc.level))
		})
	}
}

func TestDiscardForSize(t *testing.T) {
	cases := []struct {
		size int
		want int
	}{
		{1, 4},
		{64, 4},
		{65, 3},
		{128, 3},
		{256, 2},
		{512, 1},
		{1024, 0},
		{4096, 0},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("size %d", tc.size), func(t *testing.T) {
			assert.Equal(t, tc.want, texture.DiscardForSize(tc.size))
		})
	}
}

func TestAssetURL(t *testing.T) {
	id := uuid.MustParse("9e6a6e9d-2d0b-4f54-9c3a-9f6c1f1a7e01")
	t.Run("builds URL for a valid size", func(t *testing.T) {
		got, err := texture.AssetURL("https://assets.example.com", id, 256)
		require.NoError(t, err)
		want := "https://assets.example.com/assets/textures/9e6a6e9d-2d0b-4f54-9c3a-9f6c1f1a7e01?size=256"
		assert.Equal(t, want, got)
	})
	t.Run("rejects an invalid size", func(t *testing.T) {
		_, err := texture.AssetURL("https://assets.example.com", id, 100)
		assert.ErrorIs(t, err, texture.ErrInvalidSize)
	})
}
