package texture

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Discard levels index the loaded mip coarseness. Level 0 is full resolution,
// each higher level halves it. DiscardNone marks a handle with no data yet.
const (
	DiscardFull = 0
	DiscardMax  = 4
	DiscardNone = DiscardMax + 1
)

var validSizes = []int{64, 128, 256, 512, 1024}

// SizeForDiscard returns the pixel size streamed for a discard level.
func SizeForDiscard(level int) int {
	if level < DiscardFull {
		level = DiscardFull
	}
	if level > DiscardMax {
		level = DiscardMax
	}
	return validSizes[len(validSizes)-1-level]
}

// DiscardForSize returns the coarsest discard level whose streamed size
// covers the given pixel size.
func DiscardForSize(size int) int {
	for i, s := range validSizes {
		if s >= size {
			return len(validSizes) - 1 - i
		}
	}
	return DiscardFull
}

// AssetURL returns the asset server URL for a texture at a given pixel size.
func AssetURL(baseURL string, id uuid.UUID, size int) (string, error) {
	if !slices.Contains(validSizes, size) {
		return "", ErrInvalidSize
	}
	return fmt.Sprintf("%s/assets/textures/%s?size=%d", baseURL, id, size), nil
}
