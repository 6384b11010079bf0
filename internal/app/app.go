// Package app is the root package of all domain related packages.
//
// It defines the shared types and the service interfaces which the UI
// consumes, so that widgets can be tested against fakes.
package app

import (
	"time"

	"fyne.io/fyne/v2"
	"github.com/google/uuid"
)

// Default sizes
const (
	IconPixelSize       = 64
	ThumbnailUnitSize   = 128
	TexturePixelSizeMax = 1024
)

// BoostLevel is a scheduling hint telling the texture streaming service
// how urgently to fetch or upgrade a texture.
type BoostLevel int

const (
	BoostNone BoostLevel = iota
	BoostUI
	BoostPreview
	BoostHigh
)

func (b BoostLevel) String() string {
	switch b {
	case BoostNone:
		return "none"
	case BoostUI:
		return "ui"
	case BoostPreview:
		return "preview"
	case BoostHigh:
		return "high"
	}
	return "unknown"
}

// FetchType categorizes where a texture request originates from.
type FetchType int

const (
	FetchTypeDefault FetchType = iota
	FetchTypeMap
	FetchTypeBaked
)

// Class is the resolution selection class of a texture.
type Class int

const (
	// ClassLOD textures stream a resolution chosen from their on-screen size.
	ClassLOD Class = iota
	// ClassFixed textures always stream at full resolution.
	ClassFixed
)

// CacheService defines a byte cache with per-item expiry.
type CacheService interface {
	Get(string) ([]byte, bool)
	Set(string, []byte, time.Duration)
}

// Translator resolves localized UI strings by key.
type Translator interface {
	GetString(key string) string
}

// AgentSession reports properties of the logged-in agent.
type AgentSession interface {
	// IsGodlike reports whether the agent has elevated operator privileges.
	IsGodlike() bool
}

// TransparencyContext reports the transparency of an enclosing window
// context. Widgets render fully opaque while their context is active.
type TransparencyContext interface {
	Active() bool
	Current() float32
}

// FetchedTexture is a shared handle to a texture streamed from the asset
// server. It is populated asynchronously. Callers poll its state or
// subscribe to updates with Listen.
type FetchedTexture interface {
	ID() uuid.UUID
	Resource() fyne.Resource
	IsFullyLoaded() bool
	DiscardLevel() int
	Components() int
	BoostLevel() BoostLevel
	SetBoostLevel(BoostLevel)
	SetKnownDrawSize(w, h int)
	RetainRaw(level int)
	Listen(key string, fn func())
	Unlisten(key string)
	Release()
}

// UIImage is a named image registered with the UI image registry.
type UIImage interface {
	Name() string
	Resource() fyne.Resource
	// AssetID returns the ID of the fetched texture backing this image,
	// or uuid.Nil for static images.
	AssetID() uuid.UUID
}

// ImageRegistry resolves locally registered UI images by name.
type ImageRegistry interface {
	Lookup(name string, boost BoostLevel) (UIImage, bool)
}

// TextureService provides shared handles to streamed textures.
type TextureService interface {
	Fetch(id uuid.UUID, typ FetchType, mipmap bool, boost BoostLevel, class Class) FetchedTexture
}
