// Package uiimages implements the registry of named local UI images.
//
// Names either map to static resources (bundled icons, theme resources) or
// to textures on the asset server. Lookup misses are not an error; callers
// are expected to fall back to their own placeholder rendering.
package uiimages

import (
	"sync"

	"fyne.io/fyne/v2"
	"github.com/google/uuid"

	"github.com/mkoiev/gridpeek/internal/app"
)

// UIImage is a named image resolved from the registry.
type UIImage struct {
	name string
	res  fyne.Resource
	tex  app.FetchedTexture
}

var _ app.UIImage = (*UIImage)(nil)

func (i *UIImage) Name() string {
	return i.name
}

// Resource returns the image's resource. For asset backed images this is
// the finest streamed level so far and can be nil early on.
func (i *UIImage) Resource() fyne.Resource {
	if i.tex != nil {
		if r := i.tex.Resource(); r != nil {
			return r
		}
	}
	return i.res
}

// AssetID returns the ID of the fetched texture backing this image, or
// uuid.Nil for static images.
func (i *UIImage) AssetID() uuid.UUID {
	if i.tex == nil {
		return uuid.Nil
	}
	return i.tex.ID()
}

// Texture returns the backing fetched texture, or nil for static images.
func (i *UIImage) Texture() app.FetchedTexture {
	return i.tex
}

// Registry maps image names to static resources or asset server textures.
// The zero value is not usable, create one with NewRegistry.
type Registry struct {
	textures app.TextureService

	mu     sync.RWMutex
	static map[string]fyne.Resource
	assets map[string]uuid.UUID
	images map[string]*UIImage
}

var _ app.ImageRegistry = (*Registry)(nil)

// NewRegistry returns a new Registry. The texture service may be nil when
// no asset backed names will be registered.
func NewRegistry(textures app.TextureService) *Registry {
	return &Registry{
		textures: textures,
		static:   make(map[string]fyne.Resource),
		assets:   make(map[string]uuid.UUID),
		images:   make(map[string]*UIImage),
	}
}

// Register adds a static resource under a name.
func (r *Registry) Register(name string, res fyne.Resource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.static[name] = res
	delete(r.images, name)
}

// RegisterAsset adds a name backed by a texture on the asset server.
// The texture is fetched lazily on first lookup.
func (r *Registry) RegisterAsset(name string, id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets[name] = id
	delete(r.images, name)
}

// Lookup resolves a registered image by name. Asset backed names request
// their texture at the given boost level on first resolution.
func (r *Registry) Lookup(name string, boost app.BoostLevel) (app.UIImage, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if img, ok := r.images[name]; ok {
		return img, true
	}
	if res, ok := r.static[name]; ok {
		img := &UIImage{name: name, res: res}
		r.images[name] = img
		return img, true
	}
	if id, ok := r.assets[name]; ok {
		tex := r.textures.Fetch(id, app.FetchTypeDefault, true, boost, app.ClassFixed)
		if tex == nil {
			return nil, false
		}
		img := &UIImage{name: name, tex: tex}
		r.images[name] = img
		return img, true
	}
	return nil, false
}
