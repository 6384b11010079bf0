package texture

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/anthonynsimon/bild/transform"
	"github.com/google/uuid"
	"github.com/maniartech/signals"

	"github.com/mkoiev/gridpeek/internal/app"
)

// Fetched is a shared handle to a texture streamed from the asset server.
// The same handle is returned to every caller fetching the same asset ID.
// All state is populated asynchronously by the manager's stream workers.
type Fetched struct {
	id     uuid.UUID
	typ    app.FetchType
	mipmap bool
	class  app.Class
	m      *Manager

	// updated is emitted with the discard level after every completed level.
	updated signals.Signal[int]

	mu         sync.Mutex
	boost      app.BoostLevel
	discard    int
	components int
	res        fyne.Resource
	raw        image.Image
	rawRes     fyne.Resource // unscaled resource belonging to raw
	rawLevel   int           // DiscardNone = no retention requested
	knownW     int
	knownH     int
}

var _ app.FetchedTexture = (*Fetched)(nil)

func newFetched(m *Manager, id uuid.UUID, typ app.FetchType, mipmap bool, boost app.BoostLevel, class app.Class) *Fetched {
	return &Fetched{
		id:       id,
		typ:      typ,
		mipmap:   mipmap,
		class:    class,
		m:        m,
		boost:    boost,
		discard:  DiscardNone,
		rawLevel: DiscardNone,
		updated:  signals.New[int](),
	}
}

// ID returns the asset ID of this texture.
func (f *Fetched) ID() uuid.UUID {
	return f.id
}

// Resource returns the finest streamed image so far, or nil before the first
// level has arrived.
func (f *Fetched) Resource() fyne.Resource {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.res
}

// DiscardLevel returns the coarseness of the currently loaded mip level.
// Lower is sharper. It is DiscardNone before any data has arrived.
func (f *Fetched) DiscardLevel() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.discard
}

// Components returns the number of color components of the streamed image.
// A texture with 4 components carries an alpha channel.
func (f *Fetched) Components() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.components
}

// IsFullyLoaded reports whether the texture has been streamed up to the
// level its draw size asks for.
func (f *Fetched) IsFullyLoaded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.discard <= f.desiredDiscard()
}

// BoostLevel returns the current streaming priority of this texture.
func (f *Fetched) BoostLevel() app.BoostLevel {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.boost
}

// SetBoostLevel changes the streaming priority and re-kicks a stalled stream.
func (f *Fetched) SetBoostLevel(b app.BoostLevel) {
	f.mu.Lock()
	f.boost = b
	f.mu.Unlock()
	f.m.enqueue(f)
}

// RetainRaw asks the stream to keep the decoded image of the given discard
// level in memory. It forces streaming down to at least that level.
func (f *Fetched) RetainRaw(level int) {
	f.mu.Lock()
	f.rawLevel = level
	f.mu.Unlock()
	f.m.enqueue(f)
}

// SetKnownDrawSize tells the stream at which pixel size the texture is being
// drawn, so it can stop at an appropriate resolution. Raising the size
// resumes streaming. When a raw image is retained, the resource is rescaled
// to the exact draw size instead.
func (f *Fetched) SetKnownDrawSize(w, h int) {
	f.mu.Lock()
	changed := w != f.knownW || h != f.knownH
	f.knownW, f.knownH = w, h
	var raw image.Image
	if changed && f.raw != nil && w > 0 && h > 0 {
		raw = f.raw
	}
	f.mu.Unlock()
	if !changed {
		return
	}
	if raw != nil {
		f.rescaleFromRaw(raw, w, h)
	}
	f.m.enqueue(f)
}

// Listen registers fn to run after every streamed level. The key must be
// unique per listener and is needed to unregister again.
func (f *Fetched) Listen(key string, fn func()) {
	f.updated.AddListener(func(_ context.Context, _ int) {
		fn()
	}, key)
}

// Unlisten removes the listener registered under key.
func (f *Fetched) Unlisten(key string) {
	f.updated.RemoveListener(key)
}

// Release drops this caller's share of the handle. The manager forgets the
// texture once all shares are released; in-flight work is unaffected.
func (f *Fetched) Release() {
	f.m.release(f.id)
}

// desiredDiscard returns the finest level worth streaming.
// Callers must hold the mutex.
func (f *Fetched) desiredDiscard() int {
	d := DiscardFull
	if f.class == app.ClassLOD && f.knownW > 0 && f.knownH > 0 {
		d = DiscardForSize(max(f.knownW, f.knownH))
	}
	if f.rawLevel < d {
		d = f.rawLevel
	}
	return d
}

// nextLevel returns the next level to stream, or DiscardNone when done.
func (f *Fetched) nextLevel() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	desired := f.desiredDiscard()
	if f.discard <= desired {
		return DiscardNone
	}
	if !f.mipmap {
		return desired
	}
	if f.discard == DiscardNone {
		return DiscardMax
	}
	return f.discard - 1
}

// apply stores a completed level and notifies listeners.
func (f *Fetched) apply(level int, res fyne.Resource, components int, raw image.Image) {
	f.mu.Lock()
	if level >= f.discard {
		f.mu.Unlock()
		return
	}
	f.discard = level
	f.res = res
	f.components = components
	if raw != nil && f.rawLevel != DiscardNone && level <= f.rawLevel {
		f.raw = raw
		f.rawRes = res
	}
	f.mu.Unlock()
	f.updated.Emit(context.Background(), level)
}

// rescaleFromRaw replaces the resource with an exact-size downscale of the
// retained raw image. Once the target covers the raw bounds the unscaled
// resource is restored; upscaling beyond it is left to the renderer.
func (f *Fetched) rescaleFromRaw(raw image.Image, w, h int) {
	b := raw.Bounds()
	if w >= b.Dx() || h >= b.Dy() {
		f.mu.Lock()
		res := f.rawRes
		changed := res != nil && f.res != res
		if changed {
			f.res = res
		}
		level := f.discard
		f.mu.Unlock()
		if changed {
			f.updated.Emit(context.Background(), level)
		}
		return
	}
	img := transform.Resize(raw, w, h, transform.Linear)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		slog.Warn("Failed to rescale texture", "id", f.id, "error", err)
		return
	}
	name := fmt.Sprintf("texture-%s-%dx%d.png", f.id, w, h)
	res := fyne.NewStaticResource(name, buf.Bytes())
	f.mu.Lock()
	f.res = res
	level := f.discard
	f.mu.Unlock()
	f.updated.Emit(context.Background(), level)
}
