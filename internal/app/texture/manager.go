// Package texture implements the streaming texture manager.
//
// Textures are fetched from the asset server progressively, coarse mip
// levels first, and shared between all interested parties through
// deduplicated handles.
package texture

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/mkoiev/gridpeek/internal/app"
	"github.com/mkoiev/gridpeek/internal/cache"
	"github.com/mkoiev/gridpeek/internal/singleinstance"
)

var (
	ErrHTTPError   = errors.New("http error")
	ErrNoImage     = errors.New("no image from asset server")
	ErrInvalidSize = errors.New("invalid size")
	ErrOffline     = errors.New("offline")
)

// HTTPError represents a HTTP response with status code >= 400.
type HTTPError struct {
	StatusCode int
	Status     string
}

func (r HTTPError) Error() string {
	return fmt.Sprintf("HTTP error: %s", r.Status)
}

// Is matches the ErrHTTPError sentinel, so callers can test for any HTTP
// error without knowing the status code.
func (r HTTPError) Is(target error) bool {
	return target == ErrHTTPError
}

const (
	workerCount    = 4
	missingTimeout = time.Hour
)

type entry struct {
	f    *Fetched
	refs int
}

// Manager streams textures from the asset server and hands out shared,
// deduplicated handles. Downloaded bytes are cached through the injected
// cache service.
//
// When isOffline is set, only already cached levels are served and handles
// for unknown textures stay permanently coarse.
type Manager struct {
	baseURL    string
	cache      app.CacheService
	httpClient *http.Client
	isOffline  bool

	limiter *rate.Limiter
	sfg     *singleflight.Group
	running *singleinstance.Group
	missing *cache.Cache

	downloaded atomic.Int64

	mu       sync.Mutex
	textures map[uuid.UUID]*entry

	qmu    sync.Mutex
	qcond  *sync.Cond
	queue  [app.BoostHigh + 1][]*Fetched
	closed bool
}

var _ app.TextureService = (*Manager)(nil)

// New returns a new Manager and starts its stream workers.
//
// When no httpClient (nil) is provided it will use the default client.
// Make sure to close the manager again to stop the workers.
func New(c app.CacheService, httpClient *http.Client, baseURL string, isOffline bool) *Manager {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	m := &Manager{
		baseURL:    baseURL,
		cache:      c,
		httpClient: httpClient,
		isOffline:  isOffline,
		limiter:    rate.NewLimiter(rate.Limit(20), 10),
		sfg:        new(singleflight.Group),
		running:    singleinstance.NewGroup(),
		missing:    cache.New(),
		textures:   make(map[uuid.UUID]*entry),
	}
	m.qcond = sync.NewCond(&m.qmu)
	for range workerCount {
		go m.worker()
	}
	return m
}

// Close stops the stream workers. Handles remain usable but stall.
func (m *Manager) Close() {
	m.qmu.Lock()
	defer m.qmu.Unlock()
	m.closed = true
	m.qcond.Broadcast()
}

// Fetch returns the shared handle for a texture and schedules its stream.
// Fetching the same ID again returns the same handle. A Nil ID returns nil.
func (m *Manager) Fetch(id uuid.UUID, typ app.FetchType, mipmap bool, boost app.BoostLevel, class app.Class) app.FetchedTexture {
	if id == uuid.Nil {
		return nil
	}
	m.mu.Lock()
	e, ok := m.textures[id]
	if ok {
		e.refs++
	} else {
		e = &entry{f: newFetched(m, id, typ, mipmap, boost, class), refs: 1}
		m.textures[id] = e
	}
	m.mu.Unlock()
	m.enqueue(e.f)
	return e.f
}

// Stats returns the number of live handles and the total bytes downloaded.
func (m *Manager) Stats() (live int, downloaded int64) {
	m.mu.Lock()
	live = len(m.textures)
	m.mu.Unlock()
	return live, m.downloaded.Load()
}

func (m *Manager) release(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.textures[id]
	if !ok {
		return
	}
	e.refs--
	if e.refs <= 0 {
		delete(m.textures, id)
	}
}

func (m *Manager) enqueue(f *Fetched) {
	b := f.BoostLevel()
	if b < app.BoostNone || b > app.BoostHigh {
		b = app.BoostNone
	}
	m.qmu.Lock()
	defer m.qmu.Unlock()
	if m.closed {
		return
	}
	m.queue[b] = append(m.queue[b], f)
	m.qcond.Signal()
}

// next blocks until a texture is queued and returns the one with the
// highest boost level. It returns nil once the manager is closed.
func (m *Manager) next() *Fetched {
	m.qmu.Lock()
	defer m.qmu.Unlock()
	for {
		for b := len(m.queue) - 1; b >= 0; b-- {
			if len(m.queue[b]) > 0 {
				f := m.queue[b][0]
				m.queue[b] = m.queue[b][1:]
				return f
			}
		}
		if m.closed {
			return nil
		}
		m.qcond.Wait()
	}
}

func (m *Manager) worker() {
	for {
		f := m.next()
		if f == nil {
			return
		}
		m.stream(f)
	}
}

// stream downloads missing levels for a handle, coarse to fine, until the
// desired level is reached. Concurrent streams for the same handle are
// suppressed. A suppressed duplicate may have carried a raised target, so
// the target is re-checked after every completed run.
func (m *Manager) stream(f *Fetched) {
	for {
		if m.missing.Exists(f.id) {
			return
		}
		_, err, aborted := m.running.Do(f.id.String(), func() (any, error) {
			for {
				level := f.nextLevel()
				if level == DiscardNone {
					return nil, nil
				}
				if err := m.streamLevel(f, level); err != nil {
					return nil, err
				}
			}
		})
		if aborted {
			return
		}
		var httpErr HTTPError
		switch {
		case err == nil:
		case errors.Is(err, ErrOffline):
			slog.Debug("Skipped texture download while offline", "id", f.id)
			return
		case errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound:
			m.missing.Set(f.id, struct{}{}, missingTimeout)
			slog.Warn("Texture not found on asset server", "id", f.id)
			return
		default:
			slog.Warn("Failed to stream texture", "id", f.id, "error", err)
			return
		}
		if f.nextLevel() == DiscardNone {
			return
		}
	}
}

func (m *Manager) streamLevel(f *Fetched, level int) error {
	size := SizeForDiscard(level)
	url, err := AssetURL(m.baseURL, f.id, size)
	if err != nil {
		return err
	}
	dat, err := m.bytes(url)
	if err != nil {
		return err
	}
	img, _, err := image.Decode(bytes.NewReader(dat))
	if err != nil {
		return fmt.Errorf("decode texture %s: %w", f.id, err)
	}
	name := fmt.Sprintf("texture-%s-%d", f.id, size)
	f.apply(level, fyne.NewStaticResource(name, dat), componentCount(img), img)
	return nil
}

// bytes returns the payload of a URL from cache or - if not found - will
// try to fetch it from the asset server.
func (m *Manager) bytes(url string) ([]byte, error) {
	key := "texture-" + makeMD5Hash(url)
	dat, found := m.cache.Get(key)
	if found {
		return dat, nil
	}
	if m.isOffline {
		return nil, ErrOffline
	}
	x, err, _ := m.sfg.Do(key, func() (any, error) {
		if err := m.limiter.Wait(context.Background()); err != nil {
			return nil, err
		}
		byt, err := loadDataFromURL(url, m.httpClient)
		if err != nil {
			return nil, err
		}
		m.downloaded.Add(int64(len(byt)))
		m.cache.Set(key, byt, 0)
		return byt, nil
	})
	if err != nil {
		return nil, err
	}
	return x.([]byte), nil
}

func loadDataFromURL(url string, client *http.Client) ([]byte, error) {
	r, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer r.Body.Close()
	if r.StatusCode >= 400 {
		return nil, HTTPError{StatusCode: r.StatusCode, Status: r.Status}
	}
	dat, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(dat) == 0 {
		return nil, fmt.Errorf("%s: %w", url, ErrNoImage)
	}
	return dat, nil
}

// componentCount reports the number of color components of an image.
// Images which can prove they are opaque count as RGB.
func componentCount(img image.Image) int {
	type opaquer interface {
		Opaque() bool
	}
	if o, ok := img.(opaquer); ok && o.Opaque() {
		return 3
	}
	return 4
}

func makeMD5Hash(text string) string {
	hash := md5.Sum([]byte(text))
	return hex.EncodeToString(hash[:])
}
