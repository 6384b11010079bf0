// Package widget contains custom widgets with app dependencies.
package widget

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"

	"github.com/mkoiev/gridpeek/internal/app"
)

const (
	thumbnailBorderWidth   = 1
	thumbnailLoadingLeft   = 3
	thumbnailLoadingTop    = 25
	thumbnailCheckerSquare = 8
)

// ThumbnailParams are the construction parameters of a Thumbnail.
// All fields of DefaultThumbnailParams have sensible defaults; only the two
// lookup services are required for a thumbnail which displays anything.
type ThumbnailParams struct {
	BorderColor   color.Color
	BorderVisible bool
	Interactable  bool
	ShowLoading   bool
	ImageName     string // initial value, name or UUID literal

	Textures     app.TextureService
	Images       app.ImageRegistry
	Trans        app.Translator
	Agent        app.AgentSession
	Transparency app.TransparencyContext
}

// DefaultThumbnailParams returns ThumbnailParams with default settings.
func DefaultThumbnailParams() ThumbnailParams {
	return ThumbnailParams{
		BorderColor: theme.Color(theme.ColorNameInputBorder),
		ShowLoading: true,
	}
}

// Thumbnail is a widget displaying either a texture streamed from the asset
// server, a locally registered UI image, or a placeholder.
//
// It must only be used from the main thread, like any Fyne widget. Streaming
// progress arrives through the handle's update signal and triggers a refresh.
type Thumbnail struct {
	widget.DisableableWidget

	// Configuration, immutable after construction.
	borderVisible bool
	borderColor   color.Color
	interactable  bool
	showLoading   bool

	textures     app.TextureService
	images       app.ImageRegistry
	agent        app.AgentSession
	transparency app.TransparencyContext

	loadingText string
	priority    app.BoostLevel
	listenKey   string

	value   Value
	assetID uuid.UUID
	texture app.FetchedTexture
	image   app.UIImage

	hovered bool
	focused bool
}

var _ fyne.Widget = (*Thumbnail)(nil)
var _ fyne.Focusable = (*Thumbnail)(nil)
var _ desktop.Hoverable = (*Thumbnail)(nil)
var _ desktop.Cursorable = (*Thumbnail)(nil)

// NewThumbnail returns a new Thumbnail.
func NewThumbnail(p ThumbnailParams) *Thumbnail {
	w := &Thumbnail{
		borderVisible: p.BorderVisible,
		borderColor:   p.BorderColor,
		interactable:  p.Interactable,
		showLoading:   p.ShowLoading,
		textures:      p.Textures,
		images:        p.Images,
		agent:         p.Agent,
		transparency:  p.Transparency,
		priority:      app.BoostPreview,
		loadingText:   "Loading...",
	}
	if w.borderColor == nil {
		w.borderColor = theme.Color(theme.ColorNameInputBorder)
	}
	if p.Trans != nil {
		w.loadingText = p.Trans.GetString("texture_loading")
	}
	w.listenKey = fmt.Sprintf("thumbnail-%p", w)
	w.ExtendBaseWidget(w)
	if p.ImageName != "" {
		w.SetValue(StringValue(p.ImageName))
	}
	return w
}

// Value returns the currently assigned value.
func (w *Thumbnail) Value() Value {
	return w.value
}

// AssetID returns the resolved identity of the displayed remote texture,
// or uuid.Nil when none applies.
func (w *Thumbnail) AssetID() uuid.UUID {
	return w.assetID
}

// Texture returns the fetched texture handle, or nil.
func (w *Thumbnail) Texture() app.FetchedTexture {
	return w.texture
}

// Image returns the local UI image, or nil.
func (w *Thumbnail) Image() app.UIImage {
	return w.image
}

// SetValue assigns what the thumbnail displays. String values holding a
// UUID literal are treated as asset values. Unresolvable values degrade
// silently to the empty-state rendering.
func (w *Thumbnail) SetValue(v Value) {
	v = v.normalized()
	w.value = v

	if w.texture != nil {
		w.texture.Unlisten(w.listenKey)
		w.texture.Release()
	}
	w.assetID = uuid.Nil
	w.texture = nil
	w.image = nil

	switch v.Kind() {
	case ValueAsset:
		w.assetID = v.Asset()
		if w.assetID != uuid.Nil && w.textures != nil {
			tex := w.textures.Fetch(w.assetID, app.FetchTypeDefault, true, app.BoostNone, app.ClassLOD)
			if tex != nil {
				tex.SetBoostLevel(w.priority)
				tex.RetainRaw(0) // keep the raw image at full resolution
				pw, ph := w.pixelSize(w.Size())
				tex.SetKnownDrawSize(pw, ph)
				tex.Listen(w.listenKey, func() {
					fyne.Do(w.Refresh)
				})
				w.texture = tex
			}
		}
	case ValueString:
		if v.Str() != "" && w.images != nil {
			img, ok := w.images.Lookup(v.Str(), app.BoostUI)
			if ok {
				w.image = img
				if id := img.AssetID(); id != uuid.Nil {
					w.assetID = id
				}
			}
		}
	}
	w.Refresh()
}

// Cursor returns the hand pointer while hovering an interactable thumbnail.
func (w *Thumbnail) Cursor() desktop.Cursor {
	if w.interactable && !w.Disabled() && w.hovered {
		return desktop.PointerCursor
	}
	return desktop.DefaultCursor
}

// MouseIn is a hook that is called if the mouse pointer enters the element.
func (w *Thumbnail) MouseIn(_ *desktop.MouseEvent) {
	w.hovered = true
}

func (w *Thumbnail) MouseMoved(*desktop.MouseEvent) {
	// needed to satisfy the interface only
}

// MouseOut is a hook that is called if the mouse pointer leaves the element.
func (w *Thumbnail) MouseOut() {
	w.hovered = false
}

func (w *Thumbnail) FocusGained() {
	w.focused = true
	w.Refresh()
}

func (w *Thumbnail) FocusLost() {
	w.focused = false
	w.Refresh()
}

func (w *Thumbnail) TypedRune(rune) {
}

func (w *Thumbnail) TypedKey(*fyne.KeyEvent) {
}

// effectiveAlpha returns the opacity the content is rendered with.
// An active enclosing context renders fully opaque.
func (w *Thumbnail) effectiveAlpha() float32 {
	if w.transparency == nil || w.transparency.Active() {
		return 1
	}
	return w.transparency.Current()
}

// isGodlike reports elevated agent privileges.
func (w *Thumbnail) isGodlike() bool {
	return w.agent != nil && w.agent.IsGodlike()
}

// showLoadingText reports whether the loading label is visible. The label
// is suppressed once the texture is nearly sharp (discard level <= 1) even
// if not fully loaded, unless the agent is godlike.
func (w *Thumbnail) showLoadingText() bool {
	if w.texture == nil || !w.showLoading || w.texture.IsFullyLoaded() {
		return false
	}
	return w.texture.DiscardLevel() > 1 || w.isGodlike()
}

// pixelSize converts a widget size to pixels on the widget's canvas.
func (w *Thumbnail) pixelSize(s fyne.Size) (int, int) {
	scale := float32(1)
	if a := fyne.CurrentApp(); a != nil && a.Driver() != nil {
		if cv := a.Driver().CanvasForObject(w); cv != nil {
			scale = cv.Scale()
		}
	}
	return int(s.Width * scale), int(s.Height * scale)
}

func (w *Thumbnail) CreateRenderer() fyne.WidgetRenderer {
	r := &thumbnailRenderer{w: w}
	r.emptyFill = canvas.NewRectangle(color.Transparent)
	r.crossA = canvas.NewLine(color.Black)
	r.crossB = canvas.NewLine(color.Black)
	r.checker = canvas.NewRasterWithPixels(r.checkerAt)
	r.content = canvas.NewImageFromResource(nil)
	r.content.FillMode = canvas.ImageFillStretch
	r.border = canvas.NewRectangle(color.Transparent)
	r.border.StrokeWidth = thumbnailBorderWidth
	r.loadingShadow = canvas.NewText(w.loadingText, color.Black)
	r.loading = canvas.NewText(w.loadingText, color.White)
	r.Refresh()
	return r
}
