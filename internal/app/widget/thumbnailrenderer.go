package widget

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
)

type thumbnailMode int

const (
	modeEmpty thumbnailMode = iota
	modeTexture
	modeLocal
)

type thumbnailRenderer struct {
	w     *Thumbnail
	alpha float32

	emptyFill     *canvas.Rectangle
	crossA        *canvas.Line
	crossB        *canvas.Line
	checker       *canvas.Raster
	content       *canvas.Image
	border        *canvas.Rectangle
	loadingShadow *canvas.Text
	loading       *canvas.Text
}

var _ fyne.WidgetRenderer = (*thumbnailRenderer)(nil)

func (r *thumbnailRenderer) mode() thumbnailMode {
	if r.w.texture != nil {
		return modeTexture
	}
	if r.w.image != nil {
		return modeLocal
	}
	return modeEmpty
}

func (r *thumbnailRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{
		r.emptyFill, r.crossA, r.crossB,
		r.checker, r.content,
		r.border,
		r.loadingShadow, r.loading,
	}
}

func (r *thumbnailRenderer) MinSize() fyne.Size {
	return fyne.NewSquareSize(theme.IconInlineSize())
}

func (r *thumbnailRenderer) Layout(size fyne.Size) {
	full := size
	innerPos := fyne.NewPos(0, 0)
	innerSize := full
	if r.w.borderVisible {
		r.border.Move(fyne.NewPos(0, 0))
		r.border.Resize(full)
		// the border consumes a 1 unit margin on each side
		innerPos = fyne.NewPos(thumbnailBorderWidth, thumbnailBorderWidth)
		innerSize = fyne.NewSize(
			max(0, full.Width-2*thumbnailBorderWidth),
			max(0, full.Height-2*thumbnailBorderWidth),
		)
	}

	r.checker.Move(innerPos)
	r.checker.Resize(innerSize)

	// A local image covers the full widget rect, a streamed texture only
	// the area inside the border.
	if r.mode() == modeLocal {
		r.content.Move(fyne.NewPos(0, 0))
		r.content.Resize(full)
	} else {
		r.content.Move(innerPos)
		r.content.Resize(innerSize)
	}

	r.emptyFill.Move(innerPos)
	r.emptyFill.Resize(innerSize)
	r.crossA.Position1 = innerPos
	r.crossA.Position2 = innerPos.Add(fyne.NewPos(innerSize.Width, innerSize.Height))
	r.crossB.Position1 = innerPos.Add(fyne.NewPos(0, innerSize.Height))
	r.crossB.Position2 = innerPos.Add(fyne.NewPos(innerSize.Width, 0))

	loadingPos := innerPos.Add(fyne.NewPos(thumbnailLoadingLeft, thumbnailLoadingTop))
	r.loading.Move(loadingPos)
	r.loadingShadow.Move(loadingPos.Add(fyne.NewPos(1, 1)))

	// Feed the rendered size back into streaming resolution selection.
	if r.w.texture != nil {
		pw, ph := r.w.pixelSize(innerSize)
		r.w.texture.SetKnownDrawSize(pw, ph)
	}
}

func (r *thumbnailRenderer) Refresh() {
	w := r.w
	r.alpha = w.effectiveAlpha()

	if w.borderVisible {
		if w.focused {
			r.border.StrokeColor = theme.Color(theme.ColorNameFocus)
		} else {
			r.border.StrokeColor = w.borderColor
		}
		r.border.Show()
	} else {
		r.border.Hide()
	}

	mode := r.mode()
	showChecker := false
	switch mode {
	case modeTexture:
		res := w.texture.Resource()
		r.content.Resource = res
		if res != nil {
			r.content.Show()
		} else {
			r.content.Hide()
		}
		// translucent textures are drawn over a checkerboard
		showChecker = res != nil && w.texture.Components() == 4
	case modeLocal:
		res := w.image.Resource()
		r.content.Resource = res
		if res != nil {
			r.content.Show()
		} else {
			r.content.Hide()
		}
	case modeEmpty:
		r.content.Resource = nil
		r.content.Hide()
	}
	r.content.Translucency = float64(1 - r.alpha)

	if showChecker {
		r.checker.Show()
	} else {
		r.checker.Hide()
	}

	if mode == modeEmpty {
		a := uint8(float32(0xff) * r.alpha)
		r.emptyFill.FillColor = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: a}
		r.emptyFill.Show()
		r.crossA.Show()
		r.crossB.Show()
	} else {
		r.emptyFill.Hide()
		r.crossA.Hide()
		r.crossB.Hide()
	}

	if w.showLoadingText() {
		r.loading.Show()
		r.loadingShadow.Show()
	} else {
		r.loading.Hide()
		r.loadingShadow.Hide()
	}

	r.Layout(w.Size())
	for _, o := range r.Objects() {
		canvas.Refresh(o)
	}
}

// Destroy releases the widget's shares of its display handles. The
// referenced textures survive independently if held elsewhere.
func (r *thumbnailRenderer) Destroy() {
	w := r.w
	if w.texture != nil {
		w.texture.Unlisten(w.listenKey)
		w.texture.Release()
		w.texture = nil
	}
	w.image = nil
}

func (r *thumbnailRenderer) checkerAt(x, y, _, _ int) color.Color {
	a := uint8(float32(0xff) * r.alpha)
	if ((x/thumbnailCheckerSquare)+(y/thumbnailCheckerSquare))%2 == 0 {
		return color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: a}
	}
	return color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: a}
}
