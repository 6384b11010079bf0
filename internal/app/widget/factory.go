package widget

import (
	"fyne.io/fyne/v2"

	"github.com/mkoiev/gridpeek/internal/app/uibuilder"
)

func init() {
	uibuilder.Register("thumbnail", buildThumbnail)
}

// buildThumbnail creates a Thumbnail from a declarative definition.
// Parameter names match the construction contract: border_color,
// border_visible, image_name, interactable, show_loading.
func buildThumbnail(ctx uibuilder.Context, p uibuilder.Params) fyne.CanvasObject {
	tp := DefaultThumbnailParams()
	tp.BorderColor = p.Color("border_color", tp.BorderColor)
	tp.BorderVisible = p.Bool("border_visible", false)
	tp.Interactable = p.Bool("interactable", false)
	tp.ShowLoading = p.Bool("show_loading", true)
	tp.ImageName = p.String("image_name", "")
	tp.Textures = ctx.Textures
	tp.Images = ctx.Images
	tp.Trans = ctx.Trans
	tp.Agent = ctx.Agent
	tp.Transparency = ctx.Transparency
	return NewThumbnail(tp)
}
