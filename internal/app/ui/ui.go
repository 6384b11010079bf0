// Package ui implements the main window of gridpeek.
package ui

import (
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"

	"github.com/mkoiev/gridpeek/internal/app"
	"github.com/mkoiev/gridpeek/internal/app/texture"
	"github.com/mkoiev/gridpeek/internal/app/uibuilder"
	appwidget "github.com/mkoiev/gridpeek/internal/app/widget"
)

//go:embed layout.yaml
var defaultLayout []byte

const statusUpdateTicker = 5 * time.Second

// UI represents the main User interface of the app.
// Set the service fields before calling Init.
type UI struct {
	FyneApp fyne.App
	Window  fyne.Window

	TextureManager *texture.Manager
	Images         app.ImageRegistry
	Trans          app.Translator
	Agent          app.AgentSession

	thumbnails *fyne.Container
	status     *widget.Label
	stopC      chan struct{}
}

// NewUI returns a new UI.
func NewUI(fyneApp fyne.App) *UI {
	u := &UI{
		FyneApp: fyneApp,
		stopC:   make(chan struct{}),
	}
	return u
}

// Init builds the main window. It must be called after all services are set
// and before ShowAndRun.
func (u *UI) Init() {
	u.Window = u.FyneApp.NewWindow(u.Trans.GetString("app_title"))

	entry := widget.NewEntry()
	entry.SetPlaceHolder(u.Trans.GetString("lookup_placeholder"))
	add := widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
		u.AddThumbnail(entry.Text)
		entry.SetText("")
	})
	entry.OnSubmitted = func(s string) {
		u.AddThumbnail(s)
		entry.SetText("")
	}

	u.thumbnails = container.NewGridWrap(fyne.NewSquareSize(app.ThumbnailUnitSize))
	u.status = widget.NewLabel("")

	sidebar, err := uibuilder.LoadLayout(u.buildContext(), defaultLayout)
	if err != nil {
		slog.Error("Failed to load default layout", "error", err)
		sidebar = container.NewVBox()
	}

	u.Window.SetContent(container.NewBorder(
		container.NewBorder(nil, nil, nil, add, entry),
		u.status,
		sidebar,
		nil,
		container.NewVScroll(u.thumbnails),
	))
	u.Window.Resize(fyne.NewSize(800, 600))

	go u.updateStatusLoop()
}

// AddThumbnail adds a thumbnail for an asset UUID or image name to the grid.
func (u *UI) AddThumbnail(value string) {
	if value == "" {
		return
	}
	p := appwidget.DefaultThumbnailParams()
	p.BorderVisible = true
	p.Interactable = true
	p.Textures = u.TextureManager
	p.Images = u.Images
	p.Trans = u.Trans
	p.Agent = u.Agent
	t := appwidget.NewThumbnail(p)
	t.SetValue(appwidget.StringValue(value))
	u.thumbnails.Add(t)
	u.thumbnails.Refresh()
}

// ShowAndRun shows the main window and runs the app. Blocks until the app
// is closed.
func (u *UI) ShowAndRun() {
	u.Window.SetOnClosed(func() {
		close(u.stopC)
	})
	u.Window.ShowAndRun()
}

func (u *UI) buildContext() uibuilder.Context {
	return uibuilder.Context{
		Textures: u.TextureManager,
		Images:   u.Images,
		Trans:    u.Trans,
		Agent:    u.Agent,
	}
}

// updateStatusLoop periodically refreshes the status bar with streaming
// statistics.
func (u *UI) updateStatusLoop() {
	ticker := time.NewTicker(statusUpdateTicker)
	defer ticker.Stop()
	for {
		select {
		case <-u.stopC:
			return
		case <-ticker.C:
		}
		live, downloaded := u.TextureManager.Stats()
		s := fmt.Sprintf(
			u.Trans.GetString("cache_status"),
			live,
			humanize.Bytes(uint64(downloaded)),
		)
		fyne.Do(func() {
			u.status.SetText(s)
		})
	}
}
