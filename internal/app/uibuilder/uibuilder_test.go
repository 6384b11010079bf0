package uibuilder_test

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoiev/gridpeek/internal/app/uibuilder"
	iwidget "github.com/mkoiev/gridpeek/internal/app/widget"
)

func init() {
	uibuilder.Register("testlabel", func(_ uibuilder.Context, p uibuilder.Params) fyne.CanvasObject {
		return widget.NewLabel(p.String("text", ""))
	})
}

func TestBuild(t *testing.T) {
	t.Run("builds a registered widget type", func(t *testing.T) {
		o, err := uibuilder.Build(uibuilder.Context{}, "testlabel", uibuilder.Params{"text": "hello"})
		require.NoError(t, err)
		label, ok := o.(*widget.Label)
		require.True(t, ok)
		assert.Equal(t, "hello", label.Text)
	})
	t.Run("rejects an unknown widget type", func(t *testing.T) {
		_, err := uibuilder.Build(uibuilder.Context{}, "no-such-widget", uibuilder.Params{})
		assert.Error(t, err)
	})
	t.Run("panics on duplicate registration", func(t *testing.T) {
		assert.Panics(t, func() {
			uibuilder.Register("testlabel", func(uibuilder.Context, uibuilder.Params) fyne.CanvasObject {
				return widget.NewLabel("")
			})
		})
	})
}

func TestLoadLayout(t *testing.T) {
	test.NewTempApp(t)
	t.Run("builds all definitions into a vertical box", func(t *testing.T) {
		// given
		dat := []byte(`
- type: testlabel
  text: first
- type: testlabel
  text: second
`)
		// when
		o, err := uibuilder.LoadLayout(uibuilder.Context{}, dat)
		// then
		require.NoError(t, err)
		box, ok := o.(*fyne.Container)
		require.True(t, ok)
		require.Len(t, box.Objects, 2)
		assert.Equal(t, "first", box.Objects[0].(*widget.Label).Text)
		assert.Equal(t, "second", box.Objects[1].(*widget.Label).Text)
	})
	t.Run("builds a thumbnail definition", func(t *testing.T) {
		// given
		dat := []byte(`
- type: thumbnail
  border_visible: true
  border_color: "#3366ff"
  interactable: true
`)
		// when
		o, err := uibuilder.LoadLayout(uibuilder.Context{}, dat)
		// then
		require.NoError(t, err)
		box := o.(*fyne.Container)
		require.Len(t, box.Objects, 1)
		_, ok := box.Objects[0].(*iwidget.Thumbnail)
		assert.True(t, ok)
	})
	t.Run("rejects a definition without a type tag", func(t *testing.T) {
		dat := []byte(`
- text: first
`)
		_, err := uibuilder.LoadLayout(uibuilder.Context{}, dat)
		assert.Error(t, err)
	})
	t.Run("rejects invalid YAML", func(t *testing.T) {
		_, err := uibuilder.LoadLayout(uibuilder.Context{}, []byte("{not a list"))
		assert.Error(t, err)
	})
}

func TestParams(t *testing.T) {
	p := uibuilder.Params{
		"name":     "value",
		"flag":     true,
		"color":    "#88aaff",
		"badcolor": "zzz",
	}
	t.Run("string accessor", func(t *testing.T) {
		assert.Equal(t, "value", p.String("name", "def"))
		assert.Equal(t, "def", p.String("missing", "def"))
	})
	t.Run("bool accessor", func(t *testing.T) {
		assert.True(t, p.Bool("flag", false))
		assert.False(t, p.Bool("missing", false))
		assert.True(t, p.Bool("missing", true))
	})
	t.Run("color accessor", func(t *testing.T) {
		want := color.NRGBA{R: 0x88, G: 0xaa, B: 0xff, A: 0xff}
		assert.Equal(t, want, p.Color("color", color.Black))
		assert.Equal(t, color.Black, p.Color("missing", color.Black))
		assert.Equal(t, color.Black, p.Color("badcolor", color.Black))
	})
}

func TestParseColorNotations(t *testing.T) {
	test.NewTempApp(t)
	cases := []struct {
		in   string
		want color.NRGBA
	}{
		{"#fff", color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"#3366ff", color.NRGBA{R: 0x33, G: 0x66, B: 0xff, A: 0xff}},
		{"#3366ff80", color.NRGBA{R: 0x33, G: 0x66, B: 0xff, A: 0x80}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			p := uibuilder.Params{"c": tc.in}
			assert.Equal(t, tc.want, p.Color("c", color.Black))
		})
	}
}
