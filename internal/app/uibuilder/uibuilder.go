// Package uibuilder instantiates widgets from declarative YAML definitions.
//
// Widget packages register a builder under their type tag; layout files
// reference widgets by tag and surface construction parameters as named
// fields.
package uibuilder

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"github.com/goccy/go-yaml"

	"github.com/mkoiev/gridpeek/internal/app"
)

// Context carries the services injected into built widgets.
type Context struct {
	Textures     app.TextureService
	Images       app.ImageRegistry
	Trans        app.Translator
	Agent        app.AgentSession
	Transparency app.TransparencyContext
}

// Params are the named construction parameters of a widget definition.
// Typed accessors fall back to defaults on missing or malformed values.
type Params map[string]any

func (p Params) String(key, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

func (p Params) Bool(key string, def bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}

func (p Params) Color(key string, def color.Color) color.Color {
	v, ok := p[key].(string)
	if !ok {
		return def
	}
	c, err := parseHexColor(v)
	if err != nil {
		return def
	}
	return c
}

// BuildFunc builds a widget from its construction parameters.
type BuildFunc func(ctx Context, p Params) fyne.CanvasObject

var (
	mu       sync.RWMutex
	registry = make(map[string]BuildFunc)
)

// Register adds a widget builder under a type tag.
// It panics when the tag is already taken.
func Register(tag string, fn BuildFunc) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := registry[tag]; ok {
		panic("uibuilder: duplicate registration for " + tag)
	}
	registry[tag] = fn
}

// Build instantiates a single widget by type tag.
func Build(ctx Context, tag string, p Params) (fyne.CanvasObject, error) {
	mu.RLock()
	fn, ok := registry[tag]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("uibuilder: unknown widget type %q", tag)
	}
	return fn(ctx, p), nil
}

// LoadLayout parses a YAML layout document, a list of widget definitions
// with a "type" tag each, and returns them stacked in a vertical box.
func LoadLayout(ctx Context, dat []byte) (fyne.CanvasObject, error) {
	var defs []map[string]any
	if err := yaml.Unmarshal(dat, &defs); err != nil {
		return nil, fmt.Errorf("uibuilder: parse layout: %w", err)
	}
	box := container.NewVBox()
	for i, def := range defs {
		tag, ok := def["type"].(string)
		if !ok {
			return nil, fmt.Errorf("uibuilder: definition %d has no type tag", i)
		}
		p := Params{}
		for k, v := range def {
			if k != "type" {
				p[k] = v
			}
		}
		o, err := Build(ctx, tag, p)
		if err != nil {
			return nil, err
		}
		box.Add(o)
	}
	return box, nil
}

// parseHexColor parses "#rgb", "#rrggbb" and "#rrggbbaa" notations.
func parseHexColor(s string) (color.Color, error) {
	s = strings.TrimPrefix(s, "#")
	var r, g, b, a uint64
	a = 0xff
	var err error
	switch len(s) {
	case 3:
		if r, err = strconv.ParseUint(strings.Repeat(s[0:1], 2), 16, 8); err != nil {
			return nil, err
		}
		if g, err = strconv.ParseUint(strings.Repeat(s[1:2], 2), 16, 8); err != nil {
			return nil, err
		}
		if b, err = strconv.ParseUint(strings.Repeat(s[2:3], 2), 16, 8); err != nil {
			return nil, err
		}
	case 8:
		if a, err = strconv.ParseUint(s[6:8], 16, 8); err != nil {
			return nil, err
		}
		fallthrough
	case 6:
		if r, err = strconv.ParseUint(s[0:2], 16, 8); err != nil {
			return nil, err
		}
		if g, err = strconv.ParseUint(s[2:4], 16, 8); err != nil {
			return nil, err
		}
		if b, err = strconv.ParseUint(s[4:6], 16, 8); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("invalid color literal %q", s)
	}
	return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, nil
}
