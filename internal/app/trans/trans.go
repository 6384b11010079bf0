// Package trans provides the localized UI string table.
package trans

import (
	"embed"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
	"golang.org/x/text/language"

	"github.com/mkoiev/gridpeek/internal/app"
)

//go:embed strings/*.yaml
var stringsFS embed.FS

var supported = []language.Tag{
	language.English, // first entry is the fallback
	language.German,
}

var matcher = language.NewMatcher(supported)

// Table resolves localized UI strings by key.
// Missing keys fall back to English and finally to the key itself.
type Table struct {
	strings  map[string]string
	fallback map[string]string
}

var _ app.Translator = (*Table)(nil)

// New returns the string table best matching the given locale preferences,
// e.g. the values of the LANG environment variable or the OS locale.
func New(locales ...string) (*Table, error) {
	normalized := make([]string, 0, len(locales))
	for _, l := range locales {
		// POSIX locales like "de_DE.UTF-8" need to become BCP 47 tags
		l, _, _ = strings.Cut(l, ".")
		normalized = append(normalized, strings.ReplaceAll(l, "_", "-"))
	}
	tag, _ := language.MatchStrings(matcher, normalized...)
	base, _ := tag.Base()
	strings, err := loadLanguage(base.String())
	if err != nil {
		return nil, err
	}
	fallback, err := loadLanguage("en")
	if err != nil {
		return nil, err
	}
	return &Table{strings: strings, fallback: fallback}, nil
}

// GetString returns the localized string for a key.
func (t *Table) GetString(key string) string {
	if s, ok := t.strings[key]; ok {
		return s
	}
	if s, ok := t.fallback[key]; ok {
		return s
	}
	slog.Warn("Missing UI string", "key", key)
	return key
}

func loadLanguage(base string) (map[string]string, error) {
	dat, err := stringsFS.ReadFile(fmt.Sprintf("strings/%s.yaml", base))
	if err != nil {
		return nil, fmt.Errorf("load string table %s: %w", base, err)
	}
	m := make(map[string]string)
	if err := yaml.Unmarshal(dat, &m); err != nil {
		return nil, fmt.Errorf("parse string table %s: %w", base, err)
	}
	return m, nil
}
