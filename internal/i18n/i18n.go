// Package i18n holds the interface strings. French is the canonical
// language; other catalogs fall back to it key by key.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales
var locales embed.FS

// DefaultLang is the site's canonical language.
const DefaultLang = "fr"

// Bundle is the loaded translation set. Immutable after New, safe for
// concurrent use.
type Bundle struct {
	messages map[string]string // "lang:key.path"
	langs    []string
}

// New loads every locales/{lang}/*.yml catalog.
func New() (*Bundle, error) {
	b := &Bundle{messages: make(map[string]string)}

	entries, err := locales.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("i18n: read locales: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		lang := entry.Name()
		if err := b.loadLang(lang); err != nil {
			return nil, err
		}
		b.langs = append(b.langs, lang)
	}
	return b, nil
}

func (b *Bundle) loadLang(lang string) error {
	dir := path.Join("locales", lang)
	return fs.WalkDir(locales, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		raw, err := locales.ReadFile(p)
		if err != nil {
			return err
		}
		var tree map[string]any
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			return fmt.Errorf("i18n: parse %s: %w", p, err)
		}
		flatten(b.messages, lang+":", tree)
		return nil
	})
}

func flatten(into map[string]string, prefix string, tree map[string]any) {
	for key, val := range tree {
		switch v := val.(type) {
		case map[string]any:
			flatten(into, prefix+key+".", v)
		case string:
			into[prefix+key] = v
		default:
			into[prefix+key] = fmt.Sprint(v)
		}
	}
}

// Languages returns the loaded language codes.
func (b *Bundle) Languages() []string { return b.langs }

// T resolves key in lang, falling back to French and finally to the key
// itself so a missing translation never blanks the page. Pairs are
// placeholder substitutions: T("fr", "greeting", "name", "Alice")
// replaces {name}.
func (b *Bundle) T(lang, key string, pairs ...string) string {
	msg, ok := b.messages[lang+":"+key]
	if !ok {
		msg, ok = b.messages[DefaultLang+":"+key]
	}
	if !ok {
		return key
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		msg = strings.ReplaceAll(msg, "{"+pairs[i]+"}", pairs[i+1])
	}
	return msg
}
