// Package content serves the static editorial pages (about, terms,
// privacy) from embedded Markdown, rendered once and kept in memory.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

//go:embed pages/*.md
var pages embed.FS

// ErrUnknownPage is returned for a slug with no markdown source.
var ErrUnknownPage = errors.New("content: unknown page")

// Store renders and caches the editorial pages. Safe for concurrent use.
type Store struct {
	md       goldmark.Markdown
	policy   *bluemonday.Policy
	mu       sync.RWMutex
	rendered map[string]string
}

// NewStore builds a Store with GFM tables and typographic quotes enabled.
func NewStore() *Store {
	return &Store{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		policy:   bluemonday.UGCPolicy(),
		rendered: make(map[string]string),
	}
}

// HTML returns the sanitized HTML for the page slug ("about", "terms",
// "privacy"). Rendering happens on first access.
func (s *Store) HTML(slug string) (string, error) {
	s.mu.RLock()
	out, ok := s.rendered[slug]
	s.mu.RUnlock()
	if ok {
		return out, nil
	}

	raw, err := pages.ReadFile("pages/" + slug + ".md")
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownPage, slug)
	}

	var buf bytes.Buffer
	if err := s.md.Convert(raw, &buf); err != nil {
		return "", fmt.Errorf("content: render %s: %w", slug, err)
	}
	out = s.policy.Sanitize(buf.String())

	s.mu.Lock()
	s.rendered[slug] = out
	s.mu.Unlock()
	return out, nil
}
