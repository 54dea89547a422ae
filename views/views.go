// Package views renders the site's HTML. Components are built directly
// on the templ runtime; pages share the Layout shell and receive their
// data as plain structs, never reaching into the request.
package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/vroumauto/webapp/internal/backend"
	"github.com/vroumauto/webapp/internal/modal"
)

// Page is the data every page shares: document metadata, the signed-in
// user, the pending modal and the comparison counter.
type Page struct {
	Title         string
	CanonicalPath string
	BaseURL       string
	User          *backend.User
	Modal         *modal.Modal
	CompareCount  int
}

// LoggedIn reports whether a user is signed in.
func (p Page) LoggedIn() bool { return p.User != nil }

// IsAdmin reports whether the signed-in user is an administrator.
func (p Page) IsAdmin() bool { return p.User != nil && p.User.IsAdmin() }

// component adapts a write function into a templ.Component.
func component(fn func(ctx context.Context, w io.Writer) error) templ.Component {
	return templ.ComponentFunc(fn)
}

// esc HTML-escapes user-controlled text.
func esc(s string) string { return templ.EscapeString(s) }

// attr escapes a value for an attribute position.
func attr(s string) string { return templ.EscapeString(s) }

func write(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

// writeAll runs the steps in order, stopping at the first error.
func writeAll(steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
