package web

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/vroumauto/webapp/pkg/htmx"
)

// Context is the per-request view handed to handlers. It embeds the
// request's context.Context so it can be passed to anything blocking.
type Context interface {
	context.Context

	// Request returns the underlying request.
	Request() *http.Request

	// ResponseWriter returns the underlying response writer.
	ResponseWriter() http.ResponseWriter

	// Param returns the named route parameter, or "".
	Param(name string) string

	// Query returns the named query parameter, or "".
	Query(name string) string

	// FormValue returns the named form field, parsing the form on first use.
	FormValue(name string) string

	// Render writes a templ component as an HTML response.
	Render(component templ.Component) error

	// Redirect sends the browser to url, using HX-Redirect for htmx
	// requests so the full page swaps.
	Redirect(url string, code int)

	// IsHTMX reports whether the request was issued by htmx.
	IsHTMX() bool
}

type requestContext struct {
	context.Context
	w http.ResponseWriter
	r *http.Request
}

func newContext(w http.ResponseWriter, r *http.Request) *requestContext {
	return &requestContext{Context: r.Context(), w: w, r: r}
}

func (c *requestContext) Request() *http.Request              { return c.r }
func (c *requestContext) ResponseWriter() http.ResponseWriter { return c.w }
func (c *requestContext) Param(name string) string            { return chi.URLParam(c.r, name) }
func (c *requestContext) Query(name string) string            { return c.r.URL.Query().Get(name) }
func (c *requestContext) FormValue(name string) string        { return c.r.FormValue(name) }
func (c *requestContext) IsHTMX() bool                        { return htmx.IsRequest(c.r) }

func (c *requestContext) Render(component templ.Component) error {
	c.w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.Context, c.w)
}

func (c *requestContext) Redirect(url string, code int) {
	htmx.Redirect(c.w, c.r, url, code)
}
