package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"
)

type requestIDKey struct{}

// RequestIDHeader is checked for an inbound id and set on every response.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns each request a unique id, reusing the inbound header
// when the proxy already set one.
func RequestID() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(c Context) error {
			id := c.Request().Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			c.ResponseWriter().Header().Set(RequestIDHeader, id)
			return next(withContext(c, context.WithValue(c, requestIDKey{}, id)))
		}
	}
}

// RequestIDFromContext returns the id assigned by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestIDLogAttr is a logger context extractor for the request id.
func RequestIDLogAttr(ctx context.Context) (slog.Attr, bool) {
	id := RequestIDFromContext(ctx)
	if id == "" {
		return slog.Attr{}, false
	}
	return slog.String("request_id", id), true
}

// Recover converts a handler panic into a 500 error carrying the stack,
// so one broken page never takes the process down.
func Recover() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(c Context) (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					stack := make([]byte, 4096)
					stack = stack[:runtime.Stack(stack, false)]
					err = ErrInternal(fmt.Errorf("panic: %v\n%s", rec, stack))
				}
			}()
			return next(c)
		}
	}
}

// Logging writes one access log line per request.
func Logging(log *slog.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(c Context) error {
			start := time.Now()
			err := next(c)
			r := c.Request()
			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start).String(),
			}
			if err != nil {
				attrs = append(attrs, "status", Normalize(err).Code)
			}
			log.InfoContext(c, "request", attrs...)
			return err
		}
	}
}

// Timeout bounds handler execution. The deadline propagates to API calls
// through the context.
func Timeout(d time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(c Context) error {
			ctx, cancel := context.WithTimeout(c, d)
			defer cancel()
			return next(withContext(c, ctx))
		}
	}
}

// withContext rebinds the handler context to ctx while keeping the same
// writer and request.
func withContext(c Context, ctx context.Context) Context {
	return &boundContext{Context: c, ctx: ctx}
}

type boundContext struct {
	Context
	ctx context.Context
}

func (b *boundContext) Deadline() (time.Time, bool) { return b.ctx.Deadline() }
func (b *boundContext) Done() <-chan struct{}       { return b.ctx.Done() }
func (b *boundContext) Err() error                  { return b.ctx.Err() }
func (b *boundContext) Value(key any) any           { return b.ctx.Value(key) }
func (b *boundContext) Request() *http.Request      { return b.Context.Request().WithContext(b.ctx) }

func (b *boundContext) Render(component templ.Component) error {
	b.ResponseWriter().Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(b.ctx, b.ResponseWriter())
}
