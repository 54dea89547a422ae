package web

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ErrorHandler renders a failed request. It receives the normalized error
// and must write the response itself.
type ErrorHandler func(Context, *HTTPError)

// Router is the surface handlers register against.
type Router interface {
	GET(path string, h HandlerFunc, mw ...Middleware)
	POST(path string, h HandlerFunc, mw ...Middleware)
	PUT(path string, h HandlerFunc, mw ...Middleware)
	DELETE(path string, h HandlerFunc, mw ...Middleware)

	// Group creates an inline group with its own middleware stack.
	Group(fn func(r Router))

	// Route creates a group sharing a pattern prefix.
	Route(pattern string, fn func(r Router))

	// Use appends middleware to the stack for routes registered after it.
	Use(mw ...Middleware)

	// Mount attaches a plain http.Handler, e.g. a static file server.
	Mount(pattern string, h http.Handler)
}

// Server owns the chi mux and the error pipeline.
type Server struct {
	mux        chi.Router
	log        *slog.Logger
	onError    ErrorHandler
	middleware []Middleware
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the logger used for unhandled errors.
func WithLogger(log *slog.Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithErrorHandler replaces the default plain-text error responder.
func WithErrorHandler(h ErrorHandler) ServerOption {
	return func(s *Server) {
		if h != nil {
			s.onError = h
		}
	}
}

// NewServer creates a Server with the default error responder.
func NewServer(opts ...ServerOption) *Server {
	s := &Server{
		mux: chi.NewRouter(),
		log: slog.New(slog.DiscardHandler),
		onError: func(c Context, e *HTTPError) {
			http.Error(c.ResponseWriter(), e.Message, e.Code)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Router returns the registration surface rooted at the mux.
func (s *Server) Router() Router {
	return &routerAdapter{mux: s.mux, srv: s}
}

// UseHTTP prepends stdlib middleware, e.g. the session resolver.
func (s *Server) UseHTTP(mw ...func(http.Handler) http.Handler) {
	s.mux.Use(mw...)
}

// NotFound sets the handler for unmatched routes.
func (s *Server) NotFound(h HandlerFunc) {
	s.mux.NotFound(s.wrap(h))
}

// wrap adapts a HandlerFunc plus middleware into an http.HandlerFunc,
// funneling returned errors through the error handler.
func (s *Server) wrap(h HandlerFunc, mw ...Middleware) http.HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r)
		if err := h(c); err != nil {
			httpErr := Normalize(err)
			if httpErr.Code >= http.StatusInternalServerError {
				s.log.ErrorContext(c, "request failed",
					"method", r.Method,
					"path", r.URL.Path,
					"status", httpErr.Code,
					"error", httpErr.Error(),
					"cause", httpErr.Err,
				)
			}
			s.onError(c, httpErr)
		}
	}
}

type routerAdapter struct {
	mux chi.Router
	srv *Server
	mw  []Middleware
}

func (r *routerAdapter) handle(h HandlerFunc, mw []Middleware) http.HandlerFunc {
	stack := make([]Middleware, 0, len(r.mw)+len(mw))
	stack = append(stack, r.mw...)
	stack = append(stack, mw...)
	return r.srv.wrap(h, stack...)
}

func (r *routerAdapter) GET(path string, h HandlerFunc, mw ...Middleware) {
	r.mux.Get(path, r.handle(h, mw))
}

func (r *routerAdapter) POST(path string, h HandlerFunc, mw ...Middleware) {
	r.mux.Post(path, r.handle(h, mw))
}

func (r *routerAdapter) PUT(path string, h HandlerFunc, mw ...Middleware) {
	r.mux.Put(path, r.handle(h, mw))
}

func (r *routerAdapter) DELETE(path string, h HandlerFunc, mw ...Middleware) {
	r.mux.Delete(path, r.handle(h, mw))
}

func (r *routerAdapter) Group(fn func(Router)) {
	fn(&routerAdapter{mux: r.mux, srv: r.srv, mw: append([]Middleware{}, r.mw...)})
}

func (r *routerAdapter) Route(pattern string, fn func(Router)) {
	r.mux.Route(pattern, func(sub chi.Router) {
		fn(&routerAdapter{mux: sub, srv: r.srv, mw: r.mw})
	})
}

func (r *routerAdapter) Use(mw ...Middleware) {
	r.mw = append(r.mw, mw...)
}

func (r *routerAdapter) Mount(pattern string, h http.Handler) {
	r.mux.Mount(pattern, h)
}
