// Package web is the HTTP kernel: a thin chi wrapper whose handlers
// return errors, a request context carrying the response writer and
// route params, and the middleware stack shared by every page.
package web

// HandlerFunc handles one request. A returned error is routed to the
// server's error handler; handlers never write error responses themselves.
type HandlerFunc func(Context) error

// Middleware wraps a HandlerFunc.
type Middleware func(HandlerFunc) HandlerFunc
