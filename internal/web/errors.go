package web

import (
	"errors"
	"net/http"

	"github.com/vroumauto/webapp/internal/backend"
)

// HTTPError carries everything the error page needs. Err is for the log,
// Message for the visitor.
type HTTPError struct {
	Err     error
	Message string
	Title   string
	Code    int
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Code)
}

func (e *HTTPError) Unwrap() error { return e.Err }

// ErrBadRequest builds a 400 error.
func ErrBadRequest(message string) *HTTPError {
	return &HTTPError{Code: http.StatusBadRequest, Message: message}
}

// ErrUnauthorized builds a 401 error.
func ErrUnauthorized(message string) *HTTPError {
	return &HTTPError{Code: http.StatusUnauthorized, Message: message}
}

// ErrForbidden builds a 403 error.
func ErrForbidden(message string) *HTTPError {
	return &HTTPError{Code: http.StatusForbidden, Message: message}
}

// ErrNotFound builds a 404 error.
func ErrNotFound(message string) *HTTPError {
	return &HTTPError{Code: http.StatusNotFound, Message: message}
}

// ErrInternal builds a 500 error wrapping err; the visitor sees a generic
// message, the log sees err.
func ErrInternal(err error) *HTTPError {
	return &HTTPError{Code: http.StatusInternalServerError, Err: err, Message: "Une erreur interne est survenue."}
}

// Normalize turns any error into an *HTTPError. API errors keep their
// status and message; everything else becomes a 500.
func Normalize(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	var apiErr *backend.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.Status)
		}
		return &HTTPError{Code: apiErr.Status, Message: msg, Err: err}
	}
	return ErrInternal(err)
}
