// Package backend is the HTTP client for the Vroum-Auto API service.
// Every response arrives wrapped in a common envelope; the client unwraps
// it and surfaces API failures as *Error values carrying the status code
// and the message the API chose to expose.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrEmptyBaseURL is returned by New when no API base URL is given.
	ErrEmptyBaseURL = errors.New("backend: empty base URL")
	// ErrUnexpectedBody is returned when a response body cannot be decoded.
	ErrUnexpectedBody = errors.New("backend: unexpected response body")
)

// Error is an API-level failure: the HTTP status plus the human-readable
// message the API put in its `msg` (or `error`) field.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: request failed with status %d", e.Status)
	}
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.Status)
}

// IsUnauthorized reports whether err is an API error with a 401 status.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is an API error with a 404 status.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client talks to the Vroum-Auto API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// New creates a Client for the API rooted at baseURL (e.g. "https://api.vroum-auto.fr/api").
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// envelope is the common response wrapper used by every API endpoint.
// Endpoints are inconsistent about where the failure message lives, so
// both `msg` and `error` are read.
type envelope struct {
	Success bool            `json:"success"`
	Msg     string          `json:"msg"`
	Err     string          `json:"error"`
	Data    json.RawMessage `json:"data"`
	Count   int             `json:"count"`
	Token   string          `json:"token"`
	User    *User           `json:"user"`
}

func (e *envelope) message() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Err
}

// do performs a single API request. A non-empty token is sent as a bearer
// header. The body, when non-nil, is JSON-encoded. Error responses with an
// undecodable body still yield a *Error so callers never have to care
// whether the API bothered to send JSON.
func (c *Client) do(ctx context.Context, method, path, token string, body any, query url.Values) (*envelope, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("backend: encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("backend: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("backend: read response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Status: resp.StatusCode, Message: env.message()}
	}
	if decodeErr != nil {
		return nil, errors.Join(ErrUnexpectedBody, decodeErr)
	}
	return &env, nil
}

// decodeData unmarshals the envelope's data field into out. A null or
// absent data field leaves out untouched.
func decodeData(env *envelope, out any) error {
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.Join(ErrUnexpectedBody, err)
	}
	return nil
}
