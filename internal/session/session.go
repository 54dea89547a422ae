// Package session binds an API bearer token to the browser through an
// encrypted cookie and resolves it to a user profile on each request,
// with a token-keyed cache in front of the API.
package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/vroumauto/webapp/internal/backend"
	"github.com/vroumauto/webapp/internal/modal"
	"github.com/vroumauto/webapp/pkg/cache"
	"github.com/vroumauto/webapp/pkg/cookie"
)

// TokenCookie is the cookie holding the encrypted API token.
const TokenCookie = "va_session"

// DefaultProfileTTL bounds how long a resolved profile is served from
// cache before /auth/me is consulted again.
const DefaultProfileTTL = 5 * time.Minute

// ErrNotAuthenticated is returned by operations that need a logged-in user.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// Session is the per-request authentication state. A zero session is an
// anonymous visitor.
type Session struct {
	Token string
	User  *backend.User
}

// LoggedIn reports whether the session carries a resolved profile.
func (s *Session) LoggedIn() bool { return s != nil && s.User != nil }

// IsAdmin reports whether the session's user holds the admin role.
func (s *Session) IsAdmin() bool { return s.LoggedIn() && s.User.IsAdmin() }

// Manager resolves, establishes and tears down sessions. Safe for
// concurrent use.
type Manager struct {
	cookies  *cookie.Manager
	profiles cache.Cache[backend.User]
	api      *backend.Client
	modals   *modal.Presenter
	log      *slog.Logger
	ttl      time.Duration
}

// Option configures a Manager.
type Option func(*Manager)

// WithProfileTTL overrides how long resolved profiles stay cached.
func WithProfileTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithExpiredNotice queues a dialog through p whenever a rejected token
// forces a logout, so the visitor learns why their state changed.
func WithExpiredNotice(p *modal.Presenter) Option {
	return func(m *Manager) {
		m.modals = p
	}
}

// WithLogger attaches a logger; resolution failures are logged, never
// surfaced to the page.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// New creates a Manager on top of the cookie manager, a profile cache
// and the API client.
func New(cookies *cookie.Manager, profiles cache.Cache[backend.User], api *backend.Client, opts ...Option) *Manager {
	m := &Manager{
		cookies:  cookies,
		profiles: profiles,
		api:      api,
		log:      slog.New(slog.DiscardHandler),
		ttl:      DefaultProfileTTL,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Resolve turns the request's token cookie into a Session. No cookie, or
// a token the API rejects, yields an anonymous session. Rejection clears
// the cookie so the token and the user state never diverge; the cookie is
// only cleared when it still holds the token that failed, and the
// teardown queues a session-expired dialog when a presenter is wired.
// Transient API failures leave the cookie alone and fall back to
// anonymous for this request only.
func (m *Manager) Resolve(w http.ResponseWriter, r *http.Request) *Session {
	token, err := m.cookies.GetEncrypted(r, TokenCookie)
	if err != nil || token == "" {
		if err != nil && !errors.Is(err, cookie.ErrNotFound) {
			// Undecryptable cookie, e.g. after a secret rotation.
			m.cookies.Delete(w, TokenCookie)
		}
		return &Session{}
	}

	user, err := cache.GetOrFetch(r.Context(), m.profiles, token, m.ttl, func(ctx context.Context) (backend.User, error) {
		u, err := m.api.Me(ctx, token)
		if err != nil {
			return backend.User{}, err
		}
		return *u, nil
	})
	if err != nil {
		if backend.IsUnauthorized(err) {
			if m.clearIfCurrent(w, r, token) {
				m.expiredNotice(r.Context(), w, err)
			}
			return &Session{}
		}
		m.log.WarnContext(r.Context(), "session: profile resolution failed", "error", err)
		return &Session{}
	}

	return &Session{Token: token, User: &user}
}

// clearIfCurrent removes the token cookie and the cached profile, but
// only while the request's cookie still carries the token that was
// rejected. A token replaced mid-flight stays untouched. It reports
// whether the session was actually torn down.
func (m *Manager) clearIfCurrent(w http.ResponseWriter, r *http.Request, failed string) bool {
	current, err := m.cookies.GetEncrypted(r, TokenCookie)
	if err == nil && current != failed {
		return false
	}
	m.cookies.Delete(w, TokenCookie)
	_ = m.profiles.Delete(r.Context(), failed)
	return true
}

// expiredNotice queues the session-expired dialog for the next page,
// carrying the API's own message when it sent one.
func (m *Manager) expiredNotice(ctx context.Context, w http.ResponseWriter, cause error) {
	if m.modals == nil {
		return
	}
	msg := "Votre session a expiré. Veuillez vous reconnecter."
	var apiErr *backend.Error
	if errors.As(cause, &apiErr) && apiErr.Message != "" {
		msg = apiErr.Message
	}
	if err := m.modals.Show(w, "Session expirée", msg, modal.TypeError); err != nil {
		m.log.WarnContext(ctx, "session: queue expiry notice", "error", err)
	}
}

// Login exchanges credentials for a token, stores it in the cookie and
// primes the profile cache so the next request skips /auth/me.
func (m *Manager) Login(ctx context.Context, w http.ResponseWriter, creds backend.Credentials) (*backend.User, error) {
	token, user, err := m.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	if err := m.cookies.SetEncrypted(w, TokenCookie, token, 0); err != nil {
		return nil, err
	}
	if user != nil {
		_ = m.profiles.Set(ctx, token, *user, m.ttl)
	}
	return user, nil
}

// Logout drops the token cookie and the cached profile. Calling it
// without a session is a no-op.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) {
	token, err := m.cookies.GetEncrypted(r, TokenCookie)
	m.cookies.Delete(w, TokenCookie)
	if err == nil && token != "" {
		_ = m.profiles.Delete(r.Context(), token)
	}
}

// Refresh drops the cached profile for the session's token so the next
// resolution consults the API again, e.g. after a favorites change.
func (m *Manager) Refresh(ctx context.Context, s *Session) {
	if s == nil || s.Token == "" {
		return
	}
	_ = m.profiles.Delete(ctx, s.Token)
}

type ctxKey struct{}

// Middleware resolves the session once per request and stores it in the
// request context for FromContext.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := m.Resolve(w, r)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, s)))
	})
}

// FromContext returns the session placed by Middleware, or an anonymous
// session when none is present.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(ctxKey{}).(*Session); ok {
		return s
	}
	return &Session{}
}

// LogAttr is a logger context extractor exposing the user id of the
// request's session, for wiring into pkg/logger.
func LogAttr(ctx context.Context) (slog.Attr, bool) {
	s := FromContext(ctx)
	if !s.LoggedIn() {
		return slog.Attr{}, false
	}
	return slog.String("user_id", s.User.ID), true
}
