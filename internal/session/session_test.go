package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vroumauto/webapp/internal/backend"
	"github.com/vroumauto/webapp/internal/modal"
	"github.com/vroumauto/webapp/internal/session"
	"github.com/vroumauto/webapp/pkg/cache"
	"github.com/vroumauto/webapp/pkg/cookie"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newManager(t *testing.T, apiURL string) (*session.Manager, *cookie.Manager) {
	t.Helper()

	cookies := cookie.New(cookie.WithSecret(testSecret))

	profiles := cache.NewMemory[backend.User]()
	t.Cleanup(func() { profiles.Close() })

	api, err := backend.New(apiURL)
	require.NoError(t, err)

	return session.New(cookies, profiles, api, session.WithProfileTTL(time.Minute)), cookies
}

// requestWithToken builds a request carrying the encrypted token cookie,
// the way a browser would echo it back.
func requestWithToken(t *testing.T, cookies *cookie.Manager, token string) *http.Request {
	t.Helper()

	rec := httptest.NewRecorder()
	require.NoError(t, cookies.SetEncrypted(rec, session.TokenCookie, token, 0))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("no cookie is anonymous", func(t *testing.T) {
		t.Parallel()

		mgr, _ := newManager(t, "http://localhost:0")

		s := mgr.Resolve(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.False(t, s.LoggedIn())
		assert.Empty(t, s.Token)
	})

	t.Run("valid token resolves profile and caches it", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			assert.Equal(t, "Bearer tok-ok", r.Header.Get("Authorization"))
			w.Write([]byte(`{"success":true,"user":{"_id":"u1","email":"a@b.fr","name":"Alice","role":"user","isActive":true}}`))
		}))
		defer srv.Close()

		mgr, cookies := newManager(t, srv.URL)
		r := requestWithToken(t, cookies, "tok-ok")

		s := mgr.Resolve(httptest.NewRecorder(), r)
		require.True(t, s.LoggedIn())
		assert.Equal(t, "tok-ok", s.Token)
		assert.Equal(t, "Alice", s.User.Name)

		// Second resolution is served from cache.
		s = mgr.Resolve(httptest.NewRecorder(), r)
		require.True(t, s.LoggedIn())
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("rejected token clears the cookie", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"msg":"Jeton expiré"}`))
		}))
		defer srv.Close()

		mgr, cookies := newManager(t, srv.URL)
		r := requestWithToken(t, cookies, "tok-stale")

		rec := httptest.NewRecorder()
		s := mgr.Resolve(rec, r)
		assert.False(t, s.LoggedIn())

		var cleared bool
		for _, c := range rec.Result().Cookies() {
			if c.Name == session.TokenCookie && c.MaxAge < 0 {
				cleared = true
			}
		}
		assert.True(t, cleared, "token cookie should be expired")
	})

	t.Run("rejected token queues an expiry dialog", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"msg":"Jeton expiré"}`))
		}))
		defer srv.Close()

		cookies := cookie.New(cookie.WithSecret(testSecret))
		profiles := cache.NewMemory[backend.User]()
		t.Cleanup(func() { profiles.Close() })
		api, err := backend.New(srv.URL)
		require.NoError(t, err)
		modals := modal.New(cookies)
		mgr := session.New(cookies, profiles, api, session.WithExpiredNotice(modals))

		rec := httptest.NewRecorder()
		s := mgr.Resolve(rec, requestWithToken(t, cookies, "tok-stale"))
		assert.False(t, s.LoggedIn())

		// The next page pops the dialog carrying the API's message.
		next := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range rec.Result().Cookies() {
			if c.MaxAge >= 0 {
				next.AddCookie(c)
			}
		}
		m := modals.Pop(httptest.NewRecorder(), next)
		require.NotNil(t, m)
		assert.Equal(t, "Session expirée", m.Title)
		assert.Equal(t, "Jeton expiré", m.Message)
		assert.Equal(t, modal.TypeError, m.Type)
	})

	t.Run("transient failure keeps the cookie", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		mgr, cookies := newManager(t, srv.URL)
		r := requestWithToken(t, cookies, "tok-ok")

		rec := httptest.NewRecorder()
		s := mgr.Resolve(rec, r)
		assert.False(t, s.LoggedIn())

		for _, c := range rec.Result().Cookies() {
			assert.NotEqual(t, session.TokenCookie, c.Name, "cookie must survive a transient failure")
		}
	})

	t.Run("garbage cookie is dropped", func(t *testing.T) {
		t.Parallel()

		mgr, _ := newManager(t, "http://localhost:0")

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: session.TokenCookie, Value: "not-encrypted"})

		rec := httptest.NewRecorder()
		s := mgr.Resolve(rec, r)
		assert.False(t, s.LoggedIn())

		var cleared bool
		for _, c := range rec.Result().Cookies() {
			if c.Name == session.TokenCookie && c.MaxAge < 0 {
				cleared = true
			}
		}
		assert.True(t, cleared)
	})
}

func TestLoginLogout(t *testing.T) {
	t.Parallel()

	var meCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			w.Write([]byte(`{"success":true,"token":"tok-new","user":{"_id":"u1","email":"a@b.fr","name":"Alice","role":"user","isActive":true}}`))
		case "/auth/me":
			meCalls.Add(1)
			w.Write([]byte(`{"success":true,"user":{"_id":"u1","email":"a@b.fr","name":"Alice","role":"user","isActive":true}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	mgr, _ := newManager(t, srv.URL)

	rec := httptest.NewRecorder()
	user, err := mgr.Login(context.Background(), rec, backend.Credentials{Email: "a@b.fr", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)

	// The login response primed the cache: resolving with the issued
	// cookie must not hit /auth/me.
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	s := mgr.Resolve(httptest.NewRecorder(), r)
	require.True(t, s.LoggedIn())
	assert.Zero(t, meCalls.Load())

	// Logout expires the cookie and is safe to repeat.
	out := httptest.NewRecorder()
	mgr.Logout(out, r)
	mgr.Logout(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	var cleared bool
	for _, c := range out.Result().Cookies() {
		if c.Name == session.TokenCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"user":{"_id":"u9","email":"x@y.fr","name":"Xavier","role":"admin","isActive":true}}`))
	}))
	defer srv.Close()

	mgr, cookies := newManager(t, srv.URL)

	var got *session.Session
	h := mgr.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = session.FromContext(r.Context())

		attr, ok := session.LogAttr(r.Context())
		require.True(t, ok)
		assert.Equal(t, "u9", attr.Value.String())
	}))

	h.ServeHTTP(httptest.NewRecorder(), requestWithToken(t, cookies, "tok"))
	require.True(t, got.LoggedIn())
	assert.True(t, got.IsAdmin())

	// Without the middleware the context yields an anonymous session.
	anon := session.FromContext(context.Background())
	assert.False(t, anon.LoggedIn())
	_, ok := session.LogAttr(context.Background())
	assert.False(t, ok)
}
