package web_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vroumauto/webapp/internal/backend"
	"github.com/vroumauto/webapp/internal/web"
)

func TestServerRouting(t *testing.T) {
	t.Parallel()

	srv := web.NewServer()
	srv.Router().GET("/vehicle-details/{id}", func(c web.Context) error {
		_, err := c.ResponseWriter().Write([]byte("vehicle " + c.Param("id")))
		return err
	})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vehicle-details/v42", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "vehicle v42", rec.Body.String())
}

func TestErrorPipeline(t *testing.T) {
	t.Parallel()

	t.Run("http error reaches the error handler", func(t *testing.T) {
		t.Parallel()

		var got *web.HTTPError
		srv := web.NewServer(web.WithErrorHandler(func(c web.Context, e *web.HTTPError) {
			got = e
			c.ResponseWriter().WriteHeader(e.Code)
		}))
		srv.Router().GET("/", func(c web.Context) error {
			return web.ErrNotFound("Véhicule non trouvé.")
		})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		require.NotNil(t, got)
		assert.Equal(t, "Véhicule non trouvé.", got.Message)
	})

	t.Run("api error keeps status and message", func(t *testing.T) {
		t.Parallel()

		e := web.Normalize(&backend.Error{Status: http.StatusForbidden, Message: "Accès refusé"})
		assert.Equal(t, http.StatusForbidden, e.Code)
		assert.Equal(t, "Accès refusé", e.Message)
	})

	t.Run("unknown error becomes 500 with generic message", func(t *testing.T) {
		t.Parallel()

		e := web.Normalize(errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, e.Code)
		assert.NotContains(t, e.Message, "boom")
		assert.ErrorContains(t, e.Err, "boom")
	})
}

func TestRecover(t *testing.T) {
	t.Parallel()

	srv := web.NewServer()
	srv.Router().GET("/", func(c web.Context) error {
		panic("kaboom")
	}, web.Recover())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generated when absent", func(t *testing.T) {
		t.Parallel()

		var inCtx string
		srv := web.NewServer()
		srv.Router().GET("/", func(c web.Context) error {
			inCtx = web.RequestIDFromContext(c)
			return nil
		}, web.RequestID())

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, inCtx)
		assert.Equal(t, inCtx, rec.Header().Get(web.RequestIDHeader))
	})

	t.Run("inbound header reused", func(t *testing.T) {
		t.Parallel()

		srv := web.NewServer()
		srv.Router().GET("/", func(c web.Context) error { return nil }, web.RequestID())

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(web.RequestIDHeader, "proxy-id-1")
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, r)

		assert.Equal(t, "proxy-id-1", rec.Header().Get(web.RequestIDHeader))
	})
}

func TestRenderComponent(t *testing.T) {
	t.Parallel()

	srv := web.NewServer()
	srv.Router().GET("/", func(c web.Context) error {
		return c.Render(templ.Raw("<h1>Accueil</h1>"))
	})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<h1>Accueil</h1>")
}

func TestRouteGroupMiddleware(t *testing.T) {
	t.Parallel()

	guard := func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			if c.Request().Header.Get("X-Role") != "admin" {
				return web.ErrForbidden("Accès réservé aux administrateurs.")
			}
			return next(c)
		}
	}

	srv := web.NewServer()
	srv.Router().Route("/dashboard", func(r web.Router) {
		r.Use(guard)
		r.GET("/", func(c web.Context) error {
			_, err := c.ResponseWriter().Write([]byte("stats"))
			return err
		})
	})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	r := httptest.NewRequest(http.MethodGet, "/dashboard/", nil)
	r.Header.Set("X-Role", "admin")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, r)
	assert.Equal(t, "stats", rec.Body.String())
}
