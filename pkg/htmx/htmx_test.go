package htmx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vroumauto/webapp/pkg/htmx"
)

func TestIsRequest(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, htmx.IsRequest(r))

	r.Header.Set(htmx.HeaderRequest, "true")
	assert.True(t, htmx.IsRequest(r))
}

func TestRedirectHTMX(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(htmx.HeaderRequest, "true")
	w := httptest.NewRecorder()

	htmx.Redirect(w, r, "/auth", http.StatusSeeOther)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/auth", w.Header().Get(htmx.HeaderRedirect))
}

func TestRedirectPlain(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	htmx.Redirect(w, r, "/auth", http.StatusSeeOther)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth", w.Header().Get("Location"))
	assert.Empty(t, w.Header().Get(htmx.HeaderRedirect))
}

func TestPushURL(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	htmx.PushURL(w, "/buy-vehicles")
	assert.Equal(t, "/buy-vehicles", w.Header().Get(htmx.HeaderPushURL))
}
