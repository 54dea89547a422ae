package compare_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vroumauto/webapp/internal/compare"
	"github.com/vroumauto/webapp/pkg/cookie"
)

func newList(t *testing.T) *compare.List {
	t.Helper()
	return compare.New(cookie.New())
}

// echo turns the recorder's Set-Cookie headers into a new request, the
// way a browser would on the next page load.
func echo(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			r.AddCookie(c)
		}
	}
	return r
}

func TestAddAndList(t *testing.T) {
	t.Parallel()

	l := newList(t)

	rec := httptest.NewRecorder()
	require.NoError(t, l.Add(rec, httptest.NewRequest(http.MethodGet, "/", nil), "v1"))

	r := echo(t, rec)
	assert.Equal(t, []string{"v1"}, l.IDs(r))
	assert.True(t, l.Contains(r, "v1"))
	assert.False(t, l.Contains(r, "v2"))

	rec2 := httptest.NewRecorder()
	require.NoError(t, l.Add(rec2, r, "v2"))
	assert.Equal(t, []string{"v1", "v2"}, l.IDs(echo(t, rec2)))
}

func TestAddDuplicateIsNoop(t *testing.T) {
	t.Parallel()

	l := newList(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: compare.CookieName, Value: "v1,v2"})

	rec := httptest.NewRecorder()
	require.NoError(t, l.Add(rec, r, "v1"))
	assert.Empty(t, rec.Result().Cookies(), "no rewrite for a duplicate")
}

func TestAddFull(t *testing.T) {
	t.Parallel()

	l := newList(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: compare.CookieName, Value: "v1,v2,v3,v4"})

	err := l.Add(httptest.NewRecorder(), r, "v5")
	assert.ErrorIs(t, err, compare.ErrFull)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	l := newList(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: compare.CookieName, Value: "v1,v2,v3"})

	rec := httptest.NewRecorder()
	l.Remove(rec, r, "v2")
	assert.Equal(t, []string{"v1", "v3"}, l.IDs(echo(t, rec)))

	// Removing the last id clears the cookie entirely.
	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	r2.AddCookie(&http.Cookie{Name: compare.CookieName, Value: "v9"})
	rec2 := httptest.NewRecorder()
	l.Remove(rec2, r2, "v9")
	assert.Empty(t, l.IDs(echo(t, rec2)))
}

func TestOversizedCookieTruncated(t *testing.T) {
	t.Parallel()

	l := newList(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: compare.CookieName, Value: "a,b,c,d,e,f"})

	assert.Len(t, l.IDs(r), compare.Max)
}
