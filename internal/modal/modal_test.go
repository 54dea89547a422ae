package modal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vroumauto/webapp/internal/modal"
	"github.com/vroumauto/webapp/pkg/cookie"
)

func newPresenter(t *testing.T) *modal.Presenter {
	t.Helper()
	cookies := cookie.New(cookie.WithSecret("0123456789abcdef0123456789abcdef"))
	return modal.New(cookies)
}

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

func TestShowThenPop(t *testing.T) {
	t.Parallel()

	p := newPresenter(t)

	rec := httptest.NewRecorder()
	require.NoError(t, p.Show(rec, "Succès", "Véhicule ajouté aux favoris.", modal.TypeSuccess))

	r := echo(t, rec)
	out := httptest.NewRecorder()

	m := p.Pop(out, r)
	require.NotNil(t, m)
	assert.Equal(t, "Succès", m.Title)
	assert.Equal(t, "Véhicule ajouté aux favoris.", m.Message)
	assert.Equal(t, modal.TypeSuccess, m.Type)
	assert.Empty(t, m.ConfirmURL)

	// Popping cleared the cookie.
	assert.Nil(t, p.Pop(httptest.NewRecorder(), echo(t, out)))
}

func TestPopWithoutShow(t *testing.T) {
	t.Parallel()

	p := newPresenter(t)
	assert.Nil(t, p.Pop(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestLastShowWins(t *testing.T) {
	t.Parallel()

	p := newPresenter(t)

	rec := httptest.NewRecorder()
	require.NoError(t, p.Show(rec, "Premier", "un", modal.TypeInfo))
	require.NoError(t, p.ShowModal(rec, modal.Modal{
		Title:      "Confirmer la suppression",
		Message:    "Supprimer ce véhicule ?",
		Type:       modal.TypeWarning,
		ConfirmURL: "/manage-vehicles/v1/delete",
	}))

	m := p.Pop(httptest.NewRecorder(), echo(t, rec))
	require.NotNil(t, m)
	assert.Equal(t, "Confirmer la suppression", m.Title)
	assert.Equal(t, "/manage-vehicles/v1/delete", m.ConfirmURL)
}

func TestDefaultType(t *testing.T) {
	t.Parallel()

	p := newPresenter(t)

	rec := httptest.NewRecorder()
	require.NoError(t, p.ShowModal(rec, modal.Modal{Title: "Note", Message: "ok"}))

	m := p.Pop(httptest.NewRecorder(), echo(t, rec))
	require.NotNil(t, m)
	assert.Equal(t, modal.TypeInfo, m.Type)
}

func TestGarbageFlashDropped(t *testing.T) {
	t.Parallel()

	p := newPresenter(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "flash_modal", Value: "zzz"})

	rec := httptest.NewRecorder()
	assert.Nil(t, p.Pop(rec, r))

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "flash_modal" && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
