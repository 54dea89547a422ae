package cookie_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vroumauto/webapp/pkg/cookie"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func roundTrip(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestPlain(t *testing.T) {
	m := cookie.New()

	t.Run("missing cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if _, err := m.Get(r, "nope"); !errors.Is(err, cookie.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("set and get", func(t *testing.T) {
		w := httptest.NewRecorder()
		m.Set(w, "compare", "a,b,c", 3600)

		got, err := m.Get(roundTrip(t, w), "compare")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got != "a,b,c" {
			t.Errorf("value = %q, want a,b,c", got)
		}
	})

	t.Run("rewrite replaces pending header", func(t *testing.T) {
		w := httptest.NewRecorder()
		m.Set(w, "compare", "old", 3600)
		m.Set(w, "other", "kept", 3600)
		m.Set(w, "compare", "new", 3600)

		cookies := w.Result().Cookies()
		if len(cookies) != 2 {
			t.Fatalf("pending cookies = %d, want 2", len(cookies))
		}
		got, err := m.Get(roundTrip(t, w), "compare")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got != "new" {
			t.Errorf("value = %q, want new", got)
		}
	})

	t.Run("delete expires", func(t *testing.T) {
		w := httptest.NewRecorder()
		m.Delete(w, "compare")

		cookies := w.Result().Cookies()
		if len(cookies) != 1 || cookies[0].MaxAge != -1 {
			t.Errorf("expected single expired cookie, got %+v", cookies)
		}
	})
}

func TestEncrypted(t *testing.T) {
	m := cookie.New(cookie.WithSecret(testSecret))

	t.Run("round trip", func(t *testing.T) {
		w := httptest.NewRecorder()
		if err := m.SetEncrypted(w, "tok", "bearer-value", 3600); err != nil {
			t.Fatalf("SetEncrypted: %v", err)
		}

		// Value on the wire must not be the plaintext.
		if w.Result().Cookies()[0].Value == "bearer-value" {
			t.Fatal("cookie value is not encrypted")
		}

		got, err := m.GetEncrypted(roundTrip(t, w), "tok")
		if err != nil {
			t.Fatalf("GetEncrypted: %v", err)
		}
		if got != "bearer-value" {
			t.Errorf("value = %q, want bearer-value", got)
		}
	})

	t.Run("tampered value", func(t *testing.T) {
		w := httptest.NewRecorder()
		if err := m.SetEncrypted(w, "tok", "secret", 0); err != nil {
			t.Fatal(err)
		}
		c := w.Result().Cookies()[0]
		c.Value = "AAAA" + c.Value[4:]

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(c)
		if _, err := m.GetEncrypted(r, "tok"); !errors.Is(err, cookie.ErrDecrypt) {
			t.Errorf("expected ErrDecrypt, got %v", err)
		}
	})

	t.Run("no secret", func(t *testing.T) {
		plain := cookie.New()
		if err := plain.SetEncrypted(httptest.NewRecorder(), "tok", "v", 0); !errors.Is(err, cookie.ErrNoSecret) {
			t.Errorf("expected ErrNoSecret, got %v", err)
		}
	})

	t.Run("short secret ignored", func(t *testing.T) {
		short := cookie.New(cookie.WithSecret("too-short"))
		if err := short.SetEncrypted(httptest.NewRecorder(), "tok", "v", 0); !errors.Is(err, cookie.ErrNoSecret) {
			t.Errorf("expected ErrNoSecret, got %v", err)
		}
	})
}

func TestFlash(t *testing.T) {
	m := cookie.New(cookie.WithSecret(testSecret))

	type note struct {
		Title string `json:"title"`
		Kind  string `json:"kind"`
	}

	t.Run("read once", func(t *testing.T) {
		w := httptest.NewRecorder()
		if err := m.SetFlash(w, "modal", note{Title: "Succès", Kind: "success"}); err != nil {
			t.Fatalf("SetFlash: %v", err)
		}

		r := roundTrip(t, w)
		w2 := httptest.NewRecorder()
		var got note
		if err := m.Flash(w2, r, "modal", &got); err != nil {
			t.Fatalf("Flash: %v", err)
		}
		if got.Title != "Succès" || got.Kind != "success" {
			t.Errorf("flash = %+v", got)
		}

		// Reading must delete the cookie.
		cookies := w2.Result().Cookies()
		if len(cookies) != 1 || cookies[0].MaxAge != -1 {
			t.Errorf("flash cookie not deleted: %+v", cookies)
		}
	})

	t.Run("last write wins", func(t *testing.T) {
		w := httptest.NewRecorder()
		if err := m.SetFlash(w, "modal", note{Title: "first"}); err != nil {
			t.Fatal(err)
		}
		if err := m.SetFlash(w, "modal", note{Title: "second"}); err != nil {
			t.Fatal(err)
		}

		// The second write replaces the pending header, so only one
		// Set-Cookie goes out and its value is the latest one.
		if n := len(w.Result().Cookies()); n != 1 {
			t.Fatalf("pending cookies = %d, want 1", n)
		}

		var got note
		if err := m.Flash(httptest.NewRecorder(), roundTrip(t, w), "modal", &got); err != nil {
			t.Fatal(err)
		}
		if got.Title != "second" {
			t.Errorf("title = %q, want second", got.Title)
		}
	})

	t.Run("missing flash", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		var got note
		if err := m.Flash(httptest.NewRecorder(), r, "modal", &got); !errors.Is(err, cookie.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
