package backend_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vroumauto/webapp/internal/backend"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("empty base URL", func(t *testing.T) {
		t.Parallel()

		_, err := backend.New("   ")
		require.ErrorIs(t, err, backend.ErrEmptyBaseURL)
	})

	t.Run("trailing slash trimmed", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/vehicles", r.URL.Path)
			w.Write([]byte(`{"success":true,"data":[]}`))
		}))
		defer srv.Close()

		client, err := backend.New(srv.URL + "/")
		require.NoError(t, err)

		_, _, err = client.ListVehicles(context.Background(), backend.VehicleFilter{})
		require.NoError(t, err)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("success returns token and user", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/auth/login", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			w.Write([]byte(`{"success":true,"token":"tok-1","user":{"_id":"u1","email":"a@b.fr","name":"Alice","role":"user","isActive":true}}`))
		}))
		defer srv.Close()

		client, err := backend.New(srv.URL)
		require.NoError(t, err)

		token, user, err := client.Login(context.Background(), backend.Credentials{Email: "a@b.fr", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, "tok-1", token)
		require.NotNil(t, user)
		assert.Equal(t, "u1", user.ID)
		assert.Equal(t, "Alice", user.Name)
		assert.False(t, user.IsAdmin())
	})

	t.Run("failure surfaces msg field", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"msg":"Identifiants invalides"}`))
		}))
		defer srv.Close()

		client, err := backend.New(srv.URL)
		require.NoError(t, err)

		_, _, err = client.Login(context.Background(), backend.Credentials{})
		require.Error(t, err)
		assert.True(t, backend.IsUnauthorized(err))
		assert.Contains(t, err.Error(), "Identifiants invalides")
	})

	t.Run("failure surfaces error field when msg absent", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"success":false,"error":"Champs manquants"}`))
		}))
		defer srv.Close()

		client, err := backend.New(srv.URL)
		require.NoError(t, err)

		_, _, err = client.Login(context.Background(), backend.Credentials{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Champs manquants")
	})

	t.Run("non-JSON error body still yields an API error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("<html>Bad Gateway</html>"))
		}))
		defer srv.Close()

		client, err := backend.New(srv.URL)
		require.NoError(t, err)

		_, _, err = client.Login(context.Background(), backend.Credentials{})
		var apiErr *backend.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	})
}

func TestPasswordRecoveryPaths(t *testing.T) {
	t.Parallel()

	t.Run("forgot password", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/auth/forgotpassword", r.URL.Path)
			w.Write([]byte(`{"success":true,"msg":"Email envoyé"}`))
		}))
		defer srv.Close()

		client, err := backend.New(srv.URL)
		require.NoError(t, err)

		msg, err := client.ForgotPassword(context.Background(), "a@b.fr")
		require.NoError(t, err)
		assert.Equal(t, "Email envoyé", msg)
	})

	t.Run("reset password carries token in path", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/auth/resetpassword/tok-42", r.URL.Path)
			w.Write([]byte(`{"success":true,"msg":"Mot de passe mis à jour"}`))
		}))
		defer srv.Close()

		client, err := backend.New(srv.URL)
		require.NoError(t, err)

		msg, err := client.ResetPassword(context.Background(), "tok-42", "new-pass")
		require.NoError(t, err)
		assert.Equal(t, "Mot de passe mis à jour", msg)
	})

	t.Run("contact form", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/auth/contact", r.URL.Path)
			w.Write([]byte(`{"success":true,"msg":"Message reçu"}`))
		}))
		defer srv.Close()

		client, err := backend.New(srv.URL)
		require.NoError(t, err)

		msg, err := client.Contact(context.Background(), backend.ContactMessage{Email: "a@b.fr", Message: "Bonjour"})
		require.NoError(t, err)
		assert.Equal(t, "Message reçu", msg)
	})
}

func TestMe(t *testing.T) {
	t.Parallel()

	t.Run("sends bearer token", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer tok-42", r.Header.Get("Authorization"))
			w.Write([]byte(`{"success":true,"user":{"_id":"u1","email":"a@b.fr","role":"admin","isActive":true}}`))
		}))
		defer srv.Close()

		client, err := backend.New(srv.URL)
		require.NoError(t, err)

		user, err := client.Me(context.Background(), "tok-42")
		require.NoError(t, err)
		assert.True(t, user.IsAdmin())
	})

	t.Run("profile in data field", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":true,"data":{"_id":"u2","email":"c@d.fr","name":"Carol"}}`))
		}))
		defer srv.Close()

		client, err := backend.New(srv.URL)
		require.NoError(t, err)

		user, err := client.Me(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, "u2", user.ID)
		assert.Equal(t, "Carol", user.Name)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"msg":"Jeton expiré"}`))
		}))
		defer srv.Close()

		client, err := backend.New(srv.URL)
		require.NoError(t, err)

		_, err = client.Me(context.Background(), "stale")
		assert.True(t, backend.IsUnauthorized(err))
	})
}

func TestListVehicles(t *testing.T) {
	t.Parallel()

	t.Run("filter becomes query parameters", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "buy", q.Get("type"))
			assert.Equal(t, "Renault", q.Get("brand"))
			assert.Equal(t, "5000", q.Get("minPrice"))
			assert.Equal(t, "2020", q.Get("minYear"))
			assert.Empty(t, q.Get("maxPrice"))
			assert.Empty(t, q.Get("model"))
			w.Write([]byte(`{"success":true,"count":2,"data":[{"_id":"v1","name":"Clio"},{"_id":"v2","name":"Megane"}]}`))
		}))
		defer srv.Close()

		client, err := backend.New(srv.URL)
		require.NoError(t, err)

		vehicles, count, err := client.ListVehicles(context.Background(), backend.VehicleFilter{
			Type:     "buy",
			Brand:    "Renault",
			MinPrice: 5000,
			MinYear:  2020,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		require.Len(t, vehicles, 2)
		assert.Equal(t, "Clio", vehicles[0].Name)
	})

	t.Run("empty data", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":true,"count":0,"data":null}`))
		}))
		defer srv.Close()

		client, err := backend.New(srv.URL)
		require.NoError(t, err)

		vehicles, count, err := client.ListVehicles(context.Background(), backend.VehicleFilter{})
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Empty(t, vehicles)
	})
}

func TestToggleFavorite(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/favorites/toggle", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true,"msg":"Ajouté aux favoris"}`))
	}))
	defer srv.Close()

	client, err := backend.New(srv.URL)
	require.NoError(t, err)

	msg, err := client.ToggleFavorite(context.Background(), "tok", "v1")
	require.NoError(t, err)
	assert.Equal(t, "Ajouté aux favoris", msg)
}

func TestCancelReservation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/reservations/r1", r.URL.Path)
		w.Write([]byte(`{"success":true,"msg":"Réservation annulée"}`))
	}))
	defer srv.Close()

	client, err := backend.New(srv.URL)
	require.NoError(t, err)

	require.NoError(t, client.CancelReservation(context.Background(), "tok", "r1"))
}

func TestMyTestDrivesForUser(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/testdrives/my", r.URL.Path)
		assert.Equal(t, "u7", r.URL.Query().Get("user"))
		w.Write([]byte(`{"success":true,"data":[{"_id":"t1","status":"pending","testDriveDate":"2026-09-01","testDriveTime":"10:00"}]}`))
	}))
	defer srv.Close()

	client, err := backend.New(srv.URL)
	require.NoError(t, err)

	drives, err := client.MyTestDrives(context.Background(), "tok", "u7")
	require.NoError(t, err)
	require.Len(t, drives, 1)
	assert.Equal(t, "pending", drives[0].Status)
}

func TestVehicleCoverImage(t *testing.T) {
	t.Parallel()

	v := backend.Vehicle{Images: []string{"a", "b", "c"}, CoverImageIndex: 1}
	assert.Equal(t, "b", v.CoverImage())

	v.CoverImageIndex = 9
	assert.Equal(t, "a", v.CoverImage())

	assert.Empty(t, (&backend.Vehicle{}).CoverImage())
}
