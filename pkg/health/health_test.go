package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vroumauto/webapp/pkg/health"
)

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	health.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestReadinessAllHealthy(t *testing.T) {
	t.Parallel()

	checks := health.Checks{
		"api":   func(context.Context) error { return nil },
		"redis": func(context.Context) error { return nil },
	}
	rec := httptest.NewRecorder()
	health.ReadinessHandler(checks)(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestReadinessFailingCheck(t *testing.T) {
	t.Parallel()

	checks := health.Checks{
		"api":   func(context.Context) error { return nil },
		"redis": func(context.Context) error { return errors.New("connection refused") },
	}
	req := httptest.NewRequest(http.MethodGet, "/readyz?format=json", nil)
	rec := httptest.NewRecorder()
	health.ReadinessHandler(checks)(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp health.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, health.StatusUnhealthy, resp.Status)
	assert.Equal(t, health.StatusHealthy, resp.Checks["api"].Status)
	assert.Equal(t, "connection refused", resp.Checks["redis"].Error)
}

func TestReadinessTimeout(t *testing.T) {
	t.Parallel()

	checks := health.Checks{
		"slow": func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Second):
				return nil
			}
		},
	}
	rec := httptest.NewRecorder()
	h := health.ReadinessHandler(checks, health.WithTimeout(10*time.Millisecond))
	h(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
