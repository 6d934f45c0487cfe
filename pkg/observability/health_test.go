package observability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthRegistry_Check(t *testing.T) {
	t.Run("no checks is healthy", func(t *testing.T) {
		health := NewHealthRegistry().Check(context.Background())
		assert.Equal(t, HealthStatusHealthy, health.Status)
		assert.Empty(t, health.Checks)
	})

	t.Run("one failing check makes the whole unhealthy", func(t *testing.T) {
		registry := NewHealthRegistry()
		registry.Register("store", PingHealthChecker("store", func(context.Context) error { return nil }))
		registry.Register("bus", PingHealthChecker("bus", func(context.Context) error { return errors.New("closed") }))

		health := registry.Check(context.Background())

		assert.Equal(t, HealthStatusUnhealthy, health.Status)
		assert.Equal(t, HealthStatusHealthy, health.Checks["store"].Status)
		assert.Equal(t, "bus check failed: closed", health.Checks["bus"].Message)
		assert.False(t, health.Checks["bus"].Timestamp.IsZero())
	})
}

func TestHealthRegistry_Handler(t *testing.T) {
	registry := NewHealthRegistry()
	registry.Register("store", PingHealthChecker("store", func(context.Context) error { return nil }))

	rec := httptest.NewRecorder()
	registry.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body OverallHealth
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, HealthStatusHealthy, body.Status)

	registry.Register("bus", PingHealthChecker("bus", func(context.Context) error { return errors.New("down") }))
	rec = httptest.NewRecorder()
	registry.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
