package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type fixedCount int

func (n fixedCount) Len() int { return int(n) }

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", h.HealthCheck)
	r.GET("/ready", h.ReadinessCheck)
	r.GET("/live", h.LivenessCheck)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthCheckReportsSessions(t *testing.T) {
	h := NewHandler("1.0.0", "test/model", nil, fixedCount(3), func() map[string]interface{} {
		return map[string]interface{}{"enabled": true}
	})
	w := serve(h, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "test/model", resp.Model)
	assert.Equal(t, 3, resp.Sessions)
	assert.Equal(t, true, resp.Cache["enabled"])
}

func TestReadinessFollowsStore(t *testing.T) {
	ok := NewHandler("1", "m", pingFunc(func(context.Context) error { return nil }), nil, nil)
	assert.Equal(t, http.StatusOK, serve(ok, "/ready").Code)

	down := NewHandler("1", "m", pingFunc(func(context.Context) error { return errors.New("connection refused") }), nil, nil)
	w := serve(down, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")

	assert.Equal(t, http.StatusOK, serve(down, "/live").Code)
}
