package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/barbershop/appointments-backend/internal/auth"
	"github.com/barbershop/appointments-backend/internal/metrics"
)

func newTestRouter(health func(context.Context) error, public ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	metrics.NewBookingMetrics(reg).ObserveAvailability("open")

	return NewRouter(Config{
		CORSOrigins: []string{"http://localhost:3000"},
		JWTManager:  auth.NewJWTManager("secret", time.Hour),
		Gatherer:    reg,
		Health:      health,
		Public:      public,
		VoiceToken:  "token",
	}, Handlers{})
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthz(t *testing.T) {
	w := get(newTestRouter(nil), "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(newTestRouter(func(context.Context) error { return errors.New("db down") }), "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	w := get(newTestRouter(nil), "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "barbershop_availability_queries_total")
}

func TestDashboardRoutesRequireAuth(t *testing.T) {
	r := newTestRouter(nil)
	for _, path := range []string{"/v1/appointments", "/v1/customers", "/v1/blocked-times", "/v1/settings", "/v1/auth/me"} {
		assert.Equal(t, http.StatusUnauthorized, get(r, path).Code, path)
	}
}

func TestPublicMiddlewareGuardsBookingRoutes(t *testing.T) {
	limited := func(c *gin.Context) { c.AbortWithStatus(http.StatusTooManyRequests) }
	r := newTestRouter(nil, limited)

	assert.Equal(t, http.StatusTooManyRequests, get(r, "/v1/availability?date=2026-10-19").Code)

	req := httptest.NewRequest(http.MethodPost, "/v1/voice/webhook", nil)
	req.Header.Set("X-Voice-Token", "token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/voice/webhook", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code, "token is checked before the limiter")
}
