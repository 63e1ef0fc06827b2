package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lys-checkout/internal/handler"
	"lys-checkout/internal/metrics"
	"lys-checkout/internal/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

const testAPIKey = "router-test-key"

func newTestRouter(metricsPath string) http.Handler {
	logger := zerolog.Nop()
	reg := prometheus.NewRegistry()
	handlers := Handlers{
		Product:  handler.NewProductHandler(nil, logger),
		Brand:    handler.NewBrandHandler(nil, logger),
		Checkout: handler.NewCheckoutHandler(nil, logger),
	}
	opts := Options{HTTPMetrics: metrics.NewHTTPMetrics(reg)}
	if metricsPath != "" {
		opts.Gatherer = reg
		opts.MetricsPath = metricsPath
	}
	return New(handlers, testAPIKey, opts, logger)
}

func TestRouter(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		apiKey         string
		metricsPath    string
		expectedStatus int
		bodyContains   string
	}{
		{
			name:           "Health without key",
			method:         http.MethodGet,
			path:           "/health",
			expectedStatus: http.StatusOK,
			bodyContains:   "healthy",
		},
		{
			name:           "Metrics without key",
			method:         http.MethodGet,
			path:           "/metrics",
			metricsPath:    "/metrics",
			expectedStatus: http.StatusOK,
			bodyContains:   "http_request_duration_seconds",
		},
		{
			name:           "Metrics disabled",
			method:         http.MethodGet,
			path:           "/metrics",
			apiKey:         testAPIKey,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "API requires key",
			method:         http.MethodGet,
			path:           "/api/products",
			expectedStatus: http.StatusUnauthorized,
			bodyContains:   "UNAUTHORIZED",
		},
		{
			name:           "Wrong method on evaluate",
			method:         http.MethodGet,
			path:           "/api/checkout/evaluate",
			apiKey:         testAPIKey,
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:           "Wrong method on brand policy",
			method:         http.MethodPost,
			path:           "/api/brands/B1/policy",
			apiKey:         testAPIKey,
			expectedStatus: http.StatusMethodNotAllowed,
		},
		{
			name:           "Unknown route",
			method:         http.MethodGet,
			path:           "/api/orders",
			apiKey:         testAPIKey,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Preflight",
			method:         http.MethodOptions,
			path:           "/api/checkout/evaluate",
			expectedStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(tt.metricsPath)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.apiKey != "" {
				req.Header.Set("X-API-Key", tt.apiKey)
			}
			w := httptest.NewRecorder()

			if tt.path == "/metrics" && tt.metricsPath != "" {
				// Record one request so the histogram has a sample to expose.
				router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
			if tt.bodyContains != "" {
				assert.True(t, strings.Contains(w.Body.String(), tt.bodyContains), w.Body.String())
			}
		})
	}
}
