package router

import (
	"net/http"

	"lys-checkout/internal/handler"
	"lys-checkout/internal/metrics"
	"lys-checkout/internal/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Product  *handler.ProductHandler
	Brand    *handler.BrandHandler
	Checkout *handler.CheckoutHandler
}

// Options configures optional router features.
type Options struct {
	// Gatherer serves /metrics when MetricsPath is set.
	Gatherer    prometheus.Gatherer
	MetricsPath string
	HTTPMetrics *metrics.HTTPMetrics
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, apiKey string, opts Options, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	var public []string
	if opts.Gatherer != nil && opts.MetricsPath != "" {
		mux.Handle("GET "+opts.MetricsPath, promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
		public = append(public, opts.MetricsPath)
	}

	mux.HandleFunc("GET /api/products", h.Product.GetAll)
	mux.HandleFunc("GET /api/products/{id}", h.Product.GetByID)

	mux.HandleFunc("GET /api/brands/{id}", h.Brand.GetByID)
	mux.HandleFunc("PUT /api/brands/{id}/policy", h.Brand.UpdatePolicy)

	mux.HandleFunc("POST /api/checkout/evaluate", h.Checkout.Evaluate)
	mux.HandleFunc("POST /api/discounts/validate", h.Checkout.ValidateDiscount)

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS -> APIKeyAuth
	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(apiKey, logger, public...)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger, opts.HTTPMetrics)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
