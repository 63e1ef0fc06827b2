package metrics

import (
	"lys-checkout/internal/evaluator"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics counts catalogue values that fell back to a default during evaluation.
// It implements evaluator.Observer.
type CatalogMetrics struct {
	fallbacks *prometheus.CounterVec
}

// NewCatalogMetrics registers the catalogue data-quality metrics on the provided registerer.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	fallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fallback_total",
		Help: "Catalogue fields that were missing and replaced with a default.",
	}, []string{"field"})
	reg.MustRegister(fallbacks)
	return &CatalogMetrics{fallbacks: fallbacks}
}

// OnFallback increments the fallback counter for the field.
func (c *CatalogMetrics) OnFallback(field evaluator.Field, _ string) {
	if c == nil || c.fallbacks == nil {
		return
	}
	c.fallbacks.WithLabelValues(normalizeLabel(string(field))).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
