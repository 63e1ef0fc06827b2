package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Evaluation outcomes.
const (
	ResultEligible   = "eligible"
	ResultIneligible = "ineligible"
	ResultError      = "error"
)

// CheckoutMetrics records checkout evaluations and discount code validations.
type CheckoutMetrics struct {
	evaluations *prometheus.CounterVec
	discounts   *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	evaluations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_evaluations_total",
		Help: "Checkout evaluations by outcome.",
	}, []string{"result"})
	discounts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "discount_validations_total",
		Help: "Discount code validations by outcome.",
	}, []string{"valid"})
	reg.MustRegister(evaluations, discounts)
	return &CheckoutMetrics{
		evaluations: evaluations,
		discounts:   discounts,
	}
}

// IncEvaluation increments the evaluation counter for the outcome.
func (c *CheckoutMetrics) IncEvaluation(result string) {
	if c == nil || c.evaluations == nil {
		return
	}
	c.evaluations.WithLabelValues(normalizeLabel(result)).Inc()
}

// IncDiscountValidation increments the validation counter.
func (c *CheckoutMetrics) IncDiscountValidation(valid bool) {
	if c == nil || c.discounts == nil {
		return
	}
	label := "false"
	if valid {
		label = "true"
	}
	c.discounts.WithLabelValues(label).Inc()
}
