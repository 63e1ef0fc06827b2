package handler

import (
	"net/http"

	"lys-checkout/internal/model"
	"lys-checkout/internal/service"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles cart evaluation and discount validation requests.
type CheckoutHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.CheckoutService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// Evaluate handles POST /api/checkout/evaluate requests.
func (h *CheckoutHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req model.EvaluateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeServiceError(w, r, err, "invalid request body", h.logger)
		return
	}

	resp, err := h.service.Evaluate(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, "failed to evaluate cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ValidateDiscount handles POST /api/discounts/validate requests.
// An invalid code is a 200 with valid=false; only malformed requests fail.
func (h *CheckoutHandler) ValidateDiscount(w http.ResponseWriter, r *http.Request) {
	var req model.DiscountValidationRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeServiceError(w, r, err, "invalid request body", h.logger)
		return
	}

	result, err := h.service.ValidateDiscount(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, "failed to validate discount code", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
