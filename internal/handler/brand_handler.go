package handler

import (
	"net/http"

	"lys-checkout/internal/model"
	"lys-checkout/internal/service"

	"github.com/rs/zerolog"
)

// BrandHandler handles brand policy HTTP requests.
type BrandHandler struct {
	service service.BrandService
	logger  zerolog.Logger
}

// NewBrandHandler creates a new brand handler.
func NewBrandHandler(service service.BrandService, logger zerolog.Logger) *BrandHandler {
	return &BrandHandler{
		service: service,
		logger:  logger.With().Str("handler", "brand").Logger(),
	}
}

// GetByID handles GET /api/brands/{id} requests.
func (h *BrandHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	brandID := r.PathValue("id")
	if brandID == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, "brand ID is required", nil, h.logger)
		return
	}

	brand, err := h.service.GetByID(r.Context(), brandID)
	if err != nil {
		writeServiceError(w, r, err, "failed to retrieve brand", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, brand)
}

// UpdatePolicy handles PUT /api/brands/{id}/policy requests.
func (h *BrandHandler) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	brandID := r.PathValue("id")
	if brandID == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, "brand ID is required", nil, h.logger)
		return
	}

	var req model.BrandPolicyRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeServiceError(w, r, err, "invalid request body", h.logger)
		return
	}

	brand, err := h.service.UpdatePolicy(r.Context(), brandID, &req)
	if err != nil {
		writeServiceError(w, r, err, "failed to update brand policy", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, brand)
}
