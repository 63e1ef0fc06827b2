package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"lys-checkout/internal/middleware"
	"lys-checkout/internal/model"

	"github.com/rs/zerolog"
)

// domainStatus maps domain error codes to HTTP status codes.
var domainStatus = map[string]int{
	model.ErrCodeInvalidJSON:         http.StatusBadRequest,
	model.ErrCodeMissingField:        http.StatusBadRequest,
	model.ErrCodeValidation:          http.StatusBadRequest,
	model.ErrCodeInvalidDiscountCode: http.StatusBadRequest,
	model.ErrCodeInvalidQuantity:     http.StatusBadRequest,
	model.ErrCodeEmptyCart:           http.StatusBadRequest,
	model.ErrCodeInvalidBrandPolicy:  http.StatusBadRequest,
	model.ErrCodeProductNotFound:     http.StatusNotFound,
	model.ErrCodeBrandNotFound:       http.StatusNotFound,
	model.ErrCodeUnauthorised:        http.StatusUnauthorized,
	model.ErrCodeForbidden:           http.StatusForbidden,
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes a standard error response carrying the request's correlation ID.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]string, logger zerolog.Logger) {
	requestID := middleware.RequestIDFromContext(r.Context())
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.
		Str("request_id", requestID).
		Str("code", code).
		Str("error", message).
		Int("status", status).
		Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: requestID,
		Details:       details,
	})
}

// writeServiceError renders err as a domain or request error, or as a 500 with fallback.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string, logger zerolog.Logger) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		writeError(w, r, http.StatusBadRequest, reqErr.code, reqErr.message, reqErr.details, logger)
		return
	}

	if de, ok := model.AsDomainError(err); ok {
		status, known := domainStatus[de.Code]
		if !known {
			status = http.StatusBadRequest
		}
		writeError(w, r, status, de.Code, de.Message, nil, logger)
		return
	}

	logger.Error().Err(err).Str("request_id", middleware.RequestIDFromContext(r.Context())).Msg(fallback)
	writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, fallback, nil, logger)
}
