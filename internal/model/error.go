package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string            `json:"error"`
	Message       string            `json:"message"`
	CorrelationID string            `json:"correlationId,omitempty"`
	Details       map[string]string `json:"details,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeMissingField        = "MISSING_FIELD"
	ErrCodeValidation          = "VALIDATION_FAILED"
	ErrCodeInvalidDiscountCode = "INVALID_DISCOUNT_CODE"
	ErrCodeProductNotFound     = "PRODUCT_NOT_FOUND"
	ErrCodeBrandNotFound       = "BRAND_NOT_FOUND"
	ErrCodeInvalidQuantity     = "INVALID_QUANTITY"
	ErrCodeEmptyCart           = "EMPTY_CART"
	ErrCodeInvalidBrandPolicy  = "INVALID_BRAND_POLICY"
	ErrCodeUnauthorised        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// AsDomainError reports whether err wraps a DomainError and returns it.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Common domain errors
var (
	ErrInvalidDiscountCode = NewDomainError(ErrCodeInvalidDiscountCode, "Discount code is required")
	ErrProductNotFound     = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
	ErrBrandNotFound       = NewDomainError(ErrCodeBrandNotFound, "Brand not found")
	ErrInvalidQuantity     = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrQuantityTooLarge    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must not exceed 1000000 cartons per product")
	ErrEmptyCart           = NewDomainError(ErrCodeEmptyCart, "Cart must contain at least one item")
	ErrInvalidBrandPolicy  = NewDomainError(ErrCodeInvalidBrandPolicy, "Brand policy is invalid")
)
