package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountKind classifies a discount code for marketing and validation purposes.
type DiscountKind string

const (
	DiscountKindGeneral     DiscountKind = "general"
	DiscountKindAffiliate   DiscountKind = "affiliate"
	DiscountKindSeasonal    DiscountKind = "seasonal"
	DiscountKindVIP         DiscountKind = "vip"
	DiscountKindPromotional DiscountKind = "promotional"
	DiscountKindNoMOQ       DiscountKind = "no-moq"
)

// DiscountType determines how DiscountValue is interpreted.
type DiscountType string

const (
	DiscountTypePercentage   DiscountType = "percentage"
	DiscountTypeFixed        DiscountType = "fixed"
	DiscountTypeFreeShipping DiscountType = "free_shipping"
)

// DiscountCode represents a promotional code.
type DiscountCode struct {
	ID                 string              `json:"id"`
	Code               string              `json:"code"`
	Name               string              `json:"name,omitempty"`
	Description        string              `json:"description,omitempty"`
	Type               DiscountKind        `json:"type,omitempty"`
	DiscountType       DiscountType        `json:"discountType"`
	DiscountValue      decimal.Decimal     `json:"discountValue"`
	MaxUses            int                 `json:"maxUses,omitempty"`
	MaxUsesPerCustomer int                 `json:"maxUsesPerCustomer,omitempty"`
	CurrentUses        int                 `json:"currentUses"`
	ValidFrom          time.Time           `json:"validFrom"`
	ValidUntil         *time.Time          `json:"validUntil,omitempty"`
	Active             bool                `json:"active"`
	RemovesMOQ         bool                `json:"removesMOQ,omitempty"`
	Conditions         *DiscountConditions `json:"conditions,omitempty"`
}

// DiscountConditions restricts where and when a code applies.
type DiscountConditions struct {
	MinOrderValue      decimal.NullDecimal `json:"minOrderValue"`
	MaxOrderValue      decimal.NullDecimal `json:"maxOrderValue"`
	NewCustomersOnly   bool                `json:"newCustomersOnly,omitempty"`
	SpecificProducts   []string            `json:"specificProducts,omitempty"`
	SpecificBrands     []string            `json:"specificBrands,omitempty"`
	SpecificCategories []string            `json:"specificCategories,omitempty"`
	ExcludedProducts   []string            `json:"excludedProducts,omitempty"`
	RequiresAccount    bool                `json:"requiresAccount,omitempty"`
}

// DiscountValidationResult is the outcome of validating a code against an order.
type DiscountValidationResult struct {
	Valid            bool            `json:"valid"`
	Error            string          `json:"error,omitempty"`
	DiscountCode     *DiscountCode   `json:"discountCode,omitempty"`
	ApplicableAmount decimal.Decimal `json:"applicableAmount"`
	DiscountAmount   decimal.Decimal `json:"discountAmount"`
	RemovesMOQ       bool            `json:"removesMOQ"`
}

// InvalidDiscount builds a failed validation result with the given reason.
func InvalidDiscount(reason string) DiscountValidationResult {
	return DiscountValidationResult{Valid: false, Error: reason}
}
