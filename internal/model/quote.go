package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VolumeDiscountResult is the outcome of selecting a brand's volume discount tier.
type VolumeDiscountResult struct {
	Tier            *VolumeDiscountTier `json:"tier,omitempty"`
	DiscountedTotal decimal.Decimal     `json:"discountedTotal"`
	Savings         decimal.Decimal     `json:"savings"`
	NextTier        *NextVolumeTier     `json:"nextTier,omitempty"`
}

// NextVolumeTier is the closest tier not yet reached and the spend needed to reach it.
type NextVolumeTier struct {
	Threshold          decimal.Decimal `json:"threshold"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	AmountNeeded       decimal.Decimal `json:"amountNeeded"`
}

// DiscountAllocation is the result of spreading discount codes across cart lines.
type DiscountAllocation struct {
	ItemDiscounts   map[string]decimal.Decimal `json:"itemDiscounts"`
	TotalDiscount   decimal.Decimal            `json:"totalDiscount"`
	ApplicableTotal decimal.Decimal            `json:"applicableTotal"`
	FreeShipping    bool                       `json:"freeShipping"`
}

// EvaluateRequest represents the request payload for evaluating a cart.
type EvaluateRequest struct {
	CustomerID    string                `json:"customerId,omitempty"`
	IsNewCustomer bool                  `json:"isNewCustomer,omitempty"`
	IsB2B         bool                  `json:"isB2B"`
	DiscountCodes []string              `json:"discountCodes,omitempty" validate:"dive,required"`
	Items         []EvaluateItemRequest `json:"items" validate:"required,min=1,dive"`
}

// MaxLineQuantity is the largest number of cartons accepted for one product,
// after repeated lines for the same product are merged.
const MaxLineQuantity = 1_000_000

// EvaluateItemRequest represents a single cart line in an evaluate request.
type EvaluateItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0,lte=1000000"`
}

// BrandQuote is the per-brand part of an evaluation.
type BrandQuote struct {
	MOQ            MOQStatus            `json:"moq"`
	VolumeDiscount VolumeDiscountResult `json:"volumeDiscount"`
	UpsellMessage  string               `json:"upsellMessage,omitempty"`
}

// EvaluateResponse represents the response payload for a cart evaluation.
// Total is Subtotal less volume savings and code discounts, floored at zero.
type EvaluateResponse struct {
	ID            uuid.UUID                  `json:"id"`
	Subtotal      decimal.Decimal            `json:"subtotal"`
	Brands        map[string]BrandQuote      `json:"brands"`
	Discounts     []DiscountValidationResult `json:"discounts"`
	Allocation    DiscountAllocation         `json:"allocation"`
	Eligibility   CheckoutEligibility        `json:"eligibility"`
	VolumeSavings decimal.Decimal            `json:"volumeSavings"`
	Total         decimal.Decimal            `json:"total"`
}

// DiscountValidationRequest represents the request payload for validating a single code.
type DiscountValidationRequest struct {
	Code          string          `json:"code" validate:"required"`
	CustomerID    string          `json:"customerId,omitempty"`
	OrderValue    decimal.Decimal `json:"orderValue"`
	ProductIDs    []string        `json:"productIds,omitempty"`
	BrandIDs      []string        `json:"brandIds,omitempty"`
	IsNewCustomer bool            `json:"isNewCustomer,omitempty"`
	IsB2B         bool            `json:"isB2B"`
}
