package model

import (
	"github.com/shopspring/decimal"
)

// Brand represents a wholesale supplier and its order policies.
type Brand struct {
	ID              string               `json:"id" db:"id"`
	Name            string               `json:"name" db:"name"`
	Currency        string               `json:"currency,omitempty" db:"currency"`
	MOA             decimal.NullDecimal  `json:"MOA" db:"moa"`
	VolumeDiscounts []VolumeDiscountTier `json:"volumeDiscounts"`
}

// VolumeDiscountTier grants DiscountPercentage once the brand subtotal reaches Threshold.
type VolumeDiscountTier struct {
	Threshold          decimal.Decimal `json:"threshold" db:"threshold"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage" db:"discount_percentage"`
}

// BrandPolicyRequest represents the request payload for replacing a brand's order policy.
type BrandPolicyRequest struct {
	MOA             *decimal.Decimal       `json:"MOA,omitempty"`
	VolumeDiscounts []VolumeDiscountTierIn `json:"volumeDiscounts" validate:"dive"`
}

// VolumeDiscountTierIn is a single tier in a policy request.
type VolumeDiscountTierIn struct {
	Threshold          decimal.Decimal `json:"threshold"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
}

var hundred = decimal.NewFromInt(100)

// ValidatePolicy checks the brand's MOA and volume discount tiers.
// Thresholds must be positive and unique, percentages must be in (0, 100]
// and MOA, when set, must be positive.
func (b *Brand) ValidatePolicy() error {
	if b.MOA.Valid && !b.MOA.Decimal.IsPositive() {
		return NewDomainError(ErrCodeInvalidBrandPolicy, "MOA (Minimum Order Amount) must be a positive number")
	}

	seen := make(map[string]struct{}, len(b.VolumeDiscounts))
	for _, tier := range b.VolumeDiscounts {
		if !tier.Threshold.IsPositive() {
			return NewDomainError(ErrCodeInvalidBrandPolicy, "Volume discount thresholds must be positive numbers")
		}
		if !tier.DiscountPercentage.IsPositive() || tier.DiscountPercentage.GreaterThan(hundred) {
			return NewDomainError(ErrCodeInvalidBrandPolicy, "Volume discount percentages must be between 0 and 100")
		}
		key := tier.Threshold.String()
		if _, dup := seen[key]; dup {
			return NewDomainError(ErrCodeInvalidBrandPolicy, "Volume discount thresholds must be unique")
		}
		seen[key] = struct{}{}
	}

	return nil
}
