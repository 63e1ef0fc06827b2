package evaluator

import (
	"lys-checkout/internal/model"

	"github.com/shopspring/decimal"
)

// SelectVolumeDiscount picks the best volume discount tier for a brand subtotal.
//
// Among tiers whose threshold is reached, the one with the highest percentage
// wins even if a higher threshold carries a lower rate; on equal percentages
// the earlier tier is kept. The closest unreached tier is reported as NextTier.
func SelectVolumeDiscount(brand model.Brand, orderTotal decimal.Decimal) model.VolumeDiscountResult {
	result := model.VolumeDiscountResult{
		DiscountedTotal: orderTotal,
		Savings:         decimal.Zero,
	}
	if len(brand.VolumeDiscounts) == 0 {
		return result
	}

	var best *model.VolumeDiscountTier
	for i := range brand.VolumeDiscounts {
		tier := brand.VolumeDiscounts[i]
		if orderTotal.LessThan(tier.Threshold) {
			continue
		}
		if best == nil || tier.DiscountPercentage.GreaterThan(best.DiscountPercentage) {
			best = &tier
		}
	}

	if best != nil {
		result.Tier = best
		result.Savings = orderTotal.Mul(best.DiscountPercentage).Div(hundred)
		result.DiscountedTotal = orderTotal.Sub(result.Savings)
	}

	result.NextTier = nextVolumeTier(brand.VolumeDiscounts, orderTotal)

	return result
}

// nextVolumeTier returns the unreached tier with the lowest threshold, or nil.
func nextVolumeTier(tiers []model.VolumeDiscountTier, orderTotal decimal.Decimal) *model.NextVolumeTier {
	var next *model.VolumeDiscountTier
	for i := range tiers {
		tier := tiers[i]
		if !orderTotal.LessThan(tier.Threshold) {
			continue
		}
		if next == nil || tier.Threshold.LessThan(next.Threshold) {
			next = &tier
		}
	}
	if next == nil {
		return nil
	}
	return &model.NextVolumeTier{
		Threshold:          next.Threshold,
		DiscountPercentage: next.DiscountPercentage,
		AmountNeeded:       next.Threshold.Sub(orderTotal),
	}
}
