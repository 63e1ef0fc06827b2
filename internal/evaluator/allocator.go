package evaluator

import (
	"lys-checkout/internal/model"

	"github.com/shopspring/decimal"
)

// AllocateDiscounts applies validated discount codes to the cart and spreads
// each code's amount across the lines it applies to in proportion to their
// totals. Codes are processed in order and stack additively; invalid results,
// results without a code payload and unknown discount types are skipped.
//
// ApplicableTotal is the cart total before any discount.
func (e *Evaluator) AllocateDiscounts(items []model.CartItem, discounts []model.DiscountValidationResult) model.DiscountAllocation {
	return allocate(e.priceLines(items), discounts)
}

func allocate(lines []pricedLine, discounts []model.DiscountValidationResult) model.DiscountAllocation {
	allocation := model.DiscountAllocation{
		ItemDiscounts:   make(map[string]decimal.Decimal),
		TotalDiscount:   decimal.Zero,
		ApplicableTotal: sumLines(lines),
	}

	for _, result := range discounts {
		if !result.Valid || result.DiscountCode == nil {
			continue
		}
		code := result.DiscountCode

		applicable := applicableLines(lines, code.Conditions)
		applicableTotal := sumLines(applicable)
		if !applicableTotal.IsPositive() {
			continue
		}

		var amount decimal.Decimal
		switch code.DiscountType {
		case model.DiscountTypePercentage:
			amount = applicableTotal.Mul(code.DiscountValue).Div(hundred)
		case model.DiscountTypeFixed:
			amount = decimal.Min(code.DiscountValue, applicableTotal)
		case model.DiscountTypeFreeShipping:
			allocation.FreeShipping = true
			continue
		default:
			continue
		}
		if amount.IsNegative() {
			amount = decimal.Zero
		}

		for _, line := range applicable {
			share := line.total.Mul(amount).Div(applicableTotal)
			id := line.item.Product.ID
			allocation.ItemDiscounts[id] = allocation.ItemDiscounts[id].Add(share)
		}

		allocation.TotalDiscount = allocation.TotalDiscount.Add(amount)
	}

	return allocation
}

// applicableLines filters lines by a code's product or brand restriction.
// A product list takes precedence over a brand list.
func applicableLines(lines []pricedLine, conditions *model.DiscountConditions) []pricedLine {
	if conditions == nil {
		return lines
	}

	var match func(p *model.Product) bool
	switch {
	case len(conditions.SpecificProducts) > 0:
		ids := toSet(conditions.SpecificProducts)
		match = func(p *model.Product) bool {
			_, ok := ids[p.ID]
			return ok
		}
	case len(conditions.SpecificBrands) > 0:
		ids := toSet(conditions.SpecificBrands)
		match = func(p *model.Product) bool {
			_, ok := ids[p.BrandID]
			return ok
		}
	default:
		return lines
	}

	filtered := make([]pricedLine, 0, len(lines))
	for _, line := range lines {
		if match(&line.item.Product) {
			filtered = append(filtered, line)
		}
	}
	return filtered
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
