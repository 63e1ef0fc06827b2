package evaluator

import (
	"lys-checkout/internal/model"
)

// EvaluateCheckout groups cart items by brand and evaluates each brand's MOQ status.
// The cart can be checked out when at least one brand is eligible; lines whose
// brand is not in brands are left out of the summary.
func (e *Evaluator) EvaluateCheckout(items []model.CartItem, brands []model.Brand, discounts []model.DiscountValidationResult) model.CheckoutEligibility {
	return e.evaluateCheckout(e.priceLines(items), brands, discounts)
}

func (e *Evaluator) evaluateCheckout(lines []pricedLine, brands []model.Brand, discounts []model.DiscountValidationResult) model.CheckoutEligibility {
	byID := make(map[string]model.Brand, len(brands))
	for _, b := range brands {
		byID[b.ID] = b
	}

	var order []string
	groups := make(map[string][]pricedLine)
	for _, line := range lines {
		brandID := line.item.Product.BrandID
		if _, ok := groups[brandID]; !ok {
			order = append(order, brandID)
		}
		groups[brandID] = append(groups[brandID], line)
	}

	result := model.CheckoutEligibility{
		EligibleBrands:   []string{},
		IneligibleBrands: []string{},
		Summary:          make(map[string]model.MOQStatus, len(order)),
	}

	for _, brandID := range order {
		brand, ok := byID[brandID]
		if !ok {
			e.observer.OnFallback(FieldBrand, brandID)
			continue
		}

		status := e.moqStatus(brand, groups[brandID], discounts)
		result.Summary[brandID] = status

		if status.CanCheckout {
			result.EligibleBrands = append(result.EligibleBrands, brandID)
		} else {
			result.IneligibleBrands = append(result.IneligibleBrands, brandID)
		}
	}

	result.CanCheckout = len(result.EligibleBrands) > 0

	return result
}
