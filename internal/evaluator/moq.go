package evaluator

import (
	"math"

	"lys-checkout/internal/model"

	"github.com/shopspring/decimal"
)

// warningRatio is the share of the MOQ requirement, expressed as num/den,
// up to which outstanding units are reported as a warning rather than an error.
const (
	warningRatioNum = 3
	warningRatioDen = 10
)

// HasNoMOQDiscount reports whether any valid result waives MOQ checks.
func HasNoMOQDiscount(discounts []model.DiscountValidationResult) bool {
	for _, d := range discounts {
		if !d.Valid {
			continue
		}
		if d.RemovesMOQ || (d.DiscountCode != nil && d.DiscountCode.RemovesMOQ) {
			return true
		}
	}
	return false
}

// MOA returns the brand's minimum order amount, or the evaluator default.
func (e *Evaluator) MOA(brand model.Brand) decimal.Decimal {
	if brand.MOA.Valid && brand.MOA.Decimal.IsPositive() {
		return brand.MOA.Decimal
	}
	return e.defaultMOA
}

// MOQStatus evaluates a brand's MOQ compliance over the cart items that belong to it.
//
// The MOA and No-MOQ waivers are checked first and, when either applies, the
// brand is met regardless of per-product quantities. Otherwise each product
// with an MOQ contributes its requirement and its shortfall in units.
func (e *Evaluator) MOQStatus(brand model.Brand, items []model.CartItem, discounts []model.DiscountValidationResult) model.MOQStatus {
	brandItems := make([]model.CartItem, 0, len(items))
	for _, item := range items {
		if item.Product.BrandID == brand.ID {
			brandItems = append(brandItems, item)
		}
	}

	return e.moqStatus(brand, e.priceLines(brandItems), discounts)
}

// moqStatus evaluates already priced lines that all belong to brand.
func (e *Evaluator) moqStatus(brand model.Brand, lines []pricedLine, discounts []model.DiscountValidationResult) model.MOQStatus {
	orderTotal := sumLines(lines)
	hasNoMOQ := HasNoMOQDiscount(discounts)
	moa := e.MOA(brand)
	moaExceeded := orderTotal.GreaterThanOrEqual(moa)

	status := model.MOQStatus{
		BrandID:          brand.ID,
		BrandName:        brand.Name,
		Status:           model.MOQMet,
		Met:              true,
		CanCheckout:      true,
		Current:          orderTotal.InexactFloat64(),
		Percentage:       100,
		MOAExceeded:      moaExceeded,
		HasNoMOQDiscount: hasNoMOQ,
		OrderTotal:       orderTotal,
	}

	if moaExceeded || hasNoMOQ {
		if moaExceeded {
			status.Required = moa.InexactFloat64()
		}
		return status
	}

	var requirements, violations int
	var violating []string
	for _, line := range lines {
		moq, ok := ResolveMinOrderQuantity(&line.item.Product)
		if !ok {
			e.observer.OnFallback(FieldMOQ, line.item.Product.ID)
			continue
		}
		if moq < 0 {
			continue
		}

		units := cartonUnits(line.item.Quantity, line.unitsPerCarton)
		requirements += moq
		if units < moq {
			violations += moq - units
			name := line.item.Product.Name
			if name == "" {
				name = line.item.Product.ID
			}
			violating = append(violating, name)
		}
	}

	if requirements == 0 {
		return status
	}

	met := violations == 0
	percentage := float64(requirements-violations) / float64(requirements) * 100
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	status.Met = met
	status.CanCheckout = met
	status.Current = float64(requirements - violations)
	status.Required = float64(requirements)
	status.Percentage = percentage
	status.RemainingItems = violations
	status.ViolatingProducts = violating

	switch {
	case met:
		status.Status = model.MOQMet
	case violations*warningRatioDen <= requirements*warningRatioNum:
		status.Status = model.MOQWarning
	default:
		status.Status = model.MOQError
	}

	return status
}

// cartonUnits returns quantity * perCarton, saturating at math.MaxInt.
func cartonUnits(quantity, perCarton int) int {
	if quantity <= 0 || perCarton <= 0 {
		return 0
	}
	if quantity > math.MaxInt/perCarton {
		return math.MaxInt
	}
	return quantity * perCarton
}
