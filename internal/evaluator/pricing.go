package evaluator

import (
	"lys-checkout/internal/model"

	"github.com/shopspring/decimal"
)

// decimalSource reads one candidate value for a field; zero means absent.
type decimalSource func(p *model.Product) decimal.Decimal

// intSource reads one candidate value for a field; zero means absent.
type intSource func(p *model.Product) int

// Each chain is tried in order and the first non-zero value wins.
var (
	wholesalePriceChain = []decimalSource{
		func(p *model.Product) decimal.Decimal {
			if b2b := p.B2B(); b2b != nil {
				return b2b.WholesalePrice
			}
			return decimal.Zero
		},
		func(p *model.Product) decimal.Decimal {
			if p.Price != nil {
				return p.Price.Wholesale
			}
			return decimal.Zero
		},
		func(p *model.Product) decimal.Decimal {
			if p.Price != nil {
				return p.Price.Retail
			}
			return decimal.Zero
		},
		func(p *model.Product) decimal.Decimal {
			if p.RetailPrice != nil {
				return p.RetailPrice.Item
			}
			return decimal.Zero
		},
	}

	retailPriceChain = []decimalSource{
		func(p *model.Product) decimal.Decimal {
			if b2c := p.B2C(); b2c != nil {
				return b2c.RetailPrice
			}
			return decimal.Zero
		},
		func(p *model.Product) decimal.Decimal {
			if p.RetailPrice != nil {
				return p.RetailPrice.Item
			}
			return decimal.Zero
		},
		func(p *model.Product) decimal.Decimal {
			if p.Price != nil {
				return p.Price.Item
			}
			return decimal.Zero
		},
		wholesalePriceChain[0],
	}

	unitsPerCartonChain = []intSource{
		func(p *model.Product) int {
			if b2b := p.B2B(); b2b != nil {
				return b2b.UnitsPerCarton
			}
			return 0
		},
		func(p *model.Product) int { return p.ItemsPerCarton },
	}

	minOrderQuantityChain = []intSource{
		func(p *model.Product) int {
			if b2b := p.B2B(); b2b != nil {
				return b2b.MinOrderQuantity
			}
			return 0
		},
		func(p *model.Product) int { return p.MOQ },
		func(p *model.Product) int { return p.Moq },
	}
)

func firstDecimal(p *model.Product, chain []decimalSource) (decimal.Decimal, bool) {
	for _, source := range chain {
		if v := source(p); !v.IsZero() {
			return v, true
		}
	}
	return decimal.Zero, false
}

func firstInt(p *model.Product, chain []intSource) (int, bool) {
	for _, source := range chain {
		if v := source(p); v != 0 {
			return v, true
		}
	}
	return 0, false
}

// ResolveUnitPrice returns the wholesale unit price of a product.
// ok is false when no pricing field is set and the price defaulted to zero.
func ResolveUnitPrice(p *model.Product) (price decimal.Decimal, ok bool) {
	return firstDecimal(p, wholesalePriceChain)
}

// ResolveRetailUnitPrice returns the consumer unit price of a product,
// preferring B2C variant pricing and falling back to the wholesale price.
func ResolveRetailUnitPrice(p *model.Product) (price decimal.Decimal, ok bool) {
	return firstDecimal(p, retailPriceChain)
}

// ResolveUnitsPerCarton returns the number of units in one carton, defaulting to 1.
func ResolveUnitsPerCarton(p *model.Product) (units int, ok bool) {
	if v, ok := firstInt(p, unitsPerCartonChain); ok {
		return v, true
	}
	return 1, false
}

// ResolveMinOrderQuantity returns the product MOQ in units; 0 means no requirement.
func ResolveMinOrderQuantity(p *model.Product) (moq int, ok bool) {
	return firstInt(p, minOrderQuantityChain)
}

// DiscountedPrice applies a percentage discount to a price.
func DiscountedPrice(price, percentage decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(1).Sub(percentage.Div(hundred)))
}

// Savings returns the difference between the original and the discounted price.
func Savings(original, discounted decimal.Decimal) decimal.Decimal {
	return original.Sub(discounted)
}

var hundred = decimal.NewFromInt(100)

// pricedLine is a cart line with its resolved pricing.
type pricedLine struct {
	item           model.CartItem
	unitPrice      decimal.Decimal
	unitsPerCarton int
	total          decimal.Decimal
}

func (e *Evaluator) priceLine(item model.CartItem) pricedLine {
	price, ok := ResolveUnitPrice(&item.Product)
	if !ok {
		e.observer.OnFallback(FieldUnitPrice, item.Product.ID)
	}
	units, ok := ResolveUnitsPerCarton(&item.Product)
	if !ok {
		e.observer.OnFallback(FieldUnitsPerCarton, item.Product.ID)
	}
	return pricedLine{
		item:           item,
		unitPrice:      price,
		unitsPerCarton: units,
		total:          price.Mul(decimal.NewFromInt(int64(units))).Mul(decimal.NewFromInt(int64(item.Quantity))),
	}
}

func (e *Evaluator) priceLines(items []model.CartItem) []pricedLine {
	lines := make([]pricedLine, len(items))
	for i, item := range items {
		lines[i] = e.priceLine(item)
	}
	return lines
}

func sumLines(lines []pricedLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.total)
	}
	return total
}

// LineTotal returns unitPrice * unitsPerCarton * quantity for a cart line.
func (e *Evaluator) LineTotal(item model.CartItem) decimal.Decimal {
	return e.priceLine(item).total
}

// CartTotal returns the sum of line totals across items.
func (e *Evaluator) CartTotal(items []model.CartItem) decimal.Decimal {
	return sumLines(e.priceLines(items))
}

// PricedCart is a cart snapshot whose lines were priced once. Fallbacks are
// reported to the observer when the cart is priced, not again by the stages
// that read it.
type PricedCart struct {
	evaluator *Evaluator
	lines     []pricedLine
	total     decimal.Decimal
}

// PriceCart resolves the pricing of every line in items.
func (e *Evaluator) PriceCart(items []model.CartItem) PricedCart {
	lines := e.priceLines(items)
	return PricedCart{evaluator: e, lines: lines, total: sumLines(lines)}
}

// Total returns the sum of line totals.
func (c PricedCart) Total() decimal.Decimal {
	return c.total
}

// Eligibility evaluates per-brand MOQ status over the priced lines.
func (c PricedCart) Eligibility(brands []model.Brand, discounts []model.DiscountValidationResult) model.CheckoutEligibility {
	return c.evaluator.evaluateCheckout(c.lines, brands, discounts)
}

// Allocate spreads validated discount codes across the priced lines.
func (c PricedCart) Allocate(discounts []model.DiscountValidationResult) model.DiscountAllocation {
	return allocate(c.lines, discounts)
}
