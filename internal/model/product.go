package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a wholesale catalogue product.
// Pricing and MOQ fields reflect several generations of the catalogue schema;
// any of them may be absent. Use the evaluator resolvers to read them.
type Product struct {
	ID             string       `json:"id" db:"id"`
	BrandID        string       `json:"brandId" db:"brand_id"`
	Name           string       `json:"name" db:"name"`
	Category       string       `json:"category,omitempty" db:"category"`
	Variants       []Variant    `json:"variants,omitempty" db:"variants"`
	Price          *LegacyPrice `json:"price,omitempty" db:"-"`
	RetailPrice    *RetailPrice `json:"retailPrice,omitempty" db:"-"`
	ItemsPerCarton int          `json:"itemsPerCarton,omitempty" db:"items_per_carton"`
	MOQ            int          `json:"MOQ,omitempty" db:"moq_units"`
	Moq            int          `json:"moq,omitempty" db:"moq"`
	MOQUnit        string       `json:"moqUnit,omitempty" db:"moq_unit"`
	CreatedAt      time.Time    `json:"createdAt" db:"created_at"`
}

// Variant is a sellable variant of a product.
type Variant struct {
	VariantID string         `json:"variantId,omitempty"`
	SKU       string         `json:"sku,omitempty"`
	IsDefault bool           `json:"isDefault,omitempty"`
	Pricing   VariantPricing `json:"pricing"`
}

// VariantPricing holds the per-channel pricing of a variant.
type VariantPricing struct {
	B2B *B2BPricing `json:"b2b,omitempty"`
	B2C *B2CPricing `json:"b2c,omitempty"`
}

// B2BPricing is the wholesale pricing block of a variant.
type B2BPricing struct {
	Enabled          bool            `json:"enabled,omitempty"`
	WholesalePrice   decimal.Decimal `json:"wholesalePrice"`
	MinOrderQuantity int             `json:"minOrderQuantity,omitempty"`
	UnitsPerCarton   int             `json:"unitsPerCarton,omitempty"`
	Currency         string          `json:"currency,omitempty"`
}

// B2CPricing is the retail pricing block of a variant.
type B2CPricing struct {
	Enabled     bool            `json:"enabled,omitempty"`
	RetailPrice decimal.Decimal `json:"retailPrice"`
	Currency    string          `json:"currency,omitempty"`
}

// LegacyPrice is the original flat price block.
type LegacyPrice struct {
	Item      decimal.Decimal `json:"item"`
	Carton    decimal.Decimal `json:"carton"`
	Wholesale decimal.Decimal `json:"wholesale"`
	Retail    decimal.Decimal `json:"retail"`
	Currency  string          `json:"currency,omitempty"`
}

// RetailPrice is the legacy retail price block.
type RetailPrice struct {
	Item decimal.Decimal `json:"item"`
}

// DefaultVariant returns the first variant, or nil when the product has none.
func (p *Product) DefaultVariant() *Variant {
	if len(p.Variants) == 0 {
		return nil
	}
	return &p.Variants[0]
}

// B2B returns the wholesale pricing block of the default variant, if any.
func (p *Product) B2B() *B2BPricing {
	if v := p.DefaultVariant(); v != nil {
		return v.Pricing.B2B
	}
	return nil
}

// B2C returns the retail pricing block of the default variant, if any.
func (p *Product) B2C() *B2CPricing {
	if v := p.DefaultVariant(); v != nil {
		return v.Pricing.B2C
	}
	return nil
}
