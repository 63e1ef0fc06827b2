package evaluator

import (
	"testing"
	"time"

	"lys-checkout/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

// b2bProduct builds a product priced through the current variant schema.
func b2bProduct(id, brandID string, wholesale string, unitsPerCarton, moq int) model.Product {
	return model.Product{
		ID:      id,
		BrandID: brandID,
		Name:    "Product " + id,
		Variants: []model.Variant{{
			VariantID: id + "-v1",
			IsDefault: true,
			Pricing: model.VariantPricing{
				B2B: &model.B2BPricing{
					Enabled:        true,
					WholesalePrice: dec(wholesale),
					UnitsPerCarton: unitsPerCarton,
					Currency:       "GBP",
				},
			},
		}},
		MOQ: moq,
	}
}

func cartItem(p model.Product, quantity int) model.CartItem {
	return model.CartItem{
		ID:       "cart-" + p.ID,
		Product:  p,
		Quantity: quantity,
		AddedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func brand(id string) model.Brand {
	return model.Brand{ID: id, Name: "Brand " + id, MOA: decimal.NewNullDecimal(decimal.NewFromInt(3000))}
}

type recordedFallback struct {
	field Field
	id    string
}

type recordingObserver struct {
	calls []recordedFallback
}

func (r *recordingObserver) OnFallback(field Field, id string) {
	r.calls = append(r.calls, recordedFallback{field: field, id: id})
}

func (r *recordingObserver) count(field Field) int {
	n := 0
	for _, c := range r.calls {
		if c.field == field {
			n++
		}
	}
	return n
}
