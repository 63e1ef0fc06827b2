package evaluator

import (
	"math"
	"testing"

	"lys-checkout/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func noMOQResult() model.DiscountValidationResult {
	return model.DiscountValidationResult{
		Valid: true,
		DiscountCode: &model.DiscountCode{
			Code:         "NOMOQ",
			Type:         model.DiscountKindNoMOQ,
			DiscountType: model.DiscountTypePercentage,
			RemovesMOQ:   true,
		},
		RemovesMOQ: true,
	}
}

func TestEvaluator_MOQStatus_Scenarios(t *testing.T) {
	e := New()
	b := brand("B1")

	tests := []struct {
		name              string
		items             []model.CartItem
		discounts         []model.DiscountValidationResult
		expectedStatus    model.MOQState
		expectedCheckout  bool
		expectedRemaining int
		expectedCurrent   float64
		expectedRequired  float64
		moaExceeded       bool
		hasNoMOQ          bool
	}{
		{
			name:              "Below MOQ and MOA",
			items:             []model.CartItem{cartItem(b2bProduct("P1", "B1", "10", 12, 50), 2)},
			expectedStatus:    model.MOQError,
			expectedCheckout:  false,
			expectedRemaining: 26,
			expectedCurrent:   24,
			expectedRequired:  50,
		},
		{
			name:             "MOQ met",
			items:            []model.CartItem{cartItem(b2bProduct("P1", "B1", "10", 12, 50), 5)},
			expectedStatus:   model.MOQMet,
			expectedCheckout: true,
			expectedCurrent:  50,
			expectedRequired: 50,
		},
		{
			name:             "MOA exceeded overrides MOQ",
			items:            []model.CartItem{cartItem(b2bProduct("P1", "B1", "200", 12, 50), 2)},
			expectedStatus:   model.MOQMet,
			expectedCheckout: true,
			expectedCurrent:  4800,
			expectedRequired: 3000,
			moaExceeded:      true,
		},
		{
			name:             "No-MOQ discount overrides MOQ",
			items:            []model.CartItem{cartItem(b2bProduct("P1", "B1", "10", 12, 50), 1)},
			discounts:        []model.DiscountValidationResult{noMOQResult()},
			expectedStatus:   model.MOQMet,
			expectedCheckout: true,
			expectedCurrent:  120,
			hasNoMOQ:         true,
		},
		{
			name: "Mixed products within warning band",
			items: []model.CartItem{
				cartItem(b2bProduct("P1", "B1", "10", 12, 50), 5),
				cartItem(b2bProduct("P2", "B1", "10", 12, 30), 1),
			},
			expectedStatus:    model.MOQWarning,
			expectedCheckout:  false,
			expectedRemaining: 18,
			expectedCurrent:   62,
			expectedRequired:  80,
		},
		{
			name:             "No MOQ configured",
			items:            []model.CartItem{cartItem(b2bProduct("P1", "B1", "10", 12, 0), 1)},
			expectedStatus:   model.MOQMet,
			expectedCheckout: true,
			expectedCurrent:  120,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := e.MOQStatus(b, tt.items, tt.discounts)

			assert.Equal(t, tt.expectedStatus, status.Status)
			assert.Equal(t, tt.expectedCheckout, status.CanCheckout)
			assert.Equal(t, tt.expectedCheckout, status.Met)
			assert.Equal(t, tt.expectedRemaining, status.RemainingItems)
			assert.InDelta(t, tt.expectedCurrent, status.Current, 0.0001)
			assert.InDelta(t, tt.expectedRequired, status.Required, 0.0001)
			assert.Equal(t, tt.moaExceeded, status.MOAExceeded)
			assert.Equal(t, tt.hasNoMOQ, status.HasNoMOQDiscount)
			assert.Equal(t, "B1", status.BrandID)
			assert.Equal(t, "Brand B1", status.BrandName)
		})
	}
}

func TestEvaluator_MOQStatus_WarningBoundary(t *testing.T) {
	e := New()
	b := brand("B1")

	tests := []struct {
		name     string
		quantity int
		expected model.MOQState
	}{
		{name: "Exactly 30 percent short", quantity: 70, expected: model.MOQWarning},
		{name: "Just past 30 percent short", quantity: 69, expected: model.MOQError},
		{name: "One unit short", quantity: 99, expected: model.MOQWarning},
		{name: "Nothing short", quantity: 100, expected: model.MOQMet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := []model.CartItem{cartItem(b2bProduct("P1", "B1", "1", 1, 100), tt.quantity)}

			status := e.MOQStatus(b, items, nil)

			assert.Equal(t, tt.expected, status.Status)
			assert.Equal(t, tt.expected == model.MOQMet, status.CanCheckout)
		})
	}
}

func TestEvaluator_MOQStatus_ViolatingProducts(t *testing.T) {
	e := New()
	unnamed := b2bProduct("P2", "B1", "10", 1, 10)
	unnamed.Name = ""

	items := []model.CartItem{
		cartItem(b2bProduct("P1", "B1", "10", 12, 50), 1),
		cartItem(unnamed, 1),
		cartItem(b2bProduct("P3", "B1", "10", 12, 12), 1),
	}

	status := e.MOQStatus(brand("B1"), items, nil)

	assert.Equal(t, []string{"Product P1", "P2"}, status.ViolatingProducts)
	assert.Equal(t, 38+9, status.RemainingItems)
}

func TestEvaluator_MOQStatus_IgnoresOtherBrands(t *testing.T) {
	e := New()
	items := []model.CartItem{
		cartItem(b2bProduct("P1", "B1", "10", 12, 50), 5),
		cartItem(b2bProduct("P2", "B2", "500", 12, 500), 1),
	}

	status := e.MOQStatus(brand("B1"), items, nil)

	assert.Equal(t, model.MOQMet, status.Status)
	assertDecimal(t, "600", status.OrderTotal)
}

func TestEvaluator_MOQStatus_InvalidNoMOQIgnored(t *testing.T) {
	e := New()
	invalid := noMOQResult()
	invalid.Valid = false

	items := []model.CartItem{cartItem(b2bProduct("P1", "B1", "10", 12, 50), 1)}
	status := e.MOQStatus(brand("B1"), items, []model.DiscountValidationResult{invalid})

	assert.False(t, status.HasNoMOQDiscount)
	assert.False(t, status.CanCheckout)
}

func TestEvaluator_MOA(t *testing.T) {
	e := New(WithDefaultMOA(decimal.NewFromInt(1500)))

	withMOA := brand("B1")
	assertDecimal(t, "3000", e.MOA(withMOA))

	unset := model.Brand{ID: "B2"}
	assertDecimal(t, "1500", e.MOA(unset))

	negative := model.Brand{ID: "B3", MOA: decimal.NewNullDecimal(decimal.NewFromInt(-1))}
	assertDecimal(t, "1500", e.MOA(negative))

	assertDecimal(t, "3000", New(WithDefaultMOA(decimal.Zero)).DefaultMOA())
}

func TestEvaluator_MOQStatus_ReportsMissingMOQ(t *testing.T) {
	obs := &recordingObserver{}
	e := New(WithObserver(obs))

	items := []model.CartItem{cartItem(b2bProduct("P1", "B1", "10", 12, 0), 1)}
	_ = e.MOQStatus(brand("B1"), items, nil)

	assert.Equal(t, []recordedFallback{{field: FieldMOQ, id: "P1"}}, obs.calls)
}

func TestEvaluator_MOQStatus_LargeQuantityDoesNotWrap(t *testing.T) {
	e := New()
	p := b2bProduct("P1", "B1", "0.0000000000000001", 4, 50)

	status := e.MOQStatus(brand("B1"), []model.CartItem{cartItem(p, 1<<62)}, nil)

	assert.Equal(t, model.MOQMet, status.Status)
	assert.True(t, status.Met)
	assert.Equal(t, 0, status.RemainingItems)
}

func TestCartonUnits(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		perCarton int
		expected  int
	}{
		{name: "Regular line", quantity: 5, perCarton: 12, expected: 60},
		{name: "Zero quantity", quantity: 0, perCarton: 12, expected: 0},
		{name: "Saturates on overflow", quantity: 1 << 62, perCarton: 4, expected: math.MaxInt},
		{name: "Largest exact product", quantity: math.MaxInt / 4, perCarton: 4, expected: math.MaxInt / 4 * 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cartonUnits(tt.quantity, tt.perCarton))
		})
	}
}
