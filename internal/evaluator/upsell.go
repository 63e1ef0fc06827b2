package evaluator

import (
	"fmt"

	"lys-checkout/internal/model"

	"github.com/shopspring/decimal"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"GBP": "£",
	"EUR": "€",
	"CHF": "CHF ",
}

// FormatCurrency renders an amount with two decimals and the currency symbol.
// Unknown currencies are prefixed with their code; an empty code means USD.
func FormatCurrency(amount decimal.Decimal, currency string) string {
	if currency == "" {
		currency = "USD"
	}
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency
	}
	return symbol + amount.StringFixed(2)
}

// UpsellMessage returns the "spend more" message for the brand's next volume tier.
// ok is false when the brand has no tiers or every tier is already reached.
func UpsellMessage(brand model.Brand, currentTotal decimal.Decimal, currency string) (msg string, ok bool) {
	next := nextVolumeTier(brand.VolumeDiscounts, currentTotal)
	if next == nil {
		return "", false
	}
	return fmt.Sprintf("Add %s to get %s%% off your %s order!",
		FormatCurrency(next.AmountNeeded, currency),
		next.DiscountPercentage.String(),
		brand.Name,
	), true
}
