package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// MOQState is the graduated MOQ compliance signal of a brand.
type MOQState int

const (
	// MOQMet means the brand can be checked out.
	MOQMet MOQState = iota
	// MOQWarning means violations exist but are within 30% of the requirement.
	MOQWarning
	// MOQError means violations exceed 30% of the requirement.
	MOQError
)

func (s MOQState) String() string {
	switch s {
	case MOQMet:
		return "met"
	case MOQWarning:
		return "warning"
	case MOQError:
		return "error"
	}
	return fmt.Sprintf("MOQState(%d)", int(s))
}

// MarshalJSON encodes the state as its lowercase name.
func (s MOQState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a lowercase state name.
func (s *MOQState) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "met":
		*s = MOQMet
	case "warning":
		*s = MOQWarning
	case "error":
		*s = MOQError
	default:
		return fmt.Errorf("unknown MOQ status %q", name)
	}
	return nil
}

// MOQStatus is the per-brand MOQ/MOA evaluation result.
//
// Current and Required are unit counts on the per-product path. When the MOA
// or a No-MOQ code waives the check, Current carries the order total and
// Required the MOA (or 0).
type MOQStatus struct {
	BrandID           string          `json:"brandId"`
	BrandName         string          `json:"brandName"`
	Status            MOQState        `json:"status"`
	Met               bool            `json:"met"`
	Current           float64         `json:"current"`
	Required          float64         `json:"required"`
	Percentage        float64         `json:"percentage"`
	RemainingItems    int             `json:"remainingItems"`
	MOAExceeded       bool            `json:"moaExceeded"`
	HasNoMOQDiscount  bool            `json:"hasNoMOQDiscount"`
	CanCheckout       bool            `json:"canCheckout"`
	OrderTotal        decimal.Decimal `json:"orderTotal"`
	ViolatingProducts []string        `json:"violatingProducts,omitempty"`
}

// CheckoutEligibility aggregates MOQ status across every brand in a cart.
type CheckoutEligibility struct {
	CanCheckout      bool                 `json:"canCheckout"`
	EligibleBrands   []string             `json:"eligibleBrands"`
	IneligibleBrands []string             `json:"ineligibleBrands"`
	Summary          map[string]MOQStatus `json:"summary"`
}
