// Package evaluator decides order eligibility for a multi-brand wholesale cart.
//
// It resolves line pricing from the catalogue's overlapping schema fields,
// selects volume discount tiers, validates per-product MOQ against the brand
// MOA and No-MOQ codes, and spreads discount codes across cart lines. All
// operations are synchronous, deterministic and never fail on malformed
// catalogue data: missing values fall back to defaults and are reported to
// the configured Observer.
package evaluator

import (
	"github.com/shopspring/decimal"
)

// DefaultMOA is the minimum order amount applied when a brand does not set one.
var DefaultMOA = decimal.NewFromInt(3000)

// Field identifies a catalogue value that had to fall back to a default.
type Field string

const (
	FieldUnitPrice      Field = "unit_price"
	FieldUnitsPerCarton Field = "units_per_carton"
	FieldMOQ            Field = "moq"
	FieldBrand          Field = "brand"
)

// Observer is notified whenever catalogue data is missing and a default is used.
// id is the product ID, or the brand ID for FieldBrand.
type Observer interface {
	OnFallback(field Field, id string)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(field Field, id string)

// OnFallback calls f(field, id).
func (f ObserverFunc) OnFallback(field Field, id string) {
	f(field, id)
}

// MultiObserver fans a notification out to several observers.
func MultiObserver(observers ...Observer) Observer {
	return ObserverFunc(func(field Field, id string) {
		for _, o := range observers {
			if o != nil {
				o.OnFallback(field, id)
			}
		}
	})
}

// Evaluator evaluates carts against brand policies and discount codes.
// The zero value is not usable; construct one with New.
type Evaluator struct {
	defaultMOA decimal.Decimal
	observer   Observer
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithDefaultMOA overrides the MOA used for brands that do not set one.
func WithDefaultMOA(moa decimal.Decimal) Option {
	return func(e *Evaluator) {
		if moa.IsPositive() {
			e.defaultMOA = moa
		}
	}
}

// WithObserver installs a data-quality observer.
func WithObserver(o Observer) Option {
	return func(e *Evaluator) {
		if o != nil {
			e.observer = o
		}
	}
}

// New creates an Evaluator.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		defaultMOA: DefaultMOA,
		observer:   ObserverFunc(func(Field, string) {}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefaultMOA returns the MOA applied to brands without one.
func (e *Evaluator) DefaultMOA() decimal.Decimal {
	return e.defaultMOA
}
