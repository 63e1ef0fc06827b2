package discount

import (
	"context"

	"lys-checkout/internal/model"

	"github.com/shopspring/decimal"
)

// Validator defines the interface for discount code validation.
type Validator interface {
	// Validate checks a code against an order. It never returns an error;
	// failures are reported through an invalid result with a reason.
	Validate(ctx context.Context, code string, order OrderDetails) model.DiscountValidationResult

	// Lookup returns the catalog entry for a code.
	Lookup(code string) (*model.DiscountCode, bool)

	// Close releases resources held by the validator.
	Close() error
}

// Catalog is a set of discount codes keyed by their normalised code.
type Catalog interface {
	// Get returns the discount code, if present.
	Get(code string) (*model.DiscountCode, bool)

	// Size returns the number of codes in the catalog.
	Size() int
}

// Loader defines the interface for loading discount catalog files.
type Loader interface {
	// Load reads a gzipped JSON-lines catalog file and returns a Catalog.
	Load(ctx context.Context, filePath string) (Catalog, error)
}

// UsageCounter reports how many times a customer has redeemed a code.
type UsageCounter interface {
	CustomerUses(ctx context.Context, code, customerID string) (int, error)
}

// OrderDetails is the order context a code is validated against.
type OrderDetails struct {
	CustomerID    string
	OrderValue    decimal.Decimal
	ProductIDs    []string
	BrandIDs      []string
	IsNewCustomer bool
	IsB2B         bool
}
