package repository

import (
	"context"

	"lys-checkout/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	// Returns nil without error when the product does not exist.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs. Unknown IDs are ignored.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)
}

// BrandRepository defines the interface for brand policy data access operations.
type BrandRepository interface {
	// GetByID retrieves a brand and its volume discount tiers.
	// Returns nil without error when the brand does not exist.
	GetByID(ctx context.Context, id string) (*model.Brand, error)

	// GetByIDs retrieves multiple brands with their tiers. Unknown IDs are ignored.
	GetByIDs(ctx context.Context, ids []string) ([]model.Brand, error)

	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// UpdatePolicy replaces a brand's MOA and volume discount tiers within the provided transaction.
	UpdatePolicy(ctx context.Context, tx pgx.Tx, brandID string, moa decimal.NullDecimal, tiers []model.VolumeDiscountTier) error
}

// DiscountUsageRepository reads recorded discount code redemptions.
type DiscountUsageRepository interface {
	// CustomerUses counts how many times the customer redeemed the code.
	CustomerUses(ctx context.Context, code, customerID string) (int, error)
}
