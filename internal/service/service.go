package service

import (
	"context"

	"lys-checkout/internal/model"
)

// ProductService defines operations for product catalogue reads.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)
}

// BrandService defines operations for brand order policies.
type BrandService interface {
	// GetByID retrieves a brand with its MOA and volume discount tiers.
	GetByID(ctx context.Context, id string) (*model.Brand, error)

	// UpdatePolicy validates and replaces a brand's MOA and volume discount tiers.
	UpdatePolicy(ctx context.Context, id string, req *model.BrandPolicyRequest) (*model.Brand, error)
}

// CheckoutService defines operations for evaluating carts against brand policies.
type CheckoutService interface {
	// Evaluate prices a cart, validates its discount codes and decides which
	// brands can proceed to checkout.
	Evaluate(ctx context.Context, req *model.EvaluateRequest) (*model.EvaluateResponse, error)

	// ValidateDiscount checks a single discount code against an order.
	ValidateDiscount(ctx context.Context, req *model.DiscountValidationRequest) (model.DiscountValidationResult, error)
}
