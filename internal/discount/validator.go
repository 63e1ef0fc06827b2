package discount

import (
	"context"
	"fmt"
	"time"

	"lys-checkout/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Validation failure reasons returned to callers.
const (
	ReasonUnknownCode      = "Invalid discount code"
	ReasonInactive         = "Discount code is not active"
	ReasonNotYetValid      = "Discount code is not yet valid"
	ReasonExpired          = "Discount code has expired"
	ReasonUsageLimit       = "Discount code usage limit reached"
	ReasonCustomerUsed     = "You have already used this discount code"
	ReasonNoMOQB2BOnly     = "No-MOQ codes are only valid for B2B orders"
	ReasonNewCustomersOnly = "This code is only valid for new customers"
	ReasonProducts         = "This code is not valid for these products"
	ReasonBrands           = "This code is not valid for these brands"
	ReasonInternal         = "Error validating discount code"
)

var hundred = decimal.NewFromInt(100)

// validator implements Validator over an in-memory catalog.
type validator struct {
	catalog *mapCatalog
	usage   UsageCounter
	now     func() time.Time
	logger  zerolog.Logger
}

// ValidatorConfig holds configuration for the discount validator.
type ValidatorConfig struct {
	// FilePaths is the list of catalog files to load. Later files override
	// codes present in earlier ones.
	FilePaths []string

	// Now returns the current time. Default: time.Now
	Now func() time.Time
}

// DefaultValidatorConfig returns the default validator configuration.
func DefaultValidatorConfig() *ValidatorConfig {
	return &ValidatorConfig{
		FilePaths: []string{"data/discounts/discounts.jsonl.gz"},
		Now:       time.Now,
	}
}

// NewValidator creates a new discount validator.
// It loads all catalog files concurrently at initialization time.
// usage may be nil, in which case per-customer limits are not enforced.
func NewValidator(ctx context.Context, cfg *ValidatorConfig, loader Loader, usage UsageCounter, logger zerolog.Logger) (Validator, error) {
	if cfg == nil {
		cfg = DefaultValidatorConfig()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	logger = logger.With().Str("component", "discount-validator").Logger()

	logger.Info().
		Int("file_count", len(cfg.FilePaths)).
		Msg("initialising discount validator")

	catalogs := make([]Catalog, len(cfg.FilePaths))
	g, gctx := errgroup.WithContext(ctx)
	for i, filePath := range cfg.FilePaths {
		g.Go(func() error {
			catalog, err := loader.Load(gctx, filePath)
			if err != nil {
				return fmt.Errorf("failed to load discount file %s: %w", filePath, err)
			}
			catalogs[i] = catalog
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("failed to load discount catalog")
		return nil, err
	}

	merged := NewMapCatalog(1024).(*mapCatalog)
	for i, catalog := range catalogs {
		merged.merge(catalog)
		logger.Info().
			Str("file", cfg.FilePaths[i]).
			Int("size", catalog.Size()).
			Msg("discount file loaded")
	}

	logger.Info().
		Int("total_codes", merged.Size()).
		Msg("discount validator initialised successfully")

	return &validator{
		catalog: merged,
		usage:   usage,
		now:     now,
		logger:  logger,
	}, nil
}

// Lookup returns the catalog entry for a code.
func (v *validator) Lookup(code string) (*model.DiscountCode, bool) {
	return v.catalog.Get(code)
}

// Validate checks a code against an order.
//
// Checks run in order: existence, active flag, validity window, global usage
// limit, per-customer limit, No-MOQ B2B restriction, then the code's
// conditions. The first failing check decides the reason.
func (v *validator) Validate(ctx context.Context, code string, order OrderDetails) model.DiscountValidationResult {
	key := NormalizeCode(code)
	dc, ok := v.catalog.Get(key)
	if !ok {
		v.reject(key, ReasonUnknownCode)
		return model.InvalidDiscount(ReasonUnknownCode)
	}

	if reason := v.check(ctx, dc, order); reason != "" {
		v.reject(key, reason)
		return model.InvalidDiscount(reason)
	}

	applicable := order.OrderValue
	var amount decimal.Decimal
	if dc.DiscountType == model.DiscountTypePercentage {
		amount = applicable.Mul(dc.DiscountValue).Div(hundred)
	} else {
		amount = decimal.Min(dc.DiscountValue, applicable)
	}
	if amount.IsNegative() {
		amount = decimal.Zero
	}

	snapshot := *dc

	v.logger.Debug().
		Str("code", key).
		Str("discount_amount", amount.String()).
		Msg("discount code validated")

	return model.DiscountValidationResult{
		Valid:            true,
		DiscountCode:     &snapshot,
		ApplicableAmount: applicable,
		DiscountAmount:   amount,
		RemovesMOQ:       dc.RemovesMOQ,
	}
}

func (v *validator) check(ctx context.Context, dc *model.DiscountCode, order OrderDetails) string {
	if !dc.Active {
		return ReasonInactive
	}

	now := v.now()
	if now.Before(dc.ValidFrom) {
		return ReasonNotYetValid
	}
	if dc.ValidUntil != nil && now.After(*dc.ValidUntil) {
		return ReasonExpired
	}

	if dc.MaxUses > 0 && dc.CurrentUses >= dc.MaxUses {
		return ReasonUsageLimit
	}

	if dc.MaxUsesPerCustomer > 0 && order.CustomerID != "" && v.usage != nil {
		uses, err := v.usage.CustomerUses(ctx, dc.Code, order.CustomerID)
		if err != nil {
			v.logger.Error().Err(err).Str("code", dc.Code).Msg("failed to count customer usage")
			return ReasonInternal
		}
		if uses >= dc.MaxUsesPerCustomer {
			return ReasonCustomerUsed
		}
	}

	if dc.RemovesMOQ && dc.Type == model.DiscountKindNoMOQ && !order.IsB2B {
		return ReasonNoMOQB2BOnly
	}

	c := dc.Conditions
	if c == nil {
		return ""
	}

	if c.MinOrderValue.Valid && c.MinOrderValue.Decimal.IsPositive() && order.OrderValue.IsPositive() &&
		order.OrderValue.LessThan(c.MinOrderValue.Decimal) {
		return fmt.Sprintf("Minimum order value of %s required", c.MinOrderValue.Decimal.String())
	}

	if c.NewCustomersOnly && !order.IsNewCustomer {
		return ReasonNewCustomersOnly
	}

	if len(c.SpecificProducts) > 0 && !intersects(c.SpecificProducts, order.ProductIDs) {
		return ReasonProducts
	}

	if len(c.SpecificBrands) > 0 && !intersects(c.SpecificBrands, order.BrandIDs) {
		return ReasonBrands
	}

	return ""
}

func (v *validator) reject(code, reason string) {
	v.logger.Debug().
		Str("code", code).
		Str("reason", reason).
		Msg("discount code rejected")
}

func intersects(allowed, actual []string) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, id := range allowed {
		set[id] = struct{}{}
	}
	for _, id := range actual {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}

// Close releases resources held by the validator.
func (v *validator) Close() error {
	v.catalog = NewMapCatalog(0).(*mapCatalog)

	v.logger.Info().Msg("discount validator closed")

	return nil
}
