package service

import (
	"context"
	"fmt"
	"time"

	"lys-checkout/internal/discount"
	"lys-checkout/internal/evaluator"
	"lys-checkout/internal/metrics"
	"lys-checkout/internal/model"
	"lys-checkout/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	productRepo     repository.ProductRepository
	brandRepo       repository.BrandRepository
	validator       discount.Validator
	evaluator       *evaluator.Evaluator
	metrics         *metrics.CheckoutMetrics
	defaultCurrency string
	now             func() time.Time
	logger          zerolog.Logger
}

// NewCheckoutService creates a new checkout service. metrics may be nil.
func NewCheckoutService(
	productRepo repository.ProductRepository,
	brandRepo repository.BrandRepository,
	validator discount.Validator,
	ev *evaluator.Evaluator,
	checkoutMetrics *metrics.CheckoutMetrics,
	defaultCurrency string,
	logger zerolog.Logger,
) CheckoutService {
	if ev == nil {
		ev = evaluator.New()
	}
	return &checkoutService{
		productRepo:     productRepo,
		brandRepo:       brandRepo,
		validator:       validator,
		evaluator:       ev,
		metrics:         checkoutMetrics,
		defaultCurrency: defaultCurrency,
		now:             time.Now,
		logger:          logger.With().Str("service", "checkout").Logger(),
	}
}

// Evaluate prices the cart, validates its codes and decides per-brand eligibility.
func (s *checkoutService) Evaluate(ctx context.Context, req *model.EvaluateRequest) (*model.EvaluateResponse, error) {
	if err := s.validateEvaluateRequest(req); err != nil {
		s.metrics.IncEvaluation(metrics.ResultError)
		return nil, err
	}

	cart, brands, err := s.loadCart(ctx, req.Items)
	if err != nil {
		s.metrics.IncEvaluation(metrics.ResultError)
		return nil, err
	}

	priced := s.evaluator.PriceCart(cart.Items)
	subtotal := priced.Total()
	order := discount.OrderDetails{
		CustomerID:    req.CustomerID,
		OrderValue:    subtotal,
		ProductIDs:    cart.ProductIDs(),
		BrandIDs:      cart.BrandIDs(),
		IsNewCustomer: req.IsNewCustomer,
		IsB2B:         req.IsB2B,
	}
	results := s.validateCodes(ctx, req.DiscountCodes, order)

	eligibility := priced.Eligibility(brands, results)
	allocation := priced.Allocate(results)

	quotes := make(map[string]model.BrandQuote, len(brands))
	volumeSavings := decimal.Zero
	for _, brand := range brands {
		status, ok := eligibility.Summary[brand.ID]
		if !ok {
			continue
		}
		volume := evaluator.SelectVolumeDiscount(brand, status.OrderTotal)
		volumeSavings = volumeSavings.Add(volume.Savings)

		quote := model.BrandQuote{MOQ: status, VolumeDiscount: volume}
		if msg, ok := evaluator.UpsellMessage(brand, status.OrderTotal, s.currency(brand)); ok {
			quote.UpsellMessage = msg
		}
		quotes[brand.ID] = quote
	}

	total := subtotal.Sub(volumeSavings).Sub(allocation.TotalDiscount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	resp := &model.EvaluateResponse{
		ID:            uuid.New(),
		Subtotal:      subtotal,
		Brands:        quotes,
		Discounts:     results,
		Allocation:    allocation,
		Eligibility:   eligibility,
		VolumeSavings: volumeSavings,
		Total:         total,
	}

	result := metrics.ResultIneligible
	if eligibility.CanCheckout {
		result = metrics.ResultEligible
	}
	s.metrics.IncEvaluation(result)

	s.logger.Info().
		Str("evaluation_id", resp.ID.String()).
		Int("item_count", len(cart.Items)).
		Int("brand_count", len(brands)).
		Int("code_count", len(results)).
		Bool("can_checkout", eligibility.CanCheckout).
		Str("total", total.StringFixed(2)).
		Msg("cart evaluated")

	return resp, nil
}

// ValidateDiscount checks a single code against the supplied order details.
func (s *checkoutService) ValidateDiscount(ctx context.Context, req *model.DiscountValidationRequest) (model.DiscountValidationResult, error) {
	if req == nil || req.Code == "" {
		return model.DiscountValidationResult{}, model.ErrInvalidDiscountCode
	}

	result := s.validator.Validate(ctx, req.Code, discount.OrderDetails{
		CustomerID:    req.CustomerID,
		OrderValue:    req.OrderValue,
		ProductIDs:    req.ProductIDs,
		BrandIDs:      req.BrandIDs,
		IsNewCustomer: req.IsNewCustomer,
		IsB2B:         req.IsB2B,
	})
	s.metrics.IncDiscountValidation(result.Valid)

	s.logger.Debug().
		Str("discount_code", req.Code).
		Bool("valid", result.Valid).
		Str("reason", result.Error).
		Msg("discount code validated")

	return result, nil
}

// loadCart resolves request lines into a cart snapshot and loads the brands it touches.
// Repeated product IDs are merged into one line.
func (s *checkoutService) loadCart(ctx context.Context, lines []model.EvaluateItemRequest) (model.Cart, []model.Brand, error) {
	order := make([]string, 0, len(lines))
	quantities := make(map[string]int, len(lines))
	for _, line := range lines {
		if _, seen := quantities[line.ProductID]; !seen {
			order = append(order, line.ProductID)
		}
		quantities[line.ProductID] += line.Quantity
	}

	products, err := s.productRepo.GetByIDs(ctx, order)
	if err != nil {
		s.logger.Error().Err(err).Int("product_count", len(order)).Msg("failed to load cart products")
		return model.Cart{}, nil, fmt.Errorf("failed to load products: %w", err)
	}

	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	now := s.now()
	cart := model.Cart{Items: make([]model.CartItem, 0, len(order)), LastUpdated: now}
	for _, id := range order {
		p, ok := byID[id]
		if !ok {
			s.logger.Warn().Str("product_id", id).Msg("cart product not found")
			return model.Cart{}, nil, model.ErrProductNotFound
		}
		cart.Items = append(cart.Items, model.CartItem{
			ID:       id,
			Product:  p,
			Quantity: quantities[id],
			AddedAt:  now,
		})
	}

	brands, err := s.brandRepo.GetByIDs(ctx, cart.BrandIDs())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load cart brands")
		return model.Cart{}, nil, fmt.Errorf("failed to load brands: %w", err)
	}

	return cart, brands, nil
}

// validateCodes validates each distinct code once, in submission order.
func (s *checkoutService) validateCodes(ctx context.Context, codes []string, order discount.OrderDetails) []model.DiscountValidationResult {
	results := make([]model.DiscountValidationResult, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		key := discount.NormalizeCode(code)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		result := s.validator.Validate(ctx, code, order)
		s.metrics.IncDiscountValidation(result.Valid)
		if !result.Valid {
			s.logger.Debug().
				Str("discount_code", code).
				Str("reason", result.Error).
				Msg("discount code rejected")
		}
		results = append(results, result)
	}
	return results
}

// currency returns the brand's currency or the configured default.
func (s *checkoutService) currency(brand model.Brand) string {
	if brand.Currency != "" {
		return brand.Currency
	}
	return s.defaultCurrency
}

// validateEvaluateRequest validates the evaluate request.
func (s *checkoutService) validateEvaluateRequest(req *model.EvaluateRequest) error {
	if req == nil || len(req.Items) == 0 {
		return model.ErrEmptyCart
	}

	merged := make(map[string]int, len(req.Items))
	for i, item := range req.Items {
		if item.ProductID == "" {
			return model.NewDomainError(model.ErrCodeMissingField, fmt.Sprintf("item %d: product ID is required", i))
		}
		if item.Quantity <= 0 {
			s.logger.Warn().
				Int("item_index", i).
				Str("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("invalid quantity")
			return model.ErrInvalidQuantity
		}
		if item.Quantity > model.MaxLineQuantity-merged[item.ProductID] {
			s.logger.Warn().
				Int("item_index", i).
				Str("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Int("merged_quantity", merged[item.ProductID]).
				Msg("quantity too large")
			return model.ErrQuantityTooLarge
		}
		merged[item.ProductID] += item.Quantity
	}

	return nil
}
