package service

import (
	"context"
	"fmt"

	"lys-checkout/internal/model"
	"lys-checkout/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// brandService implements BrandService.
type brandService struct {
	brandRepo repository.BrandRepository
	logger    zerolog.Logger
}

// NewBrandService creates a new brand service.
func NewBrandService(brandRepo repository.BrandRepository, logger zerolog.Logger) BrandService {
	return &brandService{
		brandRepo: brandRepo,
		logger:    logger.With().Str("service", "brand").Logger(),
	}
}

// GetByID retrieves a brand by ID.
func (s *brandService) GetByID(ctx context.Context, id string) (*model.Brand, error) {
	if id == "" {
		s.logger.Warn().Msg("brand ID is empty")
		return nil, model.ErrBrandNotFound
	}

	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("brand_id", id).Msg("failed to get brand by ID")
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}

	if brand == nil {
		s.logger.Debug().Str("brand_id", id).Msg("brand not found")
		return nil, model.ErrBrandNotFound
	}

	return brand, nil
}

// UpdatePolicy replaces the brand's MOA and volume discount tiers in one transaction.
func (s *brandService) UpdatePolicy(ctx context.Context, id string, req *model.BrandPolicyRequest) (*model.Brand, error) {
	if id == "" {
		return nil, model.ErrBrandNotFound
	}
	if req == nil {
		return nil, model.ErrInvalidBrandPolicy
	}

	candidate := policyFromRequest(id, req)
	if err := candidate.ValidatePolicy(); err != nil {
		s.logger.Warn().
			Str("brand_id", id).
			Err(err).
			Msg("rejected brand policy")
		return nil, err
	}

	tx, err := s.brandRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to update brand policy: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.brandRepo.UpdatePolicy(ctx, tx, id, candidate.MOA, candidate.VolumeDiscounts); err != nil {
		s.logger.Error().Err(err).Str("brand_id", id).Msg("failed to update brand policy")
		if _, ok := model.AsDomainError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update brand policy: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("brand_id", id).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to update brand policy: %w", err)
	}

	s.logger.Info().
		Str("brand_id", id).
		Int("tier_count", len(candidate.VolumeDiscounts)).
		Bool("has_moa", candidate.MOA.Valid).
		Msg("brand policy updated")

	return s.GetByID(ctx, id)
}

// policyFromRequest converts a policy request into a brand carrying only policy fields.
func policyFromRequest(id string, req *model.BrandPolicyRequest) model.Brand {
	brand := model.Brand{
		ID:              id,
		VolumeDiscounts: make([]model.VolumeDiscountTier, len(req.VolumeDiscounts)),
	}
	if req.MOA != nil {
		brand.MOA = decimal.NewNullDecimal(*req.MOA)
	}
	for i, tier := range req.VolumeDiscounts {
		brand.VolumeDiscounts[i] = model.VolumeDiscountTier{
			Threshold:          tier.Threshold,
			DiscountPercentage: tier.DiscountPercentage,
		}
	}
	return brand
}
