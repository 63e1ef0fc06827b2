package repository

import (
	"context"
	"errors"
	"fmt"

	"lys-checkout/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// brandRepository implements the BrandRepository interface using PostgreSQL.
type brandRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBrandRepository creates a new PostgreSQL-backed brand repository.
func NewBrandRepository(pool *pgxpool.Pool, logger zerolog.Logger) BrandRepository {
	return &brandRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "brand").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *brandRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// GetByID retrieves a brand and its volume discount tiers.
func (r *brandRepository) GetByID(ctx context.Context, id string) (*model.Brand, error) {
	query := `
		SELECT id, name, currency, moa
		FROM brands
		WHERE id = $1
	`

	var b model.Brand
	err := r.pool.QueryRow(ctx, query, id).Scan(&b.ID, &b.Name, &b.Currency, &b.MOA)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("brand_id", id).Msg("brand not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("brand_id", id).Msg("failed to query brand")
		return nil, fmt.Errorf("failed to query brand: %w", err)
	}

	tiers, err := r.tiers(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	b.VolumeDiscounts = tiers[id]

	return &b, nil
}

// GetByIDs retrieves multiple brands with their tiers.
func (r *brandRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Brand, error) {
	if len(ids) == 0 {
		return []model.Brand{}, nil
	}

	query := `
		SELECT id, name, currency, moa
		FROM brands
		WHERE id = ANY($1)
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query brands by IDs")
		return nil, fmt.Errorf("failed to query brands by IDs: %w", err)
	}
	defer rows.Close()

	brands := []model.Brand{}
	for rows.Next() {
		var b model.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Currency, &b.MOA); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan brand row")
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating brand rows")
		return nil, fmt.Errorf("error iterating brands: %w", err)
	}

	tiers, err := r.tiers(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range brands {
		brands[i].VolumeDiscounts = tiers[brands[i].ID]
	}

	return brands, nil
}

// tiers loads volume discount tiers for the brands, in stored threshold order.
func (r *brandRepository) tiers(ctx context.Context, brandIDs []string) (map[string][]model.VolumeDiscountTier, error) {
	query := `
		SELECT brand_id, threshold, discount_percentage
		FROM brand_volume_discounts
		WHERE brand_id = ANY($1)
		ORDER BY brand_id, threshold
	`

	rows, err := r.pool.Query(ctx, query, brandIDs)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(brandIDs)).Msg("failed to query volume discounts")
		return nil, fmt.Errorf("failed to query volume discounts: %w", err)
	}
	defer rows.Close()

	tiers := make(map[string][]model.VolumeDiscountTier, len(brandIDs))
	for rows.Next() {
		var brandID string
		var tier model.VolumeDiscountTier
		if err := rows.Scan(&brandID, &tier.Threshold, &tier.DiscountPercentage); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan volume discount row")
			return nil, fmt.Errorf("failed to scan volume discount: %w", err)
		}
		tiers[brandID] = append(tiers[brandID], tier)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating volume discount rows")
		return nil, fmt.Errorf("error iterating volume discounts: %w", err)
	}

	return tiers, nil
}

// UpdatePolicy replaces a brand's MOA and volume discount tiers within the provided transaction.
// Returns model.ErrBrandNotFound when the brand does not exist.
func (r *brandRepository) UpdatePolicy(ctx context.Context, tx pgx.Tx, brandID string, moa decimal.NullDecimal, tiers []model.VolumeDiscountTier) error {
	tag, err := tx.Exec(ctx, `UPDATE brands SET moa = $2, updated_at = NOW() WHERE id = $1`, brandID, moa)
	if err != nil {
		r.logger.Error().Err(err).Str("brand_id", brandID).Msg("failed to update brand MOA")
		return fmt.Errorf("failed to update brand MOA: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBrandNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM brand_volume_discounts WHERE brand_id = $1`, brandID); err != nil {
		r.logger.Error().Err(err).Str("brand_id", brandID).Msg("failed to clear volume discounts")
		return fmt.Errorf("failed to clear volume discounts: %w", err)
	}

	if len(tiers) == 0 {
		return nil
	}

	query := `
		INSERT INTO brand_volume_discounts (brand_id, threshold, discount_percentage)
		VALUES ($1, $2, $3)
	`

	batch := &pgx.Batch{}
	for _, tier := range tiers {
		batch.Queue(query, brandID, tier.Threshold, tier.DiscountPercentage)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(tiers); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("brand_id", brandID).
				Str("threshold", tiers[i].Threshold.String()).
				Msg("failed to insert volume discount")
			return fmt.Errorf("failed to insert volume discount: %w", err)
		}
	}

	r.logger.Debug().
		Str("brand_id", brandID).
		Int("tiers", len(tiers)).
		Msg("brand policy updated")

	return nil
}
