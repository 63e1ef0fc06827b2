package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// discountUsageRepository implements DiscountUsageRepository using PostgreSQL.
type discountUsageRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewDiscountUsageRepository creates a new PostgreSQL-backed usage repository.
func NewDiscountUsageRepository(pool *pgxpool.Pool, logger zerolog.Logger) DiscountUsageRepository {
	return &discountUsageRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "discount_usage").Logger(),
	}
}

// CustomerUses counts how many times the customer redeemed the code.
func (r *discountUsageRepository) CustomerUses(ctx context.Context, code, customerID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM discount_usage
		WHERE discount_code = $1 AND customer_id = $2
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, code, customerID).Scan(&count); err != nil {
		r.logger.Error().Err(err).Str("code", code).Msg("failed to count discount usage")
		return 0, fmt.Errorf("failed to count discount usage: %w", err)
	}

	return count, nil
}
