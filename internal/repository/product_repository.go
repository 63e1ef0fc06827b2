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

const productColumns = `
	id, brand_id, name, category, variants,
	price_item, price_carton, price_wholesale, price_retail, COALESCE(price_currency, ''),
	retail_price_item,
	COALESCE(items_per_carton, 0), COALESCE(moq_units, 0), COALESCE(moq, 0), COALESCE(moq_unit, ''),
	created_at
`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// scanProduct reads one product row; legacy price blocks are set only when
// at least one of their columns is non-null.
func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		p                               model.Product
		item, carton, wholesale, retail decimal.NullDecimal
		currency                        string
		retailItem                      decimal.NullDecimal
	)

	err := row.Scan(
		&p.ID, &p.BrandID, &p.Name, &p.Category, &p.Variants,
		&item, &carton, &wholesale, &retail, &currency,
		&retailItem,
		&p.ItemsPerCarton, &p.MOQ, &p.Moq, &p.MOQUnit,
		&p.CreatedAt,
	)
	if err != nil {
		return model.Product{}, err
	}

	if item.Valid || carton.Valid || wholesale.Valid || retail.Valid {
		p.Price = &model.LegacyPrice{
			Item:      item.Decimal,
			Carton:    carton.Decimal,
			Wholesale: wholesale.Decimal,
			Retail:    retail.Decimal,
			Currency:  currency,
		}
	}
	if retailItem.Valid {
		p.RetailPrice = &model.RetailPrice{Item: retailItem.Decimal}
	}

	return p, nil
}

func (r *productRepository) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetAll retrieves all products with pagination support.
func (r *productRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		ORDER BY name, id
		LIMIT $1 OFFSET $2
	`

	products, err := r.queryProducts(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetByIDs retrieves multiple products by their IDs.
func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := `SELECT ` + productColumns + `
		FROM products
		WHERE id = ANY($1)
		ORDER BY name, id
	`

	products, err := r.queryProducts(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}

	return products, nil
}
