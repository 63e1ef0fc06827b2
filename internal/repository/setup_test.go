package repository

import (
	"context"
	"testing"
	"time"

	"lys-checkout/internal/database"
	"lys-checkout/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer with the catalogue schema and returns a connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	require.NoError(t, database.Migrate(ctx, pool, zerolog.Nop()))

	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

// seedBrands inserts test brands and their tiers into the database.
func seedBrands(t *testing.T, pool *pgxpool.Pool, brands []model.Brand) {
	ctx := context.Background()

	for _, b := range brands {
		_, err := pool.Exec(ctx,
			`INSERT INTO brands (id, name, currency, moa) VALUES ($1, $2, $3, $4)`,
			b.ID, b.Name, b.Currency, b.MOA)
		require.NoError(t, err)

		for _, tier := range b.VolumeDiscounts {
			_, err := pool.Exec(ctx,
				`INSERT INTO brand_volume_discounts (brand_id, threshold, discount_percentage) VALUES ($1, $2, $3)`,
				b.ID, tier.Threshold, tier.DiscountPercentage)
			require.NoError(t, err)
		}
	}
}

// seedProducts inserts test products into the database.
func seedProducts(t *testing.T, pool *pgxpool.Pool, products []model.Product) {
	ctx := context.Background()

	query := `
		INSERT INTO products (
			id, brand_id, name, category, variants,
			price_item, price_carton, price_wholesale, price_retail, price_currency,
			retail_price_item, items_per_carton, moq_units, moq, moq_unit, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	for _, p := range products {
		var item, carton, wholesale, retail, retailItem any
		var currency any
		if p.Price != nil {
			item, carton, wholesale, retail = p.Price.Item, p.Price.Carton, p.Price.Wholesale, p.Price.Retail
			currency = p.Price.Currency
		}
		if p.RetailPrice != nil {
			retailItem = p.RetailPrice.Item
		}
		variants := p.Variants
		if variants == nil {
			variants = []model.Variant{}
		}

		_, err := pool.Exec(ctx, query,
			p.ID, p.BrandID, p.Name, p.Category, variants,
			item, carton, wholesale, retail, currency,
			retailItem, nullInt(p.ItemsPerCarton), nullInt(p.MOQ), nullInt(p.Moq), nullString(p.MOQUnit), p.CreatedAt,
		)
		require.NoError(t, err)
	}
}

func nullInt(v int) any {
	if v == 0 {
		return nil
	}
	return v
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}
