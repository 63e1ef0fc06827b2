package integration

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"lys-checkout/internal/database"
	"lys-checkout/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, applies the schema and returns a pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.Migrate(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedCatalog inserts two brands and three products.
//
//	B1 Alpine Teas (GBP, MOA 3000, tiers 1000@5% and 2000@8%)
//	  P1 Green Tea: variant pricing, 10.00/unit, 6 units/carton, MOQ 24
//	  P3 Sample Tin: no pricing data
//	B2 Coastal Soap (no currency, MOA 3000, no tiers)
//	  P2 Olive Soap: legacy pricing, 5.00/unit, 10 units/carton, MOQ 100
func SeedCatalog(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	statements := []struct {
		sql  string
		args []any
	}{
		{`INSERT INTO brands (id, name, currency, moa) VALUES ($1, $2, $3, $4)`,
			[]any{"B1", "Alpine Teas", "GBP", decimal.NewFromInt(3000)}},
		{`INSERT INTO brands (id, name, currency, moa) VALUES ($1, $2, $3, $4)`,
			[]any{"B2", "Coastal Soap", "", decimal.NewFromInt(3000)}},
		{`INSERT INTO brand_volume_discounts (brand_id, threshold, discount_percentage) VALUES ($1, $2, $3)`,
			[]any{"B1", decimal.NewFromInt(1000), decimal.NewFromInt(5)}},
		{`INSERT INTO brand_volume_discounts (brand_id, threshold, discount_percentage) VALUES ($1, $2, $3)`,
			[]any{"B1", decimal.NewFromInt(2000), decimal.NewFromInt(8)}},
		{`INSERT INTO products (id, brand_id, name, category, variants) VALUES ($1, $2, $3, $4, $5)`,
			[]any{"P1", "B1", "Green Tea", "Tea", []model.Variant{{
				VariantID: "P1-v1",
				IsDefault: true,
				Pricing: model.VariantPricing{B2B: &model.B2BPricing{
					Enabled:          true,
					WholesalePrice:   decimal.NewFromInt(10),
					UnitsPerCarton:   6,
					MinOrderQuantity: 24,
					Currency:         "GBP",
				}},
			}}}},
		{`INSERT INTO products (id, brand_id, name, category, price_wholesale, price_retail, items_per_carton, moq_units)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			[]any{"P2", "B2", "Olive Soap", "Soap", decimal.NewFromInt(5), decimal.NewFromInt(9), 10, 100}},
		{`INSERT INTO products (id, brand_id, name, category) VALUES ($1, $2, $3, $4)`,
			[]any{"P3", "B1", "Sample Tin", "Tea"}},
		{`INSERT INTO discount_usage (discount_code, customer_id, order_id) VALUES ($1, $2, $3)`,
			[]any{"WELCOME", "C-RETURNING", "O-1"}},
	}

	for _, s := range statements {
		if _, err := pool.Exec(ctx, s.sql, s.args...); err != nil {
			t.Fatalf("failed to seed catalog: %v", err)
		}
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	_, err := pool.Exec(ctx, `TRUNCATE discount_usage, products, brand_volume_discounts, brands`)
	if err != nil {
		t.Logf("failed to clean tables: %v", err)
	}
}

// WriteDiscountFile writes codes as a gzipped JSON-lines catalog and returns its path.
func WriteDiscountFile(t *testing.T, codes []model.DiscountCode) string {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	enc := json.NewEncoder(gz)
	for _, dc := range codes {
		if err := enc.Encode(dc); err != nil {
			t.Fatalf("failed to encode discount %s: %v", dc.Code, err)
		}
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("failed to close gzip writer: %v", err)
	}

	path := filepath.Join(t.TempDir(), "discounts.jsonl.gz")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write discount file: %v", err)
	}
	return path
}

// TestDiscountCodes is the catalogue used by the API tests.
func TestDiscountCodes() []model.DiscountCode {
	validFrom := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	expired := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	return []model.DiscountCode{
		{
			ID:            "d1",
			Code:          "SAVE10",
			Type:          model.DiscountKindPromotional,
			DiscountType:  model.DiscountTypePercentage,
			DiscountValue: decimal.NewFromInt(10),
			ValidFrom:     validFrom,
			Active:        true,
		},
		{
			ID:            "d2",
			Code:          "NOMOQ",
			Type:          model.DiscountKindNoMOQ,
			DiscountType:  model.DiscountTypeFixed,
			DiscountValue: decimal.Zero,
			ValidFrom:     validFrom,
			Active:        true,
			RemovesMOQ:    true,
		},
		{
			ID:                 "d3",
			Code:               "WELCOME",
			Type:               model.DiscountKindGeneral,
			DiscountType:       model.DiscountTypeFixed,
			DiscountValue:      decimal.NewFromInt(20),
			MaxUsesPerCustomer: 1,
			ValidFrom:          validFrom,
			Active:             true,
		},
		{
			ID:            "d4",
			Code:          "OLDNEWS",
			DiscountType:  model.DiscountTypePercentage,
			DiscountValue: decimal.NewFromInt(50),
			ValidFrom:     validFrom,
			ValidUntil:    &expired,
			Active:        true,
		},
	}
}
