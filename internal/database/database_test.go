package database

import (
	"context"
	"testing"
	"time"

	"lys-checkout/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestNewPool_CannotConnect(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:           "invalid-host",
		Port:           5432,
		User:           "user",
		Password:       "pass",
		Database:       "testdb",
		MaxConnections: 2,
		MinConnections: 1,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := NewPool(ctx, cfg, zerolog.Nop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ping database")
	assert.Nil(t, pool)
}

func TestMigrate(t *testing.T) {
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
	defer pgContainer.Terminate(ctx)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	defer pool.Close()

	logger := zerolog.Nop()
	require.NoError(t, Migrate(ctx, pool, logger))
	// Applying twice is a no-op.
	require.NoError(t, Migrate(ctx, pool, logger))

	for _, table := range []string{"brands", "brand_volume_discounts", "products", "discount_usage"} {
		var exists bool
		err := pool.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", "public."+table).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "table %s missing", table)
	}
}
