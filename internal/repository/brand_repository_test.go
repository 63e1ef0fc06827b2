package repository

import (
	"context"
	"testing"

	"lys-checkout/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tier(threshold, pct int64) model.VolumeDiscountTier {
	return model.VolumeDiscountTier{
		Threshold:          decimal.NewFromInt(threshold),
		DiscountPercentage: decimal.NewFromInt(pct),
	}
}

func TestBrandRepository_GetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewBrandRepository(pool, zerolog.Nop())

	brands := testBrands()
	brands[0].VolumeDiscounts = []model.VolumeDiscountTier{tier(5000, 8), tier(3000, 5)}
	seedBrands(t, pool, brands)

	ctx := context.Background()

	t.Run("Brand with tiers", func(t *testing.T) {
		b, err := repo.GetByID(ctx, "B1")
		require.NoError(t, err)
		require.NotNil(t, b)

		assert.Equal(t, "Alpine Teas", b.Name)
		assert.Equal(t, "GBP", b.Currency)
		require.True(t, b.MOA.Valid)
		assert.True(t, decimal.NewFromInt(3000).Equal(b.MOA.Decimal))
		require.Len(t, b.VolumeDiscounts, 2)
		assert.True(t, decimal.NewFromInt(3000).Equal(b.VolumeDiscounts[0].Threshold))
		assert.True(t, decimal.NewFromInt(8).Equal(b.VolumeDiscounts[1].DiscountPercentage))
	})

	t.Run("Brand without MOA or tiers", func(t *testing.T) {
		b, err := repo.GetByID(ctx, "B2")
		require.NoError(t, err)
		require.NotNil(t, b)

		assert.False(t, b.MOA.Valid)
		assert.Empty(t, b.VolumeDiscounts)
	})

	t.Run("Brand does not exist", func(t *testing.T) {
		b, err := repo.GetByID(ctx, "B9")
		require.NoError(t, err)
		assert.Nil(t, b)
	})
}

func TestBrandRepository_GetByIDs(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewBrandRepository(pool, zerolog.Nop())

	brands := testBrands()
	brands[0].VolumeDiscounts = []model.VolumeDiscountTier{tier(3000, 5)}
	brands[1].VolumeDiscounts = []model.VolumeDiscountTier{tier(1000, 2), tier(2000, 4)}
	seedBrands(t, pool, brands)

	got, err := repo.GetByIDs(context.Background(), []string{"B2", "B1", "B9"})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "B1", got[0].ID)
	assert.Len(t, got[0].VolumeDiscounts, 1)
	assert.Equal(t, "B2", got[1].ID)
	assert.Len(t, got[1].VolumeDiscounts, 2)

	empty, err := repo.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestBrandRepository_UpdatePolicy(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewBrandRepository(pool, zerolog.Nop())

	brands := testBrands()
	brands[0].VolumeDiscounts = []model.VolumeDiscountTier{tier(3000, 5)}
	seedBrands(t, pool, brands)

	ctx := context.Background()

	t.Run("Replaces MOA and tiers", func(t *testing.T) {
		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)

		err = repo.UpdatePolicy(ctx, tx, "B1", decimal.NewNullDecimal(decimal.NewFromInt(2500)),
			[]model.VolumeDiscountTier{tier(4000, 6), tier(10000, 10)})
		require.NoError(t, err)
		require.NoError(t, tx.Commit(ctx))

		b, err := repo.GetByID(ctx, "B1")
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(2500).Equal(b.MOA.Decimal))
		require.Len(t, b.VolumeDiscounts, 2)
		assert.True(t, decimal.NewFromInt(4000).Equal(b.VolumeDiscounts[0].Threshold))
		assert.True(t, decimal.NewFromInt(10000).Equal(b.VolumeDiscounts[1].Threshold))
	})

	t.Run("Clears MOA and tiers", func(t *testing.T) {
		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)

		require.NoError(t, repo.UpdatePolicy(ctx, tx, "B1", decimal.NullDecimal{}, nil))
		require.NoError(t, tx.Commit(ctx))

		b, err := repo.GetByID(ctx, "B1")
		require.NoError(t, err)
		assert.False(t, b.MOA.Valid)
		assert.Empty(t, b.VolumeDiscounts)
	})

	t.Run("Rollback keeps previous policy", func(t *testing.T) {
		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)

		require.NoError(t, repo.UpdatePolicy(ctx, tx, "B2", decimal.NewNullDecimal(decimal.NewFromInt(100)),
			[]model.VolumeDiscountTier{tier(500, 5)}))
		require.NoError(t, tx.Rollback(ctx))

		b, err := repo.GetByID(ctx, "B2")
		require.NoError(t, err)
		assert.False(t, b.MOA.Valid)
		assert.Empty(t, b.VolumeDiscounts)
	})

	t.Run("Duplicate thresholds fail", func(t *testing.T) {
		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)

		err = repo.UpdatePolicy(ctx, tx, "B2", decimal.NullDecimal{},
			[]model.VolumeDiscountTier{tier(500, 5), tier(500, 6)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to insert volume discount")
	})

	t.Run("Unknown brand", func(t *testing.T) {
		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)

		err = repo.UpdatePolicy(ctx, tx, "B9", decimal.NullDecimal{}, nil)
		assert.ErrorIs(t, err, model.ErrBrandNotFound)
	})
}
