package repository

import (
	"context"
	"testing"
	"time"

	"lys-checkout/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBrands() []model.Brand {
	return []model.Brand{
		{ID: "B1", Name: "Alpine Teas", Currency: "GBP", MOA: decimal.NewNullDecimal(decimal.NewFromInt(3000))},
		{ID: "B2", Name: "Coastal Soap"},
	}
}

func variantProduct(id, name string, wholesale int64, units, moq int) model.Product {
	return model.Product{
		ID:       id,
		BrandID:  "B1",
		Name:     name,
		Category: "Tea",
		Variants: []model.Variant{{
			VariantID: id + "-v1",
			SKU:       "SKU-" + id,
			IsDefault: true,
			Pricing: model.VariantPricing{
				B2B: &model.B2BPricing{
					Enabled:          true,
					WholesalePrice:   decimal.NewFromInt(wholesale),
					MinOrderQuantity: moq,
					UnitsPerCarton:   units,
					Currency:         "GBP",
				},
			},
		}},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

func TestProductRepository_GetAll(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewProductRepository(pool, logger)

	seedBrands(t, pool, testBrands())
	seedProducts(t, pool, []model.Product{
		variantProduct("P001", "Product A", 10, 12, 24),
		variantProduct("P002", "Product B", 20, 6, 0),
		variantProduct("P003", "Product C", 30, 12, 0),
		variantProduct("P004", "Product D", 40, 1, 0),
		variantProduct("P005", "Product E", 50, 24, 0),
	})

	tests := []struct {
		name     string
		limit    int
		offset   int
		expected int
	}{
		{name: "Get all products", limit: 10, offset: 0, expected: 5},
		{name: "Get first page", limit: 2, offset: 0, expected: 2},
		{name: "Get second page", limit: 2, offset: 2, expected: 2},
		{name: "Get last page", limit: 2, offset: 4, expected: 1},
		{name: "Offset beyond results", limit: 10, offset: 10, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			products, err := repo.GetAll(ctx, tt.limit, tt.offset)

			require.NoError(t, err)
			assert.Len(t, products, tt.expected)

			for i := 1; i < len(products); i++ {
				assert.LessOrEqual(t, products[i-1].Name, products[i].Name)
			}
		})
	}
}

func TestProductRepository_GetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewProductRepository(pool, logger)

	current := variantProduct("P001", "Current Schema", 10, 12, 24)

	legacy := model.Product{
		ID:             "P002",
		BrandID:        "B2",
		Name:           "Legacy Schema",
		Price:          &model.LegacyPrice{Wholesale: decimal.RequireFromString("4.50"), Retail: decimal.NewFromInt(9), Currency: "GBP"},
		RetailPrice:    &model.RetailPrice{Item: decimal.NewFromInt(9)},
		ItemsPerCarton: 6,
		MOQ:            30,
		Moq:            10,
		MOQUnit:        "units",
		CreatedAt:      time.Now().UTC(),
	}

	bare := model.Product{ID: "P003", BrandID: "B2", Name: "No Pricing", CreatedAt: time.Now().UTC()}

	seedBrands(t, pool, testBrands())
	seedProducts(t, pool, []model.Product{current, legacy, bare})

	ctx := context.Background()

	t.Run("Variant pricing round trips", func(t *testing.T) {
		p, err := repo.GetByID(ctx, "P001")
		require.NoError(t, err)
		require.NotNil(t, p)

		assert.Equal(t, "B1", p.BrandID)
		assert.Equal(t, "Tea", p.Category)
		require.Len(t, p.Variants, 1)
		b2b := p.B2B()
		require.NotNil(t, b2b)
		assert.True(t, decimal.NewFromInt(10).Equal(b2b.WholesalePrice))
		assert.Equal(t, 12, b2b.UnitsPerCarton)
		assert.Equal(t, 24, b2b.MinOrderQuantity)
		assert.Nil(t, p.Price)
		assert.Nil(t, p.RetailPrice)
	})

	t.Run("Legacy columns populate legacy blocks", func(t *testing.T) {
		p, err := repo.GetByID(ctx, "P002")
		require.NoError(t, err)
		require.NotNil(t, p)

		require.NotNil(t, p.Price)
		assert.True(t, decimal.RequireFromString("4.50").Equal(p.Price.Wholesale))
		assert.True(t, decimal.NewFromInt(9).Equal(p.Price.Retail))
		assert.Equal(t, "GBP", p.Price.Currency)
		require.NotNil(t, p.RetailPrice)
		assert.True(t, decimal.NewFromInt(9).Equal(p.RetailPrice.Item))
		assert.Equal(t, 6, p.ItemsPerCarton)
		assert.Equal(t, 30, p.MOQ)
		assert.Equal(t, 10, p.Moq)
		assert.Equal(t, "units", p.MOQUnit)
		assert.Empty(t, p.Variants)
	})

	t.Run("Missing columns stay empty", func(t *testing.T) {
		p, err := repo.GetByID(ctx, "P003")
		require.NoError(t, err)
		require.NotNil(t, p)

		assert.Nil(t, p.Price)
		assert.Nil(t, p.RetailPrice)
		assert.Zero(t, p.ItemsPerCarton)
		assert.Zero(t, p.MOQ)
	})

	t.Run("Product does not exist", func(t *testing.T) {
		p, err := repo.GetByID(ctx, "P999")
		require.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestProductRepository_GetByIDs(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewProductRepository(pool, logger)

	seedBrands(t, pool, testBrands())
	seedProducts(t, pool, []model.Product{
		variantProduct("P001", "Product A", 10, 12, 0),
		variantProduct("P002", "Product B", 20, 12, 0),
		variantProduct("P003", "Product C", 30, 12, 0),
	})

	tests := []struct {
		name     string
		ids      []string
		expected int
	}{
		{name: "Get multiple products", ids: []string{"P001", "P002", "P003"}, expected: 3},
		{name: "Get subset of products", ids: []string{"P001", "P003"}, expected: 2},
		{name: "Some products do not exist", ids: []string{"P001", "P999"}, expected: 1},
		{name: "No products exist", ids: []string{"P998", "P999"}, expected: 0},
		{name: "Empty ID list", ids: []string{}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := repo.GetByIDs(context.Background(), tt.ids)

			require.NoError(t, err)
			assert.Len(t, products, tt.expected)
		})
	}
}

func TestProductRepository_ErrorPaths(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewProductRepository(pool, logger)

	// Close the pool to simulate database errors
	pool.Close()

	ctx := context.Background()

	t.Run("GetAll with closed pool", func(t *testing.T) {
		products, err := repo.GetAll(ctx, 10, 0)
		require.Error(t, err)
		assert.Nil(t, products)
	})

	t.Run("GetByID with closed pool", func(t *testing.T) {
		product, err := repo.GetByID(ctx, "P001")
		require.Error(t, err)
		assert.Nil(t, product)
	})

	t.Run("GetByIDs with closed pool", func(t *testing.T) {
		products, err := repo.GetByIDs(ctx, []string{"P001"})
		require.Error(t, err)
		assert.Nil(t, products)
	})
}
