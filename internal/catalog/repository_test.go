package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *Repository {
	// Use in-memory database for tests
	repo, err := NewRepository(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	if err := repo.RunMigrations("../../migrations/catalog"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return repo
}

func TestGetAllProducts_ReturnsSeededCatalog(t *testing.T) {
	repo := setupTestDB(t)

	products, err := repo.GetAllProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 7)

	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "HORI", products[0].Brand)
	assert.Equal(t, 369.99, products[0].Price)
	assert.Len(t, products[0].Images, 5)
	assert.Equal(t, []string{"Ergonômico", "Modo Portátil", "Licenciado Nintendo"}, products[0].Features)
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetProduct(context.Background(), 999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetProduct_NoImageGallery(t *testing.T) {
	repo := setupTestDB(t)

	p, err := repo.GetProduct(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "M88", p.Brand)
	assert.Empty(t, p.Images)
}

func TestLoad_IndexesByID(t *testing.T) {
	repo := setupTestDB(t)

	cat, err := Load(context.Background(), repo)
	require.NoError(t, err)

	assert.Len(t, cat.All(), 7)
	p, ok := cat.Get(3)
	require.True(t, ok)
	assert.Equal(t, "Console Nintendo Switch OLED - Branco", p.Name)

	_, ok = cat.Get(42)
	assert.False(t, ok)
}

func TestDiscountPercent(t *testing.T) {
	repo := setupTestDB(t)
	cat, err := Load(context.Background(), repo)
	require.NoError(t, err)

	hori, _ := cat.Get(1)
	assert.True(t, hori.HasDiscount())
	assert.Equal(t, 18, hori.DiscountPercent())

	// Product 7 has no list price, so no derived discount.
	m88, _ := cat.Get(7)
	assert.False(t, m88.HasDiscount())
	assert.Equal(t, 0, m88.DiscountPercent())
}
