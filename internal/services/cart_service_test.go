package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"thescent/internal/models"
	"thescent/internal/repositories"
)

func newTestCatalogRepos(t *testing.T) (repositories.ProductRepository, repositories.ScentRepository) {
	t.Helper()
	scents := repositories.NewMemoryScentRepository()
	products := repositories.NewMemoryProductRepository(scents)
	return products, scents
}

func seedProduct(t *testing.T, products repositories.ProductRepository, name, slug, price string) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Slug: slug, Price: price, Description: name, ImageURL: "/img/" + slug + ".jpg", SKU: "SKU-" + slug, Stock: 100}
	require.NoError(t, products.Create(p))
	return p
}

func TestCartAddMergesQuantity(t *testing.T) {
	products, _ := newTestCatalogRepos(t)
	svc := NewCartService(repositories.NewMemoryCartRepository(), products)
	oil := seedProduct(t, products, "Lavender Oil", "lavender-oil", "24.99")

	item, err := svc.AddItem(1, oil.ID, 2)
	require.NoError(t, err)
	require.Equal(t, 2, item.Quantity)

	// Same product again merges instead of adding a second line.
	merged, err := svc.AddItem(1, oil.ID, 3)
	require.NoError(t, err)
	require.Equal(t, item.ID, merged.ID)
	require.Equal(t, 5, merged.Quantity)

	view, err := svc.View(1)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, oil.ID, view.Items[0].Product.ID)
}

func TestCartAddUnknownProduct(t *testing.T) {
	products, _ := newTestCatalogRepos(t)
	svc := NewCartService(repositories.NewMemoryCartRepository(), products)

	_, err := svc.AddItem(1, 404, 1)
	require.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCartViewCreatesCartLazily(t *testing.T) {
	products, _ := newTestCatalogRepos(t)
	svc := NewCartService(repositories.NewMemoryCartRepository(), products)

	view, err := svc.View(9)
	require.NoError(t, err)
	require.Equal(t, 9, view.UserID)
	require.Empty(t, view.Items)
}

func TestCartUpdateAndRemove(t *testing.T) {
	products, _ := newTestCatalogRepos(t)
	svc := NewCartService(repositories.NewMemoryCartRepository(), products)
	soap := seedProduct(t, products, "Cedar Soap", "cedar-soap", "12.50")

	item, err := svc.AddItem(1, soap.ID, 1)
	require.NoError(t, err)

	updated, err := svc.UpdateItemQuantity(1, item.ID, 4)
	require.NoError(t, err)
	require.Equal(t, 4, updated.Quantity)

	require.NoError(t, svc.RemoveItem(1, item.ID))
	view, err := svc.View(1)
	require.NoError(t, err)
	require.Empty(t, view.Items)
}

func TestCartItemOwnership(t *testing.T) {
	products, _ := newTestCatalogRepos(t)
	svc := NewCartService(repositories.NewMemoryCartRepository(), products)
	oil := seedProduct(t, products, "Citrus Oil", "citrus-oil", "19.99")

	item, err := svc.AddItem(1, oil.ID, 1)
	require.NoError(t, err)

	// Another user cannot touch the line.
	_, err = svc.UpdateItemQuantity(2, item.ID, 10)
	require.ErrorIs(t, err, ErrCartItemNotFound)
	require.ErrorIs(t, svc.RemoveItem(2, item.ID), ErrCartItemNotFound)

	// The owner still sees the original quantity.
	view, err := svc.View(1)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, 1, view.Items[0].Quantity)
}
