package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"thescent/internal/repositories"
)

func TestWishlistAddListRemove(t *testing.T) {
	products, _ := newTestCatalogRepos(t)
	svc := NewWishlistService(repositories.NewMemoryWishlistRepository(), products)
	oil := seedProduct(t, products, "Lavender Oil", "lavender-oil", "24.99")

	item, err := svc.Add(1, oil.ID)
	require.NoError(t, err)
	require.Equal(t, oil.ID, item.ProductID)

	// Adding the same product twice is refused.
	_, err = svc.Add(1, oil.ID)
	require.ErrorIs(t, err, ErrAlreadyInWishlist)

	list, err := svc.List(1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Product)
	require.Equal(t, "Lavender Oil", list[0].Product.Name)

	// Wishlists are per user.
	other, err := svc.List(2)
	require.NoError(t, err)
	require.Empty(t, other)

	require.NoError(t, svc.Remove(1, oil.ID))
	list, err = svc.List(1)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestWishlistAddUnknownProduct(t *testing.T) {
	products, _ := newTestCatalogRepos(t)
	svc := NewWishlistService(repositories.NewMemoryWishlistRepository(), products)

	_, err := svc.Add(1, 404)
	require.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestWishlistRemoveMissing(t *testing.T) {
	products, _ := newTestCatalogRepos(t)
	svc := NewWishlistService(repositories.NewMemoryWishlistRepository(), products)

	err := svc.Remove(1, 5)
	require.ErrorIs(t, err, repositories.ErrNotFound)
}
