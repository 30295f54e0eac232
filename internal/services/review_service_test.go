package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"thescent/internal/models"
	"thescent/internal/repositories"
)

func TestCreateReviewRefreshesAggregates(t *testing.T) {
	products, _ := newTestCatalogRepos(t)
	reviews := repositories.NewMemoryReviewRepository()
	svc := NewReviewService(reviews, products)
	oil := seedProduct(t, products, "Lavender Oil", "lavender-oil", "24.99")

	_, err := svc.Create(1, &models.CreateReviewRequest{ProductID: oil.ID, Rating: 5, Comment: "Wonderful"})
	require.NoError(t, err)
	_, err = svc.Create(2, &models.CreateReviewRequest{ProductID: oil.ID, Rating: 4})
	require.NoError(t, err)

	got, err := products.GetByID(oil.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.ReviewCount)
	require.InDelta(t, 4.5, got.AverageRating, 0.001)

	list, err := svc.ListByProduct(oil.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestCreateReviewUnknownProduct(t *testing.T) {
	products, _ := newTestCatalogRepos(t)
	svc := NewReviewService(repositories.NewMemoryReviewRepository(), products)

	_, err := svc.Create(1, &models.CreateReviewRequest{ProductID: 404, Rating: 3})
	require.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestAverageRatingRoundsToTwoDecimals(t *testing.T) {
	products, _ := newTestCatalogRepos(t)
	svc := NewReviewService(repositories.NewMemoryReviewRepository(), products)
	oil := seedProduct(t, products, "Citrus Oil", "citrus-oil", "19.99")

	for _, rating := range []int{5, 4, 4} {
		_, err := svc.Create(1, &models.CreateReviewRequest{ProductID: oil.ID, Rating: rating})
		require.NoError(t, err)
	}

	got, err := products.GetByID(oil.ID)
	require.NoError(t, err)
	require.InDelta(t, 4.33, got.AverageRating, 0.001)
}
