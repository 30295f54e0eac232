package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"thescent/internal/models"
	"thescent/internal/repositories"
)

func newTestCatalog(t *testing.T) (*CatalogService, repositories.ProductRepository, repositories.ScentRepository) {
	t.Helper()
	products, scents := newTestCatalogRepos(t)
	categories := repositories.NewMemoryCategoryRepository()
	return NewCatalogService(categories, products, scents), products, scents
}

func TestProductDetailsAssembly(t *testing.T) {
	svc, products, scents := newTestCatalog(t)

	oil := seedProduct(t, products, "Lavender Oil", "lavender-oil", "24.99")
	require.NoError(t, products.SetIngredients(oil.ID, []string{"Lavender oil", "Coconut oil"}))
	require.NoError(t, products.SetBenefits(oil.ID, []string{"Promotes sleep"}))
	require.NoError(t, products.AddImage(&models.ProductImage{ProductID: oil.ID, ImageURL: "/img/a.jpg", SortOrder: 1}))

	floral := &models.ScentProfile{Name: "Floral", Description: "Blossom notes"}
	require.NoError(t, scents.CreateScentProfile(floral))
	relax := &models.Mood{Name: "Relaxation"}
	require.NoError(t, scents.CreateMood(relax))
	require.NoError(t, products.LinkScentProfile(oil.ID, floral.ID, 8))
	require.NoError(t, products.LinkMood(oil.ID, relax.ID, 9))

	details, err := svc.ProductDetails("lavender-oil")
	require.NoError(t, err)
	require.Equal(t, oil.ID, details.ID)
	require.Equal(t, []string{"Lavender oil", "Coconut oil"}, details.Ingredients)
	require.Len(t, details.Images, 1)
	require.Len(t, details.ScentProfiles, 1)
	require.Equal(t, 8, details.ScentProfiles[0].Intensity)
	require.Len(t, details.Moods, 1)
	require.Equal(t, 9, details.Moods[0].Effectiveness)

	_, err = svc.ProductDetails("no-such-product")
	require.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestRecommendRanksBySummedWeights(t *testing.T) {
	svc, products, scents := newTestCatalog(t)

	relax := &models.Mood{Name: "Relaxation"}
	energy := &models.Mood{Name: "Energy"}
	require.NoError(t, scents.CreateMood(relax))
	require.NoError(t, scents.CreateMood(energy))
	floral := &models.ScentProfile{Name: "Floral", Description: "Blossom"}
	citrus := &models.ScentProfile{Name: "Citrus", Description: "Bright"}
	require.NoError(t, scents.CreateScentProfile(floral))
	require.NoError(t, scents.CreateScentProfile(citrus))

	lavender := seedProduct(t, products, "Lavender Oil", "lavender-oil", "24.99")
	citrusOil := seedProduct(t, products, "Citrus Oil", "citrus-oil", "19.99")
	soap := seedProduct(t, products, "Cedar Soap", "cedar-soap", "12.50")

	// lavender: relax 9 + floral 8 = 17
	require.NoError(t, products.LinkMood(lavender.ID, relax.ID, 9))
	require.NoError(t, products.LinkScentProfile(lavender.ID, floral.ID, 8))
	// citrus oil: relax 3 + citrus (not asked) = 3
	require.NoError(t, products.LinkMood(citrusOil.ID, relax.ID, 3))
	require.NoError(t, products.LinkScentProfile(citrusOil.ID, citrus.ID, 9))
	// soap: floral 5 = 5
	require.NoError(t, products.LinkScentProfile(soap.ID, floral.ID, 5))

	recs, err := svc.Recommend([]int{relax.ID}, []int{floral.ID}, 10)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	require.Equal(t, lavender.ID, recs[0].Product.ID)
	require.Equal(t, 17, recs[0].Score)
	require.Equal(t, soap.ID, recs[1].Product.ID)
	require.Equal(t, 5, recs[1].Score)
	require.Equal(t, citrusOil.ID, recs[2].Product.ID)
	require.Equal(t, 3, recs[2].Score)
}

func TestRecommendHonorsLimit(t *testing.T) {
	svc, products, scents := newTestCatalog(t)

	relax := &models.Mood{Name: "Relaxation"}
	require.NoError(t, scents.CreateMood(relax))
	for i, slug := range []string{"a", "b", "c", "d", "e"} {
		p := seedProduct(t, products, "Oil "+slug, "oil-"+slug, "10.00")
		require.NoError(t, products.LinkMood(p.ID, relax.ID, i+1))
	}

	recs, err := svc.Recommend([]int{relax.ID}, nil, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.GreaterOrEqual(t, recs[0].Score, recs[1].Score)
}

func TestRecommendNoAnswers(t *testing.T) {
	svc, _, _ := newTestCatalog(t)
	recs, err := svc.Recommend(nil, nil, 4)
	require.NoError(t, err)
	require.Empty(t, recs)
}
