package services

import (
	"sort"

	"thescent/internal/models"
	"thescent/internal/repositories"
)

// CatalogService serves categories, products and the scent-finder quiz.
type CatalogService struct {
	Categories repositories.CategoryRepository
	Products   repositories.ProductRepository
	Scents     repositories.ScentRepository
}

func NewCatalogService(
	categories repositories.CategoryRepository,
	products repositories.ProductRepository,
	scents repositories.ScentRepository,
) *CatalogService {
	return &CatalogService{Categories: categories, Products: products, Scents: scents}
}

func (s *CatalogService) ListCategories() ([]*models.Category, error) {
	return s.Categories.List()
}

func (s *CatalogService) GetCategoryBySlug(slug string) (*models.Category, error) {
	return s.Categories.GetBySlug(slug)
}

func (s *CatalogService) ListProducts(limit, offset int) ([]*models.Product, error) {
	return s.Products.List(limit, offset)
}

func (s *CatalogService) ListFeaturedProducts() ([]*models.Product, error) {
	return s.Products.ListFeatured()
}

func (s *CatalogService) ListProductsByCategory(categoryID int) ([]*models.Product, error) {
	return s.Products.ListByCategory(categoryID)
}

func (s *CatalogService) GetProductByID(id int) (*models.Product, error) {
	return s.Products.GetByID(id)
}

// ProductDetails assembles the full product-page shape for a slug.
func (s *CatalogService) ProductDetails(slug string) (*models.ProductDetails, error) {
	product, err := s.Products.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.Products.Ingredients(product.ID)
	if err != nil {
		return nil, err
	}
	benefits, err := s.Products.Benefits(product.ID)
	if err != nil {
		return nil, err
	}
	images, err := s.Products.Images(product.ID)
	if err != nil {
		return nil, err
	}
	profiles, err := s.Products.ScentProfiles(product.ID)
	if err != nil {
		return nil, err
	}
	moods, err := s.Products.Moods(product.ID)
	if err != nil {
		return nil, err
	}
	return &models.ProductDetails{
		Product:       *product,
		Ingredients:   ingredients,
		Benefits:      benefits,
		Images:        images,
		ScentProfiles: profiles,
		Moods:         moods,
	}, nil
}

func (s *CatalogService) ListScentProfiles() ([]*models.ScentProfile, error) {
	return s.Scents.ListScentProfiles()
}

func (s *CatalogService) ListMoods() ([]*models.Mood, error) {
	return s.Scents.ListMoods()
}

func (s *CatalogService) ListLifestyleItems() ([]*models.LifestyleItem, error) {
	return s.Scents.ListLifestyleItems()
}

// Recommend ranks products for the scent-finder quiz. Each product scores
// the sum of mood effectiveness and profile intensity over the selected
// answers; ties break by product id for stable output.
func (s *CatalogService) Recommend(moodIDs, profileIDs []int, limit int) ([]*models.Recommendation, error) {
	scores := make(map[int]int)
	if len(moodIDs) > 0 {
		byMood, err := s.Products.ScoreByMoods(moodIDs)
		if err != nil {
			return nil, err
		}
		for id, score := range byMood {
			scores[id] += score
		}
	}
	if len(profileIDs) > 0 {
		byProfile, err := s.Products.ScoreByScentProfiles(profileIDs)
		if err != nil {
			return nil, err
		}
		for id, score := range byProfile {
			scores[id] += score
		}
	}

	ids := make([]int, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if scores[ids[i]] != scores[ids[j]] {
			return scores[ids[i]] > scores[ids[j]]
		}
		return ids[i] < ids[j]
	})

	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	res := make([]*models.Recommendation, 0, len(ids))
	for _, id := range ids {
		product, err := s.Products.GetByID(id)
		if err != nil {
			continue
		}
		res = append(res, &models.Recommendation{Product: product, Score: scores[id]})
	}
	return res, nil
}
