package services

import (
	"math"

	"thescent/internal/models"
	"thescent/internal/repositories"
)

type ReviewService struct {
	reviews  repositories.ReviewRepository
	products repositories.ProductRepository
}

func NewReviewService(reviews repositories.ReviewRepository, products repositories.ProductRepository) *ReviewService {
	return &ReviewService{reviews: reviews, products: products}
}

func (s *ReviewService) ListByProduct(productID int) ([]*models.Review, error) {
	return s.reviews.ListByProduct(productID)
}

// Create stores the review and refreshes the product's review_count and
// average_rating aggregates.
func (s *ReviewService) Create(userID int, req *models.CreateReviewRequest) (*models.Review, error) {
	if _, err := s.products.GetByID(req.ProductID); err != nil {
		return nil, err
	}
	review := &models.Review{
		UserID:    userID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.reviews.Create(review); err != nil {
		return nil, err
	}

	count, avg, err := s.reviews.CountAndAverage(req.ProductID)
	if err != nil {
		return nil, err
	}
	// Two decimal places, matching the column's scale.
	avg = math.Round(avg*100) / 100
	if err := s.products.UpdateRatingStats(req.ProductID, count, avg); err != nil {
		return nil, err
	}
	return review, nil
}
