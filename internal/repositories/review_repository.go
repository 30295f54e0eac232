package repositories

import (
	"database/sql"
	"sync"
	"time"

	"thescent/internal/models"
)

type ReviewRepository interface {
	ListByProduct(productID int) ([]*models.Review, error)
	Create(review *models.Review) error
	// CountAndAverage reports the review count and mean rating for a product.
	CountAndAverage(productID int) (int, float64, error)
}

type reviewRepository struct {
	DB *sql.DB
}

func NewReviewRepository(db *sql.DB) ReviewRepository {
	return &reviewRepository{DB: db}
}

func (r *reviewRepository) ListByProduct(productID int) ([]*models.Review, error) {
	const q = `
		SELECT id, user_id, product_id, rating, COALESCE(comment,''), created_at, updated_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.DB.Query(q, productID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var res []*models.Review
	for rows.Next() {
		rev := &models.Review{}
		if err := rows.Scan(&rev.ID, &rev.UserID, &rev.ProductID, &rev.Rating, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, rev)
	}
	return res, rows.Err()
}

func (r *reviewRepository) Create(review *models.Review) error {
	const q = `
		INSERT INTO reviews (user_id, product_id, rating, comment)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at, updated_at
	`
	return translate(r.DB.QueryRow(q, review.UserID, review.ProductID, review.Rating, review.Comment).
		Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt))
}

func (r *reviewRepository) CountAndAverage(productID int) (int, float64, error) {
	const q = `SELECT COUNT(*), COALESCE(AVG(rating),0) FROM reviews WHERE product_id = $1`
	var count int
	var avg float64
	err := r.DB.QueryRow(q, productID).Scan(&count, &avg)
	return count, avg, translate(err)
}

type memoryReviewRepository struct {
	mu      sync.Mutex
	nextID  int
	reviews map[int]*models.Review
}

func NewMemoryReviewRepository() ReviewRepository {
	return &memoryReviewRepository{nextID: 1, reviews: make(map[int]*models.Review)}
}

func (r *memoryReviewRepository) ListByProduct(productID int) ([]*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*models.Review
	for id := r.nextID - 1; id >= 1; id-- {
		if rev, ok := r.reviews[id]; ok && rev.ProductID == productID {
			cp := *rev
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r *memoryReviewRepository) Create(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	review.ID = r.nextID
	r.nextID++
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now
	cp := *review
	r.reviews[review.ID] = &cp
	return nil
}

func (r *memoryReviewRepository) CountAndAverage(productID int) (int, float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	sum := 0
	for _, rev := range r.reviews {
		if rev.ProductID == productID {
			count++
			sum += rev.Rating
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return count, float64(sum) / float64(count), nil
}
