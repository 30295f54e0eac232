package repositories

import (
	"database/sql"
	"sync"
	"time"

	"thescent/internal/models"
)

type WishlistRepository interface {
	ListByUser(userID int) ([]*models.Wishlist, error)
	Exists(userID, productID int) (bool, error)
	Add(w *models.Wishlist) error
	Remove(userID, productID int) error
}

type wishlistRepository struct {
	DB *sql.DB
}

func NewWishlistRepository(db *sql.DB) WishlistRepository {
	return &wishlistRepository{DB: db}
}

func (r *wishlistRepository) ListByUser(userID int) ([]*models.Wishlist, error) {
	const q = `SELECT id, user_id, product_id, created_at FROM wishlists WHERE user_id = $1 ORDER BY id`
	rows, err := r.DB.Query(q, userID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var res []*models.Wishlist
	for rows.Next() {
		w := &models.Wishlist{}
		if err := rows.Scan(&w.ID, &w.UserID, &w.ProductID, &w.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, w)
	}
	return res, rows.Err()
}

func (r *wishlistRepository) Exists(userID, productID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM wishlists WHERE user_id = $1 AND product_id = $2)`,
		userID, productID,
	).Scan(&exists)
	return exists, translate(err)
}

func (r *wishlistRepository) Add(w *models.Wishlist) error {
	const q = `
		INSERT INTO wishlists (user_id, product_id)
		VALUES ($1,$2)
		RETURNING id, created_at
	`
	return translate(r.DB.QueryRow(q, w.UserID, w.ProductID).Scan(&w.ID, &w.CreatedAt))
}

func (r *wishlistRepository) Remove(userID, productID int) error {
	res, err := r.DB.Exec(`DELETE FROM wishlists WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return translate(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type memoryWishlistRepository struct {
	mu     sync.Mutex
	nextID int
	lists  map[int]*models.Wishlist
}

func NewMemoryWishlistRepository() WishlistRepository {
	return &memoryWishlistRepository{nextID: 1, lists: make(map[int]*models.Wishlist)}
}

func (r *memoryWishlistRepository) ListByUser(userID int) ([]*models.Wishlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*models.Wishlist
	for id := 1; id < r.nextID; id++ {
		if w, ok := r.lists[id]; ok && w.UserID == userID {
			cp := *w
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r *memoryWishlistRepository) Exists(userID, productID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range r.lists {
		if w.UserID == userID && w.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryWishlistRepository) Add(w *models.Wishlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w.ID = r.nextID
	r.nextID++
	w.CreatedAt = time.Now()
	cp := *w
	cp.Product = nil
	r.lists[w.ID] = &cp
	return nil
}

func (r *memoryWishlistRepository) Remove(userID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, w := range r.lists {
		if w.UserID == userID && w.ProductID == productID {
			delete(r.lists, id)
			return nil
		}
	}
	return ErrNotFound
}
