package repositories

import (
	"database/sql"
	"sync"
	"time"

	"thescent/internal/models"
)

type CategoryRepository interface {
	Create(c *models.Category) error
	List() ([]*models.Category, error)
	GetByID(id int) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
}

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepository(db *sql.DB) CategoryRepository {
	return &categoryRepository{DB: db}
}

const categoryColumns = `id, name, slug, COALESCE(description,''), COALESCE(image_url,''), created_at, updated_at`

func scanCategory(row interface{ Scan(...any) error }) (*models.Category, error) {
	c := &models.Category{}
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

func (r *categoryRepository) Create(c *models.Category) error {
	const q = `
		INSERT INTO categories (name, slug, description, image_url)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRow(q, c.Name, c.Slug, c.Description, c.ImageURL).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return translate(err)
}

func (r *categoryRepository) List() ([]*models.Category, error) {
	rows, err := r.DB.Query(`SELECT ` + categoryColumns + ` FROM categories ORDER BY id`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var res []*models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (r *categoryRepository) GetByID(id int) (*models.Category, error) {
	return scanCategory(r.DB.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id=$1`, id))
}

func (r *categoryRepository) GetBySlug(slug string) (*models.Category, error) {
	return scanCategory(r.DB.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE slug=$1`, slug))
}

type memoryCategoryRepository struct {
	mu         sync.RWMutex
	nextID     int
	categories map[int]*models.Category
}

func NewMemoryCategoryRepository() CategoryRepository {
	return &memoryCategoryRepository{nextID: 1, categories: make(map[int]*models.Category)}
}

func (r *memoryCategoryRepository) Create(c *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.categories {
		if existing.Slug == c.Slug {
			return ErrDuplicate
		}
	}
	c.ID = r.nextID
	r.nextID++
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *memoryCategoryRepository) List() ([]*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]*models.Category, 0, len(r.categories))
	for id := 1; id < r.nextID; id++ {
		if c, ok := r.categories[id]; ok {
			cp := *c
			res = append(res, &cp)
		}
	}
	return res, nil
}

func (r *memoryCategoryRepository) GetByID(id int) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memoryCategoryRepository) GetBySlug(slug string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}
