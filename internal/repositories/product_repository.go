package repositories

import (
	"database/sql"

	"github.com/lib/pq"

	"thescent/internal/models"
)

type ProductRepository interface {
	Create(p *models.Product) error
	List(limit, offset int) ([]*models.Product, error)
	ListFeatured() ([]*models.Product, error)
	ListByCategory(categoryID int) ([]*models.Product, error)
	GetByID(id int) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	UpdateRatingStats(id, reviewCount int, averageRating float64) error

	Ingredients(productID int) ([]string, error)
	SetIngredients(productID int, ingredients []string) error
	Benefits(productID int) ([]string, error)
	SetBenefits(productID int, benefits []string) error
	Images(productID int) ([]*models.ProductImage, error)
	AddImage(img *models.ProductImage) error

	ScentProfiles(productID int) ([]*models.ProductScentProfile, error)
	LinkScentProfile(productID, profileID, intensity int) error
	Moods(productID int) ([]*models.ProductMood, error)
	LinkMood(productID, moodID, effectiveness int) error

	// Scent-finder lookups: product id -> summed link weight for the
	// requested mood / profile ids.
	ScoreByMoods(moodIDs []int) (map[int]int, error)
	ScoreByScentProfiles(profileIDs []int) (map[int]int, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `
	id, name, slug, price::text, description, COALESCE(short_description,''),
	image_url, featured, review_count, average_rating, COALESCE(category_id,0),
	stock, sku, created_at, updated_at
`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Price, &p.Description, &p.ShortDescription,
		&p.ImageURL, &p.Featured, &p.ReviewCount, &p.AverageRating, &p.CategoryID,
		&p.Stock, &p.SKU, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

func (r *productRepository) queryProducts(q string, args ...any) ([]*models.Product, error) {
	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var res []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (r *productRepository) Create(p *models.Product) error {
	const q = `
		INSERT INTO products (name, slug, price, description, short_description, image_url, featured, category_id, stock, sku)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NULLIF($8,0),$9,$10)
		RETURNING id, created_at, updated_at
	`
	err := r.DB.QueryRow(q,
		p.Name, p.Slug, p.Price, p.Description, p.ShortDescription,
		p.ImageURL, p.Featured, p.CategoryID, p.Stock, p.SKU,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return translate(err)
}

func (r *productRepository) List(limit, offset int) ([]*models.Product, error) {
	return r.queryProducts(`SELECT `+productColumns+` FROM products ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *productRepository) ListFeatured() ([]*models.Product, error) {
	return r.queryProducts(`SELECT ` + productColumns + ` FROM products WHERE featured ORDER BY id`)
}

func (r *productRepository) ListByCategory(categoryID int) ([]*models.Product, error) {
	return r.queryProducts(`SELECT `+productColumns+` FROM products WHERE category_id = $1 ORDER BY id`, categoryID)
}

func (r *productRepository) GetByID(id int) (*models.Product, error) {
	return scanProduct(r.DB.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
}

func (r *productRepository) GetBySlug(slug string) (*models.Product, error) {
	return scanProduct(r.DB.QueryRow(`SELECT `+productColumns+` FROM products WHERE slug = $1`, slug))
}

func (r *productRepository) UpdateRatingStats(id, reviewCount int, averageRating float64) error {
	const q = `
		UPDATE products
		SET review_count=$1, average_rating=$2, updated_at=NOW()
		WHERE id=$3
	`
	_, err := r.DB.Exec(q, reviewCount, averageRating, id)
	return translate(err)
}

func (r *productRepository) stringList(q string, productID int) ([]string, error) {
	rows, err := r.DB.Query(q, productID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

func (r *productRepository) Ingredients(productID int) ([]string, error) {
	return r.stringList(`SELECT ingredient FROM product_ingredients WHERE product_id=$1 ORDER BY id`, productID)
}

func (r *productRepository) SetIngredients(productID int, ingredients []string) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`DELETE FROM product_ingredients WHERE product_id=$1`, productID); err != nil {
		return err
	}
	for _, ing := range ingredients {
		if _, err := tx.Exec(`INSERT INTO product_ingredients (product_id, ingredient) VALUES ($1,$2)`, productID, ing); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *productRepository) Benefits(productID int) ([]string, error) {
	return r.stringList(`SELECT benefit FROM product_benefits WHERE product_id=$1 ORDER BY id`, productID)
}

func (r *productRepository) SetBenefits(productID int, benefits []string) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`DELETE FROM product_benefits WHERE product_id=$1`, productID); err != nil {
		return err
	}
	for _, b := range benefits {
		if _, err := tx.Exec(`INSERT INTO product_benefits (product_id, benefit) VALUES ($1,$2)`, productID, b); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *productRepository) Images(productID int) ([]*models.ProductImage, error) {
	const q = `
		SELECT id, product_id, image_url, sort_order
		FROM product_images
		WHERE product_id=$1
		ORDER BY sort_order, id
	`
	rows, err := r.DB.Query(q, productID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var res []*models.ProductImage
	for rows.Next() {
		img := &models.ProductImage{}
		if err := rows.Scan(&img.ID, &img.ProductID, &img.ImageURL, &img.SortOrder); err != nil {
			return nil, err
		}
		res = append(res, img)
	}
	return res, rows.Err()
}

func (r *productRepository) AddImage(img *models.ProductImage) error {
	const q = `
		INSERT INTO product_images (product_id, image_url, sort_order)
		VALUES ($1,$2,$3)
		RETURNING id
	`
	return translate(r.DB.QueryRow(q, img.ProductID, img.ImageURL, img.SortOrder).Scan(&img.ID))
}

func (r *productRepository) ScentProfiles(productID int) ([]*models.ProductScentProfile, error) {
	const q = `
		SELECT sp.id, sp.name, sp.description, COALESCE(sp.icon_class,''), psp.intensity
		FROM product_scent_profiles psp
		JOIN scent_profiles sp ON sp.id = psp.scent_profile_id
		WHERE psp.product_id = $1
		ORDER BY sp.id
	`
	rows, err := r.DB.Query(q, productID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var res []*models.ProductScentProfile
	for rows.Next() {
		sp := &models.ProductScentProfile{}
		if err := rows.Scan(&sp.ID, &sp.Name, &sp.Description, &sp.IconClass, &sp.Intensity); err != nil {
			return nil, err
		}
		res = append(res, sp)
	}
	return res, rows.Err()
}

func (r *productRepository) LinkScentProfile(productID, profileID, intensity int) error {
	const q = `
		INSERT INTO product_scent_profiles (product_id, scent_profile_id, intensity)
		VALUES ($1,$2,$3)
	`
	_, err := r.DB.Exec(q, productID, profileID, intensity)
	return translate(err)
}

func (r *productRepository) Moods(productID int) ([]*models.ProductMood, error) {
	const q = `
		SELECT m.id, m.name, COALESCE(m.description,''), COALESCE(m.icon_class,''), pm.effectiveness
		FROM product_moods pm
		JOIN moods m ON m.id = pm.mood_id
		WHERE pm.product_id = $1
		ORDER BY m.id
	`
	rows, err := r.DB.Query(q, productID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var res []*models.ProductMood
	for rows.Next() {
		m := &models.ProductMood{}
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.IconClass, &m.Effectiveness); err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

func (r *productRepository) LinkMood(productID, moodID, effectiveness int) error {
	const q = `
		INSERT INTO product_moods (product_id, mood_id, effectiveness)
		VALUES ($1,$2,$3)
	`
	_, err := r.DB.Exec(q, productID, moodID, effectiveness)
	return translate(err)
}

func (r *productRepository) scoreQuery(q string, ids []int) (map[int]int, error) {
	rows, err := r.DB.Query(q, pq.Array(ids))
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	res := make(map[int]int)
	for rows.Next() {
		var productID, score int
		if err := rows.Scan(&productID, &score); err != nil {
			return nil, err
		}
		res[productID] = score
	}
	return res, rows.Err()
}

func (r *productRepository) ScoreByMoods(moodIDs []int) (map[int]int, error) {
	const q = `
		SELECT product_id, SUM(effectiveness)
		FROM product_moods
		WHERE mood_id = ANY($1)
		GROUP BY product_id
	`
	return r.scoreQuery(q, moodIDs)
}

func (r *productRepository) ScoreByScentProfiles(profileIDs []int) (map[int]int, error) {
	const q = `
		SELECT product_id, SUM(intensity)
		FROM product_scent_profiles
		WHERE scent_profile_id = ANY($1)
		GROUP BY product_id
	`
	return r.scoreQuery(q, profileIDs)
}
