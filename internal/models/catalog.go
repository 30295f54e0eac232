package models

import "time"

type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Product struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	Price            string    `json:"price"`
	Description      string    `json:"description"`
	ShortDescription string    `json:"short_description,omitempty"`
	ImageURL         string    `json:"image_url"`
	Featured         bool      `json:"featured"`
	ReviewCount      int       `json:"review_count"`
	AverageRating    float64   `json:"average_rating"`
	CategoryID       int       `json:"category_id,omitempty"`
	Stock            int       `json:"stock"`
	SKU              string    `json:"sku"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type ProductImage struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	ImageURL  string `json:"image_url"`
	SortOrder int    `json:"sort_order"`
}

type ScentProfile struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IconClass   string `json:"icon_class,omitempty"`
}

type Mood struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IconClass   string `json:"icon_class,omitempty"`
}

// ProductScentProfile is a profile link with its per-product intensity.
type ProductScentProfile struct {
	ScentProfile
	Intensity int `json:"intensity"`
}

// ProductMood is a mood link with its per-product effectiveness.
type ProductMood struct {
	Mood
	Effectiveness int `json:"effectiveness"`
}

// ProductDetails is the full shape served for a single product page.
type ProductDetails struct {
	Product
	Ingredients   []string              `json:"ingredients"`
	Benefits      []string              `json:"benefits"`
	Images        []*ProductImage       `json:"images"`
	ScentProfiles []*ProductScentProfile `json:"scent_profiles"`
	Moods         []*ProductMood        `json:"moods"`
}

type LifestyleItem struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Recommendation is a scent-finder result: a product with its quiz score.
type Recommendation struct {
	Product *Product `json:"product"`
	Score   int      `json:"score"`
}

// ScentFinderRequest carries the quiz answers.
type ScentFinderRequest struct {
	MoodIDs         []int `json:"mood_ids"`
	ScentProfileIDs []int `json:"scent_profile_ids"`
	Limit           int   `json:"limit"`
}
