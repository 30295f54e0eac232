package models

import "time"

type Wishlist struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	ProductID int       `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`

	Product *Product `json:"product,omitempty"`
}

type AddWishlistRequest struct {
	ProductID int `json:"product_id" binding:"required"`
}
