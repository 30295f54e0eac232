package models

import "time"

type Address struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	AddressLine1 string    `json:"address_line1" binding:"required"`
	AddressLine2 string    `json:"address_line2,omitempty"`
	City         string    `json:"city" binding:"required"`
	State        string    `json:"state" binding:"required"`
	PostalCode   string    `json:"postal_code" binding:"required"`
	Country      string    `json:"country" binding:"required"`
	IsDefault    bool      `json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
