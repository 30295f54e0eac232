package models

import "time"

type NewsletterSubscription struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type Enquiry struct {
	ID         int       `json:"id"`
	Name       string    `json:"name" binding:"required"`
	Email      string    `json:"email" binding:"required,email"`
	Phone      string    `json:"phone,omitempty"`
	Subject    string    `json:"subject" binding:"required"`
	Message    string    `json:"message" binding:"required"`
	UserID     int       `json:"user_id,omitempty"`
	IsResolved bool      `json:"is_resolved"`
	CreatedAt  time.Time `json:"created_at"`
}
