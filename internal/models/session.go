package models

import "time"

// Session associates an opaque cookie token with an account id. Created on
// login, destroyed on logout, otherwise expires after the configured TTL.
type Session struct {
	Token     string    `json:"-"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
