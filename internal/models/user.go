package models

import (
	"time"
)

// User is an operator account. The API key authenticates programmatic
// writes; the password hash backs dashboard logins. Neither secret is ever
// serialized.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	APIKey       string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
