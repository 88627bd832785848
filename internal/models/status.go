package models

import (
	"time"
)

// Status is a named value from the admin-managed status catalog.
// The name is the key: it appears in URLs and is what updates reference.
type Status struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
