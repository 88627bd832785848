package models

import (
	"time"
)

// Update is a timestamped status assertion against one incident. The update
// with the latest creation timestamp (ties broken by highest id) determines
// the incident's current status.
type Update struct {
	ID          int64     `json:"id"`
	IncidentID  int64     `json:"incident"`
	Status      *Status   `json:"status"`
	StatusName  string    `json:"-"`
	UserID      int64     `json:"-"`
	UserName    string    `json:"user,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateFilter narrows update list queries.
type UpdateFilter struct {
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	UpdatedAfter  *time.Time
	UpdatedBefore *time.Time
	Status        string
	IncidentID    int64
	Limit         int
}
