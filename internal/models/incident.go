package models

import (
	"time"
)

// Incident is a tracked operational event. Its current status is never
// stored: it is always the status of the most recent update, recomputed on
// every read, and nil while the incident has no updates.
type Incident struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Hidden        bool      `json:"hidden"`
	UserID        int64     `json:"-"`
	UserName      string    `json:"user,omitempty"`
	CurrentStatus *Status   `json:"status"`
	Updates       []*Update `json:"updates,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IncidentFilter narrows incident list queries. Nil/zero values mean "no
// constraint". Status matches through the incident's updates against the
// related status name.
type IncidentFilter struct {
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Status        string
	HasUpdates    *bool
	IncludeHidden bool
	Limit         int
}
