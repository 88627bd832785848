package v1

import (
	"time"
)

// CreateIncidentRequest is the write payload for an incident. created and
// updated are accepted for wire compatibility but always discarded: the
// server sets both.
type CreateIncidentRequest struct {
	Name    string     `json:"name" validate:"required,min=2,max=255"`
	Hidden  bool       `json:"hidden"`
	Created *time.Time `json:"created,omitempty"`
	Updated *time.Time `json:"updated,omitempty"`
}

// CreateIncidentUpdateRequest is the write payload for an incident update.
// When ID names an existing update the server edits it in place, keeping
// the stored created timestamp regardless of the one supplied here.
type CreateIncidentUpdateRequest struct {
	ID          int64      `json:"id,omitempty"`
	Incident    int64      `json:"incident" validate:"required"`
	Status      string     `json:"status" validate:"required"`
	Description string     `json:"description,omitempty"`
	Created     *time.Time `json:"created,omitempty"`
	Updated     *time.Time `json:"updated,omitempty"`
}

// StatusResponse is the fully-expanded representation of a catalog entry.
type StatusResponse struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

// IncidentUpdateResponse embeds the full status and references the parent
// incident by id.
type IncidentUpdateResponse struct {
	ID          int64           `json:"id"`
	Incident    int64           `json:"incident"`
	Status      *StatusResponse `json:"status"`
	User        string          `json:"user,omitempty"`
	Description string          `json:"description,omitempty"`
	Created     time.Time       `json:"created"`
	Updated     time.Time       `json:"updated"`
}

// IncidentResponse embeds the computed current status (null while the
// incident has no updates), the owner's display name, and the update log.
type IncidentResponse struct {
	ID      int64                     `json:"id"`
	Name    string                    `json:"name"`
	Hidden  bool                      `json:"hidden"`
	User    string                    `json:"user,omitempty"`
	Status  *StatusResponse           `json:"status"`
	Updates []*IncidentUpdateResponse `json:"updates"`
	Created time.Time                 `json:"created"`
	Updated time.Time                 `json:"updated"`
}
