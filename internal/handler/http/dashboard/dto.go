package dashboard

import (
	"time"

	v1 "github.com/riptano/statuspage/internal/handler/http/v1"
	"github.com/riptano/statuspage/internal/models"
)

// LoginRequest is the dashboard login form payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the signed operator token.
type LoginResponse struct {
	Token string `json:"token"`
}

// NewIncidentRequest is the dashboard create form. When Status is set, an
// initial update is posted along with the incident.
type NewIncidentRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Status      string `json:"status,omitempty"`
	Description string `json:"description,omitempty"`
}

// NewUpdateRequest is the per-incident update form.
type NewUpdateRequest struct {
	Status      string `json:"status" validate:"required"`
	Description string `json:"description,omitempty"`
}

// ViewResponse is what the dashboard pages consume: incidents by recency,
// each annotated with its computed current status.
type ViewResponse struct {
	GeneratedAt time.Time              `json:"generated_at"`
	Incidents   []*v1.IncidentResponse `json:"incidents"`
}

// ArchiveResponse lists the incidents of one archive period. Months is only
// populated on the year view.
type ArchiveResponse struct {
	Year      int                    `json:"year"`
	Month     int                    `json:"month,omitempty"`
	Months    []models.ArchiveBucket `json:"months,omitempty"`
	Incidents []*v1.IncidentResponse `json:"incidents"`
}

func viewToResponse(view *models.DashboardView) *ViewResponse {
	return &ViewResponse{
		GeneratedAt: view.GeneratedAt,
		Incidents:   v1.ModelsToIncidentResponses(view.Incidents),
	}
}
