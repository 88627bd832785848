package models

import (
	"time"
)

// DashboardView is the payload behind the dashboard pages: incidents ordered
// by most-recent-update-or-creation descending, each carrying its computed
// current status. The public view excludes hidden incidents.
type DashboardView struct {
	GeneratedAt time.Time   `json:"generated_at"`
	Incidents   []*Incident `json:"incidents"`
}

// ArchiveBucket is a per-month incident count used by the archive pages.
type ArchiveBucket struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Count int `json:"count"`
}
