package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riptano/statuspage/internal/models"
	"github.com/riptano/statuspage/internal/service"
)

type IncidentRepository struct {
	db *pgxpool.Pool
}

func NewIncidentRepository(db *pgxpool.Pool) service.IncidentRepository {
	return &IncidentRepository{
		db: db,
	}
}

// incidentSelect pulls each incident with its owner's display name and the
// status of its most recent update. The lateral subquery is the single
// source of truth for "current status": latest created wins, ties broken by
// highest id, NULLs when the incident has no updates yet.
const incidentSelect = `
	SELECT
		i.id,
		i.name,
		i.hidden,
		COALESCE(i.user_id, 0),
		COALESCE(u.display_name, ''),
		s.status_name,
		s.status_description,
		s.status_image,
		s.status_created,
		s.status_updated,
		i.created,
		i.updated
	FROM incidents i
	LEFT JOIN users u ON u.id = i.user_id
	LEFT JOIN LATERAL (
		SELECT
			st.name AS status_name,
			st.description AS status_description,
			st.image AS status_image,
			st.created AS status_created,
			st.updated AS status_updated,
			iu.created AS latest_update_created
		FROM incident_updates iu
		JOIN statuses st ON st.name = iu.status_name
		WHERE iu.incident_id = i.id
		ORDER BY iu.created DESC, iu.id DESC
		LIMIT 1
	) s ON true
`

// scanIncident reads one row produced by incidentSelect. The current-status
// columns are nullable as a group.
func scanIncident(row pgx.Row) (*models.Incident, error) {
	incident := &models.Incident{}
	var (
		statusName        *string
		statusDescription *string
		statusImage       *string
		statusCreated     *time.Time
		statusUpdated     *time.Time
	)
	err := row.Scan(
		&incident.ID,
		&incident.Name,
		&incident.Hidden,
		&incident.UserID,
		&incident.UserName,
		&statusName,
		&statusDescription,
		&statusImage,
		&statusCreated,
		&statusUpdated,
		&incident.CreatedAt,
		&incident.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if statusName != nil {
		status := &models.Status{Name: *statusName}
		if statusDescription != nil {
			status.Description = *statusDescription
		}
		if statusImage != nil {
			status.Image = *statusImage
		}
		if statusCreated != nil {
			status.CreatedAt = *statusCreated
		}
		if statusUpdated != nil {
			status.UpdatedAt = *statusUpdated
		}
		incident.CurrentStatus = status
	}
	return incident, nil
}

// Create inserts a new incident. created/updated come back from the
// database; whatever the caller put in those fields is discarded.
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	query := `
		INSERT INTO incidents (name, hidden, user_id)
		VALUES ($1, $2, NULLIF($3, 0)) RETURNING id, created, updated;
	`
	err := r.db.QueryRow(ctx, query,
		incident.Name,
		incident.Hidden,
		incident.UserID,
	).Scan(&incident.ID, &incident.CreatedAt, &incident.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}
	return nil
}

// GetByID returns an incident with its updates, newest first.
func (r *IncidentRepository) GetByID(ctx context.Context, id int64) (*models.Incident, error) {
	query := incidentSelect + ` WHERE i.id = $1;`

	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident %d: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}

	updates, err := r.listUpdates(ctx, incident.ID)
	if err != nil {
		return nil, err
	}
	incident.Updates = updates
	return incident, nil
}

// List returns incidents matching the filter, newest first. Relational
// filters (status, has-updates) match through the incident's updates.
func (r *IncidentRepository) List(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error) {
	where := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if !filter.IncludeHidden {
		where = append(where, "i.hidden = false")
	}
	if filter.CreatedAfter != nil {
		args = append(args, *filter.CreatedAfter)
		where = append(where, fmt.Sprintf("i.created >= $%d", len(args)))
	}
	if filter.CreatedBefore != nil {
		args = append(args, *filter.CreatedBefore)
		where = append(where, fmt.Sprintf("i.created < $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM incident_updates fu WHERE fu.incident_id = i.id AND fu.status_name = $%d)", len(args)))
	}
	if filter.HasUpdates != nil {
		clause := "EXISTS (SELECT 1 FROM incident_updates fu WHERE fu.incident_id = i.id)"
		if !*filter.HasUpdates {
			clause = "NOT " + clause
		}
		where = append(where, clause)
	}

	query := incidentSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY i.created DESC, i.id DESC LIMIT $%d;", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error incident list iteration: %w", err)
	}

	for _, incident := range incidents {
		updates, err := r.listUpdates(ctx, incident.ID)
		if err != nil {
			return nil, err
		}
		incident.Updates = updates
	}
	return incidents, nil
}

// ListByRecency orders incidents by their most recent update, falling back
// to the creation timestamp for incidents without updates. This is the
// dashboard ordering.
func (r *IncidentRepository) ListByRecency(ctx context.Context, includeHidden bool, limit int) ([]*models.Incident, error) {
	query := incidentSelect
	if !includeHidden {
		query += " WHERE i.hidden = false"
	}
	query += `
		ORDER BY COALESCE(s.latest_update_created, i.created) DESC, i.id DESC
		LIMIT $1;
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents by recency: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row in ListByRecency: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error incident list iteration in ListByRecency: %w", err)
	}
	return incidents, nil
}

// SetHidden flips the visibility flag.
func (r *IncidentRepository) SetHidden(ctx context.Context, id int64, hidden bool) error {
	query := `
		UPDATE incidents SET
			hidden = $1,
			updated = NOW()
		WHERE id = $2;
	`
	cmdTag, err := r.db.Exec(ctx, query, hidden, id)
	if err != nil {
		return fmt.Errorf("failed to set incident hidden flag: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("incident %d not found for hide: %w", id, service.ErrNotFound)
	}
	return nil
}

// Delete removes the incident. Dependent updates are removed by the
// ON DELETE CASCADE on incident_updates.incident_id.
func (r *IncidentRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM incidents
		WHERE id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete incident: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("incident %d not found for delete: %w", id, service.ErrNotFound)
	}
	return nil
}

// MonthlyCounts returns per-month visible incident counts for one year,
// used by the archive navigation.
func (r *IncidentRepository) MonthlyCounts(ctx context.Context, year int) ([]models.ArchiveBucket, error) {
	query := `
		SELECT EXTRACT(MONTH FROM created)::int AS month, COUNT(*)::int
		FROM incidents
		WHERE hidden = false
			AND created >= make_date($1, 1, 1)
			AND created < make_date($1 + 1, 1, 1)
		GROUP BY month
		ORDER BY month;
	`
	rows, err := r.db.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to count incidents by month: %w", err)
	}
	defer rows.Close()

	buckets := make([]models.ArchiveBucket, 0)
	for rows.Next() {
		bucket := models.ArchiveBucket{Year: year}
		if err := rows.Scan(&bucket.Month, &bucket.Count); err != nil {
			return nil, fmt.Errorf("failed to scan archive bucket row: %w", err)
		}
		buckets = append(buckets, bucket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error archive bucket iteration: %w", err)
	}
	return buckets, nil
}

// listUpdates loads every update for one incident, newest first.
func (r *IncidentRepository) listUpdates(ctx context.Context, incidentID int64) ([]*models.Update, error) {
	query := updateSelect + `
		WHERE iu.incident_id = $1
		ORDER BY iu.created DESC, iu.id DESC;
	`
	rows, err := r.db.Query(ctx, query, incidentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list updates for incident %d: %w", incidentID, err)
	}
	defer rows.Close()

	updates := make([]*models.Update, 0)
	for rows.Next() {
		update, err := scanUpdate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan update row for incident %d: %w", incidentID, err)
		}
		updates = append(updates, update)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error update iteration for incident %d: %w", incidentID, err)
	}
	return updates, nil
}
