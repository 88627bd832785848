package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riptano/statuspage/internal/models"
	"github.com/riptano/statuspage/internal/service"
)

type UpdateRepository struct {
	db *pgxpool.Pool
}

func NewUpdateRepository(db *pgxpool.Pool) service.UpdateRepository {
	return &UpdateRepository{
		db: db,
	}
}

// updateSelect pulls each update with its status fully expanded and the
// poster's display name.
const updateSelect = `
	SELECT
		iu.id,
		iu.incident_id,
		st.name,
		COALESCE(st.description, ''),
		COALESCE(st.image, ''),
		st.created,
		st.updated,
		COALESCE(iu.user_id, 0),
		COALESCE(u.display_name, ''),
		COALESCE(iu.description, ''),
		iu.created,
		iu.updated
	FROM incident_updates iu
	JOIN statuses st ON st.name = iu.status_name
	LEFT JOIN users u ON u.id = iu.user_id
`

// scanUpdate reads one row produced by updateSelect.
func scanUpdate(row pgx.Row) (*models.Update, error) {
	update := &models.Update{Status: &models.Status{}}
	err := row.Scan(
		&update.ID,
		&update.IncidentID,
		&update.Status.Name,
		&update.Status.Description,
		&update.Status.Image,
		&update.Status.CreatedAt,
		&update.Status.UpdatedAt,
		&update.UserID,
		&update.UserName,
		&update.Description,
		&update.CreatedAt,
		&update.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	update.StatusName = update.Status.Name
	return update, nil
}

// Create inserts a new update. Timestamps are server-set via RETURNING.
func (r *UpdateRepository) Create(ctx context.Context, update *models.Update) error {
	query := `
		INSERT INTO incident_updates (incident_id, status_name, user_id, description)
		VALUES ($1, $2, NULLIF($3, 0), $4) RETURNING id, created, updated;
	`
	err := r.db.QueryRow(ctx, query,
		update.IncidentID,
		update.StatusName,
		update.UserID,
		update.Description,
	).Scan(&update.ID, &update.CreatedAt, &update.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create update: %w", err)
	}
	return nil
}

// Update edits an existing row in place. The created column is deliberately
// absent from the SET list: an edit must never reset history.
func (r *UpdateRepository) Update(ctx context.Context, update *models.Update) error {
	query := `
		UPDATE incident_updates SET
			incident_id = $1,
			status_name = $2,
			user_id = NULLIF($3, 0),
			description = $4,
			updated = NOW()
		WHERE id = $5
		RETURNING updated;
	`
	err := r.db.QueryRow(ctx, query,
		update.IncidentID,
		update.StatusName,
		update.UserID,
		update.Description,
		update.ID,
	).Scan(&update.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("update %d not found for edit: %w", update.ID, service.ErrNotFound)
		}
		return fmt.Errorf("failed to edit update: %w", err)
	}
	return nil
}

// GetByID returns one update.
func (r *UpdateRepository) GetByID(ctx context.Context, id int64) (*models.Update, error) {
	query := updateSelect + ` WHERE iu.id = $1;`

	update, err := scanUpdate(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("update %d: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get update by id: %w", err)
	}
	return update, nil
}

// List returns updates matching the filter, newest first.
func (r *UpdateRepository) List(ctx context.Context, filter models.UpdateFilter) ([]*models.Update, error) {
	where := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if filter.CreatedAfter != nil {
		args = append(args, *filter.CreatedAfter)
		where = append(where, fmt.Sprintf("iu.created >= $%d", len(args)))
	}
	if filter.CreatedBefore != nil {
		args = append(args, *filter.CreatedBefore)
		where = append(where, fmt.Sprintf("iu.created < $%d", len(args)))
	}
	if filter.UpdatedAfter != nil {
		args = append(args, *filter.UpdatedAfter)
		where = append(where, fmt.Sprintf("iu.updated >= $%d", len(args)))
	}
	if filter.UpdatedBefore != nil {
		args = append(args, *filter.UpdatedBefore)
		where = append(where, fmt.Sprintf("iu.updated < $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("iu.status_name = $%d", len(args)))
	}
	if filter.IncidentID != 0 {
		args = append(args, filter.IncidentID)
		where = append(where, fmt.Sprintf("iu.incident_id = $%d", len(args)))
	}

	query := updateSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY iu.created DESC, iu.id DESC LIMIT $%d;", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list updates: %w", err)
	}
	defer rows.Close()

	updates := make([]*models.Update, 0)
	for rows.Next() {
		update, err := scanUpdate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan update row: %w", err)
		}
		updates = append(updates, update)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error update list iteration: %w", err)
	}
	return updates, nil
}

// Delete removes one update.
func (r *UpdateRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM incident_updates
		WHERE id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete update: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("update %d not found for delete: %w", id, service.ErrNotFound)
	}
	return nil
}
