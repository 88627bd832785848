package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riptano/statuspage/internal/models"
	"github.com/riptano/statuspage/internal/service"
)

type StatusRepository struct {
	db *pgxpool.Pool
}

func NewStatusRepository(db *pgxpool.Pool) service.StatusRepository {
	return &StatusRepository{
		db: db,
	}
}

// List returns the whole status catalog ordered by name.
func (r *StatusRepository) List(ctx context.Context) ([]*models.Status, error) {
	query := `
		SELECT name, COALESCE(description, ''), COALESCE(image, ''), created, updated
		FROM statuses
		ORDER BY name;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	defer rows.Close()

	statuses := make([]*models.Status, 0)
	for rows.Next() {
		status := &models.Status{}
		err := rows.Scan(
			&status.Name,
			&status.Description,
			&status.Image,
			&status.CreatedAt,
			&status.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan status row: %w", err)
		}
		statuses = append(statuses, status)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error status list iteration: %w", err)
	}
	return statuses, nil
}

// GetByName returns one catalog entry keyed by its name.
func (r *StatusRepository) GetByName(ctx context.Context, name string) (*models.Status, error) {
	status := &models.Status{}
	query := `
		SELECT name, COALESCE(description, ''), COALESCE(image, ''), created, updated
		FROM statuses
		WHERE name = $1;
	`
	err := r.db.QueryRow(ctx, query, name).Scan(
		&status.Name,
		&status.Description,
		&status.Image,
		&status.CreatedAt,
		&status.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("status %q: %w", name, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get status by name: %w", err)
	}
	return status, nil
}
