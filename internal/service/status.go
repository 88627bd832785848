package service

import (
	"context"
	"fmt"

	"github.com/riptano/statuspage/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=status.go -destination=mocks/mock_status.go -package=mocks

// StatusRepository defines the storage contract for the status catalog. The
// catalog is maintained through an administrative path; the service only
// ever reads it.
type StatusRepository interface {
	List(ctx context.Context) ([]*models.Status, error)
	GetByName(ctx context.Context, name string) (*models.Status, error)
}

// StatusService exposes read-only access to the status catalog.
type StatusService interface {
	ListStatuses(ctx context.Context) ([]*models.Status, error)
	GetStatus(ctx context.Context, name string) (*models.Status, error)
}

type statusService struct {
	repo   StatusRepository
	logger *logrus.Logger
}

func NewStatusService(repo StatusRepository, logger *logrus.Logger) StatusService {
	return &statusService{
		repo:   repo,
		logger: logger,
	}
}

// ListStatuses returns the full status catalog.
func (s *statusService) ListStatuses(ctx context.Context) ([]*models.Status, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "status",
		"method":  "ListStatuses",
	})

	statuses, err := s.repo.List(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list statuses from repository")
		return nil, fmt.Errorf("service: could not list statuses: %w", err)
	}
	return statuses, nil
}

// GetStatus returns a single catalog entry by its name.
func (s *statusService) GetStatus(ctx context.Context, name string) (*models.Status, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "status",
		"method":  "GetStatus",
		"name":    name,
	})

	status, err := s.repo.GetByName(ctx, name)
	if err != nil {
		log.WithError(err).Warn("Failed to get status from repository")
		return nil, fmt.Errorf("service: could not get status %q: %w", name, err)
	}
	return status, nil
}
