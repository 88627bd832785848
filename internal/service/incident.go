package service

import (
	"context"
	"fmt"

	"github.com/riptano/statuspage/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=incident.go -destination=mocks/mock_incident.go -package=mocks

// IncidentRepository defines the storage contract for incidents. All reads
// return incidents with the owner's display name and the computed current
// status attached; created/updated are only ever written by the database.
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id int64) (*models.Incident, error)
	List(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error)
	ListByRecency(ctx context.Context, includeHidden bool, limit int) ([]*models.Incident, error)
	SetHidden(ctx context.Context, id int64, hidden bool) error
	Delete(ctx context.Context, id int64) error
	MonthlyCounts(ctx context.Context, year int) ([]models.ArchiveBucket, error)
}

// DashboardCache is the short-lived read-through cache in front of the
// public dashboard. A miss is (nil, nil); every mutation must Invalidate.
type DashboardCache interface {
	GetView(ctx context.Context) (*models.DashboardView, error)
	SetView(ctx context.Context, view *models.DashboardView) error
	Invalidate(ctx context.Context) error
}

// IncidentService defines the business logic for managing incidents. The
// acting user on every write comes from the authenticated request identity,
// never from the payload.
type IncidentService interface {
	CreateIncident(ctx context.Context, actor *models.User, incident *models.Incident) error
	GetIncident(ctx context.Context, id int64) (*models.Incident, error)
	ListIncidents(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error)
	SetIncidentHidden(ctx context.Context, id int64, hidden bool) (*models.Incident, error)
	DeleteIncident(ctx context.Context, id int64) error
}

type incidentService struct {
	repo   IncidentRepository
	cache  DashboardCache
	logger *logrus.Logger
}

func NewIncidentService(repo IncidentRepository, cache DashboardCache, logger *logrus.Logger) IncidentService {
	return &incidentService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// CreateIncident persists a new incident owned by the acting user. Any
// client-supplied timestamps are discarded: created/updated come back from
// the database.
func (s *incidentService) CreateIncident(ctx context.Context, actor *models.User, incident *models.Incident) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "CreateIncident",
		"name":    incident.Name,
	})

	if actor == nil {
		log.Warn("Create attempted without an authenticated user")
		return fmt.Errorf("service: incident create requires an acting user: %w", ErrUnauthorized)
	}

	incident.UserID = actor.ID
	incident.UserName = actor.DisplayName

	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return fmt.Errorf("service: could not create incident: %w", err)
	}

	s.invalidateDashboard(ctx, log)

	log.WithField("incident_id", incident.ID).Info("Incident created")
	return nil
}

// GetIncident returns one incident with its updates and current status.
func (s *incidentService) GetIncident(ctx context.Context, id int64) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "GetIncident",
		"incident_id": id,
	})

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident from repository")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}
	return incident, nil
}

// ListIncidents returns incidents matching the filter, newest first.
func (s *incidentService) ListIncidents(ctx context.Context, filter models.IncidentFilter) ([]*models.Incident, error) {
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "ListIncidents",
		"limit":   filter.Limit,
	})

	incidents, err := s.repo.List(ctx, filter)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}
	return incidents, nil
}

// SetIncidentHidden flips the visibility flag and returns the new state.
func (s *incidentService) SetIncidentHidden(ctx context.Context, id int64, hidden bool) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "SetIncidentHidden",
		"incident_id": id,
		"hidden":      hidden,
	})

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		log.WithError(err).Warn("Attempted to hide a non-existent incident")
		return nil, fmt.Errorf("service: incident %d not found for hide: %w", id, err)
	}

	if err := s.repo.SetHidden(ctx, id, hidden); err != nil {
		log.WithError(err).Error("Failed to set hidden flag in repository")
		return nil, fmt.Errorf("service: could not set hidden flag: %w", err)
	}

	s.invalidateDashboard(ctx, log)

	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not reload incident: %w", err)
	}
	log.Info("Incident visibility changed")
	return incident, nil
}

// DeleteIncident removes the incident. Dependent updates go with it (the
// schema cascades), so no orphaned foreign keys survive.
func (s *incidentService) DeleteIncident(ctx context.Context, id int64) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "DeleteIncident",
		"incident_id": id,
	})

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		log.WithError(err).Warn("Attempted to delete a non-existent incident")
		return fmt.Errorf("service: incident %d not found for delete: %w", id, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.WithError(err).Error("Failed to delete incident in repository")
		return fmt.Errorf("service: could not delete incident: %w", err)
	}

	s.invalidateDashboard(ctx, log)

	log.Info("Incident deleted")
	return nil
}

// invalidateDashboard drops the cached public dashboard so the next read
// reflects this mutation. A cache failure is logged, not surfaced: the write
// already happened.
func (s *incidentService) invalidateDashboard(ctx context.Context, log *logrus.Entry) {
	if err := s.cache.Invalidate(ctx); err != nil {
		log.WithError(err).Warn("Failed to invalidate dashboard cache")
	}
}
