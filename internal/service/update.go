package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riptano/statuspage/internal/models"
	"github.com/riptano/statuspage/internal/notify"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=update.go -destination=mocks/mock_update.go -package=mocks

// UpdateRepository defines the storage contract for incident updates.
// Update edits an existing row in place and never touches its created
// timestamp.
type UpdateRepository interface {
	Create(ctx context.Context, update *models.Update) error
	Update(ctx context.Context, update *models.Update) error
	GetByID(ctx context.Context, id int64) (*models.Update, error)
	List(ctx context.Context, filter models.UpdateFilter) ([]*models.Update, error)
	Delete(ctx context.Context, id int64) error
}

// UpdateService defines the business logic for posting and removing
// updates. Both the status and the parent incident are mandatory at
// creation; the owner is always the authenticated requester.
type UpdateService interface {
	CreateUpdate(ctx context.Context, actor *models.User, update *models.Update) error
	GetUpdate(ctx context.Context, id int64) (*models.Update, error)
	ListUpdates(ctx context.Context, filter models.UpdateFilter) ([]*models.Update, error)
	DeleteUpdate(ctx context.Context, actor *models.User, id int64) error
}

type updateService struct {
	repo      UpdateRepository
	incidents IncidentRepository
	statuses  StatusRepository
	cache     DashboardCache
	publisher notify.Publisher
	logger    *logrus.Logger
}

func NewUpdateService(
	repo UpdateRepository,
	incidents IncidentRepository,
	statuses StatusRepository,
	cache DashboardCache,
	publisher notify.Publisher,
	logger *logrus.Logger,
) UpdateService {
	return &updateService{
		repo:      repo,
		incidents: incidents,
		statuses:  statuses,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateUpdate persists an update owned by the acting user. When the
// payload carries the id of an existing update (an edit resubmitted by a
// client), the stored record's original created timestamp wins over anything
// the client sent, so history is never silently reset.
func (s *updateService) CreateUpdate(ctx context.Context, actor *models.User, update *models.Update) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "update",
		"method":      "CreateUpdate",
		"incident_id": update.IncidentID,
		"status":      update.StatusName,
	})

	if actor == nil {
		log.Warn("Create attempted without an authenticated user")
		return fmt.Errorf("service: update create requires an acting user: %w", ErrUnauthorized)
	}

	if update.IncidentID == 0 {
		return fmt.Errorf("service: update requires an incident: %w", ErrValidation)
	}
	if update.StatusName == "" {
		return fmt.Errorf("service: update requires a status: %w", ErrValidation)
	}

	status, err := s.statuses.GetByName(ctx, update.StatusName)
	if err != nil {
		log.WithError(err).Warn("Update references an unknown status")
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("service: unknown status %q: %w", update.StatusName, ErrValidation)
		}
		return fmt.Errorf("service: could not resolve status: %w", err)
	}

	incident, err := s.incidents.GetByID(ctx, update.IncidentID)
	if err != nil {
		log.WithError(err).Warn("Update references an unknown incident")
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("service: unknown incident %d: %w", update.IncidentID, ErrValidation)
		}
		return fmt.Errorf("service: could not resolve incident: %w", err)
	}

	update.UserID = actor.ID
	update.UserName = actor.DisplayName
	update.Status = status

	if update.ID != 0 {
		// Resubmitted edit: keep the original created timestamp.
		existing, err := s.repo.GetByID(ctx, update.ID)
		if err != nil {
			log.WithError(err).Warn("Resubmitted update does not exist")
			return fmt.Errorf("service: update %d not found for edit: %w", update.ID, err)
		}
		update.CreatedAt = existing.CreatedAt

		if err := s.repo.Update(ctx, update); err != nil {
			log.WithError(err).Error("Failed to edit update in repository")
			return fmt.Errorf("service: could not edit update: %w", err)
		}
	} else {
		if err := s.repo.Create(ctx, update); err != nil {
			log.WithError(err).Error("Failed to create update in repository")
			return fmt.Errorf("service: could not create update: %w", err)
		}
	}

	s.afterStatusChange(ctx, log, notify.EventUpdatePosted, incident, status.Name, actor.Username)

	log.WithField("update_id", update.ID).Info("Update persisted")
	return nil
}

// GetUpdate returns one update with its status expanded.
func (s *updateService) GetUpdate(ctx context.Context, id int64) (*models.Update, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "update",
		"method":    "GetUpdate",
		"update_id": id,
	})

	update, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get update from repository")
		return nil, fmt.Errorf("service: could not get update: %w", err)
	}
	return update, nil
}

// ListUpdates returns updates matching the filter, newest first.
func (s *updateService) ListUpdates(ctx context.Context, filter models.UpdateFilter) ([]*models.Update, error) {
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	log := s.logger.WithFields(logrus.Fields{
		"service": "update",
		"method":  "ListUpdates",
		"limit":   filter.Limit,
	})

	updates, err := s.repo.List(ctx, filter)
	if err != nil {
		log.WithError(err).Error("Failed to list updates from repository")
		return nil, fmt.Errorf("service: could not list updates: %w", err)
	}
	return updates, nil
}

// DeleteUpdate removes the update. The parent incident's current status is
// a live query over the remaining updates, so nothing needs recomputing
// here beyond dropping the dashboard cache.
func (s *updateService) DeleteUpdate(ctx context.Context, actor *models.User, id int64) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "update",
		"method":    "DeleteUpdate",
		"update_id": id,
	})

	if actor == nil {
		log.Warn("Delete attempted without an authenticated user")
		return fmt.Errorf("service: update delete requires an acting user: %w", ErrUnauthorized)
	}

	update, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Attempted to delete a non-existent update")
		return fmt.Errorf("service: update %d not found for delete: %w", id, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.WithError(err).Error("Failed to delete update in repository")
		return fmt.Errorf("service: could not delete update: %w", err)
	}

	incident, err := s.incidents.GetByID(ctx, update.IncidentID)
	if err != nil {
		log.WithError(err).Warn("Could not reload incident after update delete")
	} else {
		current := ""
		if incident.CurrentStatus != nil {
			current = incident.CurrentStatus.Name
		}
		s.afterStatusChange(ctx, log, notify.EventUpdateRemoved, incident, current, actor.Username)
	}

	log.Info("Update deleted")
	return nil
}

// afterStatusChange invalidates the dashboard cache and queues a webhook
// event. Neither failure is surfaced to the caller: the mutation is already
// committed.
func (s *updateService) afterStatusChange(ctx context.Context, log *logrus.Entry, kind string, incident *models.Incident, status, username string) {
	if err := s.cache.Invalidate(ctx); err != nil {
		log.WithError(err).Warn("Failed to invalidate dashboard cache")
	}

	event := notify.Event{
		Type:         kind,
		IncidentID:   incident.ID,
		IncidentName: incident.Name,
		Status:       status,
		Username:     username,
		Timestamp:    time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).Warn("Failed to publish status change event")
	}
}
