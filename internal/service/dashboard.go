package service

import (
	"context"
	"fmt"
	"time"

	"github.com/riptano/statuspage/internal/config"
	"github.com/riptano/statuspage/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=dashboard.go -destination=mocks/mock_dashboard.go -package=mocks

// DashboardService builds the two dashboard views. The public view is
// served through a short-lived cache because status changes are rare
// relative to read traffic; the operator view always hits storage.
type DashboardService interface {
	PublicDashboard(ctx context.Context) (*models.DashboardView, error)
	OperatorDashboard(ctx context.Context) (*models.DashboardView, error)
	ArchiveYear(ctx context.Context, year int) ([]*models.Incident, []models.ArchiveBucket, error)
	ArchiveMonth(ctx context.Context, year, month int) ([]*models.Incident, error)
}

type dashboardService struct {
	incidents IncidentRepository
	cache     DashboardCache
	logger    *logrus.Logger
	cfg       *config.Config
}

func NewDashboardService(incidents IncidentRepository, cache DashboardCache, logger *logrus.Logger, cfg *config.Config) DashboardService {
	return &dashboardService{
		incidents: incidents,
		cache:     cache,
		logger:    logger,
		cfg:       cfg,
	}
}

// PublicDashboard returns the non-hidden incidents ordered by recency,
// read through the cache. Mutating services invalidate the cached view, so
// a hit is never stale across a write.
func (s *dashboardService) PublicDashboard(ctx context.Context) (*models.DashboardView, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "dashboard",
		"method":  "PublicDashboard",
	})

	cached, err := s.cache.GetView(ctx)
	if err != nil {
		log.WithError(err).Warn("Dashboard cache read failed, falling back to storage")
	}
	if cached != nil {
		return cached, nil
	}

	incidents, err := s.incidents.ListByRecency(ctx, false, s.cfg.DashboardPageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents for public dashboard")
		return nil, fmt.Errorf("service: could not build public dashboard: %w", err)
	}

	view := &models.DashboardView{
		GeneratedAt: time.Now().UTC(),
		Incidents:   incidents,
	}

	if err := s.cache.SetView(ctx, view); err != nil {
		log.WithError(err).Warn("Failed to cache public dashboard")
	}
	return view, nil
}

// OperatorDashboard returns every incident, hidden ones included. Never
// cached: operators act on what they see.
func (s *dashboardService) OperatorDashboard(ctx context.Context) (*models.DashboardView, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "dashboard",
		"method":  "OperatorDashboard",
	})

	incidents, err := s.incidents.ListByRecency(ctx, true, s.cfg.DashboardPageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents for operator dashboard")
		return nil, fmt.Errorf("service: could not build operator dashboard: %w", err)
	}

	return &models.DashboardView{
		GeneratedAt: time.Now().UTC(),
		Incidents:   incidents,
	}, nil
}

// ArchiveYear returns the visible incidents created in the given year plus
// per-month counts for the archive navigation.
func (s *dashboardService) ArchiveYear(ctx context.Context, year int) ([]*models.Incident, []models.ArchiveBucket, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "dashboard",
		"method":  "ArchiveYear",
		"year":    year,
	})

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	incidents, err := s.incidents.List(ctx, models.IncidentFilter{
		CreatedAfter:  &from,
		CreatedBefore: &to,
		Limit:         s.cfg.DashboardPageSize,
	})
	if err != nil {
		log.WithError(err).Error("Failed to list archived incidents")
		return nil, nil, fmt.Errorf("service: could not list archive for %d: %w", year, err)
	}

	buckets, err := s.incidents.MonthlyCounts(ctx, year)
	if err != nil {
		log.WithError(err).Error("Failed to count archived incidents")
		return nil, nil, fmt.Errorf("service: could not count archive for %d: %w", year, err)
	}
	return incidents, buckets, nil
}

// ArchiveMonth returns the visible incidents created in the given month.
func (s *dashboardService) ArchiveMonth(ctx context.Context, year, month int) ([]*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "dashboard",
		"method":  "ArchiveMonth",
		"year":    year,
		"month":   month,
	})

	if month < 1 || month > 12 {
		return nil, fmt.Errorf("service: month %d out of range: %w", month, ErrValidation)
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	incidents, err := s.incidents.List(ctx, models.IncidentFilter{
		CreatedAfter:  &from,
		CreatedBefore: &to,
		Limit:         s.cfg.DashboardPageSize,
	})
	if err != nil {
		log.WithError(err).Error("Failed to list archived incidents")
		return nil, fmt.Errorf("service: could not list archive for %d-%02d: %w", year, month, err)
	}
	return incidents, nil
}
