package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riptano/statuspage/internal/config"
	"github.com/riptano/statuspage/internal/models"
	"github.com/riptano/statuspage/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestDashboardService(t *testing.T) (*dashboardService, *mocks.MockIncidentRepository, *mocks.MockDashboardCache) {
	ctrl := gomock.NewController(t)
	incidentsMock := mocks.NewMockIncidentRepository(ctrl)
	cacheMock := mocks.NewMockDashboardCache(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{DashboardPageSize: 20}

	service := NewDashboardService(incidentsMock, cacheMock, logger, cfg)
	return service.(*dashboardService), incidentsMock, cacheMock
}

func TestPublicDashboard_CacheHit(t *testing.T) {
	service, incidentsMock, cacheMock := newTestDashboardService(t)
	ctx := context.Background()
	cached := &models.DashboardView{
		GeneratedAt: time.Now().UTC(),
		Incidents:   []*models.Incident{{ID: 1, Name: "cached"}},
	}

	cacheMock.EXPECT().GetView(ctx).Return(cached, nil).Times(1)
	incidentsMock.EXPECT().ListByRecency(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	view, err := service.PublicDashboard(ctx)

	require.NoError(t, err)
	assert.Equal(t, cached, view)
}

func TestPublicDashboard_CacheMiss(t *testing.T) {
	service, incidentsMock, cacheMock := newTestDashboardService(t)
	ctx := context.Background()
	incidents := []*models.Incident{{ID: 1, Name: "fresh"}}

	cacheMock.EXPECT().GetView(ctx).Return(nil, nil).Times(1)
	// The public view never includes hidden incidents.
	incidentsMock.EXPECT().ListByRecency(ctx, false, 20).Return(incidents, nil).Times(1)
	cacheMock.EXPECT().
		SetView(ctx, gomock.Any()).
		Do(func(_ context.Context, view *models.DashboardView) {
			assert.Equal(t, incidents, view.Incidents)
		}).Return(nil).Times(1)

	view, err := service.PublicDashboard(ctx)

	require.NoError(t, err)
	assert.Equal(t, incidents, view.Incidents)
	assert.False(t, view.GeneratedAt.IsZero())
}

func TestPublicDashboard_CacheErrorFallsBackToStorage(t *testing.T) {
	service, incidentsMock, cacheMock := newTestDashboardService(t)
	ctx := context.Background()
	incidents := []*models.Incident{{ID: 1}}

	cacheMock.EXPECT().GetView(ctx).Return(nil, errors.New("redis down")).Times(1)
	incidentsMock.EXPECT().ListByRecency(ctx, false, 20).Return(incidents, nil).Times(1)
	cacheMock.EXPECT().SetView(ctx, gomock.Any()).Return(errors.New("redis down")).Times(1)

	view, err := service.PublicDashboard(ctx)

	require.NoError(t, err)
	assert.Equal(t, incidents, view.Incidents)
}

func TestOperatorDashboard_NeverCached(t *testing.T) {
	service, incidentsMock, cacheMock := newTestDashboardService(t)
	ctx := context.Background()
	incidents := []*models.Incident{
		{ID: 1, Name: "visible"},
		{ID: 2, Name: "hidden", Hidden: true},
	}

	cacheMock.EXPECT().GetView(gomock.Any()).Times(0)
	cacheMock.EXPECT().SetView(gomock.Any(), gomock.Any()).Times(0)
	incidentsMock.EXPECT().ListByRecency(ctx, true, 20).Return(incidents, nil).Times(1)

	view, err := service.OperatorDashboard(ctx)

	require.NoError(t, err)
	assert.Len(t, view.Incidents, 2)
}

func TestArchiveYear_Success(t *testing.T) {
	service, incidentsMock, _ := newTestDashboardService(t)
	ctx := context.Background()
	incidents := []*models.Incident{{ID: 1}}
	buckets := []models.ArchiveBucket{{Year: 2025, Month: 3, Count: 4}}

	incidentsMock.EXPECT().
		List(ctx, gomock.Any()).
		Do(func(_ context.Context, filter models.IncidentFilter) {
			require.NotNil(t, filter.CreatedAfter)
			require.NotNil(t, filter.CreatedBefore)
			assert.Equal(t, 2025, filter.CreatedAfter.Year())
			assert.Equal(t, 2026, filter.CreatedBefore.Year())
			assert.False(t, filter.IncludeHidden)
		}).Return(incidents, nil).Times(1)
	incidentsMock.EXPECT().MonthlyCounts(ctx, 2025).Return(buckets, nil).Times(1)

	gotIncidents, gotBuckets, err := service.ArchiveYear(ctx, 2025)

	require.NoError(t, err)
	assert.Equal(t, incidents, gotIncidents)
	assert.Equal(t, buckets, gotBuckets)
}

func TestArchiveMonth_Success(t *testing.T) {
	service, incidentsMock, _ := newTestDashboardService(t)
	ctx := context.Background()

	incidentsMock.EXPECT().
		List(ctx, gomock.Any()).
		Do(func(_ context.Context, filter models.IncidentFilter) {
			require.NotNil(t, filter.CreatedAfter)
			require.NotNil(t, filter.CreatedBefore)
			assert.Equal(t, time.March, filter.CreatedAfter.Month())
			assert.Equal(t, time.April, filter.CreatedBefore.Month())
		}).Return([]*models.Incident{}, nil).Times(1)

	_, err := service.ArchiveMonth(ctx, 2025, 3)

	require.NoError(t, err)
}

func TestArchiveMonth_OutOfRange(t *testing.T) {
	service, incidentsMock, _ := newTestDashboardService(t)
	ctx := context.Background()

	incidentsMock.EXPECT().List(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.ArchiveMonth(ctx, 2025, 13)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}
