package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/riptano/statuspage/internal/models"
	"github.com/riptano/statuspage/internal/notify"
	notify_mocks "github.com/riptano/statuspage/internal/notify/mocks"
	"github.com/riptano/statuspage/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type updateServiceMocks struct {
	repo      *mocks.MockUpdateRepository
	incidents *mocks.MockIncidentRepository
	statuses  *mocks.MockStatusRepository
	cache     *mocks.MockDashboardCache
	publisher *notify_mocks.MockPublisher
}

func newTestUpdateService(t *testing.T) (*updateService, updateServiceMocks) {
	ctrl := gomock.NewController(t)
	m := updateServiceMocks{
		repo:      mocks.NewMockUpdateRepository(ctrl),
		incidents: mocks.NewMockIncidentRepository(ctrl),
		statuses:  mocks.NewMockStatusRepository(ctrl),
		cache:     mocks.NewMockDashboardCache(ctrl),
		publisher: notify_mocks.NewMockPublisher(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	service := NewUpdateService(m.repo, m.incidents, m.statuses, m.cache, m.publisher, logger)
	return service.(*updateService), m
}

func TestCreateUpdate_Success(t *testing.T) {
	service, m := newTestUpdateService(t)
	ctx := context.Background()
	actor := testActor()
	update := &models.Update{IncidentID: 1, StatusName: "down", Description: "primary DB unreachable"}
	status := &models.Status{Name: "down"}
	incident := &models.Incident{ID: 1, Name: "DB outage"}

	m.statuses.EXPECT().GetByName(ctx, "down").Return(status, nil).Times(1)
	m.incidents.EXPECT().GetByID(ctx, int64(1)).Return(incident, nil).Times(1)
	m.repo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.Update) error {
			u.ID = 11
			return nil
		}).Times(1)
	m.cache.EXPECT().Invalidate(ctx).Return(nil).Times(1)
	m.publisher.EXPECT().
		Publish(ctx, gomock.Any()).
		Do(func(_ context.Context, event notify.Event) {
			assert.Equal(t, notify.EventUpdatePosted, event.Type)
			assert.Equal(t, int64(1), event.IncidentID)
			assert.Equal(t, "down", event.Status)
			assert.Equal(t, actor.Username, event.Username)
		}).Return(nil).Times(1)

	err := service.CreateUpdate(ctx, actor, update)

	require.NoError(t, err)
	assert.Equal(t, int64(11), update.ID)
	assert.Equal(t, status, update.Status)
	assert.Equal(t, actor.ID, update.UserID)
	assert.Equal(t, actor.DisplayName, update.UserName)
}

func TestCreateUpdate_EditPreservesCreated(t *testing.T) {
	service, m := newTestUpdateService(t)
	ctx := context.Background()
	actor := testActor()
	originalCreated := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	resubmitted := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	update := &models.Update{
		ID:         11,
		IncidentID: 1,
		StatusName: "up",
		CreatedAt:  resubmitted, // client-supplied, must lose
	}

	m.statuses.EXPECT().GetByName(ctx, "up").Return(&models.Status{Name: "up"}, nil).Times(1)
	m.incidents.EXPECT().GetByID(ctx, int64(1)).Return(&models.Incident{ID: 1}, nil).Times(1)
	m.repo.EXPECT().
		GetByID(ctx, int64(11)).
		Return(&models.Update{ID: 11, IncidentID: 1, CreatedAt: originalCreated}, nil).
		Times(1)
	m.repo.EXPECT().
		Update(ctx, gomock.Any()).
		Do(func(_ context.Context, u *models.Update) {
			assert.Equal(t, originalCreated, u.CreatedAt)
		}).Return(nil).Times(1)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
	m.cache.EXPECT().Invalidate(ctx).Return(nil).Times(1)
	m.publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)

	err := service.CreateUpdate(ctx, actor, update)

	require.NoError(t, err)
	assert.Equal(t, originalCreated, update.CreatedAt)
}

func TestCreateUpdate_NoActor(t *testing.T) {
	service, m := newTestUpdateService(t)
	ctx := context.Background()

	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	err := service.CreateUpdate(ctx, nil, &models.Update{IncidentID: 1, StatusName: "up"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateUpdate_MissingIncident(t *testing.T) {
	service, m := newTestUpdateService(t)
	ctx := context.Background()

	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	err := service.CreateUpdate(ctx, testActor(), &models.Update{StatusName: "up"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateUpdate_MissingStatus(t *testing.T) {
	service, m := newTestUpdateService(t)
	ctx := context.Background()

	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	err := service.CreateUpdate(ctx, testActor(), &models.Update{IncidentID: 1})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateUpdate_UnknownStatusIsValidationError(t *testing.T) {
	service, m := newTestUpdateService(t)
	ctx := context.Background()

	m.statuses.EXPECT().
		GetByName(ctx, "sideways").
		Return(nil, fmt.Errorf("status %q: %w", "sideways", ErrNotFound)).
		Times(1)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	err := service.CreateUpdate(ctx, testActor(), &models.Update{IncidentID: 1, StatusName: "sideways"})

	require.Error(t, err)
	// A dangling relation in a write payload is the client's mistake, not
	// a missing resource.
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestCreateUpdate_UnknownIncidentIsValidationError(t *testing.T) {
	service, m := newTestUpdateService(t)
	ctx := context.Background()

	m.statuses.EXPECT().GetByName(ctx, "up").Return(&models.Status{Name: "up"}, nil).Times(1)
	m.incidents.EXPECT().
		GetByID(ctx, int64(404)).
		Return(nil, fmt.Errorf("incident 404: %w", ErrNotFound)).
		Times(1)
	m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	err := service.CreateUpdate(ctx, testActor(), &models.Update{IncidentID: 404, StatusName: "up"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestGetUpdate_NotFound(t *testing.T) {
	service, m := newTestUpdateService(t)
	ctx := context.Background()

	m.repo.EXPECT().
		GetByID(ctx, int64(404)).
		Return(nil, fmt.Errorf("update 404: %w", ErrNotFound)).
		Times(1)

	update, err := service.GetUpdate(ctx, 404)

	require.Error(t, err)
	assert.Nil(t, update)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListUpdates_ClampsLimit(t *testing.T) {
	service, m := newTestUpdateService(t)
	ctx := context.Background()

	m.repo.EXPECT().
		List(ctx, gomock.Any()).
		Do(func(_ context.Context, filter models.UpdateFilter) {
			assert.Equal(t, 20, filter.Limit)
		}).Return([]*models.Update{}, nil).Times(1)

	_, err := service.ListUpdates(ctx, models.UpdateFilter{Limit: -1})
	require.NoError(t, err)
}

func TestDeleteUpdate_Success(t *testing.T) {
	service, m := newTestUpdateService(t)
	ctx := context.Background()
	actor := testActor()
	// Deleted by a different user than the one who posted it. The event
	// names the deleter, same as the create path names its actor.
	update := &models.Update{ID: 11, IncidentID: 1, UserID: 3, UserName: "Night Shift"}
	// After the delete the incident's current status reflects the
	// remaining updates.
	incident := &models.Incident{ID: 1, Name: "DB outage", CurrentStatus: &models.Status{Name: "warning"}}

	m.repo.EXPECT().GetByID(ctx, int64(11)).Return(update, nil).Times(1)
	m.repo.EXPECT().Delete(ctx, int64(11)).Return(nil).Times(1)
	m.incidents.EXPECT().GetByID(ctx, int64(1)).Return(incident, nil).Times(1)
	m.cache.EXPECT().Invalidate(ctx).Return(nil).Times(1)
	m.publisher.EXPECT().
		Publish(ctx, gomock.Any()).
		Do(func(_ context.Context, event notify.Event) {
			assert.Equal(t, notify.EventUpdateRemoved, event.Type)
			assert.Equal(t, "warning", event.Status)
			assert.Equal(t, actor.Username, event.Username)
		}).Return(nil).Times(1)

	require.NoError(t, service.DeleteUpdate(ctx, actor, 11))
}

func TestDeleteUpdate_NoActor(t *testing.T) {
	service, m := newTestUpdateService(t)
	ctx := context.Background()

	m.repo.EXPECT().GetByID(gomock.Any(), gomock.Any()).Times(0)
	m.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

	err := service.DeleteUpdate(ctx, nil, 11)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDeleteUpdate_NotFound(t *testing.T) {
	service, m := newTestUpdateService(t)
	ctx := context.Background()

	m.repo.EXPECT().
		GetByID(ctx, int64(404)).
		Return(nil, fmt.Errorf("update 404: %w", ErrNotFound)).
		Times(1)
	m.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

	err := service.DeleteUpdate(ctx, testActor(), 404)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}
