package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/riptano/statuspage/internal/config"
	"github.com/riptano/statuspage/internal/models"
	"github.com/riptano/statuspage/internal/service"
	"github.com/riptano/statuspage/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type handlerMocks struct {
	status   *mocks.MockStatusService
	incident *mocks.MockIncidentService
	update   *mocks.MockUpdateService
	auth     *mocks.MockAuthService
}

// newTestHandler builds a Handler over mocked services and a test router.
func newTestHandler(t *testing.T) (handlerMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)
	m := handlerMocks{
		status:   mocks.NewMockStatusService(ctrl),
		incident: mocks.NewMockIncidentService(ctrl),
		update:   mocks.NewMockUpdateService(ctrl),
		auth:     mocks.NewMockAuthService(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // keep test output quiet

	cfg := &config.Config{}

	handler := NewHandler(m.status, m.incident, m.update, m.auth, logger, cfg)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return m, router
}

// makeRequest runs one request through the test router.
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func apiKeyHeader() map[string]string {
	return map[string]string{"X-API-Key": "test-api-key"}
}

func expectAuthenticated(m handlerMocks) *models.User {
	actor := &models.User{ID: 7, Username: "oncall", DisplayName: "On-Call Operator"}
	m.auth.EXPECT().Authenticate(gomock.Any(), "test-api-key").Return(actor, nil).Times(1)
	return actor
}

func TestListStatuses_Success(t *testing.T) {
	m, router := newTestHandler(t)
	statuses := []*models.Status{
		{Name: "down", Description: "Service unavailable"},
		{Name: "up", Description: "All systems operational"},
	}

	m.status.EXPECT().ListStatuses(gomock.Any()).Return(statuses, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/status", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
	assert.Equal(t, "down", resp[0].Name)
}

func TestGetStatus_NotFound(t *testing.T) {
	m, router := newTestHandler(t)

	m.status.EXPECT().
		GetStatus(gomock.Any(), "sideways").
		Return(nil, fmt.Errorf("service: %w", service.ErrNotFound)).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/status/sideways", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}

func TestStatusCatalog_WritesAnswer405(t *testing.T) {
	_, router := newTestHandler(t)

	for _, method := range []string{"POST", "PUT", "PATCH", "DELETE"} {
		w := makeRequest(router, method, "/api/v1/status/up", bytes.NewBufferString(`{}`))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
		assert.Contains(t, w.Body.String(), "method not allowed")
	}

	w := makeRequest(router, "POST", "/api/v1/status", bytes.NewBufferString(`{"name":"new"}`))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCreateIncident_Success(t *testing.T) {
	m, router := newTestHandler(t)
	actor := expectAuthenticated(m)
	reqBody := CreateIncidentRequest{Name: "API latency"}

	m.incident.EXPECT().
		CreateIncident(gomock.Any(), actor, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *models.User, inc *models.Incident) error {
			inc.ID = 42
			inc.UserName = actor.DisplayName
			inc.CreatedAt = time.Now()
			inc.UpdatedAt = inc.CreatedAt
			return nil
		}).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/incident", bytes.NewBuffer(bodyBytes), apiKeyHeader())

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "API latency", resp.Name)
	assert.Equal(t, actor.DisplayName, resp.User)
	// No updates yet: the current status serializes as null.
	assert.Nil(t, resp.Status)
}

func TestCreateIncident_NoAPIKey(t *testing.T) {
	m, router := newTestHandler(t)

	m.incident.EXPECT().CreateIncident(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(CreateIncidentRequest{Name: "API latency"})
	w := makeRequest(router, "POST", "/api/v1/incident", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")
}

func TestCreateIncident_InvalidAPIKey(t *testing.T) {
	m, router := newTestHandler(t)

	m.auth.EXPECT().
		Authenticate(gomock.Any(), "bogus").
		Return(nil, fmt.Errorf("service: %w", service.ErrUnauthorized)).
		Times(1)
	m.incident.EXPECT().CreateIncident(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(CreateIncidentRequest{Name: "API latency"})
	w := makeRequest(router, "POST", "/api/v1/incident", bytes.NewBuffer(bodyBytes), map[string]string{"X-API-Key": "bogus"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid API key")
}

func TestCreateIncident_InvalidJSON(t *testing.T) {
	m, router := newTestHandler(t)
	expectAuthenticated(m)

	m.incident.EXPECT().CreateIncident(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/incident", bytes.NewBufferString(`{"name": "test"`), apiKeyHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestCreateIncident_ValidationError(t *testing.T) {
	m, router := newTestHandler(t)
	expectAuthenticated(m)

	m.incident.EXPECT().CreateIncident(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(CreateIncidentRequest{}) // missing name
	w := makeRequest(router, "POST", "/api/v1/incident", bytes.NewBuffer(bodyBytes), apiKeyHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Name' failed on the 'required' tag")
}

func TestGetIncident_Success(t *testing.T) {
	m, router := newTestHandler(t)
	expectAuthenticated(m)
	incident := &models.Incident{
		ID:            5,
		Name:          "DB failover",
		CurrentStatus: &models.Status{Name: "down"},
		Updates: []*models.Update{
			{ID: 11, IncidentID: 5, Status: &models.Status{Name: "down"}},
		},
	}

	m.incident.EXPECT().GetIncident(gomock.Any(), int64(5)).Return(incident, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/incident/5", nil, apiKeyHeader())

	assert.Equal(t, http.StatusOK, w.Code)
	var resp IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.ID)
	require.NotNil(t, resp.Status)
	assert.Equal(t, "down", resp.Status.Name)
	require.Len(t, resp.Updates, 1)
	assert.Equal(t, int64(5), resp.Updates[0].Incident)
}

func TestGetIncident_InvalidID(t *testing.T) {
	m, router := newTestHandler(t)
	expectAuthenticated(m)

	m.incident.EXPECT().GetIncident(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/incident/not-a-number", nil, apiKeyHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid incident ID")
}

func TestGetIncident_NotFound(t *testing.T) {
	m, router := newTestHandler(t)
	expectAuthenticated(m)

	m.incident.EXPECT().
		GetIncident(gomock.Any(), int64(404)).
		Return(nil, fmt.Errorf("service: %w", service.ErrNotFound)).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/incident/404", nil, apiKeyHeader())

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}

func TestListIncidents_Success(t *testing.T) {
	m, router := newTestHandler(t)
	expectAuthenticated(m)
	incidents := []*models.Incident{
		{ID: 1, Name: "Incident 1"},
		{ID: 2, Name: "Incident 2"},
	}

	m.incident.EXPECT().
		ListIncidents(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, filter models.IncidentFilter) {
			assert.True(t, filter.IncludeHidden)
			assert.Equal(t, "down", filter.Status)
		}).Return(incidents, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/incident?status=down", nil, apiKeyHeader())

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []IncidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

// Hidden incidents ride along in every incident listing, so the read routes
// demand the same API key as the writes. An anonymous caller gets 401 before
// the service is ever consulted.
func TestListIncidents_NoAPIKey(t *testing.T) {
	m, router := newTestHandler(t)

	m.incident.EXPECT().ListIncidents(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/incident", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")
	assert.NotContains(t, w.Body.String(), "hidden")
}

func TestGetIncident_NoAPIKey(t *testing.T) {
	m, router := newTestHandler(t)

	m.incident.EXPECT().GetIncident(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/incident/5", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")
}

func TestListIncidents_NonFilterableField(t *testing.T) {
	m, router := newTestHandler(t)
	expectAuthenticated(m)

	m.incident.EXPECT().ListIncidents(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/incident?name=outage", nil, apiKeyHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not filterable")
}

func TestListIncidents_MalformedTimeFilter(t *testing.T) {
	m, router := newTestHandler(t)
	expectAuthenticated(m)

	m.incident.EXPECT().ListIncidents(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/incident?created_after=yesterday", nil, apiKeyHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "created_after")
}

func TestListIncidents_ServiceError(t *testing.T) {
	m, router := newTestHandler(t)
	expectAuthenticated(m)

	m.incident.EXPECT().
		ListIncidents(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("storage exploded")).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/incident", nil, apiKeyHeader())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestDeleteIncident_Success(t *testing.T) {
	m, router := newTestHandler(t)
	expectAuthenticated(m)

	m.incident.EXPECT().DeleteIncident(gomock.Any(), int64(5)).Return(nil).Times(1)

	w := makeRequest(router, "DELETE", "/api/v1/incident/5", nil, apiKeyHeader())

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeleteIncident_NotFound(t *testing.T) {
	m, router := newTestHandler(t)
	expectAuthenticated(m)

	m.incident.EXPECT().
		DeleteIncident(gomock.Any(), int64(404)).
		Return(fmt.Errorf("service: %w", service.ErrNotFound)).
		Times(1)

	w := makeRequest(router, "DELETE", "/api/v1/incident/404", nil, apiKeyHeader())

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateUpdate_Success(t *testing.T) {
	m, router := newTestHandler(t)
	actor := expectAuthenticated(m)
	reqBody := CreateIncidentUpdateRequest{Incident: 5, Status: "down", Description: "primary DB unreachable"}

	m.update.EXPECT().
		CreateUpdate(gomock.Any(), actor, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *models.User, u *models.Update) error {
			u.ID = 11
			u.Status = &models.Status{Name: "down"}
			u.UserName = actor.DisplayName
			return nil
		}).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/incidentupdate", bytes.NewBuffer(bodyBytes), apiKeyHeader())

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp IncidentUpdateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, int64(5), resp.Incident)
	require.NotNil(t, resp.Status)
	assert.Equal(t, "down", resp.Status.Name)
	assert.Equal(t, actor.DisplayName, resp.User)
}

func TestCreateUpdate_MissingStatus(t *testing.T) {
	m, router := newTestHandler(t)
	expectAuthenticated(m)

	m.update.EXPECT().CreateUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(CreateIncidentUpdateRequest{Incident: 5})
	w := makeRequest(router, "POST", "/api/v1/incidentupdate", bytes.NewBuffer(bodyBytes), apiKeyHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Status' failed on the 'required' tag")
}

func TestCreateUpdate_UnknownRelationIs400(t *testing.T) {
	m, router := newTestHandler(t)
	expectAuthenticated(m)

	m.update.EXPECT().
		CreateUpdate(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("service: unknown status %q: %w", "sideways", service.ErrValidation)).
		Times(1)

	bodyBytes, _ := json.Marshal(CreateIncidentUpdateRequest{Incident: 5, Status: "sideways"})
	w := makeRequest(router, "POST", "/api/v1/incidentupdate", bytes.NewBuffer(bodyBytes), apiKeyHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "sideways")
}

func TestListUpdates_FilterByIncident(t *testing.T) {
	m, router := newTestHandler(t)
	expectAuthenticated(m)
	updates := []*models.Update{
		{ID: 11, IncidentID: 5, Status: &models.Status{Name: "down"}},
	}

	m.update.EXPECT().
		ListUpdates(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, filter models.UpdateFilter) {
			assert.Equal(t, int64(5), filter.IncidentID)
		}).Return(updates, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/incidentupdate?incident=5", nil, apiKeyHeader())

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []IncidentUpdateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
}

func TestListUpdates_NoAPIKey(t *testing.T) {
	m, router := newTestHandler(t)

	m.update.EXPECT().ListUpdates(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/incidentupdate", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")
}

func TestListUpdates_NonFilterableField(t *testing.T) {
	m, router := newTestHandler(t)
	expectAuthenticated(m)

	m.update.EXPECT().ListUpdates(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/incidentupdate?description=broken", nil, apiKeyHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not filterable")
}

func TestGetUpdate_NotFound(t *testing.T) {
	m, router := newTestHandler(t)
	expectAuthenticated(m)

	m.update.EXPECT().
		GetUpdate(gomock.Any(), int64(404)).
		Return(nil, fmt.Errorf("service: %w", service.ErrNotFound)).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/incidentupdate/404", nil, apiKeyHeader())

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteUpdate_Success(t *testing.T) {
	m, router := newTestHandler(t)
	actor := expectAuthenticated(m)

	m.update.EXPECT().DeleteUpdate(gomock.Any(), actor, int64(11)).Return(nil).Times(1)

	w := makeRequest(router, "DELETE", "/api/v1/incidentupdate/11", nil, apiKeyHeader())

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeleteUpdate_NoAPIKey(t *testing.T) {
	m, router := newTestHandler(t)

	m.update.EXPECT().DeleteUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "DELETE", "/api/v1/incidentupdate/11", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthCheck_Success(t *testing.T) {
	_, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRequestIDMiddleware_SetsHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
