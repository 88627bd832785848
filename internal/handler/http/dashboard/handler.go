package dashboard

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	v1 "github.com/riptano/statuspage/internal/handler/http/v1"
	"github.com/riptano/statuspage/internal/models"
	"github.com/riptano/statuspage/internal/service"
	"github.com/sirupsen/logrus"
)

// Handler serves the dashboard surface: the cached public front page, the
// operator views, the incident action forms, and the archive. Responses are
// JSON view models; rendering them is a template-layer concern.
type Handler struct {
	dashboardService service.DashboardService
	incidentService  service.IncidentService
	updateService    service.UpdateService
	authService      service.AuthService
	logger           *logrus.Logger
	validate         *validator.Validate
}

func NewHandler(
	dashboardService service.DashboardService,
	incidentService service.IncidentService,
	updateService service.UpdateService,
	authService service.AuthService,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		dashboardService: dashboardService,
		incidentService:  incidentService,
		updateService:    updateService,
		authService:      authService,
		logger:           logger,
		validate:         validator.New(),
	}
}

// home is the cached public front page. The cache lives behind the
// service, so a hit here never observes a completed mutation as stale.
func (h *Handler) home(c *gin.Context) {
	log := h.logger.WithField("method", "home")

	view, err := h.dashboardService.PublicDashboard(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to build public dashboard")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, viewToResponse(view))
}

// publicDashboard serves the same cached public view as the front page
// under its own path.
func (h *Handler) publicDashboard(c *gin.Context) {
	h.home(c)
}

// hiddenDashboard is the operator view including hidden incidents.
func (h *Handler) hiddenDashboard(c *gin.Context) {
	log := h.logger.WithField("method", "hiddenDashboard")

	view, err := h.dashboardService.OperatorDashboard(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to build operator dashboard")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, viewToResponse(view))
}

// login exchanges operator credentials for a signed token.
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	log := h.logger.WithField("method", "login")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		log.WithError(err).Warn("Login failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, LoginResponse{Token: token})
}

// newIncident handles the dashboard create form. An initial update is
// posted when the form names a status.
func (h *Handler) newIncident(c *gin.Context) {
	var input NewIncidentRequest
	log := h.logger.WithField("method", "newIncident")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, ok := v1.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	incident := &models.Incident{Name: input.Name}
	if err := h.incidentService.CreateIncident(c.Request.Context(), actor, incident); err != nil {
		log.WithError(err).Error("Failed to create incident")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create incident"})
		return
	}

	if input.Status != "" {
		update := &models.Update{
			IncidentID:  incident.ID,
			StatusName:  input.Status,
			Description: input.Description,
		}
		if err := h.updateService.CreateUpdate(c.Request.Context(), actor, update); err != nil {
			h.writeActionError(c, log, err, "could not post initial update")
			return
		}
	}

	created, err := h.incidentService.GetIncident(c.Request.Context(), incident.ID)
	if err != nil {
		log.WithError(err).Error("Failed to reload created incident")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, v1.ModelToIncidentResponse(created))
}

// incidentDetail is the public single-incident page.
func (h *Handler) incidentDetail(c *gin.Context) {
	id, ok := h.incidentID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "incidentDetail").WithField("id", id)

	incident, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident")
		c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
		return
	}
	c.JSON(http.StatusOK, v1.ModelToIncidentResponse(incident))
}

// postUpdate appends an update to one incident from the dashboard form.
func (h *Handler) postUpdate(c *gin.Context) {
	id, ok := h.incidentID(c)
	if !ok {
		return
	}
	var input NewUpdateRequest
	log := h.logger.WithField("method", "postUpdate").WithField("id", id)

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor, ok := v1.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	update := &models.Update{
		IncidentID:  id,
		StatusName:  input.Status,
		Description: input.Description,
	}
	if err := h.updateService.CreateUpdate(c.Request.Context(), actor, update); err != nil {
		h.writeActionError(c, log, err, "could not post update")
		return
	}
	c.JSON(http.StatusCreated, v1.ModelToUpdateResponse(update))
}

// hideIncident toggles the visibility flag.
func (h *Handler) hideIncident(c *gin.Context) {
	id, ok := h.incidentID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "hideIncident").WithField("id", id)

	incident, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident for hide")
		c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
		return
	}

	toggled, err := h.incidentService.SetIncidentHidden(c.Request.Context(), id, !incident.Hidden)
	if err != nil {
		log.WithError(err).Error("Failed to toggle hidden flag")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not change visibility"})
		return
	}
	c.JSON(http.StatusOK, v1.ModelToIncidentResponse(toggled))
}

// deleteIncident removes the incident and its updates.
func (h *Handler) deleteIncident(c *gin.Context) {
	id, ok := h.incidentID(c)
	if !ok {
		return
	}
	log := h.logger.WithField("method", "deleteIncident").WithField("id", id)

	if err := h.incidentService.DeleteIncident(c.Request.Context(), id); err != nil {
		log.WithError(err).Warn("Failed to delete incident")
		c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// archiveYear lists the visible incidents of one year with per-month counts.
func (h *Handler) archiveYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	log := h.logger.WithField("method", "archiveYear").WithField("year", year)

	incidents, buckets, err := h.dashboardService.ArchiveYear(c.Request.Context(), year)
	if err != nil {
		log.WithError(err).Error("Failed to build year archive")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ArchiveResponse{
		Year:      year,
		Months:    buckets,
		Incidents: v1.ModelsToIncidentResponses(incidents),
	})
}

// archiveMonth lists the visible incidents of one month.
func (h *Handler) archiveMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}
	log := h.logger.WithField("method", "archiveMonth").WithField("year", year).WithField("month", month)

	incidents, err := h.dashboardService.ArchiveMonth(c.Request.Context(), year, month)
	if err != nil {
		h.writeActionError(c, log, err, "internal server error")
		return
	}
	c.JSON(http.StatusOK, ArchiveResponse{
		Year:      year,
		Month:     month,
		Incidents: v1.ModelsToIncidentResponses(incidents),
	})
}

func (h *Handler) incidentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return 0, false
	}
	return id, true
}

// writeActionError gives dashboard form submissions a human-readable
// equivalent of the API error classes.
func (h *Handler) writeActionError(c *gin.Context, log *logrus.Entry, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		log.WithError(err).Warn("Form validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		log.WithError(err).Warn("Form target not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		log.WithError(err).Error("Form action failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
