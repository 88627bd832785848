package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// @Summary List incident updates
// @Description Get updates with their status fully expanded. Supports filtering on created/updated ranges, status, and incident.
// @Tags IncidentUpdates
// @Accept json
// @Produce json
// @Param created_after query string false "RFC3339 lower bound on creation time"
// @Param created_before query string false "RFC3339 upper bound on creation time"
// @Param updated_after query string false "RFC3339 lower bound on last-updated time"
// @Param updated_before query string false "RFC3339 upper bound on last-updated time"
// @Param status query string false "Status name"
// @Param incident query int false "Parent incident ID"
// @Param limit query int false "Page size" default(20)
// @Security ApiKeyAuth
// @Success 200 {array} IncidentUpdateResponse
// @Failure 400 {object} map[string]string "Malformed filter expression"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidentupdate [get]
func (h *Handler) listUpdates(c *gin.Context) {
	log := h.logger.WithField("method", "listUpdates")

	filter, err := parseUpdateFilter(c)
	if err != nil {
		h.writeServiceError(c, log, err)
		return
	}

	updates, err := h.updateService.ListUpdates(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, ModelsToUpdateResponses(updates))
}

// @Summary Get incident update by ID
// @Description Get a single update with its status fully expanded.
// @Tags IncidentUpdates
// @Accept json
// @Produce json
// @Param id path int true "Update ID"
// @Security ApiKeyAuth
// @Success 200 {object} IncidentUpdateResponse
// @Failure 400 {object} map[string]string "Invalid update ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Update not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidentupdate/{id} [get]
func (h *Handler) getUpdate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update ID"})
		return
	}
	log := h.logger.WithField("method", "getUpdate").WithField("id", id)

	update, err := h.updateService.GetUpdate(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, ModelToUpdateResponse(update))
}

// @Summary Post an incident update
// @Description Create an update owned by the authenticated user. An existing id makes this an edit that preserves the original created timestamp.
// @Tags IncidentUpdates
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param update body CreateIncidentUpdateRequest true "Update creation request"
// @Success 201 {object} IncidentUpdateResponse
// @Failure 400 {object} map[string]string "Invalid request body, missing status, or unknown relation"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidentupdate [post]
func (h *Handler) createUpdate(c *gin.Context) {
	var input CreateIncidentUpdateRequest
	log := h.logger.WithField("method", "createUpdate")

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

	actor, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	model := DTOToUpdateModel(input)
	if err := h.updateService.CreateUpdate(c.Request.Context(), actor, model); err != nil {
		h.writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToUpdateResponse(model))
}

// @Summary Delete an incident update
// @Description Delete an update. The parent incident's current status reflects the remaining updates.
// @Tags IncidentUpdates
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Update ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid update ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Update not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidentupdate/{id} [delete]
func (h *Handler) deleteUpdate(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update ID"})
		return
	}
	log := h.logger.WithField("method", "deleteUpdate").WithField("id", id)

	actor, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.updateService.DeleteUpdate(c.Request.Context(), actor, id); err != nil {
		h.writeServiceError(c, log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
