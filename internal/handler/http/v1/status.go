package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary List statuses
// @Description Get the full status catalog. The catalog is read-only through the API.
// @Tags Statuses
// @Accept json
// @Produce json
// @Success 200 {array} StatusResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /status [get]
func (h *Handler) listStatuses(c *gin.Context) {
	log := h.logger.WithField("method", "listStatuses")

	statuses, err := h.statusService.ListStatuses(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, ModelsToStatusResponses(statuses))
}

// @Summary Get status by name
// @Description Get a single status catalog entry, addressed by name.
// @Tags Statuses
// @Accept json
// @Produce json
// @Param name path string true "Status name"
// @Success 200 {object} StatusResponse
// @Failure 404 {object} map[string]string "Status not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /status/{name} [get]
func (h *Handler) getStatus(c *gin.Context) {
	name := c.Param("name")
	log := h.logger.WithField("method", "getStatus").WithField("name", name)

	status, err := h.statusService.GetStatus(c.Request.Context(), name)
	if err != nil {
		h.writeServiceError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, ModelToStatusResponse(status))
}

// methodNotAllowed answers write attempts against read-only resources.
func (h *Handler) methodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
}
