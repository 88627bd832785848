package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all API v1 routes. The status catalog and health
// probe are public; every incident and update route, reads included, goes
// through the API-key middleware. Hidden incidents are part of API responses,
// so the whole surface needs a verified identity.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	requireUser := APIKeyAuthMiddleware(h.authService, h.logger)

	// Status catalog: strictly read-only. Writes answer 405, not 404, so
	// callers learn the resource exists but rejects the method.
	statuses := api.Group("/status")
	{
		statuses.GET("", h.listStatuses)
		statuses.GET("/:name", h.getStatus)
		for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
			statuses.Handle(method, "", h.methodNotAllowed)
			statuses.Handle(method, "/:name", h.methodNotAllowed)
		}
	}

	incidents := api.Group("/incident", requireUser)
	{
		incidents.GET("", h.listIncidents)
		incidents.GET("/:id", h.getIncident)
		incidents.POST("", h.createIncident)
		incidents.DELETE("/:id", h.deleteIncident)
	}

	updates := api.Group("/incidentupdate", requireUser)
	{
		updates.GET("", h.listUpdates)
		updates.GET("/:id", h.getUpdate)
		updates.POST("", h.createUpdate)
		updates.DELETE("/:id", h.deleteUpdate)
	}

	api.GET("/system/health", h.healthCheck)
}
