package dashboard

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/riptano/statuspage/internal/handler/http/v1"
)

// RegisterRoutes registers the dashboard surface on the root group. Public
// reads need no identity; operator actions go through the token middleware.
func (h *Handler) RegisterRoutes(root *gin.RouterGroup) {
	requireOperator := v1.JWTAuthMiddleware(h.authService, h.logger)

	root.GET("/", h.home)
	root.POST("/auth/login", h.login)

	root.GET("/dashboard/", h.publicDashboard)
	root.GET("/dashboard/hidden/", requireOperator, h.hiddenDashboard)

	root.POST("/incident/new/", requireOperator, h.newIncident)
	root.GET("/incident/:id/", h.incidentDetail)
	root.POST("/incident/:id/update/", requireOperator, h.postUpdate)
	root.POST("/incident/:id/hide/", requireOperator, h.hideIncident)
	root.POST("/incident/:id/delete/", requireOperator, h.deleteIncident)

	root.GET("/archive/:year/", h.archiveYear)
	root.GET("/archive/:year/:month/", h.archiveMonth)
}
