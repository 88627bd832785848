package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/riptano/statuspage/internal/models"
	"github.com/riptano/statuspage/internal/service"
	"github.com/sirupsen/logrus"
)

// ContextUserKey is where auth middlewares park the verified identity.
const ContextUserKey = "auth_user"

// bearerToken extracts the credential from X-API-Key or an Authorization
// Bearer header.
func bearerToken(c *gin.Context) string {
	if key := c.GetHeader("X-API-Key"); key != "" {
		return key
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// APIKeyAuthMiddleware resolves the per-user API key into the user that
// owns it. Writes without a resolvable identity never reach a handler.
func APIKeyAuthMiddleware(authService service.AuthService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := bearerToken(c)
		if apiKey == "" {
			log.Warn("API key missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), apiKey)
		if err != nil {
			log.WithError(err).Warn("API key did not authenticate")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// JWTAuthMiddleware verifies a dashboard login token and attaches the user
// it names. Used by the operator-only dashboard actions.
func JWTAuthMiddleware(authService service.AuthService, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			log.Warn("Token missing from request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
			return
		}

		user, err := authService.VerifyToken(c.Request.Context(), token)
		if err != nil {
			log.WithError(err).Warn("Token did not verify")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the identity a middleware attached to the request.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
