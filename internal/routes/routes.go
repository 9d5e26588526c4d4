package routes

import (
	"github.com/gin-gonic/gin"

	"glbiashara_backend/internal/auth"
	"glbiashara_backend/internal/handlers"
	"glbiashara_backend/internal/logger"
	"glbiashara_backend/internal/metrics"
	"glbiashara_backend/internal/middleware"
)

// RegisterRoutes registers the API routes.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authn auth.Authenticator,
	m *metrics.Metrics,
) {
	authMW := middleware.AuthMiddleware(authn)

	api := ginRouter.Group("/api")
	{
		appHandlers.UploadHandler.RegisterRoutes(api, authMW, m)
		if appHandlers.AuthHandler != nil {
			appHandlers.AuthHandler.RegisterRoutes(api)
		} else {
			logger.Warn("no database configured, /api/auth/login disabled")
		}
	}
}
