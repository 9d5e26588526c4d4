package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glbiashara_backend/internal/metrics"
)

// SetupPublicRoutes registers the unauthenticated operational routes.
// filesDir, when set, is served under /files for the local storage provider.
func SetupPublicRoutes(r *gin.Engine, m *metrics.Metrics, filesDir string) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	if filesDir != "" {
		files := r.Group("/files", func(c *gin.Context) {
			c.Header("X-Content-Type-Options", "nosniff")
			c.Header("Content-Security-Policy", "default-src 'none'; sandbox")
		})
		files.Static("", filesDir)
	}
}
