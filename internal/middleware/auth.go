package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"glbiashara_backend/internal/auth"
	"glbiashara_backend/internal/logger"
	"glbiashara_backend/internal/metrics"
	"glbiashara_backend/pkg/apperrors"
	"glbiashara_backend/pkg/contextkeys"
)

// AuthMiddleware resolves the caller once per request. Requests without a
// valid principal stop here with 401 and never reach the handler.
func AuthMiddleware(authn auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		principal, err := authn.CurrentUser(c.Request)
		if err != nil || principal == nil {
			if err != nil && !isCredentialError(err) {
				logger.CtxWithError(ctx, "authentication backend failed", err, "path", c.Request.URL.Path)
				apperrors.HandleError(c, apperrors.InternalError(err))
				return
			}
			logger.CtxWarn(ctx, "unauthenticated request", "path", c.Request.URL.Path, "ip", c.ClientIP())
			if errors.Is(err, auth.ErrTokenExpired) {
				apperrors.HandleError(c, apperrors.ErrTokenExpired)
				return
			}
			apperrors.HandleError(c, apperrors.ErrUnauthorized)
			return
		}

		c.Set(contextkeys.GinPrincipalKey, principal)
		c.Request = c.Request.WithContext(logger.WithUserID(ctx, principal.UserID))
		c.Next()
	}
}

func isCredentialError(err error) bool {
	return errors.Is(err, auth.ErrUnauthenticated) ||
		errors.Is(err, auth.ErrInvalidToken) ||
		errors.Is(err, auth.ErrTokenExpired)
}

// CurrentPrincipal returns the principal stored by AuthMiddleware.
func CurrentPrincipal(c *gin.Context) (*auth.Principal, bool) {
	val, exists := c.Get(contextkeys.GinPrincipalKey)
	if !exists {
		return nil, false
	}
	p, ok := val.(*auth.Principal)
	return p, ok && p != nil
}

// CountUnauthenticatedUploads records uploads refused by AuthMiddleware.
// It must run before AuthMiddleware in the chain.
func CountUnauthenticatedUploads(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if c.Writer.Status() == 401 {
			m.Upload("", metrics.OutcomeUnauthenticated)
		}
	}
}
