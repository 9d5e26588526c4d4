package handlers

import (
	"github.com/gin-gonic/gin"

	"glbiashara_backend/internal/auth"
	"glbiashara_backend/internal/logger"
	"glbiashara_backend/internal/middleware"
	"glbiashara_backend/internal/validator"
	"glbiashara_backend/pkg/apperrors"
)

// ============================================================================
// 1. Base handler
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// ============================================================================
// 2. Binding and validation
// ============================================================================

func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body"))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// ============================================================================
// 3. Errors
// ============================================================================

// HandleServiceError writes a service error as a failure envelope. Expected
// 4xx errors are logged at warn; 5xx are logged by apperrors.HandleError.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		if appErr.HTTPCode < 500 {
			logger.CtxWarn(c.Request.Context(), "Service error",
				"error", appErr.Message,
				"code", appErr.Code,
				"path", c.Request.URL.Path,
			)
		}
		apperrors.HandleError(c, appErr)
		return
	}
	apperrors.HandleError(c, apperrors.InternalError(err))
}

// ============================================================================
// 4. Helpers
// ============================================================================

// GetPrincipal returns the authenticated caller. It answers 401 itself when
// the route was registered without AuthMiddleware.
func (h *BaseHandler) GetPrincipal(c *gin.Context) (*auth.Principal, bool) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		logger.CtxWarn(c.Request.Context(), "Unauthorized access: principal not found in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.ErrUnauthorized)
		return nil, false
	}
	return p, true
}
