package apperrors

import (
	"github.com/gin-gonic/gin"

	"glbiashara_backend/internal/logger"
)

// ErrorResponse is the failure form of the response envelope.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Code    ErrorCode   `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// HandleError writes err as a failure envelope. Anything that is not an
// AppError becomes a 500 with a generic message. 5xx causes are logged, never
// sent to the client.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		args := []any{"code", appErr.Code, "path", c.FullPath()}
		if cause := appErr.Unwrap(); cause != nil {
			logger.CtxWithError(c.Request.Context(), "server error", cause, args...)
		} else {
			logger.CtxError(c.Request.Context(), "server error", args...)
		}
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{
		Success: false,
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}
