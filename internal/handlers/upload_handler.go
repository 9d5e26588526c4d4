package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"glbiashara_backend/internal/dto"
	"glbiashara_backend/internal/logger"
	"glbiashara_backend/internal/media"
	"glbiashara_backend/internal/metrics"
	"glbiashara_backend/internal/middleware"
	"glbiashara_backend/internal/services"
	"glbiashara_backend/pkg/apperrors"
)

// ============================================
// UPLOAD HANDLER
// ============================================

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   base,
		uploadService: uploadService,
	}
}

// RegisterRoutes mounts /upload on rg. authMW guards POST and DELETE;
// OPTIONS stays public.
func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, m *metrics.Metrics) {
	upload := rg.Group("/upload")
	{
		upload.OPTIONS("", h.Preflight)
		upload.POST("", middleware.CountUnauthenticatedUploads(m), authMW, h.Upload)
		upload.DELETE("", authMW, h.Delete)
	}
}

// Upload godoc
// @Summary  Upload an image or video
// @Tags     upload
// @Accept   multipart/form-data
// @Produce  json
// @Param    file formData file   true  "Image (JPEG, PNG, GIF, WebP, max 10MB) or video (MP4, WebM, MOV, max 100MB)"
// @Param    type formData string false "Advisory media type, ignored"
// @Success  200 {object} dto.UploadResponse
// @Failure  400 {object} apperrors.ErrorResponse
// @Failure  401 {object} apperrors.ErrorResponse
// @Failure  500 {object} apperrors.ErrorResponse
// @Router   /api/upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	req := &media.UploadRequest{UserID: principal.UserID}

	fileHeader, err := c.FormFile("file")
	switch {
	case err == nil:
		file, err := fileHeader.Open()
		if err != nil {
			h.HandleServiceError(c, apperrors.InternalError(err))
			return
		}
		defer file.Close()
		fillFromPart(req, fileHeader, file)
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// Validate reports the missing file
	default:
		logger.CtxWarn(c.Request.Context(), "unreadable multipart body", "error", err.Error())
		h.HandleServiceError(c, apperrors.ErrInvalidRequestBody)
		return
	}
	req.DeclaredType = c.PostForm("type")

	stored, err := h.uploadService.Upload(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUploadResponse(stored))
}

func fillFromPart(req *media.UploadRequest, fh *multipart.FileHeader, file multipart.File) {
	req.File = file
	req.MimeType = fh.Header.Get("Content-Type")
	req.Size = fh.Size
	req.OriginalName = fh.Filename
}

// Preflight answers OPTIONS requests without Origin, which the CORS
// middleware lets through.
func (h *UploadHandler) Preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Delete godoc
// @Summary  Delete an uploaded asset
// @Tags     upload
// @Accept   json
// @Produce  json
// @Param    body body dto.DeleteUploadRequest true "Asset to delete"
// @Success  200 {object} dto.UploadResponse
// @Failure  403 {object} apperrors.ErrorResponse
// @Failure  404 {object} apperrors.ErrorResponse
// @Router   /api/upload [delete]
func (h *UploadHandler) Delete(c *gin.Context) {
	principal, ok := h.GetPrincipal(c)
	if !ok {
		return
	}

	var req dto.DeleteUploadRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	kind, _ := media.ParseKind(req.Type)

	if err := h.uploadService.Delete(c.Request.Context(), principal.UserID, req.PublicID, kind); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UploadResponse{Success: true})
}
