package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"glbiashara_backend/internal/dto"
	"glbiashara_backend/internal/services"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
	}
}

// Login godoc
// @Summary  Log in with email and password
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body dto.LoginRequest true "Credentials"
// @Success  200 {object} dto.LoginResponse
// @Failure  401 {object} apperrors.ErrorResponse
// @Router   /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
