package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tasklister/tasklister-api/internal/dto"
	apierrors "github.com/tasklister/tasklister-api/internal/errors"
	"github.com/tasklister/tasklister-api/internal/middleware"
	"github.com/tasklister/tasklister-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginAdmin authenticates an instance admin by password.
func (h *AuthHandler) LoginAdmin(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.LoginAdmin(c.Request.Context(), services.AdminLoginInput{
		Slug:     req.Slug,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: result.Token,
		User:  dto.ToSessionUserDTO(result.Session),
	})
}

// LoginUser signs a member in by nickname.
func (h *AuthHandler) LoginUser(c *gin.Context) {
	var req dto.UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.LoginUser(c.Request.Context(), services.UserLoginInput{
		Slug:     req.Slug,
		Username: req.Username,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: result.Token,
		User:  dto.ToSessionUserDTO(result.Session),
	})
}

// CurrentSession returns the identity behind the bearer token.
func (h *AuthHandler) CurrentSession(c *gin.Context) {
	session, exists := middleware.GetSession(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if _, err := h.authService.GetUser(c.Request.Context(), session); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionDTO(session))
}
