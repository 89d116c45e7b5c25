package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tasklister/tasklister-api/internal/dto"
	apierrors "github.com/tasklister/tasklister-api/internal/errors"
	"github.com/tasklister/tasklister-api/internal/services"
)

// InstanceHandler serves instance registration and lookup.
type InstanceHandler struct {
	instanceService *services.InstanceService
}

// NewInstanceHandler creates a new InstanceHandler.
func NewInstanceHandler(instanceService *services.InstanceService) *InstanceHandler {
	return &InstanceHandler{
		instanceService: instanceService,
	}
}

// RegisterInstance opens a new instance and signs its admin in.
func (h *InstanceHandler) RegisterInstance(c *gin.Context) {
	var req dto.RegisterInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.instanceService.Register(c.Request.Context(), services.RegisterInput{
		CompanyName:   req.CompanyName,
		AdminUsername: req.AdminUsername,
		AdminPassword: req.AdminPassword,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterInstanceResponse{
		Message: "Instance created successfully",
		Slug:    result.Instance.Slug,
		URL:     "/" + result.Instance.Slug,
		Token:   result.Token,
		User:    dto.ToUserDTO(*result.Admin),
	})
}

// CheckInstance reports whether a slug belongs to an instance.
func (h *InstanceHandler) CheckInstance(c *gin.Context) {
	instance, err := h.instanceService.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, services.ErrInstanceNotFound) {
			c.JSON(http.StatusNotFound, dto.CheckInstanceResponse{Exists: false})
			return
		}
		respondServiceError(c, err)
		return
	}

	company := dto.ToInstanceDTO(*instance)
	c.JSON(http.StatusOK, dto.CheckInstanceResponse{
		Exists:  true,
		Company: &company,
	})
}
