package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/tasklister/tasklister-api/internal/errors"
	"github.com/tasklister/tasklister-api/internal/middleware"
	"github.com/tasklister/tasklister-api/internal/services"
)

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrTaskTextRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrInstanceNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrTaskUnavailable):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrForeignSession),
		errors.Is(err, services.ErrNotTaskOwner),
		errors.Is(err, services.ErrTaskPermissionDenied),
		errors.Is(err, services.ErrAdminOnly):
		apierrors.Forbidden(c, err.Error())
	default:
		middleware.GetLogger(c).Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		apierrors.InternalError(c, "")
	}
}
