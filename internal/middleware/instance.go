package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/tasklister/tasklister-api/internal/constants"
	apierrors "github.com/tasklister/tasklister-api/internal/errors"
	"github.com/tasklister/tasklister-api/internal/models"
	"github.com/tasklister/tasklister-api/internal/services"
)

// InstanceFinder resolves slugs to instances.
type InstanceFinder interface {
	FindBySlug(ctx context.Context, slug string) (*models.Instance, error)
}

// RequireInstance resolves the :slug parameter and stores the instance in
// context.
func RequireInstance(finder InstanceFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		instance, err := finder.FindBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if errors.Is(err, services.ErrInstanceNotFound) {
				apierrors.NotFound(c, "Instance not found")
				return
			}
			GetLogger(c).Error("failed to resolve instance", "slug", c.Param("slug"), "error", err)
			apierrors.InternalError(c, "")
			return
		}

		c.Set(constants.ContextKeyInstance, instance)
		c.Next()
	}
}

// GetInstance retrieves the resolved instance from context
func GetInstance(c *gin.Context) (*models.Instance, bool) {
	value, exists := c.Get(constants.ContextKeyInstance)
	if !exists {
		return nil, false
	}
	instance, ok := value.(*models.Instance)
	return instance, ok
}
