package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tasklister/tasklister-api/internal/models"
	"github.com/tasklister/tasklister-api/internal/utils"
	"gorm.io/gorm"
)

// GormInstanceRepository is a GORM implementation of InstanceRepository
type GormInstanceRepository struct {
	db *gorm.DB
}

// NewInstanceRepository creates a new InstanceRepository
func NewInstanceRepository(db *gorm.DB) InstanceRepository {
	return &GormInstanceRepository{db: db}
}

// FindBySlug finds an instance by its slug
func (r *GormInstanceRepository) FindBySlug(ctx context.Context, slug string) (*models.Instance, error) {
	var instance models.Instance
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&instance).Error; err != nil {
		return nil, err
	}
	return &instance, nil
}

// CreateWithAdmin creates the instance and its admin atomically.
func (r *GormInstanceRepository) CreateWithAdmin(ctx context.Context, baseSlug string, instance *models.Instance, admin *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slug, err := freeSlug(tx, baseSlug)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCreateInstance, err)
		}
		instance.Slug = slug

		if err := tx.Create(instance).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlugTaken
			}
			return fmt.Errorf("%w: %w", ErrCreateInstance, err)
		}

		admin.InstanceID = instance.ID
		admin.Role = models.RoleAdmin

		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrCreateAdmin, err)
		}

		return nil
	})
}

// freeSlug probes base, base-1, base-2, ... until an unused slug is found.
// Reserved route segments count as used.
func freeSlug(tx *gorm.DB, base string) (string, error) {
	for attempt := 0; ; attempt++ {
		candidate := utils.SlugCandidate(base, attempt)
		if utils.IsReservedSlug(candidate) {
			continue
		}

		var count int64
		if err := tx.Model(&models.Instance{}).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
}
