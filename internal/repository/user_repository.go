package repository

import (
	"context"
	"errors"
	"time"

	"github.com/tasklister/tasklister-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username within an instance
func (r *GormUserRepository) FindByUsername(ctx context.Context, instanceID uint64, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("instance_id = ? AND username = ?", instanceID, username).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAdmin finds an admin by username within an instance
func (r *GormUserRepository) FindAdmin(ctx context.Context, instanceID uint64, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("instance_id = ? AND username = ? AND role = ?", instanceID, username, models.RoleAdmin).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindOrCreate returns the existing user or provisions a nickname-only one.
func (r *GormUserRepository) FindOrCreate(ctx context.Context, instanceID uint64, username string) (*models.User, error) {
	user, err := r.FindByUsername(ctx, instanceID, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &models.User{
		InstanceID: instanceID,
		Username:   username,
		Role:       models.RoleUser,
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent login created it first
			return r.FindByUsername(ctx, instanceID, username)
		}
		return nil, err
	}
	return user, nil
}

// TouchLastLogin updates last_login_at
func (r *GormUserRepository) TouchLastLogin(ctx context.Context, userID uint64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_login_at", at).Error
}
