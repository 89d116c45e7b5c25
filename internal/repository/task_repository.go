package repository

import (
	"context"

	"github.com/tasklister/tasklister-api/internal/database"
	"github.com/tasklister/tasklister-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task by ID within an instance
func (r *GormTaskRepository) FindByID(ctx context.Context, instanceID, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).
		Scopes(database.InInstance(instanceID)).
		Where("id = ?", id).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns the tasks of an instance ordered by creation time, newest first
func (r *GormTaskRepository) List(ctx context.Context, instanceID uint64) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.db.WithContext(ctx).
		Scopes(database.InInstance(instanceID), database.NewestFirst).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// CompareAndSwap runs a single UPDATE whose WHERE clause encodes the guard,
// so the row-level atomicity of the store decides concurrent transitions.
// The updated row is read back in the same transaction, while the UPDATE
// still holds its row lock.
func (r *GormTaskRepository) CompareAndSwap(ctx context.Context, guard TaskGuard, changes map[string]interface{}) (*models.Task, error) {
	var updated *models.Task
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&models.Task{}).
			Where("instance_id = ? AND id = ?", guard.InstanceID, guard.TaskID)

		if guard.Status != "" {
			query = query.Where("status = ?", guard.Status)
		}
		if guard.OwnerID != nil {
			query = query.Where("owner_id = ?", *guard.OwnerID)
		}
		if guard.CreatedByID != nil {
			query = query.Where("created_by_id = ?", *guard.CreatedByID)
		}

		result := query.Updates(changes)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return nil
		}

		var task models.Task
		if err := tx.Where("instance_id = ? AND id = ?", guard.InstanceID, guard.TaskID).
			First(&task).Error; err != nil {
			return err
		}
		updated = &task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete hard deletes a task
func (r *GormTaskRepository) Delete(ctx context.Context, instanceID, id uint64) (bool, error) {
	result := r.db.WithContext(ctx).
		Scopes(database.InInstance(instanceID)).
		Where("id = ?", id).
		Delete(&models.Task{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
