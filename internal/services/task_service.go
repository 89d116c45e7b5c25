package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tasklister/tasklister-api/internal/auth"
	"github.com/tasklister/tasklister-api/internal/models"
	"github.com/tasklister/tasklister-api/internal/repository"
	"gorm.io/gorm"
)

// TaskService owns the task lifecycle:
//
//	available -> taken      (take, any member)
//	taken     -> completed  (complete, current owner)
//	taken     -> available  (return, current owner)
//
// Nothing leaves completed. Edit keeps the status, delete is admin-only at
// any status. Every transition is a single conditional update on the row.
type TaskService struct {
	taskRepo repository.TaskRepository
	now      func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ListTasks returns the tasks of an instance, newest first
func (s *TaskService) ListTasks(ctx context.Context, instanceID uint64, actor auth.Session) ([]models.Task, error) {
	if err := ensureMember(instanceID, actor); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.List(ctx, instanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask adds an available task created by actor
func (s *TaskService) CreateTask(ctx context.Context, instanceID uint64, actor auth.Session, text string) (*models.Task, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrTaskTextRequired
	}
	if err := ensureMember(instanceID, actor); err != nil {
		return nil, err
	}

	task := &models.Task{
		InstanceID:    instanceID,
		Text:          text,
		Status:        models.TaskStatusAvailable,
		CreatedByID:   actor.UserID,
		CreatedByName: actor.Username,
		CreatedAt:     s.now(),
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// TakeTask claims an available task for actor. Of two concurrent takes
// exactly one succeeds.
func (s *TaskService) TakeTask(ctx context.Context, instanceID uint64, actor auth.Session, taskID uint64) (*models.Task, error) {
	if err := ensureMember(instanceID, actor); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.CompareAndSwap(ctx, repository.TaskGuard{
		InstanceID: instanceID,
		TaskID:     taskID,
		Status:     models.TaskStatusAvailable,
	}, map[string]interface{}{
		"status":     models.TaskStatusTaken,
		"owner_id":   actor.UserID,
		"owner_name": actor.Username,
		"taken_at":   s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to take task: %w", err)
	}
	if task == nil {
		return nil, ErrTaskUnavailable
	}
	return task, nil
}

// CompleteTask finishes a task actor currently owns
func (s *TaskService) CompleteTask(ctx context.Context, instanceID uint64, actor auth.Session, taskID uint64) (*models.Task, error) {
	return s.ownerTransition(ctx, instanceID, actor, taskID, map[string]interface{}{
		"status":       models.TaskStatusCompleted,
		"completed_at": s.now(),
	})
}

// ReturnTask hands a task actor currently owns back to the pool
func (s *TaskService) ReturnTask(ctx context.Context, instanceID uint64, actor auth.Session, taskID uint64) (*models.Task, error) {
	return s.ownerTransition(ctx, instanceID, actor, taskID, map[string]interface{}{
		"status":     models.TaskStatusAvailable,
		"owner_id":   nil,
		"owner_name": nil,
		"taken_at":   nil,
	})
}

// UpdateTask replaces the text of a task. Allowed for admins and the creator.
func (s *TaskService) UpdateTask(ctx context.Context, instanceID uint64, actor auth.Session, taskID uint64, text string) (*models.Task, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrTaskTextRequired
	}
	if err := ensureMember(instanceID, actor); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(ctx, instanceID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	guard := repository.TaskGuard{InstanceID: instanceID, TaskID: taskID}
	if !actor.IsAdmin() {
		if task.CreatedByID != actor.UserID {
			return nil, ErrTaskPermissionDenied
		}
		guard.CreatedByID = &actor.UserID
	}

	updated, err := s.taskRepo.CompareAndSwap(ctx, guard, map[string]interface{}{
		"text":           text,
		"edited_by_id":   actor.UserID,
		"edited_by_name": actor.Username,
		"edited_at":      s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if updated == nil {
		// Deleted after the permission check
		return nil, ErrTaskNotFound
	}
	return updated, nil
}

// DeleteTask hard deletes a task. Admin only.
func (s *TaskService) DeleteTask(ctx context.Context, instanceID uint64, actor auth.Session, taskID uint64) error {
	if err := ensureMember(instanceID, actor); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return ErrAdminOnly
	}

	ok, err := s.taskRepo.Delete(ctx, instanceID, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !ok {
		return ErrTaskNotFound
	}
	return nil
}

// ownerTransition moves a taken task owned by actor. A missing task, another
// owner and a wrong status are all rejected by the same conditional update.
func (s *TaskService) ownerTransition(ctx context.Context, instanceID uint64, actor auth.Session, taskID uint64, changes map[string]interface{}) (*models.Task, error) {
	if err := ensureMember(instanceID, actor); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.CompareAndSwap(ctx, repository.TaskGuard{
		InstanceID: instanceID,
		TaskID:     taskID,
		Status:     models.TaskStatusTaken,
		OwnerID:    &actor.UserID,
	}, changes)
	if err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}
	if task == nil {
		return nil, ErrNotTaskOwner
	}
	return task, nil
}

// ensureMember rejects sessions issued for another instance
func ensureMember(instanceID uint64, actor auth.Session) error {
	if actor.InstanceID != instanceID {
		return ErrForeignSession
	}
	return nil
}
