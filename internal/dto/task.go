package dto

import (
	"time"

	"github.com/tasklister/tasklister-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID            uint64            `json:"id"`
	Text          string            `json:"text"`
	Status        models.TaskStatus `json:"status"`
	CreatedByName string            `json:"created_by_name"`
	CreatedAt     time.Time         `json:"created_at"`
	OwnerName     *string           `json:"owner_name"`
	TakenAt       *time.Time        `json:"taken_at"`
	CompletedAt   *time.Time        `json:"completed_at"`
	EditedByName  *string           `json:"edited_by_name"`
	EditedAt      *time.Time        `json:"edited_at"`
}

// CreateTaskRequest is the body of task creation
type CreateTaskRequest struct {
	Text string `json:"text"`
}

// UpdateTaskRequest is the body of a task text edit
type UpdateTaskRequest struct {
	Text string `json:"text"`
}

// MessageResponse carries a human readable confirmation
type MessageResponse struct {
	Message string `json:"message"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:            task.ID,
		Text:          task.Text,
		Status:        task.Status,
		CreatedByName: task.CreatedByName,
		CreatedAt:     task.CreatedAt,
		OwnerName:     task.OwnerName,
		TakenAt:       task.TakenAt,
		CompletedAt:   task.CompletedAt,
		EditedByName:  task.EditedByName,
		EditedAt:      task.EditedAt,
	}
}

// ToTaskDTOs converts tasks preserving order. Never returns nil.
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}
