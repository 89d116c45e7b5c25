package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tasklister/tasklister-api/internal/auth"
	"github.com/tasklister/tasklister-api/internal/dto"
	apierrors "github.com/tasklister/tasklister-api/internal/errors"
	"github.com/tasklister/tasklister-api/internal/middleware"
	"github.com/tasklister/tasklister-api/internal/models"
	"github.com/tasklister/tasklister-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns every task of the instance, newest first
func (h *TaskHandler) ListTasks(c *gin.Context) {
	instance, session, ok := requestScope(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), instance.ID, session)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask adds an available task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	instance, session, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), instance.ID, session, req.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// TakeTask claims an available task for the caller
func (h *TaskHandler) TakeTask(c *gin.Context) {
	h.transition(c, h.taskService.TakeTask)
}

// CompleteTask finishes a task the caller owns
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	h.transition(c, h.taskService.CompleteTask)
}

// ReturnTask hands a task the caller owns back to the pool
func (h *TaskHandler) ReturnTask(c *gin.Context) {
	h.transition(c, h.taskService.ReturnTask)
}

// UpdateTask edits the task text
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	instance, session, ok := requestScope(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), instance.ID, session, taskID, req.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task (admin only)
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	instance, session, ok := requestScope(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), instance.ID, session, taskID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task deleted successfully"})
}

type transitionFunc func(ctx context.Context, instanceID uint64, actor auth.Session, taskID uint64) (*models.Task, error)

func (h *TaskHandler) transition(c *gin.Context, apply transitionFunc) {
	instance, session, ok := requestScope(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := apply(c.Request.Context(), instance.ID, session, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// requestScope reads what RequireAuth and RequireInstance stored
func requestScope(c *gin.Context) (*models.Instance, auth.Session, bool) {
	session, exists := middleware.GetSession(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return nil, auth.Session{}, false
	}
	instance, exists := middleware.GetInstance(c)
	if !exists {
		apierrors.NotFound(c, "Instance not found")
		return nil, auth.Session{}, false
	}
	return instance, session, true
}

func taskIDParam(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.NotFound(c, "Task not found")
		return 0, false
	}
	return taskID, true
}
