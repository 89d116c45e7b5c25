package repository

import (
	"context"
	"errors"
	"time"

	"github.com/tasklister/tasklister-api/internal/models"
)

var (
	// ErrSlugTaken is returned when another registration claimed the slug
	// between probing and inserting.
	ErrSlugTaken = errors.New("instance repository: slug already taken")
	// ErrCreateInstance is returned when inserting the instance row fails inside the registration transaction.
	ErrCreateInstance = errors.New("instance repository: create instance failed")
	// ErrCreateAdmin is returned when inserting the admin row fails inside the registration transaction.
	ErrCreateAdmin = errors.New("instance repository: create admin failed")
)

// InstanceRepository defines the interface for instance data access
type InstanceRepository interface {
	// FindBySlug finds an instance by its slug
	FindBySlug(ctx context.Context, slug string) (*models.Instance, error)

	// CreateWithAdmin allocates a free slug derived from baseSlug, then creates
	// the instance and its admin user in a single transaction.
	CreateWithAdmin(ctx context.Context, baseSlug string, instance *models.Instance, admin *models.User) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user of any role by username within an instance
	FindByUsername(ctx context.Context, instanceID uint64, username string) (*models.User, error)

	// FindAdmin finds an admin user by username within an instance
	FindAdmin(ctx context.Context, instanceID uint64, username string) (*models.User, error)

	// FindOrCreate returns the user with username, creating a password-less
	// user with the user role when none exists. The first writer wins.
	FindOrCreate(ctx context.Context, instanceID uint64, username string) (*models.User, error)

	// TouchLastLogin records a successful login
	TouchLastLogin(ctx context.Context, userID uint64, at time.Time) error
}

// TaskGuard is the expected prior state of a task row. Zero-valued optional
// fields are not checked.
type TaskGuard struct {
	InstanceID  uint64
	TaskID      uint64
	Status      models.TaskStatus
	OwnerID     *uint64
	CreatedByID *uint64
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID within an instance
	FindByID(ctx context.Context, instanceID, id uint64) (*models.Task, error)

	// List returns all tasks of an instance, newest first
	List(ctx context.Context, instanceID uint64) ([]models.Task, error)

	// CompareAndSwap applies changes to the task only if it still matches
	// guard, as one conditional update, and returns the row as that update
	// left it. A nil task means the guard did not match.
	CompareAndSwap(ctx context.Context, guard TaskGuard, changes map[string]interface{}) (*models.Task, error)

	// Delete hard deletes a task and reports whether it existed
	Delete(ctx context.Context, instanceID, id uint64) (bool, error)
}
