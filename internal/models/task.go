package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusAvailable TaskStatus = "available"
	TaskStatusTaken     TaskStatus = "taken"
	TaskStatusCompleted TaskStatus = "completed"
)

// Task is a unit of work inside an instance.
//
// Owner fields are null while available, set while taken and keep the
// completer's identity once completed.
type Task struct {
	ID            uint64     `gorm:"primarykey" json:"id"`
	InstanceID    uint64     `gorm:"not null;index" json:"instance_id"`
	Text          string     `gorm:"type:text;not null" json:"text"`
	Status        TaskStatus `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	CreatedByID   uint64     `gorm:"not null" json:"created_by_id"`
	CreatedByName string     `gorm:"type:varchar(255);not null" json:"created_by_name"`
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`
	OwnerID       *uint64    `json:"owner_id"`
	OwnerName     *string    `gorm:"type:varchar(255)" json:"owner_name"`
	TakenAt       *time.Time `json:"taken_at"`
	CompletedAt   *time.Time `json:"completed_at"`
	EditedByID    *uint64    `json:"edited_by_id"`
	EditedByName  *string    `gorm:"type:varchar(255)" json:"edited_by_name"`
	EditedAt      *time.Time `json:"edited_at"`

	// Relations
	Instance Instance `gorm:"foreignKey:InstanceID" json:"-"`
}
