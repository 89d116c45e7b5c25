package database

import (
	"gorm.io/gorm"
)

// InInstance restricts a query to rows owned by one instance.
func InInstance(instanceID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("instance_id = ?", instanceID)
	}
}

// NewestFirst orders rows by creation time, newest first.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}
