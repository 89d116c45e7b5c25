package models

import "time"

type Instance struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Slug        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CompanyName string    `gorm:"type:varchar(255);not null" json:"company_name"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Users []User `gorm:"foreignKey:InstanceID" json:"-"`
	Tasks []Task `gorm:"foreignKey:InstanceID" json:"-"`
}
