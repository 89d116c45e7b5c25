package models

import "time"

// Role is the closed set of roles a user can hold inside an instance.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// ParseRole converts a raw string into a Role.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

type User struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	InstanceID   uint64     `gorm:"not null;uniqueIndex:idx_users_instance_username,priority:1" json:"instance_id"`
	Username     string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_instance_username,priority:2" json:"username"`
	PasswordHash *string    `gorm:"type:varchar(255)" json:"-"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`

	// Relations
	Instance Instance `gorm:"foreignKey:InstanceID" json:"-"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
