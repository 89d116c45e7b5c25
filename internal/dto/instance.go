package dto

import (
	"github.com/tasklister/tasklister-api/internal/auth"
	"github.com/tasklister/tasklister-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64      `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// InstanceDTO is the public face of an instance
type InstanceDTO struct {
	Slug        string `json:"slug"`
	CompanyName string `json:"company_name"`
}

// RegisterInstanceRequest opens a new instance with its admin
type RegisterInstanceRequest struct {
	CompanyName   string `json:"companyName"`
	AdminUsername string `json:"adminUsername"`
	AdminPassword string `json:"adminPassword"`
}

// AdminLoginRequest authenticates an admin by password
type AdminLoginRequest struct {
	Slug     string `json:"slug"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserLoginRequest signs in by nickname
type UserLoginRequest struct {
	Slug     string `json:"slug"`
	Username string `json:"username"`
}

type RegisterInstanceResponse struct {
	Message string  `json:"message"`
	Slug    string  `json:"slug"`
	URL     string  `json:"url"`
	Token   string  `json:"token"`
	User    UserDTO `json:"user"`
}

type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// CheckInstanceResponse reports whether a slug resolves
type CheckInstanceResponse struct {
	Exists  bool         `json:"exists"`
	Company *InstanceDTO `json:"company,omitempty"`
}

// SessionDTO describes the identity behind a bearer token
type SessionDTO struct {
	ID         uint64      `json:"id"`
	Username   string      `json:"username"`
	Role       models.Role `json:"role"`
	InstanceID uint64      `json:"instance_id"`
}

// ToSessionUserDTO builds the user view from a session, so the role shown
// is the role the token actually carries.
func ToSessionUserDTO(session auth.Session) UserDTO {
	return UserDTO{
		ID:       session.UserID,
		Username: session.Username,
		Role:     session.Role,
	}
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
}

// ToInstanceDTO converts an Instance model to InstanceDTO
func ToInstanceDTO(instance models.Instance) InstanceDTO {
	return InstanceDTO{
		Slug:        instance.Slug,
		CompanyName: instance.CompanyName,
	}
}

// ToSessionDTO converts a verified session to SessionDTO
func ToSessionDTO(session auth.Session) SessionDTO {
	return SessionDTO{
		ID:         session.UserID,
		Username:   session.Username,
		Role:       session.Role,
		InstanceID: session.InstanceID,
	}
}
