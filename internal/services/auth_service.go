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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles authentication related business logic.
type AuthService struct {
	instanceRepo repository.InstanceRepository
	userRepo     repository.UserRepository
	issuer       *auth.Issuer
	now          func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(instanceRepo repository.InstanceRepository, userRepo repository.UserRepository, issuer *auth.Issuer) *AuthService {
	return &AuthService{
		instanceRepo: instanceRepo,
		userRepo:     userRepo,
		issuer:       issuer,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// AdminLoginInput holds the credentials for admin authentication.
type AdminLoginInput struct {
	Slug     string
	Username string
	Password string
}

// UserLoginInput holds the nickname for user authentication.
type UserLoginInput struct {
	Slug     string
	Username string
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	User    *models.User
	Token   string
	Session auth.Session
}

// LoginAdmin verifies admin credentials within an instance.
func (s *AuthService) LoginAdmin(ctx context.Context, input AdminLoginInput) (*LoginResult, error) {
	if input.Slug == "" || strings.TrimSpace(input.Username) == "" || input.Password == "" {
		return nil, ErrMissingFields
	}

	instance, err := s.findInstance(ctx, input.Slug)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindAdmin(ctx, instance.ID, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.IsAdmin() || user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), passwordBytes(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.completeLogin(ctx, user, models.RoleAdmin)
}

// LoginUser signs in by nickname, provisioning the user on first login.
// No password is involved.
func (s *AuthService) LoginUser(ctx context.Context, input UserLoginInput) (*LoginResult, error) {
	username := strings.TrimSpace(input.Username)
	if input.Slug == "" || username == "" {
		return nil, ErrMissingFields
	}

	instance, err := s.findInstance(ctx, input.Slug)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindOrCreate(ctx, instance.ID, username)
	if err != nil {
		return nil, fmt.Errorf("failed to provision user: %w", err)
	}

	// Nickname logins never carry admin rights, even for the admin's name
	return s.completeLogin(ctx, user, models.RoleUser)
}

// GetUser returns the user behind a verified session.
func (s *AuthService) GetUser(ctx context.Context, session auth.Session) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.InstanceID != session.InstanceID {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) completeLogin(ctx context.Context, user *models.User, role models.Role) (*LoginResult, error) {
	now := s.now()
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLoginAt = &now

	token, session, err := s.issuer.IssueAs(*user, role)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToIssueSession, err)
	}

	return &LoginResult{
		User:    user,
		Token:   token,
		Session: session,
	}, nil
}

func (s *AuthService) findInstance(ctx context.Context, slug string) (*models.Instance, error) {
	instance, err := s.instanceRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstanceNotFound
		}
		return nil, fmt.Errorf("failed to find instance: %w", err)
	}
	return instance, nil
}
