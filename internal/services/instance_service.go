package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tasklister/tasklister-api/internal/auth"
	"github.com/tasklister/tasklister-api/internal/constants"
	"github.com/tasklister/tasklister-api/internal/models"
	"github.com/tasklister/tasklister-api/internal/repository"
	"github.com/tasklister/tasklister-api/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const maxPasswordBytes = 72

// InstanceService registers and resolves instances.
type InstanceService struct {
	instanceRepo repository.InstanceRepository
	issuer       *auth.Issuer
	bcryptCost   int
}

// NewInstanceService creates a new InstanceService.
func NewInstanceService(instanceRepo repository.InstanceRepository, issuer *auth.Issuer, bcryptCost int) *InstanceService {
	return &InstanceService{
		instanceRepo: instanceRepo,
		issuer:       issuer,
		bcryptCost:   bcryptCost,
	}
}

// RegisterInput represents the information needed to open a new instance.
type RegisterInput struct {
	CompanyName   string
	AdminUsername string
	AdminPassword string
}

// RegisterResult is the outcome of a successful registration.
type RegisterResult struct {
	Instance *models.Instance
	Admin    *models.User
	Token    string
	Session  auth.Session
}

// Register creates an instance with a unique slug and its admin account.
func (s *InstanceService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	companyName := strings.TrimSpace(input.CompanyName)
	username := strings.TrimSpace(input.AdminUsername)
	if companyName == "" || username == "" || input.AdminPassword == "" {
		return nil, ErrMissingFields
	}

	hashed, err := bcrypt.GenerateFromPassword(passwordBytes(input.AdminPassword), s.bcryptCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}
	hash := string(hashed)

	baseSlug := utils.GenerateSlug(companyName)
	if baseSlug == "" {
		baseSlug = constants.FallbackSlugBase
	}

	var (
		instance *models.Instance
		admin    *models.User
	)
	for attempt := 1; ; attempt++ {
		instance = &models.Instance{CompanyName: companyName}
		admin = &models.User{Username: username, PasswordHash: &hash, Role: models.RoleAdmin}

		err = s.instanceRepo.CreateWithAdmin(ctx, baseSlug, instance, admin)
		if err == nil {
			break
		}
		if errors.Is(err, repository.ErrSlugTaken) && attempt < constants.MaxRegisterAttempts {
			continue
		}
		return nil, fmt.Errorf("%w: %w", ErrFailedToCreateInstance, err)
	}

	token, session, err := s.issuer.Issue(*admin)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToIssueSession, err)
	}

	return &RegisterResult{
		Instance: instance,
		Admin:    admin,
		Token:    token,
		Session:  session,
	}, nil
}

// passwordBytes keeps the first 72 bytes, the most bcrypt reads. Longer
// passwords hash and verify on that prefix instead of failing.
func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// FindBySlug resolves a slug to its instance.
func (s *InstanceService) FindBySlug(ctx context.Context, slug string) (*models.Instance, error) {
	instance, err := s.instanceRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstanceNotFound
		}
		return nil, fmt.Errorf("failed to find instance: %w", err)
	}
	return instance, nil
}
