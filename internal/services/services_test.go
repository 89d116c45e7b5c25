package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tasklister/tasklister-api/internal/auth"
	"github.com/tasklister/tasklister-api/internal/repository"
	"github.com/tasklister/tasklister-api/internal/testsupport"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type serviceEnv struct {
	db              *gorm.DB
	issuer          *auth.Issuer
	instanceService *InstanceService
	authService     *AuthService
	taskService     *TaskService
}

func setupServiceEnv(t *testing.T) serviceEnv {
	t.Helper()

	db := testsupport.NewDB(t)
	issuer := auth.NewIssuer([]byte("service-test-secret"), time.Hour)

	instanceRepo := repository.NewInstanceRepository(db)
	userRepo := repository.NewUserRepository(db)

	return serviceEnv{
		db:              db,
		issuer:          issuer,
		instanceService: NewInstanceService(instanceRepo, issuer, bcrypt.MinCost),
		authService:     NewAuthService(instanceRepo, userRepo, issuer),
		taskService:     NewTaskService(repository.NewTaskRepository(db)),
	}
}

// register opens an instance and returns the admin session.
func (e serviceEnv) register(t *testing.T, companyName string) (*RegisterResult, auth.Session) {
	t.Helper()

	result, err := e.instanceService.Register(context.Background(), RegisterInput{
		CompanyName:   companyName,
		AdminUsername: "admin",
		AdminPassword: "supersecret",
	})
	require.NoError(t, err)
	return result, result.Session
}

// member signs a nickname user into slug and returns the session.
func (e serviceEnv) member(t *testing.T, slug, username string) auth.Session {
	t.Helper()

	result, err := e.authService.LoginUser(context.Background(), UserLoginInput{Slug: slug, Username: username})
	require.NoError(t, err)
	return result.Session
}
