package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasklister/tasklister-api/internal/models"
	"github.com/tasklister/tasklister-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

func TestInstanceService_Register(t *testing.T) {
	env := setupServiceEnv(t)

	result, session := env.register(t, "Acme Corp!")
	assert.Equal(t, "acme-corp", result.Instance.Slug)
	assert.Equal(t, "Acme Corp!", result.Instance.CompanyName)
	assert.Equal(t, models.RoleAdmin, result.Admin.Role)
	assert.Equal(t, result.Instance.ID, result.Admin.InstanceID)
	require.NotNil(t, result.Admin.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*result.Admin.PasswordHash), []byte("supersecret")))

	verified, err := env.issuer.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, verified.UserID)
	assert.Equal(t, models.RoleAdmin, verified.Role)
}

func TestInstanceService_Register_SlugSuffixes(t *testing.T) {
	env := setupServiceEnv(t)

	seen := map[string]bool{}
	for _, want := range []string{"acme", "acme-1", "acme-2"} {
		result, _ := env.register(t, "ACME")
		assert.Equal(t, want, result.Instance.Slug)
		assert.False(t, seen[result.Instance.Slug])
		seen[result.Instance.Slug] = true
	}
}

func TestInstanceService_Register_FallbackSlug(t *testing.T) {
	env := setupServiceEnv(t)

	result, _ := env.register(t, "!!!")
	assert.Equal(t, "instance", result.Instance.Slug)
}

func TestInstanceService_Register_MissingFields(t *testing.T) {
	env := setupServiceEnv(t)

	inputs := []RegisterInput{
		{AdminUsername: "admin", AdminPassword: "pw"},
		{CompanyName: "Acme", AdminPassword: "pw"},
		{CompanyName: "Acme", AdminUsername: "admin"},
		{CompanyName: "   ", AdminUsername: "admin", AdminPassword: "pw"},
	}
	for _, input := range inputs {
		_, err := env.instanceService.Register(context.Background(), input)
		assert.ErrorIs(t, err, ErrMissingFields)
	}
}

type slugRaceRepo struct {
	repository.InstanceRepository
	failures int
	calls    int
}

func (r *slugRaceRepo) CreateWithAdmin(ctx context.Context, baseSlug string, instance *models.Instance, admin *models.User) error {
	r.calls++
	if r.calls <= r.failures {
		return repository.ErrSlugTaken
	}
	return r.InstanceRepository.CreateWithAdmin(ctx, baseSlug, instance, admin)
}

func TestInstanceService_Register_RetriesSlugRace(t *testing.T) {
	env := setupServiceEnv(t)

	repo := &slugRaceRepo{InstanceRepository: repository.NewInstanceRepository(env.db), failures: 2}
	service := NewInstanceService(repo, env.issuer, bcrypt.MinCost)

	result, err := service.Register(context.Background(), RegisterInput{
		CompanyName: "Acme", AdminUsername: "admin", AdminPassword: "pw",
	})
	require.NoError(t, err)
	assert.Equal(t, "acme", result.Instance.Slug)
	assert.Equal(t, 3, repo.calls)

	repo = &slugRaceRepo{InstanceRepository: repository.NewInstanceRepository(env.db), failures: 10}
	service = NewInstanceService(repo, env.issuer, bcrypt.MinCost)

	_, err = service.Register(context.Background(), RegisterInput{
		CompanyName: "Acme", AdminUsername: "admin", AdminPassword: "pw",
	})
	assert.ErrorIs(t, err, ErrFailedToCreateInstance)
	assert.True(t, errors.Is(err, repository.ErrSlugTaken))
}

func TestInstanceService_FindBySlug(t *testing.T) {
	env := setupServiceEnv(t)
	env.register(t, "Acme")

	instance, err := env.instanceService.FindBySlug(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme", instance.CompanyName)

	_, err = env.instanceService.FindBySlug(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrInstanceNotFound)
}

func TestInstanceService_Register_TrimsNames(t *testing.T) {
	env := setupServiceEnv(t)

	result, err := env.instanceService.Register(context.Background(), RegisterInput{
		CompanyName:   "  Acme  ",
		AdminUsername: " boss ",
		AdminPassword: "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", result.Instance.CompanyName)
	assert.Equal(t, "boss", result.Admin.Username)

	_, err = env.authService.LoginAdmin(context.Background(), AdminLoginInput{
		Slug: "acme", Username: "boss", Password: "supersecret",
	})
	require.NoError(t, err)
}
