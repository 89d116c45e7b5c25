package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/tasklister/tasklister-api/internal/auth"
	"github.com/tasklister/tasklister-api/internal/constants"
	"github.com/tasklister/tasklister-api/internal/repository"
	"github.com/tasklister/tasklister-api/internal/services"
	"github.com/tasklister/tasklister-api/internal/testsupport"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testEnv struct {
	db              *gorm.DB
	router          *gin.Engine
	issuer          *auth.Issuer
	instanceService *services.InstanceService
	authService     *services.AuthService
	taskService     *services.TaskService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testsupport.NewDB(t)
	issuer := auth.NewIssuer([]byte("handler-test-secret"), time.Hour)

	instanceRepo := repository.NewInstanceRepository(db)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	env := testEnv{
		db:              db,
		issuer:          issuer,
		instanceService: services.NewInstanceService(instanceRepo, issuer, bcrypt.MinCost),
		authService:     services.NewAuthService(instanceRepo, userRepo, issuer),
		taskService:     services.NewTaskService(taskRepo),
	}
	env.router = NewRouter(RouterDeps{
		InstanceService: env.instanceService,
		AuthService:     env.authService,
		TaskService:     env.taskService,
		Verifier:        issuer,
		Logger:          testsupport.DiscardLogger(),
	})
	return env
}

// do sends a JSON request through the router, with a bearer token when one is given.
func (e testEnv) do(t *testing.T, method, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(constants.HeaderAuthorization, constants.BearerScheme+" "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}
