package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/tasklister/tasklister-api/internal/auth"
	"github.com/tasklister/tasklister-api/internal/config"
	"github.com/tasklister/tasklister-api/internal/database"
	"github.com/tasklister/tasklister-api/internal/handlers"
	"github.com/tasklister/tasklister-api/internal/logging"
	"github.com/tasklister/tasklister-api/internal/repository"
	"github.com/tasklister/tasklister-api/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logging.New(os.Stdout, cfg.GinMode, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error("failed to close database", "error", err)
		}
	}()

	if err := database.Migrate(db, log); err != nil {
		log.Error("failed to run migrations", "error", err)
		return err
	}

	issuer := auth.NewIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL.Duration)

	instanceRepo := repository.NewInstanceRepository(db)
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	router := handlers.NewRouter(handlers.RouterDeps{
		InstanceService: services.NewInstanceService(instanceRepo, issuer, cfg.BcryptCost),
		AuthService:     services.NewAuthService(instanceRepo, userRepo, issuer),
		TaskService:     services.NewTaskService(taskRepo),
		Verifier:        issuer,
		Logger:          log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", srv.Addr, "mode", cfg.GinMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.Duration)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		return err
	}
	log.Info("server stopped")
	return nil
}
