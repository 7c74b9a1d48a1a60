package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/rezaariel/insight-report-hub/config"
	"github.com/rezaariel/insight-report-hub/internal/repository/postgres"
	"github.com/rezaariel/insight-report-hub/internal/usecase"
	"github.com/rezaariel/insight-report-hub/pkg/apperror"
	"github.com/rezaariel/insight-report-hub/pkg/database"
	"github.com/rezaariel/insight-report-hub/pkg/logger"
)

// Seeds the first administrator account. Run once per deployment; safe to run
// again, it refuses when an admin already exists.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init()

	if cfg.RunMigrations {
		if err := database.RunMigrations(cfg.DBUrl, cfg.MigrationsDir); err != nil {
			log.Fatalf("Migrations failed: %v", err)
		}
	}

	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	bootstrapUC := usecase.NewBootstrapUsecase(postgres.NewUserRepository(dbPool))
	profile, err := bootstrapUC.EnsureAdmin(ctx, cfg.BootstrapAdminName, cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == 409 {
			log.Println(appErr.Message)
			return
		}
		log.Fatalf("Bootstrap failed: %v", err)
	}

	log.Printf("Admin account created: %s <%s>", profile.Name, profile.Email)
}
