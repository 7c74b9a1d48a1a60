package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rezaariel/insight-report-hub/config"
	_ "github.com/rezaariel/insight-report-hub/docs" // Important for Swagger
	v1 "github.com/rezaariel/insight-report-hub/internal/delivery/http/v1"
	"github.com/rezaariel/insight-report-hub/internal/repository/postgres"
	"github.com/rezaariel/insight-report-hub/internal/usecase"
	"github.com/rezaariel/insight-report-hub/pkg/audit"
	"github.com/rezaariel/insight-report-hub/pkg/auth"
	"github.com/rezaariel/insight-report-hub/pkg/database"
	"github.com/rezaariel/insight-report-hub/pkg/logger"
	"github.com/rezaariel/insight-report-hub/pkg/redis"
	"github.com/rezaariel/insight-report-hub/pkg/validation"
)

// @title           Insight Report Hub API
// @version         1.0
// @description     Internal reporting portal: periodic per-division reports with admin review and xlsx export.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting insight report hub", "port", cfg.Port)

	auditLog := audit.Init("insight-report-hub", cfg.Environment)
	defer auditLog.Sync()

	// 3. Setup Database
	if cfg.RunMigrations {
		if err := database.RunMigrations(cfg.DBUrl, cfg.MigrationsDir); err != nil {
			logger.Log.Error("Migrations failed", "error", err)
			os.Exit(1)
		}
		logger.Log.Info("Migrations applied", "dir", cfg.MigrationsDir)
	}

	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (rate limiting and token revocation; optional)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory fallbacks", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	reportRepo := postgres.NewReportRepository(dbPool)

	if cfg.AuditLogToDB {
		auditRepo := postgres.NewAuditRepository(dbPool)
		auditLog.SetPersistFunc(auditRepo.Insert)
	}

	// 6. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
	revoker := auth.NewRevoker(redis.Client())

	authUC := usecase.NewAuthUsecase(userRepo, tokens, revoker, validate)
	reportUC := usecase.NewReportUsecase(reportRepo)
	adminUC := usecase.NewAdminUsecase(userRepo, reportRepo, validate)
	activityUC := usecase.NewActivityUsecase(reportRepo, userRepo)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:     authUC,
		ReportUC:   reportUC,
		AdminUC:    adminUC,
		ActivityUC: activityUC,
		Tokens:     tokens,
		Revoker:    revoker,
		Config:     cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
