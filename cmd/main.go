package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/riptano/statuspage/internal/config"
	"github.com/riptano/statuspage/internal/handler/http/dashboard"
	v1 "github.com/riptano/statuspage/internal/handler/http/v1"
	"github.com/riptano/statuspage/internal/notify"
	"github.com/riptano/statuspage/internal/repository"
	"github.com/riptano/statuspage/internal/service"
	"github.com/riptano/statuspage/pkg/logger"
	"github.com/riptano/statuspage/pkg/postgres"
	redisclient "github.com/riptano/statuspage/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/riptano/statuspage/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Status Page API
// @version 1.0
// @description Service status page: incidents, their updates, and the status catalog.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Status change notifications: published to a Redis queue, drained by
	// the delivery worker.
	publisher := notify.NewRedisPublisher(redisClient)
	worker := notify.NewWorker(redisClient, log, cfg)
	worker.Start(ctx)

	statusRepo := repository.NewStatusRepository(dbpool)
	incidentRepo := repository.NewIncidentRepository(dbpool)
	updateRepo := repository.NewUpdateRepository(dbpool)
	userRepo := repository.NewUserRepository(dbpool)
	dashboardCache := repository.NewDashboardCache(redisClient, cfg.DashboardCacheTTL)

	statusService := service.NewStatusService(statusRepo, log)
	incidentService := service.NewIncidentService(incidentRepo, dashboardCache, log)
	updateService := service.NewUpdateService(updateRepo, incidentRepo, statusRepo, dashboardCache, publisher, log)
	authService := service.NewAuthService(userRepo, log, cfg)
	dashboardService := service.NewDashboardService(incidentRepo, dashboardCache, log, cfg)

	apiHandler := v1.NewHandler(statusService, incidentService, updateService, authService, log, cfg)
	dashboardHandler := dashboard.NewHandler(dashboardService, incidentService, updateService, authService, log)

	router := gin.Default()
	router.Use(v1.RequestIDMiddleware())

	api := router.Group("/api/v1")
	apiHandler.RegisterRoutes(api)

	dashboardHandler.RegisterRoutes(&router.RouterGroup)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
