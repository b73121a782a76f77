package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/analytics"
	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/api"
	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/config"
	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/db"
	"github.com/American-Capstones/TAMU-Fall-2023-Backend/internal/github"

	_ "github.com/American-Capstones/TAMU-Fall-2023-Backend/docs"
)

// @title Pull Request Analytics API
// @version 1.0
// @description API for incremental pull request analytics over GitHub repositories
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @host localhost:7007
// @BasePath /api/v1
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	logger.SetOutput(os.Stdout)

	// Load configuration with defaults
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate minimum required config
	if cfg.DBConnectionString == "" || cfg.GitHubToken == "" || cfg.Organization == "" {
		logger.Fatal("Missing required configuration (DB_CONNECTION_STRING, GITHUB_TOKEN and GITHUB_ORGANIZATION must be set)")
	}

	ingestCfg := config.DefaultIngestConfig()
	githubCfg := config.DefaultGitHubConfig()

	// Initialize database
	store, err := db.NewPostgresStore(cfg.DBConnectionString, ingestCfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Run migrations with retry logic
	if err := retry(3, 5*time.Second, func() error {
		return store.Migrate()
	}); err != nil {
		logger.Fatalf("Failed to run migrations after retries: %v", err)
	}

	// Initialize services
	source := github.NewSource(cfg.GitHubToken, cfg.Organization, githubCfg, ingestCfg, logger)
	service := analytics.NewService(source, store, ingestCfg, logger)
	handler := api.NewHandler(service, logger)
	router := api.SetupRouter(handler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	// Periodic refresh of all tracked repositories
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.RefreshInterval > 0 {
		go refreshLoop(ctx, service, cfg.RefreshInterval, logger)
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	logger.Info("Server exited properly")
}

func refreshLoop(ctx context.Context, service *analytics.Service, interval time.Duration, logger *logrus.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := service.RefreshAll(ctx); err != nil {
				logger.Errorf("Background refresh failed: %v", err)
			}
		}
	}
}

// retry retries a function up to a certain number of attempts with a delay between attempts
func retry(attempts int, sleep time.Duration, fn func() error) error {
	if err := fn(); err != nil {
		if attempts--; attempts > 0 {
			time.Sleep(sleep)
			return retry(attempts, sleep, fn)
		}
		return err
	}
	return nil
}
