package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/FieldFinderOrganization/fieldfinder/docs"
	"github.com/FieldFinderOrganization/fieldfinder/internal/assistant"
	"github.com/FieldFinderOrganization/fieldfinder/internal/config"
	"github.com/FieldFinderOrganization/fieldfinder/internal/db"
	"github.com/FieldFinderOrganization/fieldfinder/internal/email"
	"github.com/FieldFinderOrganization/fieldfinder/internal/logger"
	"github.com/FieldFinderOrganization/fieldfinder/internal/server"
)

// @title FieldFinder API
// @version 1.0
// @description API for sports-field booking and sports-goods storefront.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	logger.Info("Starting FieldFinder application")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	emailService := email.New(
		cfg.EmailFrom,
		cfg.EmailFromName,
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPass,
		cfg.RedisAddr,
	)
	defer emailService.Close()
	logger.Info("Email service initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go emailService.Start(ctx)

	aiClient := assistant.NewUnavailableClient()
	if cfg.GenAIAPIKey != "" {
		aiClient, err = assistant.NewGenAIClient(ctx, cfg.GenAIAPIKey, cfg.GenAIModel)
		if err != nil {
			logger.Fatalf("Failed to create assistant client: %v", err)
		}
		logger.Info("Assistant client initialized", "model", cfg.GenAIModel)
	} else {
		logger.Info("No GenAI API key configured, assistant disabled")
	}

	srv := server.New(database, rdb, cfg, emailService, aiClient)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
