// main.go
package main

import (
	"context"
	"log"
	"time"

	"movietix/cmd"
	"movietix/internal/data/repository"
	"movietix/internal/wire"
	"movietix/pkg/database"
	"movietix/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to the database. Failure is not fatal: the hybrid store starts
	// degraded on the in-memory backend instead.
	var primary repository.Store
	if db, err := database.InitDB(config.Database); err != nil {
		logger.Warn("Database unavailable, using in-memory storage", zap.Error(err))
	} else {
		defer db.Close()
		logger.Info("Database connected successfully")
		primary = repository.NewPgStore(db, logger)
	}

	store := repository.NewHybridStore(primary, repository.NewMemStore(logger), logger)

	// Seed the sample catalogue (idempotent)
	if err := store.SeedInitialData(context.Background()); err != nil {
		logger.Fatal("Failed to seed initial data", zap.Error(err))
	}

	sessions := repository.NewSessionStore(
		time.Duration(config.Session.ExpiryHours)*time.Hour, logger)

	// Wire all dependencies
	app := wire.Wiring(store, sessions, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
