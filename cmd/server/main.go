package main

import (
	"go.uber.org/zap"

	"github.com/zeid-hub/WhimsyB/internal/blocklist"
	"github.com/zeid-hub/WhimsyB/internal/router"
	"github.com/zeid-hub/WhimsyB/pkg/config"
	"github.com/zeid-hub/WhimsyB/pkg/database"
	"github.com/zeid-hub/WhimsyB/pkg/jwtutil"
	"github.com/zeid-hub/WhimsyB/pkg/logger"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting storefront service...", cfg.LogConfig()...)

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	log.Info("Database connection established")

	tokens := jwtutil.New(&cfg.JWT)
	revoked := blocklist.New(db)

	e := router.New(router.Deps{
		DB:      db,
		Tokens:  tokens,
		Revoked: revoked,
		Logger:  log,
	})

	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
