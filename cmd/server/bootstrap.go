package main

import (
	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/handlers"
	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/internal/utils"
	"github.com/taskhub/backend/pkg/logger"
)

// appServices holds all initialized handlers needed by the application.
type appServices struct {
	healthHandler  *handlers.HealthHandler
	authHandler    *handlers.AuthHandler
	projectHandler *handlers.ProjectHandler
	taskHandler    *handlers.TaskHandler
}

// bootstrap initializes all application dependencies: database and handlers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()
	return &appServices{
		healthHandler:  handlers.NewHealthHandler(db),
		authHandler:    handlers.NewAuthHandler(db, cfg),
		projectHandler: handlers.NewProjectHandler(db),
		taskHandler:    handlers.NewTaskHandler(db),
	}
}
