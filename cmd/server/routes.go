package main

import (
	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/middleware"
	"github.com/taskhub/backend/pkg/logger"
)

// registerRoutes wires up middleware and the full API route table.
func registerRoutes(r *gin.Engine, svc *appServices, cfg *config.Config) {
	r.RedirectTrailingSlash = false

	r.Use(logger.GinLogger())
	r.Use(logger.GinRecovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS())

	r.GET("/health", svc.healthHandler.Check)

	api := r.Group("/api")

	// Unauthenticated endpoints are rate limited per client IP.
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	auth := api.Group("/auth")
	auth.Use(limiter.Middleware())
	{
		auth.POST("/register", svc.authHandler.Register)
		auth.POST("/login", svc.authHandler.Login)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())
	{
		protected.GET("/auth/me", svc.authHandler.Me)
		protected.POST("/auth/logout", svc.authHandler.Logout)

		protected.GET("/projects", svc.projectHandler.List)
		protected.POST("/projects", svc.projectHandler.Create)
		protected.GET("/projects/:id", svc.projectHandler.GetByID)
		protected.PUT("/projects/:id", svc.projectHandler.Update)
		protected.DELETE("/projects/:id", svc.projectHandler.Delete)
		protected.POST("/projects/:id/members", svc.projectHandler.AddMember)
		protected.GET("/projects/:id/members", svc.projectHandler.ListMembers)
		protected.GET("/projects/:id/tasks", svc.taskHandler.ListForProject)

		protected.POST("/tasks", svc.taskHandler.Create)
		protected.GET("/tasks/mine", svc.taskHandler.ListMine)
		protected.GET("/tasks/:id", svc.taskHandler.GetByID)
		protected.PUT("/tasks/:id", svc.taskHandler.Update)
		protected.DELETE("/tasks/:id", svc.taskHandler.Delete)
	}
}
