package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler reports service liveness and database reachability.
type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check returns the health status of the service and its database.
// GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	overall := "healthy"
	dbStatus := "ok"

	sqlDB, err := h.db.DB()
	if err != nil {
		dbStatus = "error"
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error"
		overall = "unhealthy"
	}

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "taskhub",
		"components": gin.H{
			"database": dbStatus,
		},
	})
}
