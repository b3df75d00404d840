package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Yaara40/academic-department-website-sub000/internal/database"
)

// HealthController reports service liveness and store reachability.
type HealthController struct {
	db *gorm.DB
}

// NewHealthController creates a health controller.
func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Check answers 200 with per-dependency statuses; degraded dependencies do
// not fail the endpoint.
func (hc *HealthController) Check(c *gin.Context) {
	dbStatus := "healthy"
	status := "healthy"
	if !database.CheckHealth(hc.db) {
		dbStatus = "unhealthy"
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"checks": gin.H{
			"database": dbStatus,
		},
	})
}
