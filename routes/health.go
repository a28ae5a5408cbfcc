package routes

import (
	"log"
	"net/http"
	"time"

	"taskpro/api/database"

	"github.com/gin-gonic/gin"
)

func RegisterHealthRoutes(router *gin.Engine, db *database.Database) {
	router.GET("/health", func(c *gin.Context) { HealthCheck(c, db) })
}

// HealthCheck reports liveness and whether the database answers a ping.
func HealthCheck(c *gin.Context, db *database.Database) {
	status, dbStatus, code := "ok", "ok", http.StatusOK
	if err := db.Ping(); err != nil {
		log.Printf("[%s] health check: database ping failed: %v", requestID(c), err)
		status, dbStatus, code = "degraded", "unavailable", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
