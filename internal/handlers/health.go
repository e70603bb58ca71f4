package handlers

import (
	"net/http"
	"time"

	"github.com/ecopledge-dev/ecopledge/db"
	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

func HealthCheck(c *gin.Context) {
	status := "ok"

	if sqlDB, err := db.DB.DB(); err != nil || sqlDB.Ping() != nil {
		status = "degraded"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"service":   "ecopledge",
		"uptime":    time.Since(startedAt).Round(time.Second).String(),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
