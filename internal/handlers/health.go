package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ngenohkevin/bookstore-admin/internal/database"
)

// HealthHandler reports gateway liveness and dependency health.
type HealthHandler struct {
	redis *database.RedisClient
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(redis *database.RedisClient) *HealthHandler {
	return &HealthHandler{redis: redis}
}

// Ping is a trivial liveness probe.
func (h *HealthHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "pong",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Health reports dependency status. Redis being down degrades (rate
// limiting fails open) but does not take the gateway down.
func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	redisStatus := "healthy"

	if h.redis != nil {
		if err := h.redis.Health(c.Request.Context()); err != nil {
			redisStatus = "unhealthy: " + err.Error()
			status = http.StatusServiceUnavailable
		}
	} else {
		redisStatus = "disabled"
	}

	c.JSON(status, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services": gin.H{
			"redis": redisStatus,
		},
	})
}
