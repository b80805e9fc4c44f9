package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hotelhub/reservation/pkg/database"
	"github.com/hotelhub/reservation/pkg/redis"
	"github.com/hotelhub/reservation/pkg/response"
)

// HealthHandler exposes liveness and readiness probes
type HealthHandler struct {
	db    *database.PostgresDB
	redis *redis.Client
}

// NewHealthHandler creates a new health handler. Either dependency may be nil
// when the deployment runs without it.
func NewHealthHandler(db *database.PostgresDB, redis *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	response.OK(c, gin.H{"status": "ok"})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()
	checks := gin.H{}
	healthy := true

	if h.db != nil {
		if err := h.db.HealthCheck(ctx); err != nil {
			checks["postgres"] = err.Error()
			healthy = false
		} else {
			checks["postgres"] = "ok"
		}
	}

	if h.redis != nil {
		if err := h.redis.HealthCheck(ctx); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "checks": checks})
		return
	}
	response.OK(c, gin.H{"status": "ready", "checks": checks})
}
