package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"urbanvibe-api/internal/domain"
)

type Health struct {
	DB  domain.HealthChecker
	Log *zap.Logger
}

type healthOut struct {
	Status string `json:"status"`
	DB     string `json:"db"`
	Detail string `json:"detail,omitempty"`
}

// Handle pings the store. The cause stays in the log; callers only see a
// fixed detail string.
func (h Health) Handle(c *gin.Context) {
	if err := h.DB.Ping(c.Request.Context()); err != nil {
		if h.Log != nil {
			h.Log.Warn("health check failed", zap.Error(err))
		}
		c.JSON(http.StatusServiceUnavailable, healthOut{
			Status: "degraded",
			DB:     "error",
			Detail: "database unreachable",
		})
		return
	}
	c.JSON(http.StatusOK, healthOut{Status: "ok", DB: "ok"})
}
