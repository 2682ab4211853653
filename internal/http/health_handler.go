package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthCheck es una dependencia a verificar en /healthz.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthHandler responde si las dependencias estan disponibles.
type HealthHandler struct {
	logger *zap.Logger
	checks []HealthCheck
}

func NewHealthHandler(logger *zap.Logger, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{logger: logger, checks: checks}
}

// Healthz maneja GET /healthz.
func (h *HealthHandler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	for _, check := range h.checks {
		if check.Ping == nil {
			continue
		}
		if err := check.Ping(ctx); err != nil {
			h.logger.Warn("health check failed", zap.String("dependency", check.Name), zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "dependency": check.Name})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
