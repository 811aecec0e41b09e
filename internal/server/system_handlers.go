package server

import (
	"context"
	"net/http"
	"time"

	"github.com/XCypherusX/tbs-api/internal/api"
	"github.com/XCypherusX/tbs-api/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const healthTimeout = 2 * time.Second

// HealthCheck is a named dependency check reported by /health.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// @Summary      Health check
// @Description  Pings the database and queue backends
// @Tags         system
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Failure      503 {object} api.HealthResponse
// @Router       /health [get]
func Health(checks ...HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		for _, check := range checks {
			if err := check.Ping(ctx); err != nil {
				logger.Warn("health check failed", "dependency", check.Name, "error", err)
				c.JSON(http.StatusServiceUnavailable, api.HealthResponse{Status: check.Name + " unavailable"})
				return
			}
		}

		c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
	}
}

// @Summary      Prometheus metrics
// @Description  Exposes Prometheus metrics in text format
// @Tags         system
// @Produce      text/plain
// @Success      200 {string} string
// @Router       /metrics [get]
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
