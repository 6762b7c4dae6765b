package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ReadinessChecker reports whether the registry backend is reachable.
// The Postgres pool implements it; the in-memory source needs no check.
type ReadinessChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	checker   ReadinessChecker
	log       *logrus.Logger
	version   string
	source    string
	startTime time.Time
}

// NewHealthHandler creates a HealthHandler. checker may be nil for backends
// that cannot fail (in-memory tree file).
func NewHealthHandler(checker ReadinessChecker, log *logrus.Logger, version, source string) *HealthHandler {
	return &HealthHandler{
		checker:   checker,
		log:       log,
		version:   version,
		source:    source,
		startTime: time.Now(),
	}
}

// healthResponse is the JSON payload returned by the liveness endpoint.
type healthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Source        string  `json:"source"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// readinessResponse is the JSON payload returned by the readiness endpoint.
type readinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Liveness handles GET /api/v1/health.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:        "ok",
		Version:       h.version,
		Source:        h.source,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}

// Readiness handles GET /api/v1/ready — verifies the registry is reachable.
func (h *HealthHandler) Readiness(c *gin.Context) {
	resp := readinessResponse{Status: "ready", Checks: map[string]string{}}

	if h.checker == nil {
		resp.Checks["registry"] = "static"
		c.JSON(http.StatusOK, resp)

		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.checker.HealthCheck(ctx); err != nil {
		h.log.WithError(err).Warn("readiness check failed")
		resp.Status = "unavailable"
		resp.Checks["registry"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, resp)

		return
	}

	resp.Checks["registry"] = "connected"
	c.JSON(http.StatusOK, resp)
}
