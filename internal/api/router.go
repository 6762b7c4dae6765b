package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/kinviz/kingraph/internal/middleware"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	Export      ExportService
	Directory   PersonDirectory
	Checker     ReadinessChecker // nil for the in-memory source
	CORSOrigins []string
	Version     string
	Source      string
}

// Router-level limits.
const maxBodySize = 1 << 20 // 1 MB; selections are small

// NewRouter builds the Gin engine with all middleware and routes.
func NewRouter(deps *RouterDeps) *gin.Engine {
	r := gin.New()
	setupMiddleware(r, deps)

	registerRoutes(r.Group("/api/v1"), deps)

	return r
}

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.Prometheus())

	// Metrics endpoint (unauthenticated, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(api *gin.RouterGroup, deps *RouterDeps) {
	health := NewHealthHandler(deps.Checker, deps.Log, deps.Version, deps.Source)
	people := NewPeopleHandler(deps.Directory, deps.Log)
	export := NewExportHandler(deps.Export, deps.Log)

	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	api.GET("/people", people.List)
	api.GET("/people/:id", people.Get)
	api.GET("/people/:id/relatives", people.Relatives)
	api.GET("/stats", people.Stats)

	api.POST("/export", export.Export)
}
