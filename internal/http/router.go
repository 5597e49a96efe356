package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/pathways-backend/internal/http/handlers"
	httpMW "github.com/yungbote/pathways-backend/internal/http/middleware"
	"github.com/yungbote/pathways-backend/internal/observability"
	"github.com/yungbote/pathways-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	AllowedOrigins []string

	AuthMiddleware  *httpMW.AuthMiddleware
	HealthHandler   *httpH.HealthHandler
	PathwayHandler  *httpH.PathwayHandler
	ProgressHandler *httpH.ProgressHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")

	// Public pathway catalog. The single-pathway view is richer when a valid
	// token is presented, so it runs behind optional auth.
	if cfg.PathwayHandler != nil {
		api.GET("/pathways", cfg.PathwayHandler.ListPathways)
		view := api.Group("/")
		if cfg.AuthMiddleware != nil {
			view.Use(cfg.AuthMiddleware.OptionalAuth())
		}
		view.GET("/pathways/:name", cfg.PathwayHandler.GetPathway)
	}

	protected := api.Group("/")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireAuth())
	}

	if cfg.PathwayHandler != nil {
		protected.GET("/courses/:id/unlock-check", cfg.PathwayHandler.UnlockCheck)
	}

	if cfg.ProgressHandler != nil {
		protected.GET("/student-progress", cfg.ProgressHandler.StudentProgress)
		protected.POST("/courses/:id/progress", cfg.ProgressHandler.RecordProgress)
	}

	return r
}
