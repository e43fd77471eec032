package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cvmentor-backend/internal/analyses"
	"cvmentor-backend/internal/gemini"
	"cvmentor-backend/internal/shared/config"
	"cvmentor-backend/internal/shared/metrics"
	"cvmentor-backend/internal/shared/server/middleware"
	"cvmentor-backend/internal/shared/server/respond"
	"cvmentor-backend/internal/uploads"
)

// RouterDeps carries everything NewRouter needs to register routes.
type RouterDeps struct {
	Config          config.Config
	UploadHandler   *uploads.Handler
	AnalysisHandler *analyses.Handler
	GeminiHandler   *gemini.Handler
	// StaticDir, when set, is served under /files so locally stored
	// resumes resolve to fetchable URLs.
	StaticDir string
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	deps.UploadHandler.RegisterRoutes(api)
	deps.AnalysisHandler.RegisterRoutes(api)
	deps.GeminiHandler.RegisterRoutes(api)

	if deps.StaticDir != "" {
		r.Static("/files", deps.StaticDir)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
