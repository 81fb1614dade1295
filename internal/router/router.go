// Package router assembles the gin engine: middleware chain, public and
// protected routes, and the operational endpoints.
package router

import (
	"context"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"eatwise/internal/auth"
	"eatwise/internal/config"
	"eatwise/internal/handler"
	"eatwise/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Config  *config.Config
	Handler *handler.Handler
	Issuer  *auth.Issuer
	DB      Pinger
	Logger  *zap.Logger
}

func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Logger), cors.New(corsConfig(d.Config.Server.AllowedOrigins)))

	h := d.Handler
	aiLimit := middleware.RateLimit(d.Config.RateLimit)

	r.POST("/signup", middleware.InviteCode(d.Config.Auth.InviteCode), h.Signup)
	r.POST("/login", h.Login)
	r.POST("/save-profile", h.SaveProfile)
	r.POST("/get-profile", h.GetProfile)
	r.POST("/ask-ai", aiLimit, h.AskAI)
	r.POST("/analyze-image", aiLimit, middleware.OptionalAuth(d.Issuer), h.AnalyzeImage)

	protected := r.Group("/api").Use(middleware.Auth(d.Issuer))
	{
		protected.GET("/profile", h.Profile)
		protected.GET("/bmi", h.BMI)

		protected.POST("/goal", h.SaveGoal)
		protected.GET("/goal", h.GetGoal)
		protected.GET("/tips", h.Tips)

		protected.GET("/tracker", h.ListEntries)
		protected.POST("/tracker", h.AddEntry)
		protected.POST("/tracker/from-analysis", h.AddFromAnalysis)
		protected.POST("/tracker/reset", h.ResetDay)
		protected.GET("/tracker/summary", h.Summary)
		protected.DELETE("/tracker/:id", h.DeleteEntry)
		protected.GET("/focus", h.Focus)

		protected.GET("/analyses", h.ListAnalyses)
		protected.GET("/analyses/:id/image", h.AnalysisImage)

		protected.POST("/assistant/ask", aiLimit, h.AssistantAsk)
		protected.POST("/assistant/estimate", aiLimit, h.Estimate)
		protected.POST("/assistant/snack", aiLimit, h.Snack)

		protected.GET("/discover/insights", aiLimit, h.Insights)
		protected.GET("/discover/snacks", aiLimit, h.SmartSnacks)
		protected.GET("/discover/recipes", aiLimit, h.Recipes)
	}
	r.GET("/api/discover/facts", h.Facts)

	r.GET("/ws/assistant", middleware.Auth(d.Issuer), h.HandleAssistantConnection)

	r.GET("/health", health(d.DB))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if d.Config.Docs.Enabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if dir := d.Config.Server.StaticDir; dir != "" {
		r.NoRoute(static(dir))
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "X-Invite-Code", middleware.RequestIDHeader)
	cfg.ExposeHeaders = append(cfg.ExposeHeaders, middleware.RequestIDHeader)
	return cfg
}

type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
}

// health godoc
// @Summary      Health check
// @Tags         Ops
// @Produce      json
// @Success      200 {object} router.HealthResponse
// @Failure      503 {object} router.HealthResponse
// @Router       /health [get]
func health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Database: err.Error()})
			return
		}
		c.JSON(http.StatusOK, HealthResponse{Status: "ok", Database: "ok"})
	}
}

// static serves the frontend for unknown GET paths, falling back to
// index.html. API misses stay JSON 404s.
func static(dir string) gin.HandlerFunc {
	files := http.Dir(dir)
	fileServer := http.FileServer(files)
	return func(c *gin.Context) {
		urlPath := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || strings.HasPrefix(urlPath, "/api/") {
			c.JSON(http.StatusNotFound, handler.ErrorResponse{Message: "Not found"})
			return
		}
		if f, err := files.Open(path.Clean(urlPath)); err == nil {
			st, statErr := f.Stat()
			f.Close()
			if statErr == nil && !st.IsDir() {
				fileServer.ServeHTTP(c.Writer, c.Request)
				return
			}
		}
		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			c.JSON(http.StatusNotFound, handler.ErrorResponse{Message: "Not found"})
			return
		}
		c.File(index)
	}
}
