package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"tripquote/internal/infra/config"
	"tripquote/internal/infra/obs"
)

type PackagesHTTP interface {
	List(c *gin.Context)
}

type QuoteHTTP interface {
	Create(c *gin.Context)
}

type FormHTTP interface {
	Open(c *gin.Context)
	Get(c *gin.Context)
	Event(c *gin.Context)
	Submit(c *gin.Context)
}

type Handlers struct {
	Packages PackagesHTTP
	Quote    QuoteHTTP
	Form     FormHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(obsMW, health, h),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func NewRouter(obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Idempotency-Key", obs.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Type", obs.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Packages != nil {
		api.GET("/packages", h.Packages.List)
	}
	if h.Quote != nil {
		api.POST("/quotes", h.Quote.Create)
	}
	if h.Form != nil {
		forms := api.Group("/forms")
		forms.POST("", h.Form.Open)
		forms.GET("/:id", h.Form.Get)
		forms.POST("/:id/events", h.Form.Event)
		forms.POST("/:id/submit", h.Form.Submit)
	}
	return router
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
