package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Draft-Lab/panela-tracker/internal/common/logger"
	"github.com/Draft-Lab/panela-tracker/internal/services/tracker"
)

type RouterConfig struct {
	Tracker tracker.Service

	// APIKey guards the event and admin routes
	APIKey string

	AllowedOrigins []string
	Logger         *logger.Logger
}

func NewRouter(cfg *RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(cfg.Logger))
	r.Use(CORS(cfg.AllowedOrigins))

	health := NewHealthHandler()
	events := NewEventHandler(cfg.Tracker)
	sessions := NewSessionHandler(cfg.Tracker)
	seasons := NewSeasonHandler(cfg.Tracker)

	r.GET("/healthcheck", health.HealthCheck)

	requireKey := RequireAPIKey(cfg.APIKey)

	api := r.Group("/api")
	{
		api.POST("/discord/events", requireKey, events.Record)
		api.GET("/sessions/current", sessions.ListCurrent)
		api.GET("/sessions/:id", sessions.Get)
		api.GET("/games/:title/seasons", seasons.ListByGame)
	}

	admin := api.Group("/")
	admin.Use(requireKey)
	{
		admin.POST("/sessions/:id/finish", sessions.Finish)
		admin.POST("/sessions/:id/recompute", sessions.Recompute)
		admin.POST("/seasons", seasons.Start)
		admin.POST("/seasons/:id/finish", seasons.Finish)
	}

	return r
}
