package httpapi

import (
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	Handlers       *Handlers
	AuthMiddleware *AuthMiddleware
}

// NewRouter wires the public and protected endpoint groups. Generation and
// speech stay public so anonymous sessions can converse; everything touching
// a user's stored data requires the bearer token.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	api := router.Group("/api")
	{
		api.GET("/health", cfg.Handlers.Health)
		api.POST("/users/register", cfg.Handlers.Register)
		api.POST("/users/login", cfg.Handlers.Login)
		api.POST("/generate", cfg.Handlers.Generate)
		api.POST("/text-to-speech", cfg.Handlers.TextToSpeech)
	}

	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.GET("/journal-entries", cfg.Handlers.ListEntries)
		protected.POST("/journal-entries", cfg.Handlers.CreateEntry)
		protected.GET("/emotions", cfg.Handlers.ListEmotions)
		protected.POST("/emotions/analyze", cfg.Handlers.AnalyzeEmotions)
		protected.GET("/emotions/summary/:user_id", cfg.Handlers.EmotionSummary)
		protected.POST("/pricing/activate-plan", cfg.Handlers.ActivatePlan)
	}

	return router
}
