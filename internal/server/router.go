package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/openjam/jam-backend/internal/handlers"
	"github.com/openjam/jam-backend/internal/observability"
)

type RouterConfig struct {
	ScoringHandler     *handlers.ScoringHandler
	LeaderboardHandler *handlers.LeaderboardHandler
	Metrics            *observability.Metrics
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware("jam-backend"))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := router.Group("/api")
	{
		api.POST("/events/:eventID/challenges/:challengeID/start", cfg.ScoringHandler.StartChallenge)
		api.POST("/events/:eventID/challenges/:challengeID/answers", cfg.ScoringHandler.SubmitAnswer)
		api.POST("/events/:eventID/challenges/:challengeID/clues", cfg.ScoringHandler.OpenClue)
		api.GET("/events/:eventID/leaderboard", cfg.LeaderboardHandler.GetLeaderboard)
		api.GET("/events/:eventID/leaderboard/:teamID", cfg.LeaderboardHandler.GetTeamRank)
	}

	return router
}
