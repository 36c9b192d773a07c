package main

import (
	"context"
	"fmt"
	"os"
	"time"

	jamdb "github.com/openjam/jam-backend/internal/data/db"
	"github.com/openjam/jam-backend/internal/data/repos"
	"github.com/openjam/jam-backend/internal/handlers"
	"github.com/openjam/jam-backend/internal/observability"
	"github.com/openjam/jam-backend/internal/platform/envutil"
	"github.com/openjam/jam-backend/internal/platform/lock"
	"github.com/openjam/jam-backend/internal/platform/logger"
	"github.com/openjam/jam-backend/internal/server"
	"github.com/openjam/jam-backend/internal/services"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Postgres
	postgresService, err := jamdb.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Tracing
	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "jam-backend",
		Environment: envutil.String("APP_ENV", "development"),
	})
	defer func() {
		if otelShutdown == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(ctx); err != nil {
			log.Warn("OTel shutdown failed", "error", err)
		}
	}()

	// Metrics
	metrics := observability.NewMetrics()

	// Lock backend
	log.Info("Setting up lock backend from main...")
	lockBackend := envutil.String("LOCK_BACKEND", "redis")
	var locker lock.Locker
	switch lockBackend {
	case "redis":
		redisLocker, err := lock.NewRedisLocker(log)
		if err != nil {
			log.Error("Redis locker init failed", "error", err)
			os.Exit(1)
		}
		defer redisLocker.Close()
		locker = redisLocker
	case "postgres":
		locker = lock.NewAdvisoryLocker(thePG, log)
	case "memory":
		locker = lock.NewMemoryLocker(envutil.Duration("SCORING_LOCK_WAIT", 3*time.Second))
	default:
		log.Error("Unknown LOCK_BACKEND", "value", lockBackend)
		os.Exit(1)
	}

	runner := jamdb.NewTxRunner(thePG, log,
		jamdb.WithMetrics(metrics),
		jamdb.WithMaxAttempts(envutil.Int("TX_MAX_ATTEMPTS", 5)),
		jamdb.WithRetryDelay(envutil.Duration("TX_RETRY_DELAY", 75*time.Millisecond)),
	)

	// Repos
	log.Info("Setting up repos from main...")
	teamRepo := repos.NewTeamRepo(thePG, log)
	challengeRepo := repos.NewChallengeRepo(thePG, log)
	taskScoringRepo := repos.NewTaskScoringRepo(thePG, log)
	clueRepo := repos.NewClueRepo(thePG, log)
	answerRepo := repos.NewAnswerRepo(thePG, log)
	taskProgressRepo := repos.NewTaskProgressRepo(thePG, log)
	teamAnswerRepo := repos.NewTeamChallengeAnswerRepo(thePG, log)
	statsRepo := repos.NewChallengeStatisticsRepo(thePG, log)
	leaderboardRepo := repos.NewLeaderboardEntryRepo(thePG, log)
	historyRepo := repos.NewLeaderboardHistoryRepo(thePG, log)
	eventLogRepo := repos.NewEventLogRepo(thePG, log)

	// Services
	log.Info("Setting up services from main...")
	challengeService := services.NewChallengeService(log, locker, runner, metrics, challengeRepo, taskScoringRepo, taskProgressRepo, teamAnswerRepo, statsRepo, eventLogRepo)
	clueService := services.NewClueService(log, locker, runner, metrics, taskProgressRepo, teamAnswerRepo, taskScoringRepo, clueRepo, statsRepo, eventLogRepo)
	answerService := services.NewAnswerService(log, locker, runner, metrics, taskProgressRepo, teamAnswerRepo, challengeRepo, taskScoringRepo, answerRepo, leaderboardRepo, historyRepo, statsRepo, eventLogRepo)
	leaderboardService := services.NewLeaderboardService(log, metrics, leaderboardRepo, teamRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	scoringHandler := handlers.NewScoringHandler(challengeService, answerService, clueService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		ScoringHandler:     scoringHandler,
		LeaderboardHandler: leaderboardHandler,
		Metrics:            metrics,
	})

	port := envutil.String("PORT", "8080")
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
