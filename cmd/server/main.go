package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/avasilyev/football-stats-service/internal/config"
	"github.com/avasilyev/football-stats-service/internal/handler"
	"github.com/avasilyev/football-stats-service/internal/logger"
	"github.com/avasilyev/football-stats-service/internal/publisher"
	"github.com/avasilyev/football-stats-service/internal/repository"
	"github.com/avasilyev/football-stats-service/internal/repository/postgres"
	"github.com/avasilyev/football-stats-service/internal/service"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load application config
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Postgres connection failed")
	}
	defer repo.Close()

	pool := repo.Pool()
	coachRepo := postgres.NewCoachRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)
	playerRepo := postgres.NewPlayerRepository(pool)
	championshipRepo := postgres.NewChampionshipRepository(pool)
	matchRepo := postgres.NewMatchRepository(pool)
	goalRepo := postgres.NewGoalRepository(pool)
	lineupRepo := postgres.NewParticipationRepository(pool)
	txManager := postgres.NewTxManager(pool)

	// Stats events: Kafka when enabled, otherwise a no-op sink.
	var statsPub service.StatsPublisher
	if cfg.Kafka.Enabled {
		kafkaPub := publisher.NewKafka(cfg.Kafka.Brokers, appLogger)
		defer func() {
			if err := kafkaPub.Close(); err != nil {
				appLogger.Warn().Err(err).Msg("kafka writer close failed")
			}
		}()
		statsPub = kafkaPub
		appLogger.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("stats publishing enabled")
	} else {
		statsPub = publisher.NewNop(appLogger)
		appLogger.Info().Msg("stats publishing disabled")
	}

	svcs := handler.Services{
		Coaches:       service.NewCoachService(coachRepo, appLogger),
		Teams:         service.NewTeamService(teamRepo, coachRepo, appLogger),
		Players:       service.NewPlayerService(playerRepo, teamRepo, appLogger),
		Championships: service.NewChampionshipService(championshipRepo, appLogger),
		Matches:       service.NewMatchService(matchRepo, teamRepo, playerRepo, championshipRepo, lineupRepo, goalRepo, txManager, appLogger),
		Goals:         service.NewGoalService(goalRepo, matchRepo, playerRepo, lineupRepo, txManager, appLogger),
		Stats:         service.NewStatsService(teamRepo, playerRepo, matchRepo, goalRepo, lineupRepo, statsPub, appLogger),
	}

	if cfg.Logger.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	handler.Register(engine, postgres.NewPinger(pool), svcs)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().Str("addr", cfg.Server.Addr).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		appLogger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		appLogger.Error().Err(err).Msg("http server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	appLogger.Info().Msg("✅ Service stopped cleanly")
}
