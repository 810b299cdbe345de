// Package main is the entry point for the achievements engine.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gamehub/internal/config"
	"gamehub/internal/pkg/db"
	"gamehub/internal/pkg/lock"
	"gamehub/internal/repository"
	"gamehub/internal/service"
	"gamehub/internal/worker"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().Msg("Configuration loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	if err := repository.Migrate(ctx, dbPool.Pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	achievementRepo := repository.NewAchievementRepository(dbPool.Pool)
	metricsRepo := repository.NewMetricsRepository(dbPool.Pool)
	queueRepo := repository.NewEvalQueueRepository(dbPool.Pool)

	// Initialize the achievement service
	achievementService := service.NewAchievementService(
		metricsRepo,
		achievementRepo,
		cfg.Achievements.IconURL,
	)

	// Opportunistic catalog seeding; never fatal.
	achievementService.InitializeAchievements(ctx)

	// Start the evaluation worker
	userLock := lock.NewUserLock()
	evalWorker := worker.New(
		queueRepo,
		achievementService,
		userLock,
		cfg.Worker.PollInterval,
		cfg.Worker.BatchSize,
	)
	go evalWorker.Run(ctx)

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	cancel()
	<-evalWorker.Done()
	log.Info().Msg("Achievements engine stopped gracefully")
}
