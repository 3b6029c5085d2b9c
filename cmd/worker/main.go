package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/nikhilbhutani/ttshub/internal/audio"
	"github.com/nikhilbhutani/ttshub/internal/backend"
	"github.com/nikhilbhutani/ttshub/internal/cache"
	"github.com/nikhilbhutani/ttshub/internal/config"
	"github.com/nikhilbhutani/ttshub/internal/database"
	"github.com/nikhilbhutani/ttshub/internal/history"
	"github.com/nikhilbhutani/ttshub/internal/jobs"
	"github.com/nikhilbhutani/ttshub/internal/orchestrator"
	"github.com/nikhilbhutani/ttshub/internal/queue"
	"github.com/nikhilbhutani/ttshub/internal/queue/workers"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// The worker shares the API's pipeline: same registry, same
	// orchestrator, same history store.
	var hist orchestrator.History
	if cfg.Database.URL != "" {
		db, err := database.NewPool(ctx, cfg.Database)
		if err != nil {
			slog.Warn("database unavailable, running without history", "error", err)
		} else {
			defer db.Close()
			hist = history.NewStore(db)
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("redis required for the worker", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	registry := backend.NewRegistryFromConfig(cfg.Backends)
	registry.Init(ctx)

	store, err := audio.NewStore(cfg.Audio.OutputDir)
	if err != nil {
		slog.Error("failed to prepare artifact directory", "error", err)
		os.Exit(1)
	}

	orch := orchestrator.New(registry, store, hist, cfg.Synthesis.Timeout)
	jobStore := jobs.NewStore(cache.NewCache(rdb))

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	synthesisWorker := workers.NewSynthesisWorker(orch, jobStore)
	mux := queue.NewMux(asynq.HandlerFunc(synthesisWorker.ProcessTask))

	slog.Info("starting worker", "backends", registry.AvailableIDs())
	if err := srv.Run(mux); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
