package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/PavelMaximov/NoDramaClub-bot/internal/app/botapp"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/config"
	"github.com/PavelMaximov/NoDramaClub-bot/internal/infra/logger"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := botapp.New(ctx, cfg, log)
	if err != nil {
		log.Error("create app", zap.Error(err))
		os.Exit(1)
	}

	log.Info("bot starting", zap.String("env", cfg.Env))
	if err := app.Run(ctx); err != nil {
		log.Error("bot stopped with error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("bot stopped")
}
