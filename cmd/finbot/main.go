package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"finbot/core/bootstrap"
	coreconfig "finbot/core/config"
	"finbot/core/dialog"
	"finbot/core/logger"
	coretelegram "finbot/core/telegram"

	"log/slog"
)

const defaultConfigPath = "config.yaml"

func main() {
	if err := run(); err != nil {
		log.Fatalf("finbot: %v", err)
	}
}

func run() error {
	// .env is for local development; absence is not an error.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = defaultConfigPath
	}

	log.Printf("loading config: %s", cfgPath)
	cfg, err := coreconfig.Load(cfgPath)
	if err != nil {
		return err
	}

	startedAt := time.Now()
	infra, err := bootstrap.Run(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := infra.Close(); err != nil {
			log.Printf("infra shutdown error: %v", err)
		}
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	engine := dialog.NewEngine(infra.Store, dialog.NewSessions(), infra.Bundle, time.Now)

	logger.L.With("component", "app").Info("app ready",
		slog.String("event", "ready"),
		slog.String("backend", cfg.Ledger.Backend),
		slog.String("locale", cfg.Ledger.Locale),
		slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err = coretelegram.Run(ctx, coretelegram.RunOptions{
		Config: cfg,
		Engine: engine,
	})

	logger.L.With("component", "app").Info("shutting down...",
		slog.String("event", "shutdown"),
	)
	return err
}
