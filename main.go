package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"memory-match/config"
	"memory-match/loghandler"
)

func main() {
	slog.SetDefault(slog.New(loghandler.NewCompactHandler(os.Stderr, slog.LevelInfo)))

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found; using environment variables.", "tag", "main")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "tag", "config", "err", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(loghandler.NewCompactHandler(os.Stderr, cfg.SlogLevel())))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(cfg).Run(ctx, os.Args); err != nil {
		slog.Error("exiting", "tag", "main", "err", err)
		stop()
		os.Exit(1)
	}
}
