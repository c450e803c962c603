package main

import (
	"context"
	"log/slog"
	"os"

	"fixtures-app/internal/app"
	"fixtures-app/internal/browser"
	"fixtures-app/internal/config"
	"fixtures-app/internal/logger"
	"fixtures-app/internal/page"
)

func main() {
	// Parse config
	cfg := config.Parse()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := logger.New(os.Stderr, cfg.LogFormat, level)
	slog.SetDefault(log)

	var (
		ctx context.Context
		p   page.Page
	)
	if cfg.Static {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), cfg.GlobalTimeout)
		defer cancel()
		p = page.NewDocument(nil)
	} else {
		log.Info("Starting the browser")
		session, err := browser.NewChrome(cfg, log)
		if err != nil {
			log.Error("Failed to initialize browser", "err", err)
			os.Exit(1)
		}
		ctx = session.Context()
		p = page.NewChrome(session.Close, cfg.ActionTimeout)
	}

	// Ensure cleanup
	defer p.Close()

	app.Run(ctx, cfg, p, log, os.Stdout)
}
