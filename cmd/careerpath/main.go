package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"careerpath/internal/cli"
	"careerpath/internal/config"
	"careerpath/internal/errors"
)

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	// Interrupt signals cancel the command context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		fatal("Failed to load configuration: %v", err)
	}

	logger, err := errors.New(cfg.App.LogLevel)
	if err != nil {
		fatal("Failed to initialize logger: %v", err)
	}

	logger.Info("Starting careerpath application",
		"version", cli.Version,
		"log_level", cfg.App.LogLevel,
		"ai_provider", cfg.AI.Provider)

	if err := cli.Execute(ctx, cfg, logger); err != nil {
		logger.LogError(err, "Application execution failed")
		os.Exit(1)
	}
}
