package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"bond-monitor/internal/interfaces"
	"bond-monitor/internal/logger"
	"bond-monitor/internal/permission"
	"bond-monitor/internal/report"
	"bond-monitor/internal/report/reportobs"
	"bond-monitor/internal/store"
	"bond-monitor/internal/trace"
)

// initializeSystem initializes environment, logger and tracer
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context) (*store.Config, error) {
	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// initializeReporter wires the pipeline with observability middleware
func initializeReporter(cfg *store.Config) interfaces.Reporter {
	graphs := permission.FileSource{
		PermissionsPath: cfg.Data.Permissions,
		TeamsPath:       cfg.Data.Teams,
	}
	return reportobs.Wrap(report.New(cfg.Data.TradeFile, graphs))
}
