package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bond-monitor/internal/logger"
	"bond-monitor/internal/requestlog"
	"bond-monitor/internal/server"
	"bond-monitor/internal/trace"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	must(initializeSystem())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfig(ctx)
	must(err)

	if v := os.Getenv("MONITOR_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		if err := requestlog.CompressOlder(n); err != nil {
			logger.Warn(ctx, "Failed to compress old request logs", "error", err)
		}
	}

	reporter := initializeReporter(cfg)
	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: server.New(reporter).Router(),
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info(ctx, "Monitor started", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorWithErr(ctx, "Server stopped", err)
			cancel()
		}
	}()

	select {
	case <-sigc:
		logger.Info(ctx, "Shutting down...")
	case <-ctx.Done():
	}

	if p, err := requestlog.SummarizeToday(); err == nil && p != "" {
		logger.Info(ctx, "Request summary written", "path", p)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithErr(shutdownCtx, "Graceful shutdown failed", err)
	}
	_ = trace.Shutdown(shutdownCtx)
	_ = logger.Shutdown(shutdownCtx)
}
