package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/use-agent/sitelens/analyzer"
	"github.com/use-agent/sitelens/api"
	"github.com/use-agent/sitelens/config"
	"github.com/use-agent/sitelens/engine"
	"github.com/use-agent/sitelens/screenshot"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	// A .env file is optional; real environment variables take precedence.
	envErr := godotenv.Load()
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	if envErr != nil && !os.IsNotExist(envErr) {
		slog.Warn("could not read .env file", "error", envErr)
	}
	slog.Info("sitelens starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"maxPages", cfg.Discovery.MaxPages,
	)
	if cfg.Screenshot.AccessKey == "" {
		slog.Warn("SITELENS_SCREENSHOT_ACCESS_KEY is not set; screenshot urls will not render")
	}

	// ── 3. Build the retrieval chain ────────────────────────────────
	engines := engine.NewDefaultEngines(cfg.Fetch)
	dispatcher := engine.NewDispatcher(engines, cfg.Fetch.MinContentLength)
	slog.Info("fetch chain ready", "engines", len(engines), "timeout", cfg.Fetch.Timeout)

	// ── 4. Build the analyzer ───────────────────────────────────────
	an := analyzer.New(dispatcher, screenshot.New(cfg.Screenshot),
		analyzer.WithMaxPages(cfg.Discovery.MaxPages),
	)

	// ── 5. Setup router ─────────────────────────────────────────────
	startTime := time.Now()
	router := api.NewRouter(an, cfg, startTime)

	// ── 6. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 7. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// In-flight analyses may each wait on three fetch timeouts.
	ctx, cancel := context.WithTimeout(context.Background(), 3*cfg.Fetch.Timeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("sitelens stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
