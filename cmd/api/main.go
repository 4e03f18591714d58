// Package main is the entrypoint for the feedback board API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/feedboard/feedboard/internal/config"
	"github.com/feedboard/feedboard/internal/handler"
	"github.com/feedboard/feedboard/internal/metrics"
	"github.com/feedboard/feedboard/internal/server"
	"github.com/feedboard/feedboard/internal/service"
	"github.com/feedboard/feedboard/internal/store"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var recorder metrics.Recorder = metrics.NewNoop()
	var prom *metrics.PrometheusRecorder
	if cfg.MetricsEnabled {
		prom = metrics.NewPrometheus("feedboard")
		recorder = prom
	}

	st, err := store.Open(ctx, cfg.StoreOptions(), logger, recorder)
	if err != nil {
		logger.Error("failed to open store",
			slog.String("driver", cfg.StoreDriver),
			slog.String("error", sanitizeError(err, cfg.DatabaseURL, cfg.RedisURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	logger.Info("store ready", "driver", cfg.StoreDriver)

	feedbackService := service.NewFeedbackService(st, recorder)

	deps := routerDeps{
		index:    handler.New(),
		health:   handler.NewHealthHandler(map[string]handler.HealthChecker{"store": st}),
		feedback: handler.NewFeedbackHandler(feedbackService, logger),
		cfg:      cfg,
		logger:   logger,
	}
	if prom != nil {
		deps.metrics = handler.NewMetricsHandler(prom.Handler())
	}

	srv := server.New(newRouter(deps), server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	srv.OnShutdown("store", func(ctx context.Context) error {
		return st.Close()
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"store", cfg.StoreDriver,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h).With("service", "feedboard")
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
