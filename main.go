package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"pickup/internal/config"
	"pickup/internal/models"
	"pickup/internal/repositories"
	"pickup/internal/server"
	"pickup/internal/services"
	"pickup/pkg/rabbitmq"

	"github.com/spf13/viper"
	"github.com/streadway/amqp"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(viper.New())
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel, os.Stdout)
	slog.SetDefault(logger)

	// --- Store ---
	ctx := context.Background()
	store, closeStore, err := repositories.OpenStore(ctx, cfg.Store())
	if err != nil {
		logger.Error("failed to open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			logger.Error("failed to close store", "error", err)
		}
	}()
	logger.Info("store ready", "driver", cfg.StoreDriver)

	// --- RabbitMQ (optional) ---
	var publisher services.ActivityPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue}, logger)
		if err != nil {
			logger.Warn("activity notifications disabled", "error", err)
		} else {
			defer mqClient.Close()
			publisher = mqClient
			if err := mqClient.Consume(activityLogger(logger)); err != nil {
				logger.Warn("failed to start activity consumer", "error", err)
			}
		}
	}

	// --- Services and HTTP ---
	app := server.NewApp(cfg, server.Dependencies{
		Store:  store,
		Events: services.NewEventService(store, publisher, logger),
		Users:  services.NewUserService(store, publisher, logger),
		Logger: logger,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("starting server", "addr", cfg.AppPort)
		if err := app.Listen(cfg.AppPort); err != nil {
			logger.Error("server failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	logger.Info("shutting down server", "timeout", cfg.ShutdownTimeout)
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		logger.Error("error during shutdown", "error", err)
	}
	logger.Info("server gracefully stopped")
}

// newLogger builds the process logger. Unknown levels fall back to info.
func newLogger(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// activityLogger handles activity notifications by logging them.
func activityLogger(logger *slog.Logger) func(amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var activity models.Activity
		if err := json.Unmarshal(msg.Body, &activity); err != nil {
			return err
		}
		logger.Info("activity", "type", activity.Type, "event_id", activity.EventID, "user_id", activity.UserID,
			"occurred_at", activity.OccurredAt)
		return nil
	}
}
