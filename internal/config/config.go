// Package config loads the service configuration from defaults, an optional config.yaml and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pickup/internal/repositories"

	"github.com/spf13/viper"
)

// Config holds the settings the service reads at startup.
type Config struct {
	AppPort          string
	LogLevel         string
	StoreDriver      string
	DatabaseDSN      string
	MongoURI         string
	MongoDatabase    string
	RabbitMQURL      string // empty disables activity publishing
	RabbitMQQueue    string
	CORSAllowOrigins string
	ShutdownTimeout  time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":5000")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", repositories.DriverPostgres)
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=pickup port=5432 sslmode=disable")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017/?replicaSet=rs0")
	v.SetDefault("MONGO_DATABASE", "pickup")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "activity_queue")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
}

// Load reads the configuration into v. Environment variables override config.yaml, which overrides defaults.
func Load(v *viper.Viper) (Config, error) {
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	v.AutomaticEnv()

	cfg := Config{
		AppPort:          v.GetString("APP_PORT"),
		LogLevel:         strings.ToLower(v.GetString("LOG_LEVEL")),
		StoreDriver:      strings.ToLower(v.GetString("STORE_DRIVER")),
		DatabaseDSN:      v.GetString("DATABASE_DSN"),
		MongoURI:         v.GetString("MONGO_URI"),
		MongoDatabase:    v.GetString("MONGO_DATABASE"),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		RabbitMQQueue:    v.GetString("RABBITMQ_QUEUE"),
		CORSAllowOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		ShutdownTimeout:  v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	switch cfg.StoreDriver {
	case repositories.DriverPostgres, repositories.DriverSQLite, repositories.DriverMongo, repositories.DriverMemory:
	default:
		return Config{}, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", cfg.ShutdownTimeout)
	}
	return cfg, nil
}

// Store returns the settings OpenStore needs.
func (c Config) Store() repositories.StoreConfig {
	return repositories.StoreConfig{
		Driver:        c.StoreDriver,
		DSN:           c.DatabaseDSN,
		MongoURI:      c.MongoURI,
		MongoDatabase: c.MongoDatabase,
	}
}
