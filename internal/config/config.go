package config

import (
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Port            string
	LogLevel        slog.Level
	GCloudProjectID string
	Redis           *RedisConfig
	Cache           *CacheConfig
	Planner         *PlannerConfig
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = os.Getenv("GCLOUD_PROJECT_ID")
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	plannerConfig, err := LoadPlannerConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:            port,
		LogLevel:        parseLogLevel(os.Getenv("LOG_LEVEL")),
		GCloudProjectID: projectID,
		Redis:           redisConfig,
		Cache:           LoadCacheConfig(),
		Planner:         plannerConfig,
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
