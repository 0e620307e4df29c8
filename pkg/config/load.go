package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads the optional .env file and populates App from the environment.
func Load() (*App, error) {
	logger := slog.Default()
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, using system environment variables")
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	logger.Info("app config loaded",
		"env", cfg.Env,
		"db", maskValue(cfg.DB.Url),
		"jwt_expiry", cfg.Auth.Jwt.Expiry,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"kafka_brokers", cfg.Kafka.Brokers,
	)
	return &cfg, nil
}

func maskValue(v string) string {
	if len(v) <= 6 {
		return "****"
	}
	return v[:2] + "****" + v[len(v)-4:]
}
