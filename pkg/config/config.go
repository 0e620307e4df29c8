// Package config holds the environment-driven application configuration.
package config

import "time"

// DB configures the Postgres connection.
type DB struct {
	Url string `envconfig:"URL"`
}

// Jwt configures token signing.
type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

// Auth groups authentication settings.
type Auth struct {
	Jwt *Jwt `envconfig:"JWT"`
}

// RateLimit configures the HTTP limiter middleware.
type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Kafka configures the transfer event publisher. Publishing is disabled
// when Brokers is empty.
type Kafka struct {
	Brokers string `envconfig:"BROKERS"`
	Topic   string `envconfig:"TOPIC" default:"ledger.transfers"`
}

// Log configures the slog handler.
type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[ledger]"`
}

// Server configures the HTTP listener.
type Server struct {
	Host string `envconfig:"HOST" default:"localhost"`
	Port int    `envconfig:"PORT" default:"3000"`
}

// App is the root configuration.
type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Auth      *Auth      `envconfig:"AUTH"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Kafka     *Kafka     `envconfig:"KAFKA"`
}
