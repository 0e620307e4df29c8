package main

import (
	"fmt"

	log "github.com/charmbracelet/log"

	"github.com/openbank/ledger/app"
	"github.com/openbank/ledger/infra"
	"github.com/openbank/ledger/infra/events"
	infrarepo "github.com/openbank/ledger/infra/repository"
	"github.com/openbank/ledger/pkg/config"
	"github.com/openbank/ledger/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	logger := logging.New(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infra.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Kafka.Brokers != "" {
		kp := events.NewKafkaPublisher(cfg.Kafka)
		defer kp.Close() //nolint:errcheck
		publisher = kp
		logger.Info("transfer event publishing enabled", "topic", cfg.Kafka.Topic)
	}

	fiberApp := app.New(app.Deps{
		Uow:       infrarepo.NewUoW(db),
		Publisher: publisher,
		Config:    cfg,
		Logger:    logger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr)
	return fiberApp.Listen(addr)
}
