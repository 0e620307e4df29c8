// Package logging builds the process-wide slog logger on top of
// charmbracelet/log.
package logging

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/log"

	"github.com/openbank/ledger/pkg/config"
)

// New creates an slog.Logger per the Log config and installs it as the
// default.
func New(cfg *config.Log) *slog.Logger {
	formatters := map[string]log.Formatter{
		"json": log.JSONFormatter,
		"text": log.TextFormatter,
	}
	formatter := log.TextFormatter
	if f, ok := formatters[cfg.Format]; ok {
		formatter = f
	}

	handler := log.NewWithOptions(os.Stdout, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
