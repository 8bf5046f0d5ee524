// Package logger configures the process-wide slog logger from the logging
// section of the config and hands out per-component child loggers.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/labstack/gommon/log"

	"laptops/internal/config"
)

// Components tagged on every line written through WithComponent.
const (
	ComponentLoader = "loader"
	ComponentBench  = "bench"
	ComponentServer = "server"
)

// Setup installs the default logger writing to stdout.
func Setup(cfg config.LoggingConfig) {
	slog.SetDefault(New(os.Stdout, cfg))
}

// New builds a logger writing to w; format "json" selects the JSON handler,
// anything else the text handler.
func New(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: Level(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// WithComponent derives a child of the current default logger. It must be
// called after Setup for the child to pick up the configured handler.
func WithComponent(component string) *slog.Logger {
	return slog.Default().With("component", component)
}

// Level maps a config level name to slog; unknown names mean info.
func Level(name string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// EchoLevel maps the same names onto echo's gommon logger so the
// framework's own output follows the configured level.
func EchoLevel(name string) log.Lvl {
	switch Level(name) {
	case slog.LevelDebug:
		return log.DEBUG
	case slog.LevelWarn:
		return log.WARN
	case slog.LevelError:
		return log.ERROR
	default:
		return log.INFO
	}
}
