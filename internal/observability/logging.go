// Package observability builds the structured loggers shared by the command-line
// tools and the codec drivers.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/wodi/internal/config"
)

// NewLogger creates a structured logger named after the running tool, without
// stack traces. opts are applied when the logger is built.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig, name string, opts ...zap.Option) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.DisableStacktrace = true

	logger, err := zapCfg.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	if name != "" {
		logger = logger.Named(name)
	}
	return logger, nil
}

// CodecLogger derives the logger handed to the datfile drivers. Every entry,
// including decode warnings, carries the codec settings it was produced under.
//
// Precondition: base must be non-nil.
func CodecLogger(base *zap.Logger, c config.CodecConfig) *zap.Logger {
	return base.Named("codec").With(
		zap.String("target_version", c.TargetVersion),
		zap.String("encoding", c.Encoding),
		zap.String("unknown_commands", c.UnknownCommands),
	)
}
