// Package logging builds the zap logger shared by the CLI, TUI and server.
package logging

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/studycentre/internal/config"
)

// New returns a logger for env with the level and output from cfg.
// Development uses zap's console encoder; anything else logs JSON.
func New(env string, cfg config.LogConfig) (*zap.Logger, error) {
	var zc zap.Config
	if env == "development" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}

	if cfg.Level != "" {
		lvl, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		zc.Level = lvl
	}

	if cfg.File != "" {
		zc.OutputPaths = []string{cfg.File}
		zc.ErrorOutputPaths = []string{cfg.File}
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.With(zap.String("app", "studycentre")), nil
}

// ForTUI returns a logger that never writes to the terminal. Without a log
// file configured it discards everything.
func ForTUI(env string, cfg config.LogConfig) (*zap.Logger, error) {
	if cfg.File == "" {
		return zap.NewNop(), nil
	}
	return New(env, cfg)
}
