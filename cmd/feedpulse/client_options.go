package main

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/feedpulse/feedpulse"
	"github.com/feedpulse/feedpulse/internal/config"
)

// clientOptions maps loaded configuration to feedpulse client options.
func clientOptions(cfg config.AppConfig, logger *slog.Logger) []feedpulse.Option {
	opts := []feedpulse.Option{
		feedpulse.WithDataDir(cfg.DataDir()),
		feedpulse.WithModelDir(cfg.ModelDir()),
		feedpulse.WithLogger(logger),
		feedpulse.WithScoring(cfg.Scoring()),
	}

	dbURL := cfg.DBURL()
	if isSQLite(dbURL) {
		opts = append(opts, feedpulse.WithSQLite(sqlitePath(dbURL, cfg.DataDir())))
	} else {
		opts = append(opts, feedpulse.WithPostgres(dbURL))
	}

	if path := cfg.LabelConfigPath(); path != "" {
		opts = append(opts, feedpulse.WithLabelConfig(path))
	}
	if keys := cfg.APIKeys(); len(keys) > 0 {
		opts = append(opts, feedpulse.WithAPIKeys(keys))
	}
	if cfg.OpenAI().Enabled() {
		opts = append(opts, feedpulse.WithOpenAI(cfg.OpenAI()))
	}
	if names := cfg.ModelNames(); len(names) > 0 {
		opts = append(opts, feedpulse.WithModels(names))
	}

	return opts
}

// isSQLite checks if the database URL is for SQLite.
func isSQLite(url string) bool {
	return strings.HasPrefix(url, "sqlite:")
}

// sqlitePath extracts the file path from a sqlite URL.
func sqlitePath(url, dataDir string) string {
	path := strings.TrimPrefix(url, "sqlite://")
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		path = filepath.Join(dataDir, "feedpulse.db")
	}
	return path
}
