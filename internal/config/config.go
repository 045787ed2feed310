// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost               = "0.0.0.0"
	DefaultPort               = 8080
	DefaultLogLevel           = "INFO"
	DefaultModelName          = "cardiffnlp/twitter-roberta-base-sentiment"
	DefaultScoreLimit         = 100
	DefaultListLimit          = 50
	DefaultMaxListLimit       = 500
	DefaultScoringInterval    = 30 * time.Second
	DefaultClassifierTimeout  = 60 * time.Second
	DefaultClassifierRetries  = 3
	DefaultClassifierMaxChars = 512
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// OpenAIConfig configures the optional remote classifier endpoint.
type OpenAIConfig struct {
	apiKey  string
	baseURL string
	model   string
}

// NewOpenAIConfig creates an OpenAIConfig.
func NewOpenAIConfig(apiKey, baseURL, model string) OpenAIConfig {
	return OpenAIConfig{apiKey: apiKey, baseURL: baseURL, model: model}
}

// APIKey returns the API key, empty when the remote classifier is disabled.
func (c OpenAIConfig) APIKey() string { return c.apiKey }

// BaseURL returns the endpoint base URL, empty for the provider default.
func (c OpenAIConfig) BaseURL() string { return c.baseURL }

// Model returns the chat model identifier.
func (c OpenAIConfig) Model() string { return c.model }

// Enabled reports whether the remote classifier is configured.
func (c OpenAIConfig) Enabled() bool { return c.apiKey != "" }

// ScoringConfig configures the background scoring loop.
type ScoringConfig struct {
	enabled  bool
	interval time.Duration
	limit    int
}

// NewScoringConfig creates a ScoringConfig.
func NewScoringConfig(enabled bool, interval time.Duration, limit int) ScoringConfig {
	if interval <= 0 {
		interval = DefaultScoringInterval
	}
	if limit <= 0 {
		limit = DefaultScoreLimit
	}
	return ScoringConfig{enabled: enabled, interval: interval, limit: limit}
}

// Enabled reports whether the background scoring loop runs.
func (c ScoringConfig) Enabled() bool { return c.enabled }

// Interval returns the delay between background scoring passes.
func (c ScoringConfig) Interval() time.Duration { return c.interval }

// Limit returns the per-pass candidate limit for background passes.
func (c ScoringConfig) Limit() int { return c.limit }

// AppConfig is the immutable application configuration assembled from
// defaults, the optional .env file, environment variables, and CLI flags.
type AppConfig struct {
	host            string
	port            int
	dataDir         string
	dbURL           string
	logLevel        string
	logFormat       LogFormat
	apiKeys         []string
	modelDir        string
	modelNames      []string
	labelConfigPath string
	openAI          OpenAIConfig
	scoring         ScoringConfig
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the host:port listen address.
func (c AppConfig) Addr() string { return fmt.Sprintf("%s:%d", c.host, c.port) }

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database URL, falling back to a SQLite file in the
// data directory.
func (c AppConfig) DBURL() string {
	if c.dbURL != "" {
		return c.dbURL
	}
	return "sqlite:///" + filepath.Join(c.dataDir, "feedpulse.db")
}

// LogLevel returns the configured log verbosity.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the configured log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// APIKeys returns the keys accepted for mutating endpoints, empty when
// write protection is disabled.
func (c AppConfig) APIKeys() []string {
	keys := make([]string, len(c.apiKeys))
	copy(keys, c.apiKeys)
	return keys
}

// ModelDir returns the directory holding local classifier model files.
func (c AppConfig) ModelDir() string {
	if c.modelDir != "" {
		return c.modelDir
	}
	return filepath.Join(c.dataDir, "models")
}

// ModelNames returns the model names the background loop scores with.
func (c AppConfig) ModelNames() []string {
	names := make([]string, len(c.modelNames))
	copy(names, c.modelNames)
	return names
}

// LabelConfigPath returns the path to the optional YAML label-map file.
func (c AppConfig) LabelConfigPath() string { return c.labelConfigPath }

// OpenAI returns the remote classifier endpoint configuration.
func (c AppConfig) OpenAI() OpenAIConfig { return c.openAI }

// Scoring returns the background scoring loop configuration.
func (c AppConfig) Scoring() ScoringConfig { return c.scoring }

// WithAddr returns a copy with host and/or port overridden. Zero values
// leave the existing setting untouched (CLI flags that were not passed).
func (c AppConfig) WithAddr(host string, port int) AppConfig {
	if host != "" {
		c.host = host
	}
	if port != 0 {
		c.port = port
	}
	return c
}

// EnsureDataDir creates the data directory if it does not exist.
func (c AppConfig) EnsureDataDir() error {
	return os.MkdirAll(c.dataDir, 0o755)
}

// DefaultDataDir returns the default data directory (~/.feedpulse, or
// .feedpulse in the working directory when the home directory is unknown).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".feedpulse"
	}
	return filepath.Join(home, ".feedpulse")
}

// PrepareDataDir resolves and creates a data directory. An empty dir falls
// back to DefaultDataDir.
func PrepareDataDir(dir string) (string, error) {
	if dir == "" {
		dir = DefaultDataDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory %s: %w", dir, err)
	}
	return dir, nil
}

// DefaultLogger returns a plain-text slog logger at Info level, used before
// configuration has been loaded.
func DefaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// splitList splits a comma-separated list, trimming blanks.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
