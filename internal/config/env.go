package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration. Field names map to
// environment variables directly; nested structs use underscore delimiters
// (e.g. OPENAI_API_KEY, SCORING_INTERVAL_SECONDS).
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// DataDir is the data directory path.
	// Env: DATA_DIR
	// Default: ~/.feedpulse
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: DB_URL
	// Default: sqlite:///{data_dir}/feedpulse.db
	DBURL string `envconfig:"DB_URL"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// APIKeys is a comma-separated list of valid API keys. When set,
	// mutating endpoints require one of them in the X-API-KEY header.
	// Env: API_KEYS
	APIKeys string `envconfig:"API_KEYS"`

	// ModelDir is the directory holding local classifier model files.
	// Env: MODEL_DIR
	// Default: {data_dir}/models
	ModelDir string `envconfig:"MODEL_DIR"`

	// Models is a comma-separated list of model names the background
	// scoring loop drives. Env: MODELS
	// Default: cardiffnlp/twitter-roberta-base-sentiment
	Models string `envconfig:"MODELS" default:"cardiffnlp/twitter-roberta-base-sentiment"`

	// LabelConfigPath points to an optional YAML file with per-model raw
	// label translation tables. Env: LABEL_CONFIG
	LabelConfigPath string `envconfig:"LABEL_CONFIG"`

	// OpenAI configures the optional remote classifier.
	OpenAI OpenAIEnv `envconfig:"OPENAI"`

	// Scoring configures the background scoring loop.
	Scoring ScoringEnv `envconfig:"SCORING"`
}

// OpenAIEnv configures the remote classifier endpoint.
type OpenAIEnv struct {
	// Env: OPENAI_API_KEY
	APIKey string `envconfig:"API_KEY"`
	// Env: OPENAI_BASE_URL
	BaseURL string `envconfig:"BASE_URL"`
	// Env: OPENAI_MODEL (default: gpt-4o-mini)
	Model string `envconfig:"MODEL" default:"gpt-4o-mini"`
}

// ScoringEnv configures the background scoring loop.
type ScoringEnv struct {
	// Env: SCORING_ENABLED (default: true)
	Enabled bool `envconfig:"ENABLED" default:"true"`
	// Env: SCORING_INTERVAL_SECONDS (default: 30)
	IntervalSeconds float64 `envconfig:"INTERVAL_SECONDS" default:"30"`
	// Env: SCORING_LIMIT (default: 100)
	Limit int `envconfig:"LIMIT" default:"100"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// Normalize cleans up loaded values (case, blanks).
func (e EnvConfig) Normalize() EnvConfig {
	e.LogLevel = strings.ToUpper(strings.TrimSpace(e.LogLevel))
	e.LogFormat = strings.ToLower(strings.TrimSpace(e.LogFormat))
	return e
}

// ToAppConfig converts the raw environment configuration into the immutable
// AppConfig used by the rest of the application.
func (e EnvConfig) ToAppConfig() AppConfig {
	dataDir := e.DataDir
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}

	format := LogFormatPretty
	if e.LogFormat == string(LogFormatJSON) {
		format = LogFormatJSON
	}

	return AppConfig{
		host:            e.Host,
		port:            e.Port,
		dataDir:         dataDir,
		dbURL:           e.DBURL,
		logLevel:        e.LogLevel,
		logFormat:       format,
		apiKeys:         splitList(e.APIKeys),
		modelDir:        e.ModelDir,
		modelNames:      splitList(e.Models),
		labelConfigPath: e.LabelConfigPath,
		openAI:          NewOpenAIConfig(e.OpenAI.APIKey, e.OpenAI.BaseURL, e.OpenAI.Model),
		scoring: NewScoringConfig(
			e.Scoring.Enabled,
			time.Duration(e.Scoring.IntervalSeconds*float64(time.Second)),
			e.Scoring.Limit,
		),
	}
}
