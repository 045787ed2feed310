package feedpulse

import (
	"log/slog"

	"github.com/feedpulse/feedpulse/domain/classify"
	"github.com/feedpulse/feedpulse/internal/config"
)

// databaseType identifies the database.
type databaseType int

const (
	databaseUnset databaseType = iota
	databaseSQLite
	databasePostgres
)

// clientConfig holds configuration for Client construction.
// Use newClientConfig() to create with defaults from internal/config.
type clientConfig struct {
	database        databaseType
	dbPath          string
	dbDSN           string
	dataDir         string
	modelDir        string
	labelConfigPath string
	logger          *slog.Logger
	apiKeys         []string
	modelNames      []string
	classifiers     []classify.Classifier
	openAI          config.OpenAIConfig
	scoring         config.ScoringConfig
	disableLexicon  bool
}

// newClientConfig creates a clientConfig with defaults from internal/config.
func newClientConfig() *clientConfig {
	return &clientConfig{
		dataDir: config.DefaultDataDir(),
		scoring: config.NewScoringConfig(true, config.DefaultScoringInterval, config.DefaultScoreLimit),
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite configures SQLite as the database.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.database = databaseSQLite
		c.dbPath = path
	}
}

// WithPostgres configures PostgreSQL as the database.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.database = databasePostgres
		c.dbDSN = dsn
	}
}

// WithDataDir sets the data directory for the database and model files.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) {
		c.dataDir = dir
	}
}

// WithModelDir sets where local classifier model files live.
// Defaults to <dataDir>/models.
func WithModelDir(dir string) Option {
	return func(c *clientConfig) {
		c.modelDir = dir
	}
}

// WithLabelConfig points at a YAML file mapping raw model labels to
// canonical sentiment labels.
func WithLabelConfig(path string) Option {
	return func(c *clientConfig) {
		c.labelConfigPath = path
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithAPIKeys sets API keys for write-protected HTTP endpoints.
func WithAPIKeys(keys []string) Option {
	return func(c *clientConfig) {
		c.apiKeys = keys
	}
}

// WithModels restricts the background scoring worker to the given model
// names. Empty means every registered model.
func WithModels(names []string) Option {
	return func(c *clientConfig) {
		c.modelNames = names
	}
}

// WithClassifier registers an additional classifier under its model name.
func WithClassifier(classifier classify.Classifier) Option {
	return func(c *clientConfig) {
		c.classifiers = append(c.classifiers, classifier)
	}
}

// WithOpenAI enables the remote OpenAI-backed classifier.
func WithOpenAI(cfg config.OpenAIConfig) Option {
	return func(c *clientConfig) {
		c.openAI = cfg
	}
}

// WithScoring configures the background scoring loop.
func WithScoring(cfg config.ScoringConfig) Option {
	return func(c *clientConfig) {
		c.scoring = cfg
	}
}

// WithoutLexicon disables the built-in wordlist classifier.
func WithoutLexicon() Option {
	return func(c *clientConfig) {
		c.disableLexicon = true
	}
}
