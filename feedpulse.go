// Package feedpulse provides a library for ingesting short text records and
// scoring them for sentiment.
//
// Feedpulse stores records and an append-only prediction log in SQLite or
// PostgreSQL, runs incremental scoring passes with pluggable classifiers,
// and derives latest-sentiment views and aggregates from the log.
//
// Basic usage:
//
//	client, err := feedpulse.New(
//	    feedpulse.WithSQLite(".feedpulse/data.db"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Pull some records in
//	result, err := client.Ingest.Run(ctx, service.IngestParams{
//	    Source: "synthetic",
//	    Topic:  "golang",
//	})
//
//	// Score everything the model has not seen yet
//	report, err := client.Scoring.Run(ctx, service.ScoreParams{})
//
//	// Read the current sentiment per record
//	rows, err := client.Analytics.Latest(ctx, service.LatestParams{Topic: "golang"})
package feedpulse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/feedpulse/feedpulse/application/service"
	"github.com/feedpulse/feedpulse/domain/classify"
	"github.com/feedpulse/feedpulse/infrastructure/classifier"
	"github.com/feedpulse/feedpulse/infrastructure/ingest"
	"github.com/feedpulse/feedpulse/infrastructure/persistence"
	"github.com/feedpulse/feedpulse/internal/config"
	"github.com/feedpulse/feedpulse/internal/database"
)

// ErrNoDatabase indicates New was called without a database option.
var ErrNoDatabase = errors.New("feedpulse: no database configured, use WithSQLite or WithPostgres")

// Client is the main entry point for the feedpulse library.
//
// Access resources via struct fields:
//
//	client.Ingest.Run(ctx, params)
//	client.Scoring.Run(ctx, params)
//	client.Analytics.Latest(ctx, params)
type Client struct {
	// Public resource fields (direct service access)
	Records   *service.Records
	Ingest    *service.Ingest
	Scoring   *service.Scoring
	Analytics *service.Analytics

	db       database.Database
	registry *classify.Registry
	worker   *service.Worker

	logger  *slog.Logger
	dataDir string
	apiKeys []string
	closed  atomic.Bool
}

// New creates a new Client with the given options.
// The background scoring worker does not run until StartWorker is called.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.database == databaseUnset {
		return nil, ErrNoDatabase
	}

	logger := cfg.logger
	if logger == nil {
		logger = config.DefaultLogger()
	}

	dataDir, err := config.PrepareDataDir(cfg.dataDir)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	dbURL, err := buildDatabaseURL(cfg)
	if err != nil {
		return nil, fmt.Errorf("build database url: %w", err)
	}

	db, err := database.NewDatabase(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}

	recordStore := persistence.NewRecordStore(db)
	predictionStore := persistence.NewPredictionStore(db)

	registry, err := buildRegistry(cfg, dataDir, logger)
	if err != nil {
		errClose := db.Close()
		return nil, errors.Join(err, errClose)
	}

	ingestSvc := service.NewIngest(recordStore, logger)
	ingestSvc.RegisterSource(ingest.NewSynthetic())
	ingestSvc.RegisterSource(ingest.NewDataset())

	scoringSvc := service.NewScoring(recordStore, predictionStore, registry, logger)

	client := &Client{
		Records:   service.NewRecords(recordStore, logger),
		Ingest:    ingestSvc,
		Scoring:   scoringSvc,
		Analytics: service.NewAnalytics(recordStore, predictionStore, logger),
		db:        db,
		registry:  registry,
		worker:    service.NewWorker(cfg.scoring, cfg.modelNames, scoringSvc, logger),
		logger:    logger,
		dataDir:   dataDir,
		apiKeys:   cfg.apiKeys,
	}
	return client, nil
}

// buildDatabaseURL maps the configured database option to a URL.
func buildDatabaseURL(cfg *clientConfig) (string, error) {
	switch cfg.database {
	case databaseSQLite:
		if cfg.dbPath == "" {
			return "", errors.New("sqlite path is empty")
		}
		return "sqlite://" + cfg.dbPath, nil
	case databasePostgres:
		if cfg.dbDSN == "" {
			return "", errors.New("postgres dsn is empty")
		}
		return cfg.dbDSN, nil
	default:
		return "", ErrNoDatabase
	}
}

// buildRegistry assembles the classifier registry: the local transformer
// model, the wordlist fallback, the optional remote classifier, and any
// caller-supplied classifiers.
func buildRegistry(cfg *clientConfig, dataDir string, logger *slog.Logger) (*classify.Registry, error) {
	registry := classify.NewRegistry()

	modelDir := cfg.modelDir
	if modelDir == "" {
		modelDir = filepath.Join(dataDir, "models")
	}

	labelConfig, err := classify.LoadLabelConfig(cfg.labelConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load label config: %w", err)
	}

	hugotOpts := []classifier.HugotOption{}
	if overrides := labelConfig.ForModel(classifier.DefaultHugotModel); overrides != nil {
		hugotOpts = append(hugotOpts, classifier.WithHugotLabels(overrides))
	}
	hugot := classifier.NewHugot(modelDir, hugotOpts...)
	registry.Register(hugot)
	if !hugot.Available() {
		logger.Info("local model files not found, local scoring passes will report the model unavailable",
			slog.String("model_dir", modelDir))
	}

	if !cfg.disableLexicon {
		registry.Register(classifier.NewLexicon())
	}

	if cfg.openAI.Enabled() {
		registry.Register(classifier.NewOpenAI(cfg.openAI.APIKey(), cfg.openAI.BaseURL(), cfg.openAI.Model()))
	}

	for _, c := range cfg.classifiers {
		registry.Register(c)
	}
	return registry, nil
}

// StartWorker begins background scoring. No-op when disabled by config.
func (c *Client) StartWorker(ctx context.Context) {
	c.worker.Start(ctx)
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// DataDir returns the resolved data directory.
func (c *Client) DataDir() string {
	return c.dataDir
}

// APIKeys returns the configured API keys for write protection.
func (c *Client) APIKeys() []string {
	return c.apiKeys
}

// Registry returns the classifier registry.
func (c *Client) Registry() *classify.Registry {
	return c.registry
}

// Ping verifies database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if c.closed.Load() {
		return service.ErrClientClosed
	}
	return c.db.Ping(ctx)
}

// Close stops the background worker and closes the database. Safe to call
// more than once.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.worker.Stop()
	return c.db.Close()
}
