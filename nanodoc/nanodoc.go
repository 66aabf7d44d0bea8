// Package nanodoc is the entry point of the document store. Open prepares a
// data directory and returns a DB from which schema-bound models are made:
//
//	db, err := nanodoc.Open(nanodoc.DefaultConfig(), nil)
//	users, err := db.Model("users", schema.MustNew([]schema.Field{
//		schema.F("username", schema.Of(schema.String)),
//		schema.F("age", schema.Of(schema.Number)),
//	}))
package nanodoc

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/arthur-debert/nanodoc/nanodoc/ids"
	"github.com/arthur-debert/nanodoc/nanodoc/meta"
	"github.com/arthur-debert/nanodoc/nanodoc/model"
	"github.com/arthur-debert/nanodoc/nanodoc/schema"
	"github.com/arthur-debert/nanodoc/nanodoc/storage"
)

// DB ties a store to its metadata collaborators.
type DB struct {
	cfg      Config
	store    *storage.Store
	settings meta.Settings
	counters *meta.Counters
	gen      *ids.Generator
	logger   *slog.Logger
}

// Open bootstraps the data directory described by cfg. Extra storage
// options are applied after the ones derived from cfg.
func Open(cfg Config, logger *slog.Logger, opts ...storage.Option) (*DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	storeOpts := []storage.Option{storage.WithLogger(logger)}
	if cfg.MetaDir != "" {
		storeOpts = append(storeOpts, storage.WithMetaDir(cfg.MetaDir))
	}
	if cfg.AtomicWrites {
		storeOpts = append(storeOpts, storage.WithAtomicWrites())
	}
	store := storage.New(cfg.DataDir, append(storeOpts, opts...)...)

	if err := meta.Bootstrap(store); err != nil {
		return nil, fmt.Errorf("failed to bootstrap %s: %w", cfg.DataDir, err)
	}

	settings, err := meta.LoadSettings(store)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if cfg.DisableCounters {
		settings.CountInteractions = false
	}
	if cfg.TickInterval > 0 {
		settings.TickInterval = cfg.TickInterval
	}

	db := &DB{
		cfg:      cfg,
		store:    store,
		settings: settings,
		counters: meta.NewCounters(store, settings.CountInteractions, logger),
		gen:      ids.New(cfg.IDPrefix),
		logger:   logger,
	}
	logger.Debug("database opened",
		"data", store.Root(),
		"meta", store.MetaDir(),
		"count_interactions", settings.CountInteractions,
		"tick", settings.TickInterval)
	return db, nil
}

// Store returns the underlying collection store.
func (db *DB) Store() *storage.Store {
	return db.store
}

// Settings returns the effective settings.
func (db *DB) Settings() meta.Settings {
	return db.settings
}

// Counters returns the interaction counters.
func (db *DB) Counters() *meta.Counters {
	return db.counters
}

// Generator returns the identifier generator used by schemas built with
// NewSchema.
func (db *DB) Generator() *ids.Generator {
	return db.gen
}

// NewSchema builds a schema honouring the configured identifier prefix and
// required-field strictness. opts are applied last.
func (db *DB) NewSchema(fields []schema.Field, opts ...schema.Option) (*schema.Schema, error) {
	return schema.New(fields, db.schemaOptions(opts)...)
}

// LoadSchema reads a YAML schema file with the same defaults as NewSchema.
func (db *DB) LoadSchema(path string, opts ...schema.Option) (*schema.Schema, error) {
	return schema.LoadFile(path, db.schemaOptions(opts)...)
}

func (db *DB) schemaOptions(extra []schema.Option) []schema.Option {
	opts := []schema.Option{schema.WithGenerator(db.gen)}
	if db.cfg.StrictRequired {
		opts = append(opts, schema.WithStrictRequired())
	}
	return append(opts, extra...)
}

// Model binds s to the named collection. Every operation on the model is
// counted by the interaction counters.
func (db *DB) Model(name string, s *schema.Schema) (*model.Model, error) {
	return model.New(db.store, name, s,
		model.WithRecorder(db.counters),
		model.WithLogger(db.logger),
	)
}

// StartTicker runs the runtime ticker in a goroutine until ctx is done. The
// returned channel is closed once the ticker has stopped.
func (db *DB) StartTicker(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	t := meta.NewTicker(db.store, db.settings.TickInterval, db.logger)
	go func() {
		defer close(done)
		_ = t.Run(ctx)
	}()
	return done
}
