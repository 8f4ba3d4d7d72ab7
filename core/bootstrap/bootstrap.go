package bootstrap

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	coreconfig "finbot/core/config"
	coredatabase "finbot/core/database"
	"finbot/core/dialog"
	"finbot/core/ledger"
	"finbot/core/logger"
)

// Result exposes the infrastructure initialized by the bootstrap pipeline.
// DB is nil when the snapshot backend is selected.
type Result struct {
	Store  ledger.Store
	Bundle dialog.Bundle
	DB     *sqlx.DB
}

// Run initializes the logger and builds the ledger store selected by
// configuration: the flat JSON snapshot, or Postgres with migrations applied.
func Run(cfg *coreconfig.Config) (*Result, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	if err := logger.Init(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Dir:    cfg.Logging.Dir,
		File:   cfg.Logging.File,
	}); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	bundle, err := dialog.BundleFor(cfg.Ledger.Locale)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	res := &Result{Bundle: bundle}

	switch cfg.Ledger.Backend {
	case coreconfig.BackendPostgres:
		db, err := coredatabase.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
		}
		if err := coredatabase.RunMigrations(cfg.Database); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
		}
		res.DB = db
		res.Store = ledger.NewPostgresStore(db)
	case coreconfig.BackendSnapshot:
		res.Store = ledger.NewSnapshotStore(cfg.Ledger.SnapshotPath)
	default:
		return nil, fmt.Errorf("bootstrap: unknown ledger backend %q", cfg.Ledger.Backend)
	}

	return res, nil
}

// Close releases resources acquired during bootstrap.
func (r *Result) Close() error {
	if r == nil || r.DB == nil {
		return nil
	}
	return r.DB.Close()
}
