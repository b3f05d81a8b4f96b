// Package app wires configuration to a dataset source.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/mr1hm/go-quake-dashboard/internal/config"
	"github.com/mr1hm/go-quake-dashboard/internal/ingestion"
	"github.com/mr1hm/go-quake-dashboard/internal/observability"
	"github.com/mr1hm/go-quake-dashboard/internal/repository"
)

// NewSource builds the configured dataset source. The returned close
// function releases the snapshot database for the sqlite source.
func NewSource(cfg config.DatasetConfig) (ingestion.Source, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Source {
	case "http":
		return ingestion.NewHTTPSource(cfg.URL, cfg.Timeout), noop, nil
	case "file":
		return ingestion.NewFileSource(cfg.Path), noop, nil
	case "sqlite":
		// Opening a missing file would create an empty snapshot.
		if _, err := os.Stat(cfg.Path); err != nil {
			return nil, nil, &ingestion.DataUnavailableError{Source: "sqlite:" + cfg.Path, Err: err}
		}
		db, err := repository.NewSQLiteDB(cfg.Path)
		if err != nil {
			return nil, nil, &ingestion.DataUnavailableError{Source: "sqlite:" + cfg.Path, Err: err}
		}
		return db, db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown dataset source: %s", cfg.Source)
	}
}

// LoadDataset performs the session's single dataset load.
func LoadDataset(ctx context.Context, cfg config.DatasetConfig, metrics *observability.Metrics) (*ingestion.Dataset, error) {
	src, closeSrc, err := NewSource(cfg)
	if err != nil {
		return nil, err
	}
	defer closeSrc()

	return ingestion.NewLoader(src, ingestion.WithMetrics(metrics)).Load(ctx)
}
