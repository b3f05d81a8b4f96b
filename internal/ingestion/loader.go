package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/go-quake-dashboard/internal/models"
	"github.com/mr1hm/go-quake-dashboard/internal/observability"
)

// Dataset is a loaded event table plus where and when it came from.
type Dataset struct {
	Table    *models.EventTable
	Source   string
	Skipped  int
	LoadedAt time.Time
}

// Loader performs the one-shot dataset load for a session.
type Loader struct {
	source  Source
	metrics *observability.Metrics
	clock   clockwork.Clock
}

type LoaderOption func(*Loader)

// WithClock replaces the real clock, mainly for tests.
func WithClock(c clockwork.Clock) LoaderOption {
	return func(l *Loader) {
		l.clock = c
	}
}

// WithMetrics records load outcomes. Metrics are optional.
func WithMetrics(m *observability.Metrics) LoaderOption {
	return func(l *Loader) {
		l.metrics = m
	}
}

func NewLoader(source Source, opts ...LoaderOption) *Loader {
	l := &Loader{
		source: source,
		clock:  clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches and parses the dataset once. Any failure is returned as a
// *DataUnavailableError; there is no retry.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	start := l.clock.Now()
	slog.Info("loading dataset", "source", l.source.Name())

	events, skipped, err := l.source.Events(ctx)
	if err != nil {
		if l.metrics != nil {
			l.metrics.LoadFailures.Inc()
		}
		slog.Error("dataset load failed", "source", l.source.Name(), "error", err)

		var due *DataUnavailableError
		if errors.As(err, &due) {
			return nil, err
		}
		return nil, &DataUnavailableError{Source: l.source.Name(), Err: err}
	}

	ds := &Dataset{
		Table:    models.NewEventTable(events),
		Source:   l.source.Name(),
		Skipped:  skipped,
		LoadedAt: l.clock.Now(),
	}

	elapsed := ds.LoadedAt.Sub(start)
	if l.metrics != nil {
		l.metrics.RowsLoaded.Set(float64(ds.Table.Len()))
		l.metrics.RowsSkipped.Set(float64(skipped))
		l.metrics.LoadDuration.Observe(elapsed.Seconds())
	}

	slog.Info("dataset loaded", "source", ds.Source, "rows", ds.Table.Len(), "skipped", skipped, "elapsed", elapsed)
	return ds, nil
}
