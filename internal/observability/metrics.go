package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for dataset loading and queries.
type Metrics struct {
	RowsLoaded   prometheus.Gauge
	RowsSkipped  prometheus.Gauge
	LoadFailures prometheus.Counter
	LoadDuration prometheus.Histogram

	Queries       *prometheus.CounterVec   // labels: kind={stats,events,yearly,top,histogram,options,dashboard}
	QueryDuration *prometheus.HistogramVec // labels: kind
}

// NewMetrics creates the collectors and registers them with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RowsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_dashboard",
			Name:      "dataset_rows",
			Help:      "Events held in the loaded table.",
		}),
		RowsSkipped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_dashboard",
			Name:      "dataset_rows_skipped",
			Help:      "Malformed rows dropped during the last load.",
		}),
		LoadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "dataset_load_failures_total",
			Help:      "Dataset loads that ended in DataUnavailableError.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_dashboard",
			Name:      "dataset_load_duration_seconds",
			Help:      "Time to fetch and parse the dataset.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "queries_total",
			Help:      "Queries answered by kind.",
		}, []string{"kind"}),
		QueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quake_dashboard",
			Name:      "query_duration_seconds",
			Help:      "Query evaluation time by kind.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"kind"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.RowsLoaded,
			m.RowsSkipped,
			m.LoadFailures,
			m.LoadDuration,
			m.Queries,
			m.QueryDuration,
		)
	}

	return m
}

// ObserveQuery records one query of the given kind. Use with defer:
//
//	defer m.ObserveQuery("stats", time.Now())
func (m *Metrics) ObserveQuery(kind string, start time.Time) {
	if m == nil {
		return
	}
	m.Queries.WithLabelValues(kind).Inc()
	m.QueryDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
