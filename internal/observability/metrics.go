package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus collectors for render cycles and fetches.
type Metrics struct {
	CyclesStarted    prometheus.Counter
	CyclesCompleted  prometheus.Counter
	CyclesSuperseded prometheus.Counter
	CyclesFailed     *prometheus.CounterVec // labels: resource={boundaries,earthquakes,surface}

	FetchDuration *prometheus.HistogramVec // labels: resource={boundaries,earthquakes}

	EarthquakesPlotted prometheus.Gauge
	EarthquakesSkipped prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		CyclesStarted: f.NewCounter(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "render_cycles_started_total",
			Help:      "Render cycles started by load, resize or reload.",
		}),
		CyclesCompleted: f.NewCounter(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "render_cycles_completed_total",
			Help:      "Render cycles that drew both boundaries and earthquakes.",
		}),
		CyclesSuperseded: f.NewCounter(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "render_cycles_superseded_total",
			Help:      "Render cycles cancelled by a newer cycle before finishing.",
		}),
		CyclesFailed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "render_cycles_failed_total",
			Help:      "Render cycles aborted by an error, by failing resource.",
		}, []string{"resource"}),
		FetchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quakemap",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of boundary and feed fetches including decoding.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"resource"}),
		EarthquakesPlotted: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "quakemap",
			Name:      "earthquakes_plotted",
			Help:      "Earthquake circles bound in the latest render cycle.",
		}),
		EarthquakesSkipped: f.NewCounter(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "earthquakes_skipped_total",
			Help:      "Feed records dropped for lacking geometry.",
		}),
	}
}

// NewMetricsForTesting creates Metrics on a throwaway registry.
func NewMetricsForTesting() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
