// Package metrics exposes Prometheus instrumentation for the planner.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the planner's Prometheus metrics. A nil *Collector is
// valid and records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	Mutations        *prometheus.CounterVec
	PersistFailures  prometheus.Counter
	OptimizeDuration prometheus.Histogram
	CatalogPlaces    prometheus.Gauge
}

// NewCollector registers planner metrics against reg, defaulting to the
// global registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trip_mutations_total",
		Help: "State mutations handled, labeled by operation and result.",
	}, []string{"op", "result"})
	if err := register(reg, mutations, "trip_mutations_total"); err != nil {
		return nil, err
	}

	persistFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "trip_persist_failures_total",
		Help: "Snapshots that could not be written to the state store.",
	})
	if err := register(reg, persistFailures, "trip_persist_failures_total"); err != nil {
		return nil, err
	}

	optimize := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "trip_route_optimize_duration_seconds",
		Help:    "Duration of nearest-neighbor day route optimizations.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	})
	if err := register(reg, optimize, "trip_route_optimize_duration_seconds"); err != nil {
		return nil, err
	}

	catalog := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "trip_catalog_places",
		Help: "Places currently in the catalog.",
	})
	if err := register(reg, catalog, "trip_catalog_places"); err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:         gatherer,
		Mutations:        mutations,
		PersistFailures:  persistFailures,
		OptimizeDuration: optimize,
		CatalogPlaces:    catalog,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveMutation counts one mutation outcome.
func (c *Collector) ObserveMutation(op, result string) {
	if c == nil || c.Mutations == nil {
		return
	}
	c.Mutations.WithLabelValues(op, result).Inc()
}

// IncPersistFailures counts a failed snapshot write.
func (c *Collector) IncPersistFailures() {
	if c == nil || c.PersistFailures == nil {
		return
	}
	c.PersistFailures.Inc()
}

// ObserveOptimize records one optimization duration.
func (c *Collector) ObserveOptimize(d time.Duration) {
	if c == nil || c.OptimizeDuration == nil {
		return
	}
	c.OptimizeDuration.Observe(d.Seconds())
}

// SetCatalogPlaces updates the catalog size gauge.
func (c *Collector) SetCatalogPlaces(n int) {
	if c == nil || c.CatalogPlaces == nil {
		return
	}
	c.CatalogPlaces.Set(float64(n))
}

func register(reg prometheus.Registerer, collector prometheus.Collector, name string) error {
	if err := reg.Register(collector); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return fmt.Errorf("collector %s already registered", name)
		}
		return err
	}
	return nil
}
