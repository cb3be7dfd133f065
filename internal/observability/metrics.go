package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/signalsfoundry/fronthaul-planner/kb"
)

// PlannerCollector bundles the planner's Prometheus metrics: dimensioning
// runs, their results, catalog changes and the HTTP surface.
type PlannerCollector struct {
	gatherer prometheus.Gatherer

	Runs         *prometheus.CounterVec
	RunDurations *prometheus.HistogramVec
	Allocations  *prometheus.CounterVec

	TotalCost *prometheus.GaugeVec
	EnergyMWh *prometheus.GaugeVec

	CatalogEvents *prometheus.CounterVec

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec
}

// NewPlannerCollector registers planner metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewPlannerCollector(reg prometheus.Registerer) (*PlannerCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	runs, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_runs_total",
		Help: "Dimensioning runs, labeled by architecture, scenario, term and outcome.",
	}, []string{"architecture", "scenario", "term", "status"}), "planner_runs_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planner_run_duration_seconds",
		Help:    "Wall time of a dimensioning run in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"architecture"}), "planner_run_duration_seconds")
	if err != nil {
		return nil, err
	}

	allocations, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_allocations_total",
		Help: "Per-hop fibre allocation outcomes.",
	}, []string{"status"}), "planner_allocations_total")
	if err != nil {
		return nil, err
	}

	cost, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "planner_total_cost",
		Help: "Normalized total cost of the latest run per architecture, scenario and term.",
	}, []string{"architecture", "scenario", "term"}), "planner_total_cost")
	if err != nil {
		return nil, err
	}

	energy, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "planner_energy_mwh",
		Help: "Annual energy in MWh of the latest run per architecture, scenario and term.",
	}, []string{"architecture", "scenario", "term"}), "planner_energy_mwh")
	if err != nil {
		return nil, err
	}

	events, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_catalog_events_total",
		Help: "Equipment catalog changes, labeled by event type.",
	}, []string{"event"}), "planner_catalog_events_total")
	if err != nil {
		return nil, err
	}

	httpRequests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_http_requests_total",
		Help: "Handled HTTP requests, labeled by route, method and status code.",
	}, []string{"route", "method", "code"}), "planner_http_requests_total")
	if err != nil {
		return nil, err
	}

	httpDurations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planner_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"route", "method"}), "planner_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &PlannerCollector{
		gatherer:      gatherer,
		Runs:          runs,
		RunDurations:  durations,
		Allocations:   allocations,
		TotalCost:     cost,
		EnergyMWh:     energy,
		CatalogEvents: events,
		HTTPRequests:  httpRequests,
		HTTPDurations: httpDurations,
	}, nil
}

// ObserveRun counts a finished run and records its duration.
func (c *PlannerCollector) ObserveRun(architecture, scenario, term, status string, seconds float64) {
	if c == nil {
		return
	}
	if c.Runs != nil {
		c.Runs.WithLabelValues(architecture, scenario, term, status).Inc()
	}
	if c.RunDurations != nil {
		c.RunDurations.WithLabelValues(architecture).Observe(seconds)
	}
}

// ObserveAllocations adds per-status allocation counts.
func (c *PlannerCollector) ObserveAllocations(counts map[string]int) {
	if c == nil || c.Allocations == nil {
		return
	}
	for status, n := range counts {
		c.Allocations.WithLabelValues(status).Add(float64(n))
	}
}

// ObserveResult publishes the cost and energy of the latest run.
func (c *PlannerCollector) ObserveResult(architecture, scenario, term string, cost, energyMWh float64) {
	if c == nil {
		return
	}
	if c.TotalCost != nil {
		c.TotalCost.WithLabelValues(architecture, scenario, term).Set(cost)
	}
	if c.EnergyMWh != nil {
		c.EnergyMWh.WithLabelValues(architecture, scenario, term).Set(energyMWh)
	}
}

// ObserveCatalogEvent counts one catalog change.
func (c *PlannerCollector) ObserveCatalogEvent(ev kb.Event) {
	if c == nil || c.CatalogEvents == nil {
		return
	}
	c.CatalogEvents.WithLabelValues(ev.Type.String()).Inc()
}

// WatchCatalog subscribes the collector to cat. Call the returned function
// to stop counting.
func (c *PlannerCollector) WatchCatalog(cat *kb.Catalog) (unsubscribe func()) {
	if c == nil || cat == nil {
		return func() {}
	}
	return cat.Subscribe(c.ObserveCatalogEvent)
}

// Handler exposes a ready-to-use /metrics handler.
func (c *PlannerCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
