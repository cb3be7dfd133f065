package dimension

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/fronthaul-planner/aggregate"
	"github.com/signalsfoundry/fronthaul-planner/core"
	"github.com/signalsfoundry/fronthaul-planner/demand"
	"github.com/signalsfoundry/fronthaul-planner/geotype"
	"github.com/signalsfoundry/fronthaul-planner/internal/logging"
	"github.com/signalsfoundry/fronthaul-planner/kb"
	"github.com/signalsfoundry/fronthaul-planner/model"
)

const tracerName = "github.com/signalsfoundry/fronthaul-planner/dimension"

// customScenario labels runs over a caller-supplied topology.
const customScenario = "custom"

// RunRecorder receives run metrics. The Prometheus collector in
// internal/observability satisfies it.
type RunRecorder interface {
	ObserveRun(architecture, scenario, term, status string, seconds float64)
	ObserveAllocations(counts map[string]int)
	ObserveResult(architecture, scenario, term string, cost, energyMWh float64)
}

// Planner wraps strategy runs with tracing, metrics and run-scoped logging.
type Planner struct {
	Catalog    *kb.Catalog
	Logger     logging.Logger
	Metrics    RunRecorder
	Tracer     trace.Tracer
	Options    Options
	FiberSlots int
}

// NewPlanner returns a planner over cat. metrics may be nil.
func NewPlanner(cat *kb.Catalog, log logging.Logger, metrics RunRecorder) *Planner {
	if log == nil {
		log = logging.Noop()
	}
	return &Planner{
		Catalog:    cat,
		Logger:     log,
		Metrics:    metrics,
		FiberSlots: core.DefaultFiberSlots,
	}
}

// WithCatalog returns a copy of p that prices equipment from cat.
func (p *Planner) WithCatalog(cat *kb.Catalog) *Planner {
	cp := *p
	cp.Catalog = cat
	return &cp
}

func (p *Planner) tracer() trace.Tracer {
	if p.Tracer != nil {
		return p.Tracer
	}
	return otel.Tracer(tracerName)
}

// Result describes a finished run.
type Result struct {
	RunID        string             `json:"run_id"`
	Architecture model.Architecture `json:"architecture"`
	Term         model.Term         `json:"term"`
	Tally        Tally              `json:"allocations"`
	Duration     time.Duration      `json:"duration"`
}

// Run dimensions topo in place for arch.
func (p *Planner) Run(ctx context.Context, arch model.Architecture, topo *core.Topology, term model.Term) (Result, error) {
	return p.run(ctx, arch, customScenario, topo, term)
}

func (p *Planner) run(ctx context.Context, arch model.Architecture, scenario string, topo *core.Topology, term model.Term) (Result, error) {
	ctx, log, runID := logging.WithRunLogger(ctx, p.Logger)
	log = log.With(
		logging.String("architecture", string(arch)),
		logging.String("scenario", scenario),
		logging.String("term", string(term)),
	)
	res := Result{RunID: runID, Architecture: arch, Term: term}

	ctx, span := p.tracer().Start(ctx, "dimension.Run", trace.WithAttributes(
		attribute.String("planner.run_id", runID),
		attribute.String("planner.architecture", string(arch)),
		attribute.String("planner.scenario", scenario),
		attribute.String("planner.term", string(term)),
	))
	defer span.End()

	start := time.Now()
	err := p.dimension(ctx, arch, topo, term, log, &res)
	res.Duration = time.Since(start)

	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error(ctx, "dimensioning failed", logging.Err(err))
	} else {
		span.SetAttributes(
			attribute.Int("planner.allocations.partial", res.Tally.PartiallyAllocated),
			attribute.Int("planner.allocations.edge_missing", res.Tally.EdgeMissing),
		)
		log.Info(ctx, "dimensioning finished",
			logging.Int("allocated", res.Tally.Allocated),
			logging.Int("partially_allocated", res.Tally.PartiallyAllocated),
			logging.Int("edge_missing", res.Tally.EdgeMissing),
			logging.Int("dropped", res.Tally.Dropped),
			logging.Float("seconds", res.Duration.Seconds()),
		)
	}

	if p.Metrics != nil {
		p.Metrics.ObserveRun(string(arch), scenario, string(term), status, res.Duration.Seconds())
		if err == nil {
			p.Metrics.ObserveAllocations(res.Tally.ByStatus())
		}
	}
	return res, err
}

func (p *Planner) dimension(ctx context.Context, arch model.Architecture, topo *core.Topology, term model.Term, log logging.Logger, res *Result) error {
	strategy, err := For(arch)
	if err != nil {
		return err
	}
	env, err := NewEnv(p.Catalog, topo, term, log, p.Options)
	if err != nil {
		return err
	}
	if err := strategy.Dimension(ctx, env); err != nil {
		return fmt.Errorf("%s: %w", arch, err)
	}
	res.Tally = env.Tally
	return nil
}

// Request is one geotype planning job.
type Request struct {
	Architecture model.Architecture `json:"architecture" yaml:"architecture"`
	Scenario     model.Scenario     `json:"scenario" yaml:"scenario"`
	Term         model.Term         `json:"term" yaml:"term"`
}

// Outcome carries the dimensioned topology along with its summary.
type Outcome struct {
	Summary  aggregate.Summary
	Topology *core.Topology
	Result   Result
}

// Plan builds the geotype tree, deploys demand, dimensions it and
// summarises the result.
func (p *Planner) Plan(ctx context.Context, req Request) (aggregate.Summary, error) {
	out, err := p.PlanDetailed(ctx, req)
	if err != nil {
		return aggregate.Summary{}, err
	}
	return out.Summary, nil
}

// PlanDetailed is Plan but also returns the dimensioned topology.
func (p *Planner) PlanDetailed(ctx context.Context, req Request) (*Outcome, error) {
	if _, err := For(req.Architecture); err != nil {
		return nil, err
	}
	g, err := geotype.New(req.Scenario, p.FiberSlots)
	if err != nil {
		return nil, err
	}
	if err := demand.DeployDemand(g.Tree, p.Catalog, req.Scenario, req.Term); err != nil {
		return nil, err
	}

	res, err := p.run(ctx, req.Architecture, req.Scenario.String(), g.Tree, req.Term)
	if err != nil {
		return nil, err
	}

	s := aggregate.Summarize(g.Tree, req.Term, g.AreaKm2)
	s.Architecture = req.Architecture
	s.Scenario = req.Scenario
	s.RunID = res.RunID
	if p.Metrics != nil {
		p.Metrics.ObserveResult(string(req.Architecture), req.Scenario.String(), string(req.Term), s.TotalCost, s.TotalEnergyMWh)
	}
	return &Outcome{Summary: s, Topology: g.Tree, Result: res}, nil
}
