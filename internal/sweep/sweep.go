// Package sweep runs batches of planning jobs, each against its own
// catalog overlay, and returns the summaries in a deterministic order.
package sweep

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/signalsfoundry/fronthaul-planner/aggregate"
	"github.com/signalsfoundry/fronthaul-planner/dimension"
	"github.com/signalsfoundry/fronthaul-planner/internal/logging"
	"github.com/signalsfoundry/fronthaul-planner/kb"
	"github.com/signalsfoundry/fronthaul-planner/model"
)

// Point is a single planning job. A zero Alpha keeps catalog prices and an
// empty XRCase keeps catalog XR figures.
type Point struct {
	Architecture model.Architecture `json:"architecture"`
	Scenario     model.Scenario     `json:"scenario"`
	Term         model.Term         `json:"term"`
	Alpha        float64            `json:"alpha,omitempty"`
	XRCase       model.XRCase       `json:"xr_case,omitempty"`
}

func (p Point) request() dimension.Request {
	return dimension.Request{Architecture: p.Architecture, Scenario: p.Scenario, Term: p.Term}
}

// Grid is the cartesian space a sweep expands.
type Grid struct {
	Architectures []model.Architecture
	Scenarios     []model.Scenario
	Terms         []model.Term
}

// Compare expands g with base prices, term-major.
func Compare(g Grid) []Point {
	var out []Point
	for _, term := range g.Terms {
		for _, s := range g.Scenarios {
			for _, a := range g.Architectures {
				out = append(out, Point{Architecture: a, Scenario: s, Term: term})
			}
		}
	}
	return out
}

// Alpha expands g once per alpha value, alpha-major.
func Alpha(g Grid, alphas []float64) []Point {
	var out []Point
	for _, alpha := range alphas {
		for _, p := range Compare(g) {
			p.Alpha = alpha
			out = append(out, p)
		}
	}
	return out
}

// XRCases expands g so architectures using XR optics run once per case.
// The others run once, unaffected by the case.
func XRCases(g Grid, cases []model.XRCase) []Point {
	var out []Point
	for _, p := range Compare(g) {
		if !p.Architecture.UsesXR() {
			out = append(out, p)
			continue
		}
		for _, xc := range cases {
			p.XRCase = xc
			out = append(out, p)
		}
	}
	return out
}

// Runner fans points out over a bounded worker pool.
type Runner struct {
	Planner *dimension.Planner
	// Catalog is the base every point overlays. Defaults to the planner's.
	Catalog *kb.Catalog
	Workers int
	Logger  logging.Logger
}

// NewRunner returns a runner over planner's catalog.
func NewRunner(planner *dimension.Planner, workers int, log logging.Logger) *Runner {
	if log == nil {
		log = logging.Noop()
	}
	return &Runner{Planner: planner, Catalog: planner.Catalog, Workers: workers, Logger: log}
}

// Run plans every point and returns summaries in point order. The first
// failure cancels the remaining points.
func (r *Runner) Run(ctx context.Context, points []Point) ([]aggregate.Summary, error) {
	if r.Planner == nil {
		return nil, fmt.Errorf("sweep: nil planner")
	}
	base := r.Catalog
	if base == nil {
		base = r.Planner.Catalog
	}
	if base == nil {
		return nil, fmt.Errorf("sweep: nil catalog")
	}
	log := r.Logger
	if log == nil {
		log = logging.Noop()
	}

	results := make([]aggregate.Summary, len(points))
	g, gctx := errgroup.WithContext(ctx)
	if r.Workers > 0 {
		g.SetLimit(r.Workers)
	}

	log.Info(ctx, "sweep started", logging.Int("points", len(points)), logging.Int("workers", r.Workers))
	for i, p := range points {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := r.runPoint(gctx, base, p)
			if err != nil {
				return fmt.Errorf("point %d (%s %s %s): %w", i, p.Architecture, p.Scenario, p.Term, err)
			}
			results[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error(ctx, "sweep failed", logging.Err(err))
		return nil, err
	}
	log.Info(ctx, "sweep finished", logging.Int("points", len(points)))
	return results, nil
}

func (r *Runner) runPoint(ctx context.Context, base *kb.Catalog, p Point) (aggregate.Summary, error) {
	cat := base.Overlay()
	if p.Alpha > 0 {
		if err := cat.ApplyAlpha(p.Alpha); err != nil {
			return aggregate.Summary{}, err
		}
	}
	if p.XRCase != "" {
		if err := cat.ApplyXRCase(p.XRCase); err != nil {
			return aggregate.Summary{}, err
		}
	}

	s, err := r.Planner.WithCatalog(cat).Plan(ctx, p.request())
	if err != nil {
		return aggregate.Summary{}, err
	}
	s.Alpha = p.Alpha
	if p.XRCase != "" {
		s.XRCase = string(p.XRCase)
	}
	return s, nil
}
