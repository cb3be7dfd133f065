package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/signalsfoundry/fronthaul-planner/dimension"
	"github.com/signalsfoundry/fronthaul-planner/internal/config"
	"github.com/signalsfoundry/fronthaul-planner/internal/sweep"
	"github.com/signalsfoundry/fronthaul-planner/model"
)

type point struct {
	sweep.Point
}

func (p point) request() dimension.Request {
	return dimension.Request{Architecture: p.Architecture, Scenario: p.Scenario, Term: p.Term}
}

func parsePoint(arch, scenario, term, xrCase string) (point, error) {
	var p point
	var err error
	if p.Architecture, err = model.ParseArchitecture(arch); err != nil {
		return p, err
	}
	if p.Scenario, err = model.ParseScenario(scenario); err != nil {
		return p, err
	}
	if p.Term, err = model.ParseTerm(term); err != nil {
		return p, err
	}
	if xrCase != "" {
		if p.XRCase, err = model.ParseXRCase(xrCase); err != nil {
			return p, err
		}
	}
	return p, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, part := range splitList(s) {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q: %w", part, err)
		}
		if v <= 0 {
			return nil, fmt.Errorf("alpha must be positive, got %v", v)
		}
		out = append(out, v)
	}
	return out, nil
}

// grid overrides the configured sweep lists with whichever flags are set.
func grid(cfg *config.Config, archs, scenarios, terms string) (sweep.Grid, error) {
	g := sweep.Grid{
		Architectures: cfg.Sweep.Architectures,
		Scenarios:     cfg.Sweep.Scenarios,
		Terms:         cfg.Sweep.Terms,
	}
	if archs != "" {
		g.Architectures = nil
		for _, raw := range splitList(archs) {
			a, err := model.ParseArchitecture(raw)
			if err != nil {
				return g, err
			}
			g.Architectures = append(g.Architectures, a)
		}
	}
	if scenarios != "" {
		g.Scenarios = nil
		for _, raw := range splitList(scenarios) {
			s, err := model.ParseScenario(raw)
			if err != nil {
				return g, err
			}
			g.Scenarios = append(g.Scenarios, s)
		}
	}
	if terms != "" {
		g.Terms = nil
		for _, raw := range splitList(terms) {
			t, err := model.ParseTerm(raw)
			if err != nil {
				return g, err
			}
			g.Terms = append(g.Terms, t)
		}
	}
	return g, nil
}
