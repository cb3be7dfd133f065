package api

import (
	"fmt"

	"github.com/signalsfoundry/fronthaul-planner/internal/sweep"
	"github.com/signalsfoundry/fronthaul-planner/model"
)

func invalid(err error) error {
	return fmt.Errorf("%w: %v", errInvalid, err)
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errInvalid, fmt.Sprintf(format, args...))
}

func parsePoint(req PlanRequest) (sweep.Point, error) {
	var p sweep.Point
	var err error
	if p.Architecture, err = model.ParseArchitecture(req.Architecture); err != nil {
		return p, invalid(err)
	}
	if p.Scenario, err = model.ParseScenario(req.Scenario); err != nil {
		return p, invalid(err)
	}
	if p.Term, err = model.ParseTerm(req.Term); err != nil {
		return p, invalid(err)
	}
	if req.Alpha < 0 {
		return p, invalidf("alpha must not be negative, got %v", req.Alpha)
	}
	p.Alpha = req.Alpha
	if req.XRCase != "" && req.XRCase != "N/A" {
		if p.XRCase, err = model.ParseXRCase(req.XRCase); err != nil {
			return p, invalid(err)
		}
	}
	return p, nil
}

// grid resolves a sweep request against the server defaults.
func (s *Server) grid(req SweepRequest) (sweep.Grid, error) {
	g := s.opts.Defaults
	if len(req.Architectures) > 0 {
		g.Architectures = make([]model.Architecture, 0, len(req.Architectures))
		for _, raw := range req.Architectures {
			a, err := model.ParseArchitecture(raw)
			if err != nil {
				return g, invalid(err)
			}
			g.Architectures = append(g.Architectures, a)
		}
	}
	if len(req.Scenarios) > 0 {
		g.Scenarios = make([]model.Scenario, 0, len(req.Scenarios))
		for _, raw := range req.Scenarios {
			sc, err := model.ParseScenario(raw)
			if err != nil {
				return g, invalid(err)
			}
			g.Scenarios = append(g.Scenarios, sc)
		}
	}
	if len(req.Terms) > 0 {
		g.Terms = make([]model.Term, 0, len(req.Terms))
		for _, raw := range req.Terms {
			t, err := model.ParseTerm(raw)
			if err != nil {
				return g, invalid(err)
			}
			g.Terms = append(g.Terms, t)
		}
	}
	return g, nil
}
