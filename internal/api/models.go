package api

import (
	"github.com/signalsfoundry/fronthaul-planner/aggregate"
	"github.com/signalsfoundry/fronthaul-planner/dimension"
	"github.com/signalsfoundry/fronthaul-planner/model"
	"github.com/signalsfoundry/fronthaul-planner/internal/report"
)

// PlanRequest is the body of POST /api/v1/plan.
type PlanRequest struct {
	Architecture string  `json:"architecture" binding:"required"`
	Scenario     string  `json:"scenario" binding:"required"`
	Term         string  `json:"term" binding:"required"`
	Alpha        float64 `json:"alpha,omitempty"`
	XRCase       string  `json:"xr_case,omitempty"`
	// IncludeNodes adds the per-node equipment listing to the response.
	IncludeNodes bool `json:"include_nodes,omitempty"`
}

// PlanResponse is the body returned by POST /api/v1/plan.
type PlanResponse struct {
	Summary     aggregate.Summary      `json:"summary"`
	Allocations dimension.Tally        `json:"allocations"`
	Fibers      []aggregate.EdgeFibers `json:"fibers"`
	Nodes       []report.NodeDetail    `json:"nodes,omitempty"`
}

// SweepRequest is the body of the sweep endpoints. Empty lists fall back to
// the server defaults.
type SweepRequest struct {
	Architectures []string  `json:"architectures,omitempty"`
	Scenarios     []string  `json:"scenarios,omitempty"`
	Terms         []string  `json:"terms,omitempty"`
	Alphas        []float64 `json:"alphas,omitempty"`
	XRCases       []string  `json:"xr_cases,omitempty"`
}

// SweepResponse is the body returned by the sweep endpoints.
type SweepResponse struct {
	Count   int                 `json:"count"`
	Results []aggregate.Summary `json:"results"`
}

// ArchitectureInfo describes one dimensioning strategy.
type ArchitectureInfo struct {
	Name        model.Architecture `json:"name"`
	UsesXR      bool               `json:"uses_xr"`
	Description string             `json:"description"`
}

var architectureDescriptions = map[model.Architecture]string{
	model.ArchP2P:    "Dedicated grey long-reach pairs from every site to the hub, with a site switch.",
	model.ArchWDM:    "Per-unit WDM wavelengths multiplexed between site and hub.",
	model.ArchWDMWP:  "WDM with small cells pre-aggregated onto a shared wavelength.",
	model.ArchP2MP:   "Coherent XR point-to-multipoint optics with hub modules at the root.",
	model.ArchP2MPWP: "XR point-to-multipoint with small cells pre-aggregated at the site.",
}
