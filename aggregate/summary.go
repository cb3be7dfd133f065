package aggregate

import (
	"github.com/signalsfoundry/fronthaul-planner/core"
	"github.com/signalsfoundry/fronthaul-planner/demand"
	"github.com/signalsfoundry/fronthaul-planner/model"
)

// NotApplicable labels results that do not depend on an XR case.
const NotApplicable = "N/A"

// Summary is one result row: the figures of a single dimensioning run.
type Summary struct {
	Architecture model.Architecture `json:"architecture" csv:"architecture"`
	Scenario     model.Scenario     `json:"scenario" csv:"scenario"`
	Term         model.Term         `json:"term" csv:"term"`
	XRCase       string             `json:"xr_case" csv:"xr_case"`
	Alpha        float64            `json:"alpha,omitempty" csv:"alpha,omitempty"`
	RunID        string             `json:"run_id,omitempty" csv:"run_id,omitempty"`

	AreaKm2          float64 `json:"area_km2" csv:"area_km2"`
	RequiredCapacity float64 `json:"required_capacity_gbps" csv:"required_capacity_gbps"`

	TotalCost       float64 `json:"total_cost" csv:"total_cost"`
	TransceiverCost float64 `json:"tx_cost" csv:"tx_cost"`
	SwitchingCost   float64 `json:"mux_cost" csv:"mux_cost"`
	NormalizedCost  float64 `json:"normalized_cost_per_km2" csv:"normalized_cost_per_km2"`

	TotalEnergyMWh       float64 `json:"total_energy_mwh" csv:"total_energy_mwh"`
	TransceiverEnergyMWh float64 `json:"tx_energy_mwh" csv:"tx_energy_mwh"`
	SwitchingEnergyMWh   float64 `json:"sw_energy_mwh" csv:"sw_energy_mwh"`

	CostEfficiency    Ratio `json:"cost_efficiency" csv:"cost_efficiency"`
	NetworkEfficiency Ratio `json:"network_efficiency" csv:"network_efficiency"`
	FiberUtilization  Ratio `json:"fiber_utilization" csv:"fiber_utilization"`

	Fibers         int `json:"fibers" csv:"fibers"`
	OccupiedFibers int `json:"occupied_fibers" csv:"occupied_fibers"`

	SwitchesSmall      int `json:"switches_small" csv:"switches_small"`
	SwitchesMedium     int `json:"switches_medium" csv:"switches_medium"`
	SwitchesBig        int `json:"switches_big" csv:"switches_big"`
	SwitchesExtraLarge int `json:"switches_extra_large" csv:"switches_extra_large"`
}

// Summarize computes every figure of a dimensioned topology. Labels
// (architecture, scenario, case) are left for the caller. A non-positive
// area leaves NormalizedCost at 0.
func Summarize(topo *core.Topology, term model.Term, areaKm2 float64) Summary {
	tx := TransceiverCost(topo)
	sw := SwitchingCost(topo)
	total := tx + sw

	s := Summary{
		Term:                 term,
		XRCase:               NotApplicable,
		AreaKm2:              areaKm2,
		RequiredCapacity:     demand.TotalRequired(topo, term),
		TotalCost:            total,
		TransceiverCost:      tx,
		SwitchingCost:        sw,
		TotalEnergyMWh:       TotalEnergyMWh(topo),
		TransceiverEnergyMWh: EnergyComponentMWh(topo, EnergyOther),
		SwitchingEnergyMWh:   EnergyComponentMWh(topo, EnergySwitching),
		CostEfficiency:       CostEfficiency(topo, total, term),
		NetworkEfficiency:    NetworkEfficiency(topo, term),
		FiberUtilization:     FiberUtilization(topo, term),
		OccupiedFibers:       OccupiedFibers(topo),
	}
	if areaKm2 > 0 {
		s.NormalizedCost = total / areaKm2
	}
	for _, e := range topo.Edges() {
		s.Fibers += len(e.Fibers)
	}

	counts := SwitchCounts(topo)
	s.SwitchesSmall = counts[model.SwitchClassSmall]
	s.SwitchesMedium = counts[model.SwitchClassMedium]
	s.SwitchesBig = counts[model.SwitchClassBig]
	s.SwitchesExtraLarge = counts[model.SwitchClassExtraLarge]
	return s
}
