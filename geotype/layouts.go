package geotype

import "github.com/signalsfoundry/fronthaul-planner/model"

// Site is one fixed cell location in a layout. Coordinates are metres from
// the aggregation site at the origin.
type Site struct {
	Kind model.NodeKind
	X, Y float64
}

// Layout is the fixed site plan of a geotype. Site i becomes node i.
type Layout struct {
	Scenario model.Scenario
	// SideKm is the side of the square service area.
	SideKm float64
	Sites  []Site
}

var layouts = map[model.Scenario]Layout{
	model.DenseUrban: {Scenario: model.DenseUrban, SideKm: 0.8, Sites: []Site{
		{model.KindRoot, 0, 0},
		{model.KindMacro, -199.5, 199.5},
		{model.KindMacro, 199.5, 199.5},
		{model.KindMacro, 0, 0},
		{model.KindMacro, -199.5, -199.5},
		{model.KindMacro, 199.5, -199.5},
		{model.KindSmall, -133, 332.5},
		{model.KindSmall, 133, 332.5},
		{model.KindSmall, 0, 266},
		{model.KindSmall, -199.5, 199.5},
		{model.KindSmall, 199.5, 199.5},
		{model.KindSmall, -266, 133},
		{model.KindSmall, -133, 133},
		{model.KindSmall, 0, 133},
		{model.KindSmall, 133, 133},
		{model.KindSmall, -332.5, 0},
		{model.KindSmall, -133, 0},
		{model.KindSmall, 0, 0},
		{model.KindSmall, 133, 0},
		{model.KindSmall, 332.5, 0},
		{model.KindSmall, 266, -133},
		{model.KindSmall, 133, -133},
		{model.KindSmall, 266, 133},
		{model.KindSmall, -133, -133},
		{model.KindSmall, 0, -133},
		{model.KindSmall, -266, -133},
		{model.KindSmall, -199.5, -199.5},
		{model.KindSmall, 199.5, -199.5},
		{model.KindSmall, 0, -266},
		{model.KindSmall, 133, -332.5},
		{model.KindSmall, -133, -332.5},
	}},
	model.Urban: {Scenario: model.Urban, SideKm: 1.6, Sites: []Site{
		{model.KindRoot, 0, 0},
		{model.KindMacro, -600, 600},
		{model.KindMacro, 600, 600},
		{model.KindMacro, 0, 400},
		{model.KindMacro, -400, 0},
		{model.KindMacro, 0, 0},
		{model.KindMacro, 400, 0},
		{model.KindMacro, 0, -400},
		{model.KindMacro, -600, -600},
		{model.KindMacro, 600, -600},
		{model.KindSmall, -600, 600},
		{model.KindSmall, -200, 600},
		{model.KindSmall, 200, 600},
		{model.KindSmall, 600, 600},
		{model.KindSmall, -400, 400},
		{model.KindSmall, 0, 400},
		{model.KindSmall, 400, 400},
		{model.KindSmall, -600, 200},
		{model.KindSmall, -200, 200},
		{model.KindSmall, 200, 200},
		{model.KindSmall, 600, 200},
		{model.KindSmall, -400, 0},
		{model.KindSmall, 0, 0},
		{model.KindSmall, 400, 0},
		{model.KindSmall, -600, -200},
		{model.KindSmall, -200, -200},
		{model.KindSmall, 200, -200},
		{model.KindSmall, 600, -200},
		{model.KindSmall, -400, -400},
		{model.KindSmall, 0, -400},
		{model.KindSmall, 400, -400},
		{model.KindSmall, -600, -600},
		{model.KindSmall, -200, -600},
		{model.KindSmall, 200, -600},
		{model.KindSmall, 600, -600},
	}},
	model.Suburban: {Scenario: model.Suburban, SideKm: 3.2, Sites: []Site{
		{model.KindRoot, 0, 0},
		{model.KindMacro, -1066, 1066},
		{model.KindMacro, 0, 1066},
		{model.KindMacro, 1066, 1066},
		{model.KindMacro, -1066, 0},
		{model.KindMacro, 0, 0},
		{model.KindMacro, 1066, 0},
		{model.KindMacro, -1066, -1066},
		{model.KindMacro, 0, -1066},
		{model.KindMacro, 1066, -1066},
		{model.KindSmall, -1066, 1066},
		{model.KindSmall, 0, 1066},
		{model.KindSmall, 1066, 1066},
		{model.KindSmall, -533, 533},
		{model.KindSmall, 0, 533},
		{model.KindSmall, 533, 533},
		{model.KindSmall, -1066, 0},
		{model.KindSmall, -533, 0},
		{model.KindSmall, 0, 0},
		{model.KindSmall, 533, 0},
		{model.KindSmall, 1066, 0},
		{model.KindSmall, -533, -533},
		{model.KindSmall, 0, -533},
		{model.KindSmall, 533, -533},
		{model.KindSmall, -1066, -1066},
		{model.KindSmall, 0, -1066},
		{model.KindSmall, 1066, -1066},
	}},
	model.Rural: {Scenario: model.Rural, SideKm: 12.8, Sites: []Site{
		{model.KindRoot, 0, 0},
		{model.KindMacro, -3200, 3200},
		{model.KindMacro, 3200, 3200},
		{model.KindMacro, 0, 0},
		{model.KindMacro, -3200, -3200},
		{model.KindMacro, 3200, -3200},
		{model.KindSmall, 0, 533},
		{model.KindSmall, -533, 0},
		{model.KindSmall, 0, 0},
		{model.KindSmall, 533, 0},
		{model.KindSmall, 0, -533},
	}},
}
