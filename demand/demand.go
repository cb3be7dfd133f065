// Package demand places radio units on a topology according to the fixed
// per-geotype deployment table.
package demand

import (
	"errors"
	"fmt"

	"github.com/signalsfoundry/fronthaul-planner/core"
	"github.com/signalsfoundry/fronthaul-planner/kb"
	"github.com/signalsfoundry/fronthaul-planner/model"
)

var (
	ErrInvalidScenario = errors.New("invalid scenario")
	ErrInvalidTerm     = errors.New("invalid term")
)

// SectorsPerMacro multiplies every macro quantity.
const SectorsPerMacro = 3

// row lists [Medium, Long] counts per scenario, in model.Scenarios order.
type row struct {
	radio  model.RadioType
	counts [4][2]int
}

var quantities = map[model.NodeKind][]row{
	model.KindMacro: {
		{model.MacroSubGHz, [4][2]int{{2, 2}, {2, 3}, {2, 4}, {1, 3}}},
		{model.Macro1To3GHz, [4][2]int{{3, 4}, {2, 4}, {2, 3}, {1, 2}}},
		{model.Macro3To7GHz, [4][2]int{{2, 2}, {1, 2}, {1, 2}, {1, 1}}},
		{model.Macro24To46GHz, [4][2]int{{0, 0}, {0, 0}, {1, 1}, {1, 1}}},
	},
	model.KindSmall: {
		{model.Small3To7GHz, [4][2]int{{2, 3}, {1, 2}, {0, 1}, {0, 0}}},
		{model.Small7To15GHz, [4][2]int{{0, 1}, {0, 1}, {0, 0}, {0, 0}}},
		{model.Small24To46GHz, [4][2]int{{1, 2}, {1, 1}, {0, 1}, {0, 0}}},
	},
}

func termIndex(term model.Term) (int, error) {
	switch term {
	case model.TermMedium:
		return 0, nil
	case model.TermLong:
		return 1, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTerm, term)
	}
}

// Quantity returns how many units of radio a node of the given kind carries.
// Macro counts include the three sectors. Root and corner nodes carry none.
func Quantity(kind model.NodeKind, radio model.RadioType, scenario model.Scenario, term model.Term) (int, error) {
	if !scenario.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidScenario, int(scenario))
	}
	ti, err := termIndex(term)
	if err != nil {
		return 0, err
	}
	for _, r := range quantities[kind] {
		if r.radio != radio {
			continue
		}
		q := r.counts[scenario][ti]
		if kind == model.KindMacro {
			q *= SectorsPerMacro
		}
		return q, nil
	}
	return 0, nil
}

// DeployDemand appends the radio units of every node, in node id order.
func DeployDemand(topo *core.Topology, cat *kb.Catalog, scenario model.Scenario, term model.Term) error {
	if !scenario.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidScenario, int(scenario))
	}
	if _, err := termIndex(term); err != nil {
		return err
	}
	topo.InitializeEquipment()

	for _, n := range topo.Nodes() {
		for _, r := range quantities[n.Kind] {
			q, err := Quantity(n.Kind, r.radio, scenario, term)
			if err != nil {
				return err
			}
			if q == 0 {
				continue
			}
			spec, err := cat.Radio(r.radio)
			if err != nil {
				return err
			}
			for i := 0; i < q; i++ {
				n.Radio = append(n.Radio, spec)
			}
		}
	}
	return nil
}

// TotalRequired sums the required capacity of every radio unit in Gbps.
func TotalRequired(topo *core.Topology, term model.Term) float64 {
	var total float64
	for _, n := range topo.Nodes() {
		for _, r := range n.Radio {
			total += r.RequiredCapacity(term)
		}
	}
	return total
}
