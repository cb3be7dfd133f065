// Package aggregate reduces a dimensioned topology to cost, energy and
// utilisation figures. Every function here is read-only.
package aggregate

import (
	"encoding/json"
	"math"

	"github.com/signalsfoundry/fronthaul-planner/core"
	"github.com/signalsfoundry/fronthaul-planner/demand"
	"github.com/signalsfoundry/fronthaul-planner/model"
)

// HoursPerYear converts a constant draw in W to annual Wh.
const HoursPerYear = 365 * 24

var (
	// TransceiverCategories are the rows billed as transceiver cost.
	TransceiverCategories = []model.Category{
		model.CategoryGreySR,
		model.CategoryGreyLR,
		model.CategoryWDMTransceiver,
		model.CategoryXRModule,
		model.CategoryXRHub,
		model.CategoryTransponder,
		model.CategoryMediaConverter,
	}
	// SwitchingCategories are the rows billed as switching cost. Splitters
	// are passive and not billed.
	SwitchingCategories = []model.Category{
		model.CategorySwitch,
		model.CategoryWDMMux,
		model.CategoryCWDMMux,
	}
	// capacityCategories count toward deployed capacity in NetworkEfficiency.
	capacityCategories = []model.Category{
		model.CategoryGreySR,
		model.CategoryGreyLR,
		model.CategoryXRModule,
	}
)

// Component selects one of the two node energy counters.
type Component int

const (
	EnergyOther Component = iota
	EnergySwitching
)

// Ratio is an efficiency figure that may be +Inf when its denominator is
// zero. It encodes to JSON null in that case.
type Ratio float64

func (r Ratio) MarshalJSON() ([]byte, error) {
	f := float64(r)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// IsInf reports whether the ratio had no denominator.
func (r Ratio) IsInf() bool { return math.IsInf(float64(r), 1) }

func contains(cats []model.Category, c model.Category) bool {
	for _, x := range cats {
		if x == c {
			return true
		}
	}
	return false
}

// CostOf sums the normalized price of every deployed instance whose
// category is in cats.
func CostOf(topo *core.Topology, cats ...model.Category) float64 {
	var total float64
	for _, n := range topo.Nodes() {
		for _, e := range n.Equipment {
			if contains(cats, e.Category) {
				total += e.NormalizedPrice
			}
		}
	}
	return total
}

func TransceiverCost(topo *core.Topology) float64 {
	return CostOf(topo, TransceiverCategories...)
}

func SwitchingCost(topo *core.Topology) float64 {
	return CostOf(topo, SwitchingCategories...)
}

// TotalCost is transceiver plus switching cost.
func TotalCost(topo *core.Topology) float64 {
	return TransceiverCost(topo) + SwitchingCost(topo)
}

// TotalEnergyMWh is the annual energy of all nodes in MWh.
func TotalEnergyMWh(topo *core.Topology) float64 {
	var sw, other float64
	for _, n := range topo.Nodes() {
		sw += n.SwitchingConsumption
		other += n.OtherConsumption
	}
	return (sw + other) * HoursPerYear / 1e6
}

// EnergyComponentMWh is the annual energy of one counter in MWh.
func EnergyComponentMWh(topo *core.Topology, c Component) float64 {
	var w float64
	for _, n := range topo.Nodes() {
		if c == EnergySwitching {
			w += n.SwitchingConsumption
		} else {
			w += n.OtherConsumption
		}
	}
	return w * HoursPerYear / 1e6
}

// CostEfficiency is cost per Gbps of required capacity.
func CostEfficiency(topo *core.Topology, cost float64, term model.Term) Ratio {
	required := demand.TotalRequired(topo, term)
	if required <= 0 {
		return Ratio(math.Inf(1))
	}
	return Ratio(cost / required)
}

// NetworkEfficiency is required capacity over the capacity of deployed
// grey and XR optics. Hubs are not counted.
func NetworkEfficiency(topo *core.Topology, term model.Term) Ratio {
	required := demand.TotalRequired(topo, term)
	var deployed float64
	for _, n := range topo.Nodes() {
		for _, e := range n.Equipment {
			if contains(capacityCategories, e.Category) {
				deployed += e.DataRate
			}
		}
	}
	if deployed <= 0 {
		return Ratio(math.Inf(1))
	}
	return Ratio(required / deployed)
}

// FiberUtilization is required capacity per deployed fibre.
func FiberUtilization(topo *core.Topology, term model.Term) Ratio {
	required := demand.TotalRequired(topo, term)
	fibers := 0
	for _, e := range topo.Edges() {
		fibers += len(e.Fibers)
	}
	if fibers == 0 {
		return Ratio(math.Inf(1))
	}
	return Ratio(required / float64(fibers))
}

// EdgeFibers is the fibre usage of one edge.
type EdgeFibers struct {
	A        int `json:"a" csv:"a"`
	B        int `json:"b" csv:"b"`
	Fibers   int `json:"fibers" csv:"fibers"`
	Occupied int `json:"occupied" csv:"occupied"`
}

// FiberCounts lists every edge in (A, B) order with its fibre counts.
func FiberCounts(topo *core.Topology) []EdgeFibers {
	edges := topo.Edges()
	out := make([]EdgeFibers, 0, len(edges))
	for _, e := range edges {
		ef := EdgeFibers{A: e.A, B: e.B, Fibers: len(e.Fibers)}
		for _, f := range e.Fibers {
			if f.Occupied() {
				ef.Occupied++
			}
		}
		out = append(out, ef)
	}
	return out
}

// OccupiedFibers counts fibres carrying traffic on any slot.
func OccupiedFibers(topo *core.Topology) int {
	total := 0
	for _, ef := range FiberCounts(topo) {
		total += ef.Occupied
	}
	return total
}

// SwitchCounts counts deployed switches by class. Every class is present.
func SwitchCounts(topo *core.Topology) map[model.SwitchClass]int {
	counts := make(map[model.SwitchClass]int, 4)
	for _, c := range model.SwitchClasses() {
		counts[c] = 0
	}
	for _, n := range topo.Nodes() {
		for _, e := range n.Equipment {
			if c, ok := model.SwitchClassOf(e.Type); ok {
				counts[c]++
			}
		}
	}
	return counts
}
