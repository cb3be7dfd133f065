package aggregate

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalsfoundry/fronthaul-planner/core"
	"github.com/signalsfoundry/fronthaul-planner/model"
)

func dep(t model.EquipmentType, c model.Category, rate, price, power float64) model.Deployed {
	return model.Deployed{
		Type:            t,
		Category:        c,
		DataRate:        rate,
		HasDataRate:     rate > 0,
		NormalizedPrice: price,
		MaxPower:        power,
	}
}

// fixture: root 0, macro 1 with one 21.6G unit, corner 2 hanging off root.
func fixture(t *testing.T) *core.Topology {
	t.Helper()
	topo := core.NewTopology(4)
	require.NoError(t, topo.AddNode(&core.Node{ID: 0, Kind: model.KindRoot}))
	require.NoError(t, topo.AddNode(&core.Node{ID: 1, Kind: model.KindMacro, Position: core.Point{X: 1}}))
	require.NoError(t, topo.AddNode(&core.Node{ID: 2, Kind: model.KindCorner, Position: core.Point{Y: 1}}))
	_, err := topo.AddEdge(0, 1, 1)
	require.NoError(t, err)
	_, err = topo.AddEdge(0, 2, 1)
	require.NoError(t, err)
	topo.InitializeEquipment()

	n1, _ := topo.Node(1)
	n1.Radio = append(n1.Radio, model.RadioUnit{BandsMedium: 2, CarrierWidthMHz: 100})
	n1.Install(
		dep(model.Grey25GSR, model.CategoryGreySR, 25, 0.1, 1),
		dep(model.Grey25GSR, model.CategoryGreySR, 25, 0.1, 1),
		dep(model.Grey25GLR, model.CategoryGreyLR, 25, 0.3, 2),
		dep(model.SwitchSmall, model.CategorySwitch, 0, 2.4, 0),
		dep(model.Splitter1x2, model.CategorySplitter, 0, 5, 0),
	)
	n1.AddOther(4)
	n1.AddSwitching(131)

	root, _ := topo.Node(0)
	root.Install(
		dep(model.Grey25GLR, model.CategoryGreyLR, 25, 0.3, 2),
		dep(model.XRHub100G, model.CategoryXRHub, 100, 1, 5),
		dep(model.WDMMux, model.CategoryWDMMux, 0, 0.5, 0),
	)
	root.AddOther(2)

	topo.AllocatePaired(0, 1, 25)
	return topo
}

func TestCostComponents(t *testing.T) {
	topo := fixture(t)

	assert.InDelta(t, 0.1+0.1+0.3+0.3+1, TransceiverCost(topo), 1e-9)
	assert.InDelta(t, 2.4+0.5, SwitchingCost(topo), 1e-9)
	assert.InDelta(t, TransceiverCost(topo)+SwitchingCost(topo), TotalCost(topo), 1e-12)
	assert.InDelta(t, 5.0, CostOf(topo, model.CategorySplitter), 1e-12)
}

func TestEnergy(t *testing.T) {
	topo := fixture(t)

	assert.InDelta(t, (131.0+6.0)*365*24/1e6, TotalEnergyMWh(topo), 1e-9)
	assert.InDelta(t, 6.0*365*24/1e6, EnergyComponentMWh(topo, EnergyOther), 1e-9)
	assert.InDelta(t, 131.0*365*24/1e6, EnergyComponentMWh(topo, EnergySwitching), 1e-9)
}

func TestEfficiencies(t *testing.T) {
	topo := fixture(t)
	required := 21.6

	assert.InDelta(t, 2.0/required, float64(CostEfficiency(topo, 2.0, model.TermMedium)), 1e-9)
	// grey SR x2, grey LR x2; the hub is not counted.
	assert.InDelta(t, required/100, float64(NetworkEfficiency(topo, model.TermMedium)), 1e-9)
	assert.InDelta(t, required/2, float64(FiberUtilization(topo, model.TermMedium)), 1e-9)
}

func TestEfficienciesWithoutDenominator(t *testing.T) {
	topo := core.NewTopology(0)
	require.NoError(t, topo.AddNode(&core.Node{ID: 0, Kind: model.KindRoot}))
	topo.InitializeEquipment()

	assert.True(t, CostEfficiency(topo, 10, model.TermLong).IsInf())
	assert.True(t, NetworkEfficiency(topo, model.TermLong).IsInf())
	assert.True(t, FiberUtilization(topo, model.TermLong).IsInf())

	b, err := json.Marshal(CostEfficiency(topo, 10, model.TermLong))
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestFiberAndSwitchCounts(t *testing.T) {
	topo := fixture(t)
	topo.AllocatePaired(0, 2, 0)

	assert.Equal(t, []EdgeFibers{
		{A: 0, B: 1, Fibers: 2, Occupied: 2},
		{A: 0, B: 2, Fibers: 2, Occupied: 0},
	}, FiberCounts(topo))
	assert.Equal(t, 2, OccupiedFibers(topo))

	counts := SwitchCounts(topo)
	assert.Len(t, counts, 4)
	assert.Equal(t, 1, counts[model.SwitchClassSmall])
	assert.Equal(t, 0, counts[model.SwitchClassExtraLarge])
}

func TestSummarize(t *testing.T) {
	topo := fixture(t)
	s := Summarize(topo, model.TermMedium, 0.64)

	assert.Equal(t, NotApplicable, s.XRCase)
	assert.InDelta(t, 21.6, s.RequiredCapacity, 1e-9)
	assert.InDelta(t, TotalCost(topo), s.TotalCost, 1e-12)
	assert.InDelta(t, s.TotalCost/0.64, s.NormalizedCost, 1e-9)
	assert.InDelta(t, s.TransceiverEnergyMWh+s.SwitchingEnergyMWh, s.TotalEnergyMWh, 1e-9)
	assert.Equal(t, 2, s.Fibers)
	assert.Equal(t, 2, s.OccupiedFibers)
	assert.Equal(t, 1, s.SwitchesSmall)

	zero := Summarize(topo, model.TermMedium, 0)
	assert.Zero(t, zero.NormalizedCost)
	assert.False(t, math.IsNaN(float64(zero.CostEfficiency)))
}
