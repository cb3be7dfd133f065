package dimension

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/signalsfoundry/fronthaul-planner/core"
	"github.com/signalsfoundry/fronthaul-planner/kb"
	"github.com/signalsfoundry/fronthaul-planner/model"
)

// tree: root 0, macro 1 under root, small 2 under macro, corner 3 under root.
func tree(t *testing.T) *core.Topology {
	t.Helper()
	topo := core.NewTopology(core.DefaultFiberSlots)
	for _, n := range []*core.Node{
		{ID: 0, Kind: model.KindRoot},
		{ID: 1, Kind: model.KindMacro, Position: core.Point{X: 1}},
		{ID: 2, Kind: model.KindSmall, Position: core.Point{X: 2}},
		{ID: 3, Kind: model.KindCorner, Position: core.Point{Y: 1}},
	} {
		require.NoError(t, topo.AddNode(n))
	}
	for _, e := range [][2]int{{0, 1}, {1, 2}, {0, 3}} {
		_, err := topo.AddEdge(e[0], e[1], 1)
		require.NoError(t, err)
	}
	topo.InitializeEquipment()
	return topo
}

func withRadios(t *testing.T, topo *core.Topology, cat *kb.Catalog, id int, radios ...model.RadioType) *core.Node {
	t.Helper()
	n, ok := topo.Node(id)
	require.True(t, ok)
	for _, r := range radios {
		spec, err := cat.Radio(r)
		require.NoError(t, err)
		n.Radio = append(n.Radio, spec)
	}
	return n
}

func newEnv(t *testing.T, cat *kb.Catalog, topo *core.Topology) *Env {
	t.Helper()
	env, err := NewEnv(cat, topo, model.TermMedium, nil, Options{})
	require.NoError(t, err)
	return env
}

func countType(n *core.Node, id model.EquipmentType) int {
	c := 0
	for _, d := range n.Equipment {
		if d.Type == id {
			c++
		}
	}
	return c
}

func slotsOf(t *testing.T, topo *core.Topology, a, b int) [][]float64 {
	t.Helper()
	e, ok := topo.Edge(a, b)
	require.True(t, ok)
	out := make([][]float64, 0, len(e.Fibers))
	for _, f := range e.Fibers {
		out = append(out, f.Slots)
	}
	return out
}
