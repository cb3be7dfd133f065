package geotype

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalsfoundry/fronthaul-planner/core"
	"github.com/signalsfoundry/fronthaul-planner/model"
)

func kinds(t *core.Topology) map[model.NodeKind]int {
	out := map[model.NodeKind]int{}
	for _, n := range t.Nodes() {
		out[n.Kind]++
	}
	return out
}

func TestNewBuildsTrees(t *testing.T) {
	cases := []struct {
		scenario     model.Scenario
		nodes        int
		macro, small int
		area         float64
	}{
		{model.DenseUrban, 31, 5, 25, 0.8 * 0.8},
		{model.Urban, 35, 9, 25, 1.6 * 1.6},
		{model.Suburban, 27, 9, 17, 3.2 * 3.2},
		{model.Rural, 11, 5, 5, 12.8 * 12.8},
	}
	for _, tc := range cases {
		t.Run(tc.scenario.String(), func(t *testing.T) {
			g, err := New(tc.scenario, 0)
			require.NoError(t, err)
			require.NoError(t, g.Tree.Validate())

			assert.Len(t, g.Tree.Nodes(), tc.nodes)
			assert.Len(t, g.Tree.Edges(), tc.nodes-1)

			k := kinds(g.Tree)
			assert.Equal(t, 1, k[model.KindRoot])
			assert.Equal(t, tc.macro, k[model.KindMacro])
			assert.Equal(t, tc.small, k[model.KindSmall])
			assert.InDelta(t, tc.area, g.AreaKm2, 1e-9)

			root, err := g.Tree.Root()
			require.NoError(t, err)
			assert.Equal(t, 0, root.ID)
			assert.Equal(t, core.Point{}, root.Position)

			for _, n := range g.Tree.Nodes() {
				_, err := g.Tree.PathToRoot(n.ID)
				assert.NoError(t, err, "node %d", n.ID)
			}
		})
	}
}

func TestUnknownGeotype(t *testing.T) {
	_, err := New(model.Scenario(9), 0)
	assert.True(t, errors.Is(err, ErrUnknownGeotype))
	_, err = Area(model.Scenario(-1))
	assert.True(t, errors.Is(err, ErrUnknownGeotype))
}

func TestMinimumSpanningTreeTieBreak(t *testing.T) {
	// Three co-located points and one further away: the zero-length edges
	// must be chosen in (i, j) order.
	points := []core.Point{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 0}, {X: 10, Y: 0}}
	edges := MinimumSpanningTree(points)
	require.Len(t, edges, 3)
	assert.Equal(t, WeightedEdge{A: 0, B: 1, Weight: 0}, edges[0])
	assert.Equal(t, WeightedEdge{A: 0, B: 2, Weight: 0}, edges[1])
	assert.Equal(t, WeightedEdge{A: 0, B: 3, Weight: 10}, edges[2])
}

func TestMinimumSpanningTreeIsMinimal(t *testing.T) {
	points := []core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 5, Y: 5}}
	var total float64
	for _, e := range MinimumSpanningTree(points) {
		total += e.Weight
	}
	assert.Equal(t, 1.0+1.0+8.0, total)
}

func TestRoutedInsertsCorners(t *testing.T) {
	g, err := New(model.Rural, 0)
	require.NoError(t, err)

	routed, err := g.Routed()
	require.NoError(t, err)
	require.NoError(t, routed.Validate())

	var treeLen, routedLen float64
	for _, e := range g.Tree.Edges() {
		treeLen += e.Distance
	}
	for _, e := range routed.Edges() {
		routedLen += e.Distance
		a, _ := routed.Node(e.A)
		b, _ := routed.Node(e.B)
		assert.False(t, a.Position.IsDiagonalTo(b.Position), "edge %d-%d is diagonal", e.A, e.B)
	}
	assert.Equal(t, treeLen, routedLen)

	corners := kinds(routed)[model.KindCorner]
	assert.Greater(t, corners, 0)
	assert.Len(t, routed.Nodes(), len(g.Tree.Nodes())+corners)

	// The tree used for dimensioning keeps its original shape.
	assert.Zero(t, kinds(g.Tree)[model.KindCorner])
}

func TestFiberSlotsPropagate(t *testing.T) {
	g, err := New(model.Urban, 16)
	require.NoError(t, err)
	assert.Equal(t, 16, g.Tree.FiberSlots())
}
