package dimension

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalsfoundry/fronthaul-planner/kb"
	"github.com/signalsfoundry/fronthaul-planner/model"
)

func TestRegistry(t *testing.T) {
	all := All()
	require.Len(t, all, 5)
	for i, arch := range model.Architectures() {
		assert.Equal(t, arch, all[i].Architecture())
		s, err := For(arch)
		require.NoError(t, err)
		assert.Equal(t, arch, s.Architecture())
	}

	_, err := For("RING")
	assert.True(t, errors.Is(err, ErrUnknownArchitecture))
}

func TestP2P(t *testing.T) {
	cat := kb.NewCatalog()
	topo := tree(t)
	withRadios(t, topo, cat, 1, model.Macro3To7GHz)
	withRadios(t, topo, cat, 2, model.Small24To46GHz)
	env := newEnv(t, cat, topo)

	require.NoError(t, P2P{}.Dimension(context.Background(), env))

	for _, n := range []int{1, 2} {
		node, _ := topo.Node(n)
		assert.Equal(t, 2, countType(node, model.Grey25GSR), "node %d", n)
		assert.Equal(t, 1, countType(node, model.Grey25GLR), "node %d", n)
		assert.Equal(t, 1, countType(node, model.SwitchSmall), "node %d", n)
		assert.InDelta(t, 3.5, node.OtherConsumption, 1e-9)
		// 2 x 25/2 + 25
		assert.Equal(t, 137.0, node.SwitchingConsumption)
	}

	root := env.Root()
	assert.Equal(t, 2, countType(root, model.Grey25GLR))
	assert.Equal(t, 1, countType(root, model.SwitchSmall))
	assert.InDelta(t, 3.0, root.OtherConsumption, 1e-9)
	assert.Equal(t, 137.0, root.SwitchingConsumption)

	assert.Len(t, slotsOf(t, topo, 0, 1), 4)
	assert.Len(t, slotsOf(t, topo, 1, 2), 2)
	assert.Empty(t, slotsOf(t, topo, 0, 3))
	for _, s := range slotsOf(t, topo, 0, 1) {
		assert.Equal(t, 25.0, s[0])
	}
	assert.Equal(t, Tally{Allocated: 3}, env.Tally)

	corner, _ := topo.Node(3)
	assert.Empty(t, corner.Equipment)
}

func TestP2PInterpolatedRootPower(t *testing.T) {
	cat := kb.NewCatalog()
	topo := tree(t)
	withRadios(t, topo, cat, 1, model.Macro3To7GHz)
	withRadios(t, topo, cat, 2, model.Small24To46GHz)
	env, err := NewEnv(cat, topo, model.TermMedium, nil, Options{InterpolatedRootPower: true})
	require.NoError(t, err)

	require.NoError(t, P2P{}.Dimension(context.Background(), env))

	assert.InDelta(t, 140.5, env.Root().SwitchingConsumption, 1e-9)
	n1, _ := topo.Node(1)
	assert.Equal(t, 137.0, n1.SwitchingConsumption)
}

func TestWDM(t *testing.T) {
	cat := kb.NewCatalog()
	topo := tree(t)
	n1 := withRadios(t, topo, cat, 1, model.Macro3To7GHz, model.MacroSubGHz)
	n2 := withRadios(t, topo, cat, 2, model.Small24To46GHz)
	env := newEnv(t, cat, topo)

	require.NoError(t, WDM{}.Dimension(context.Background(), env))

	assert.Equal(t, 2, countType(n1, model.Grey25GSR))
	assert.Equal(t, 2, countType(n1, model.Grey10GSR))
	assert.Equal(t, 1, countType(n1, model.WDM25GLR))
	assert.Equal(t, 1, countType(n1, model.WDM10GLR))
	assert.Equal(t, 1, countType(n1, model.WDMMux))
	assert.Equal(t, 1, countType(n1, model.Transponder))
	assert.InDelta(t, 8.6, n1.OtherConsumption, 1e-9)
	assert.Zero(t, n1.SwitchingConsumption)

	assert.Equal(t, 1, countType(n2, model.WDM25GLR))
	assert.Equal(t, 1, countType(n2, model.Transponder))
	assert.InDelta(t, 5.0, n2.OtherConsumption, 1e-9)

	root := env.Root()
	assert.Equal(t, 3, root.Count(model.CategoryWDMTransceiver))
	assert.Equal(t, 2, countType(root, model.WDMMux))
	assert.Equal(t, 1, countType(root, model.Transponder))
	assert.Equal(t, 1, countType(root, model.SwitchSmall))
	assert.InDelta(t, 13.6, root.OtherConsumption, 1e-9)
	// 50+25+20+10+50+25 Gbps at the root
	assert.Equal(t, 181.0, root.SwitchingConsumption)

	// every hop gets its own fibre pair
	hop01 := slotsOf(t, topo, 0, 1)
	require.Len(t, hop01, 4)
	assert.InDelta(t, 21.6, hop01[0][0], 1e-9)
	assert.InDelta(t, 4.32, hop01[0][1], 1e-9)
	assert.Zero(t, hop01[0][2])
	hop12 := slotsOf(t, topo, 1, 2)
	require.Len(t, hop12, 2)
	assert.InDelta(t, 21.6, hop12[0][0], 1e-9)
	assert.Zero(t, hop12[0][1])
	assert.Empty(t, slotsOf(t, topo, 0, 3))
}

func TestWDMPreaggregated(t *testing.T) {
	cat := kb.NewCatalog()
	topo := tree(t)
	n1 := withRadios(t, topo, cat, 1, model.Macro3To7GHz, model.MacroSubGHz, model.Macro1To3GHz)
	env := newEnv(t, cat, topo)

	require.NoError(t, WDM{Preaggregate: true}.Dimension(context.Background(), env))

	assert.Equal(t, 2, countType(n1, model.Grey10GSR))
	assert.Equal(t, 2, countType(n1, model.Grey25GSR))
	assert.Equal(t, 2, countType(n1, model.WDM25GLR))
	assert.Equal(t, 1, countType(n1, model.SwitchSmall))
	assert.Equal(t, 1, countType(n1, model.WDMMux))
	assert.Equal(t, 1, countType(n1, model.Transponder))
	assert.InDelta(t, 11.0, n1.OtherConsumption, 1e-9)
	assert.Equal(t, 125.0, n1.SwitchingConsumption)

	root := env.Root()
	assert.Equal(t, 4, countType(root, model.Grey25GSR))
	assert.Equal(t, 2, countType(root, model.WDM25GLR))
	assert.Equal(t, 1, countType(root, model.Transponder))
	assert.InDelta(t, 9.0, root.OtherConsumption, 1e-9)
	assert.Equal(t, 169.0, root.SwitchingConsumption)

	// nodes without radios still get a fibre pair per hop
	assert.Len(t, slotsOf(t, topo, 0, 3), 2)
	assert.Len(t, slotsOf(t, topo, 1, 2), 2)
	assert.Len(t, slotsOf(t, topo, 0, 1), 4)
}

func TestP2MP(t *testing.T) {
	cat := kb.NewCatalog()
	topo := tree(t)
	n1 := withRadios(t, topo, cat, 1, model.Macro3To7GHz, model.MacroSubGHz)
	env := newEnv(t, cat, topo)

	require.NoError(t, P2MP{}.Dimension(context.Background(), env))

	assert.Equal(t, 4, countType(n1, model.Grey25GSR))
	assert.Equal(t, 1, countType(n1, model.MC100G4x25))
	assert.Equal(t, 1, countType(n1, model.XR50G))
	assert.Zero(t, n1.Count(model.CategorySwitch))
	assert.InDelta(t, 9.5, n1.OtherConsumption, 1e-9)

	root := env.Root()
	assert.Equal(t, 1, countType(root, model.XRHub100G))
	assert.Equal(t, 1, countType(root, model.SwitchSmall))
	assert.InDelta(t, 3.5, root.OtherConsumption, 1e-9)
	assert.Equal(t, 156.0, root.SwitchingConsumption)

	hop01 := slotsOf(t, topo, 0, 1)
	require.Len(t, hop01, 4)
	assert.Equal(t, 50.0, hop01[0][0])
	assert.Equal(t, 50.0, hop01[1][0])
	assert.Zero(t, hop01[2][0])
	// empty nodes still claim a pair, nothing lit
	assert.Len(t, slotsOf(t, topo, 0, 3), 2)
	assert.Equal(t, 4, env.Tally.Allocated)
}

func TestP2MPPreaggregated(t *testing.T) {
	cat := kb.NewCatalog()
	topo := tree(t)
	n1 := withRadios(t, topo, cat, 1, model.Macro3To7GHz, model.MacroSubGHz, model.Macro1To3GHz)
	env := newEnv(t, cat, topo)

	require.NoError(t, P2MP{Preaggregate: true}.Dimension(context.Background(), env))

	assert.Equal(t, 2, countType(n1, model.Grey10GSR))
	assert.Equal(t, 4, countType(n1, model.Grey25GSR))
	assert.Equal(t, 1, countType(n1, model.SwitchSmall))
	assert.Equal(t, 1, countType(n1, model.MC100G4x25))
	assert.Equal(t, 1, countType(n1, model.XR50G))
	assert.InDelta(t, 13.5, n1.OtherConsumption, 1e-9)
	assert.Equal(t, 125.0, n1.SwitchingConsumption)

	assert.Equal(t, 1, countType(env.Root(), model.XRHub100G))
}

func TestDimensionHonoursCancellation(t *testing.T) {
	cat := kb.NewCatalog()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, s := range All() {
		topo := tree(t)
		withRadios(t, topo, cat, 1, model.Macro3To7GHz)
		err := s.Dimension(ctx, newEnv(t, cat, topo))
		assert.ErrorIs(t, err, context.Canceled, s.Architecture())
	}
}

func TestNewEnvRejectsBadTopology(t *testing.T) {
	cat := kb.NewCatalog()
	topo := tree(t)
	require.NoError(t, topo.RemoveEdge(0, 3))

	_, err := NewEnv(cat, topo, model.TermMedium, nil, Options{})
	assert.Error(t, err)

	_, err = NewEnv(nil, tree(t), model.TermMedium, nil, Options{})
	assert.Error(t, err)
}
