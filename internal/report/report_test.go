package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/jszwec/csvutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalsfoundry/fronthaul-planner/aggregate"
	"github.com/signalsfoundry/fronthaul-planner/core"
	"github.com/signalsfoundry/fronthaul-planner/dimension"
	"github.com/signalsfoundry/fronthaul-planner/kb"
	"github.com/signalsfoundry/fronthaul-planner/model"
)

func readAll(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteRowsHeaderOnlyWhenEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, nil))

	records := readAll(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, "architecture", records[0][0])
	assert.Contains(t, records[0], "total_cost")
	assert.Contains(t, records[0], "xr_case")
}

func TestWriteRowsRoundTripsPlannedSummaries(t *testing.T) {
	planner := dimension.NewPlanner(kb.NewCatalog(), nil, nil)
	var rows []aggregate.Summary
	for _, arch := range []model.Architecture{model.ArchP2P, model.ArchWDM} {
		s, err := planner.Plan(context.Background(), dimension.Request{
			Architecture: arch, Scenario: model.DenseUrban, Term: model.TermMedium,
		})
		require.NoError(t, err)
		rows = append(rows, s)
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, rows))

	type partial struct {
		Architecture string  `csv:"architecture"`
		Scenario     string  `csv:"scenario"`
		XRCase       string  `csv:"xr_case"`
		TotalCost    float64 `csv:"total_cost"`
		Fibers       int     `csv:"fibers"`
	}
	var got []partial
	require.NoError(t, csvutil.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	for i, r := range got {
		assert.Equal(t, string(rows[i].Architecture), r.Architecture)
		assert.Equal(t, "Dense Urban", r.Scenario)
		assert.Equal(t, aggregate.NotApplicable, r.XRCase)
		assert.InDelta(t, rows[i].TotalCost, r.TotalCost, 1e-9)
		assert.Equal(t, rows[i].Fibers, r.Fibers)
	}
}

func detailTopology(t *testing.T) *core.Topology {
	t.Helper()
	topo := core.NewTopology(4)
	require.NoError(t, topo.AddNode(&core.Node{ID: 0, Kind: model.KindRoot}))
	require.NoError(t, topo.AddNode(&core.Node{ID: 1, Kind: model.KindMacro, Position: core.Point{X: 1}}))
	_, err := topo.AddEdge(0, 1, 1)
	require.NoError(t, err)
	topo.InitializeEquipment()

	n1, _ := topo.Node(1)
	n1.Install(
		model.Deployed{Type: model.Grey25GSR, Category: model.CategoryGreySR, DataRate: 25, HasDataRate: true, NormalizedPrice: 0.1, MaxPower: 1},
		model.Deployed{Type: model.SwitchSmall, Category: model.CategorySwitch, NormalizedPrice: 2.4},
	)
	n1.AddOther(1)
	n1.AddSwitching(125)
	topo.AllocatePaired(0, 1, 25)
	return topo
}

func TestWriteNodeDetails(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNodeDetails(&buf, detailTopology(t)))

	records := readAll(t, &buf)
	require.Len(t, records, 3)
	assert.Equal(t, []string{
		"node_id", "node_type", "category", "equipment", "data_rate",
		"normalized_price", "max_power", "other_consumption", "switching_consumption",
	}, records[0])
	assert.Equal(t, []string{"1", "macro", "grey_sr", string(model.Grey25GSR)}, records[1][:4])
	assert.Equal(t, "switch", records[2][2])
	assert.Equal(t, "", records[2][4], "switches carry no data rate")
	assert.Equal(t, "125", records[2][8])
}

func TestWriteFiberCounts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFiberCounts(&buf, detailTopology(t)))

	records := readAll(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"a", "b", "fibers", "occupied"}, records[0])
	assert.Equal(t, []string{"0", "1", "2", "2"}, records[1])
}
