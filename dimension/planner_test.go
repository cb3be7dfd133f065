package dimension

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/signalsfoundry/fronthaul-planner/kb"
	"github.com/signalsfoundry/fronthaul-planner/model"
)

type runObservation struct {
	arch, scenario, term, status string
}

type fakeRecorder struct {
	mu      sync.Mutex
	runs    []runObservation
	allocs  map[string]int
	results int
}

func (f *fakeRecorder) ObserveRun(arch, scenario, term, status string, _ float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, runObservation{arch, scenario, term, status})
}

func (f *fakeRecorder) ObserveAllocations(counts map[string]int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.allocs == nil {
		f.allocs = map[string]int{}
	}
	for k, v := range counts {
		f.allocs[k] += v
	}
}

func (f *fakeRecorder) ObserveResult(string, string, string, float64, float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results++
}

func tracedPlanner(t *testing.T) (*Planner, *tracetest.SpanRecorder, *fakeRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	rec := &fakeRecorder{}
	p := NewPlanner(kb.NewCatalog(), nil, rec)
	p.Tracer = tp.Tracer("test")
	return p, sr, rec
}

func attr(attrs []attribute.KeyValue, key string) (string, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value.Emit(), true
		}
	}
	return "", false
}

func TestPlanDenseUrbanMedium(t *testing.T) {
	p, _, rec := tracedPlanner(t)

	for _, arch := range model.Architectures() {
		out, err := p.PlanDetailed(context.Background(), Request{
			Architecture: arch,
			Scenario:     model.DenseUrban,
			Term:         model.TermMedium,
		})
		require.NoError(t, err, arch)

		s := out.Summary
		assert.Equal(t, arch, s.Architecture)
		assert.Equal(t, model.DenseUrban, s.Scenario)
		assert.NotEmpty(t, s.RunID)
		assert.Greater(t, s.TotalCost, 0.0, arch)
		assert.Greater(t, s.TotalEnergyMWh, 0.0, arch)
		assert.GreaterOrEqual(t, s.TransceiverCost, 0.0)
		assert.GreaterOrEqual(t, s.SwitchingCost, 0.0)
		assert.InDelta(t, 0.64, s.AreaKm2, 1e-12)
		assert.InDelta(t, s.TotalCost/0.64, s.NormalizedCost, 1e-9)

		root, err := out.Topology.Root()
		require.NoError(t, err)
		assert.Positive(t, root.Count(model.CategorySwitch), arch)
		for _, n := range out.Topology.Nodes() {
			assert.GreaterOrEqual(t, n.OtherConsumption, 0.0)
			assert.GreaterOrEqual(t, n.SwitchingConsumption, 0.0)
		}
	}

	assert.Len(t, rec.runs, 5)
	assert.Equal(t, 5, rec.results)
	for _, r := range rec.runs {
		assert.Equal(t, "ok", r.status)
		assert.Equal(t, "Dense Urban", r.scenario)
	}
	assert.Positive(t, rec.allocs["allocated"])
}

func TestPlanIsDeterministic(t *testing.T) {
	p := NewPlanner(kb.NewCatalog(), nil, nil)
	req := Request{Architecture: model.ArchWDMWP, Scenario: model.Urban, Term: model.TermLong}

	a, err := p.Plan(context.Background(), req)
	require.NoError(t, err)
	b, err := p.Plan(context.Background(), req)
	require.NoError(t, err)

	a.RunID, b.RunID = "", ""
	assert.Equal(t, a, b)
}

func TestPlanRejectsBadRequests(t *testing.T) {
	p := NewPlanner(kb.NewCatalog(), nil, nil)

	_, err := p.Plan(context.Background(), Request{Architecture: "RING", Scenario: model.Rural, Term: model.TermLong})
	assert.ErrorIs(t, err, ErrUnknownArchitecture)

	_, err = p.Plan(context.Background(), Request{Architecture: model.ArchP2P, Scenario: model.Rural, Term: model.TermShort})
	assert.Error(t, err)
}

func TestRunSpan(t *testing.T) {
	p, sr, _ := tracedPlanner(t)
	topo := tree(t)
	withRadios(t, topo, p.Catalog, 1, model.Macro3To7GHz)

	res, err := p.Run(context.Background(), model.ArchP2P, topo, model.TermMedium)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Tally.Allocated)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "dimension.Run", spans[0].Name())
	got, ok := attr(spans[0].Attributes(), "planner.run_id")
	require.True(t, ok)
	assert.Equal(t, res.RunID, got)
	scenario, _ := attr(spans[0].Attributes(), "planner.scenario")
	assert.Equal(t, "custom", scenario)
}

func TestRunErrorMarksSpan(t *testing.T) {
	p, sr, rec := tracedPlanner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	topo := tree(t)
	withRadios(t, topo, p.Catalog, 1, model.Macro3To7GHz)
	_, err := p.Run(ctx, model.ArchWDM, topo, model.TermMedium)
	require.ErrorIs(t, err, context.Canceled)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	require.Len(t, rec.runs, 1)
	assert.Equal(t, "error", rec.runs[0].status)
}

func TestWithCatalogUsesOverlay(t *testing.T) {
	base := NewPlanner(kb.NewCatalog(), nil, nil)
	overlay := base.Catalog.Overlay()
	require.NoError(t, overlay.ApplyXRCase(model.XRWorst))

	req := Request{Architecture: model.ArchP2MP, Scenario: model.Suburban, Term: model.TermMedium}
	cheap, err := base.Plan(context.Background(), req)
	require.NoError(t, err)
	dear, err := base.WithCatalog(overlay).Plan(context.Background(), req)
	require.NoError(t, err)

	assert.Greater(t, dear.TotalCost, cheap.TotalCost)
	assert.Equal(t, cheap.Fibers, dear.Fibers)
}
