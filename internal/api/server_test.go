package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/signalsfoundry/fronthaul-planner/dimension"
	"github.com/signalsfoundry/fronthaul-planner/internal/observability"
	"github.com/signalsfoundry/fronthaul-planner/internal/sweep"
	"github.com/signalsfoundry/fronthaul-planner/kb"
	"github.com/signalsfoundry/fronthaul-planner/model"
)

func newTestServer(t *testing.T) (*Server, *kb.Catalog) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	collector, err := observability.NewPlannerCollector(prometheus.NewRegistry())
	require.NoError(t, err)
	cat := kb.NewCatalog()
	planner := dimension.NewPlanner(cat, nil, collector)
	srv := NewServer(planner, collector, nil, Options{
		Workers: 2,
		Defaults: sweep.Grid{
			Architectures: []model.Architecture{model.ArchP2P, model.ArchP2MP},
			Scenarios:     []model.Scenario{model.DenseUrban},
			Terms:         []model.Term{model.TermMedium},
		},
		Alphas:      []float64{1, 2},
		CORSOrigins: []string{"https://planner.example"},
	})
	return srv, cat
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func TestHealthSetsRequestID(t *testing.T) {
	srv, _ := newTestServer(t)
	rr := do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rr = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	assert.Equal(t, "req-123", rr.Header().Get(RequestIDHeader))
}

func TestListArchitecturesAndCatalog(t *testing.T) {
	srv, cat := newTestServer(t)

	rr := do(t, srv, http.MethodGet, "/api/v1/architectures", "")
	require.Equal(t, http.StatusOK, rr.Code)
	archs := decode[struct {
		Architectures []ArchitectureInfo `json:"architectures"`
	}](t, rr)
	require.Len(t, archs.Architectures, 5)
	assert.Equal(t, model.ArchP2P, archs.Architectures[0].Name)
	assert.True(t, archs.Architectures[3].UsesXR)

	rr = do(t, srv, http.MethodGet, "/api/v1/catalog", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[struct {
		Count int `json:"count"`
	}](t, rr)
	assert.Equal(t, len(cat.Types()), body.Count)
}

func TestPlan(t *testing.T) {
	srv, cat := newTestServer(t)
	rr := do(t, srv, http.MethodPost, "/api/v1/plan",
		`{"architecture":"p2p","scenario":"dense_urban","term":"Medium","include_nodes":true}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decode[PlanResponse](t, rr)
	assert.Equal(t, model.ArchP2P, resp.Summary.Architecture)
	assert.Equal(t, model.DenseUrban, resp.Summary.Scenario)
	assert.Equal(t, "N/A", resp.Summary.XRCase)
	assert.NotEmpty(t, resp.Summary.RunID)
	assert.Positive(t, resp.Summary.TotalCost)
	assert.Positive(t, resp.Allocations.Allocated)
	assert.NotEmpty(t, resp.Fibers)
	assert.NotEmpty(t, resp.Nodes)

	want, err := dimension.NewPlanner(cat, nil, nil).Plan(t.Context(), dimension.Request{
		Architecture: model.ArchP2P, Scenario: model.DenseUrban, Term: model.TermMedium,
	})
	require.NoError(t, err)
	assert.InDelta(t, want.TotalCost, resp.Summary.TotalCost, 1e-9)
}

func TestPlanWithXRCaseLeavesCatalogUntouched(t *testing.T) {
	srv, cat := newTestServer(t)
	before, err := cat.Lookup(model.XR100G)
	require.NoError(t, err)

	rr := do(t, srv, http.MethodPost, "/api/v1/plan",
		`{"architecture":"P2MP","scenario":"Urban","term":"Long","xr_case":"worst","alpha":1.5}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := decode[PlanResponse](t, rr)
	assert.Equal(t, "Worst", resp.Summary.XRCase)
	assert.Equal(t, 1.5, resp.Summary.Alpha)
	assert.Empty(t, resp.Nodes)

	after, err := cat.Lookup(model.XR100G)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestPlanRejectsBadInput(t *testing.T) {
	srv, _ := newTestServer(t)
	cases := map[string]string{
		"malformed":    `{"architecture":`,
		"missing":      `{"architecture":"P2P"}`,
		"architecture": `{"architecture":"RING","scenario":"Urban","term":"Long"}`,
		"scenario":     `{"architecture":"P2P","scenario":"Lunar","term":"Long"}`,
		"term":         `{"architecture":"P2P","scenario":"Urban","term":"forever"}`,
		"xr case":      `{"architecture":"P2MP","scenario":"Urban","term":"Long","xr_case":"typical"}`,
		"alpha":        `{"architecture":"P2MP","scenario":"Urban","term":"Long","alpha":-1}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rr := do(t, srv, http.MethodPost, "/api/v1/plan", body)
			assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
			assert.Equal(t, codeInvalidArgument, decode[errorBody](t, rr).Error.Code)
		})
	}
}

func TestSweepAlphaUsesDefaults(t *testing.T) {
	srv, _ := newTestServer(t)
	rr := do(t, srv, http.MethodPost, "/api/v1/sweeps/alpha", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decode[SweepResponse](t, rr)
	require.Equal(t, 4, resp.Count)
	assert.Equal(t, 1.0, resp.Results[0].Alpha)
	assert.Equal(t, 2.0, resp.Results[3].Alpha)
	assert.Less(t, resp.Results[1].TotalCost, resp.Results[3].TotalCost, "P2MP cost grows with alpha")
}

func TestSweepXRCases(t *testing.T) {
	srv, _ := newTestServer(t)
	rr := do(t, srv, http.MethodPost, "/api/v1/sweeps/xr-cases",
		`{"architectures":["P2P","P2MP-WP"],"scenarios":["Rural"],"terms":["Medium"],"xr_cases":["best","worst"]}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decode[SweepResponse](t, rr)
	require.Equal(t, 3, resp.Count)
	assert.Equal(t, "N/A", resp.Results[0].XRCase)
	assert.Equal(t, "Best", resp.Results[1].XRCase)
	assert.Equal(t, "Worst", resp.Results[2].XRCase)

	rr = do(t, srv, http.MethodPost, "/api/v1/sweeps/xr-cases", `{"xr_cases":["typical"]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUnknownRouteAndMetrics(t *testing.T) {
	srv, _ := newTestServer(t)
	rr := do(t, srv, http.MethodGet, "/api/v1/nothing", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, codeNotFound, decode[errorBody](t, rr).Error.Code)

	do(t, srv, http.MethodPost, "/api/v1/plan", `{"architecture":"WDM","scenario":"Suburban","term":"Medium"}`)

	rr = do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `planner_http_requests_total{code="404",method="GET",route="unmatched"} 1`)
	assert.Contains(t, body, `planner_runs_total{architecture="WDM",scenario="Suburban",status="ok",term="Medium"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/plan", bytes.NewReader(nil))
	req.Header.Set("Origin", "https://planner.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	assert.Equal(t, "https://planner.example", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryReturnsErrorBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(recovery(nil))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decode[errorBody](t, rr)
	assert.Equal(t, codeInternal, body.Error.Code)
	assert.Equal(t, "boom", body.Error.Message)
}

func TestRequestSpanParentsPlannerRun(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	planner := dimension.NewPlanner(kb.NewCatalog(), nil, nil)
	planner.Tracer = tp.Tracer("test")
	srv := NewServer(planner, nil, nil, Options{TracerProvider: tp})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/plan",
		strings.NewReader(`{"architecture":"P2P","scenario":"Rural","term":"Medium"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, "trace-req")
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var server, run sdktrace.ReadOnlySpan
	for _, s := range sr.Ended() {
		switch s.Name() {
		case "HTTP POST /api/v1/plan":
			server = s
		case "dimension.Run":
			run = s
		}
	}
	require.NotNil(t, server)
	require.NotNil(t, run)
	assert.Equal(t, server.SpanContext().SpanID(), run.Parent().SpanID())
	assert.Contains(t, server.Attributes(), attribute.String("request_id", "trace-req"))
	assert.Contains(t, server.Attributes(), attribute.Int("http.response.status_code", http.StatusOK))
}
