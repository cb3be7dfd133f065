package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/signalsfoundry/fronthaul-planner/aggregate"
	"github.com/signalsfoundry/fronthaul-planner/demand"
	"github.com/signalsfoundry/fronthaul-planner/dimension"
	"github.com/signalsfoundry/fronthaul-planner/geotype"
	"github.com/signalsfoundry/fronthaul-planner/internal/logging"
	"github.com/signalsfoundry/fronthaul-planner/internal/report"
	"github.com/signalsfoundry/fronthaul-planner/internal/sweep"
	"github.com/signalsfoundry/fronthaul-planner/kb"
	"github.com/signalsfoundry/fronthaul-planner/model"
)

const (
	codeInvalidArgument = "INVALID_ARGUMENT"
	codeNotFound        = "NOT_FOUND"
	codeCanceled        = "CANCELED"
	codeInternal        = "INTERNAL_ERROR"
)

// errInvalid marks request validation failures.
var errInvalid = errors.New("invalid request")

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func (s *Server) fail(c *gin.Context, err error) {
	ctx := c.Request.Context()
	switch {
	case errors.Is(err, errInvalid),
		errors.Is(err, dimension.ErrUnknownArchitecture),
		errors.Is(err, demand.ErrInvalidScenario),
		errors.Is(err, demand.ErrInvalidTerm),
		errors.Is(err, geotype.ErrUnknownGeotype),
		errors.Is(err, kb.ErrUnknownEquipmentType):
		abortWithError(c, http.StatusBadRequest, codeInvalidArgument, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		abortWithError(c, http.StatusServiceUnavailable, codeCanceled, err.Error())
	default:
		logging.FromContext(ctx, s.log).Error(ctx, "request failed", logging.Err(err))
		abortWithError(c, http.StatusInternalServerError, codeInternal, err.Error())
	}
}

// listArchitectures handles GET /api/v1/architectures
func (s *Server) listArchitectures(c *gin.Context) {
	archs := model.Architectures()
	out := make([]ArchitectureInfo, 0, len(archs))
	for _, a := range archs {
		out = append(out, ArchitectureInfo{Name: a, UsesXR: a.UsesXR(), Description: architectureDescriptions[a]})
	}
	c.JSON(http.StatusOK, gin.H{"architectures": out})
}

// getCatalog handles GET /api/v1/catalog
func (s *Server) getCatalog(c *gin.Context) {
	units := s.planner.Catalog.Units()
	c.JSON(http.StatusOK, gin.H{"count": len(units), "equipment": units})
}

// plan handles POST /api/v1/plan
func (s *Server) plan(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, codeInvalidArgument, err.Error())
		return
	}
	point, err := parsePoint(req)
	if err != nil {
		s.fail(c, err)
		return
	}

	cat := s.planner.Catalog.Overlay()
	if point.Alpha > 0 {
		if err := cat.ApplyAlpha(point.Alpha); err != nil {
			s.fail(c, err)
			return
		}
	}
	if point.XRCase != "" {
		if err := cat.ApplyXRCase(point.XRCase); err != nil {
			s.fail(c, err)
			return
		}
	}

	out, err := s.planner.WithCatalog(cat).PlanDetailed(c.Request.Context(), dimension.Request{
		Architecture: point.Architecture,
		Scenario:     point.Scenario,
		Term:         point.Term,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	out.Summary.Alpha = point.Alpha
	if point.XRCase != "" {
		out.Summary.XRCase = string(point.XRCase)
	}

	resp := PlanResponse{
		Summary:     out.Summary,
		Allocations: out.Result.Tally,
		Fibers:      aggregate.FiberCounts(out.Topology),
	}
	if req.IncludeNodes {
		resp.Nodes = report.NodeDetails(out.Topology)
	}
	c.JSON(http.StatusOK, resp)
}

// sweepAlpha handles POST /api/v1/sweeps/alpha
func (s *Server) sweepAlpha(c *gin.Context) {
	var req SweepRequest
	if !s.bindSweep(c, &req) {
		return
	}
	grid, err := s.grid(req)
	if err != nil {
		s.fail(c, err)
		return
	}
	alphas := req.Alphas
	if len(alphas) == 0 {
		alphas = s.opts.Alphas
	}
	if len(alphas) == 0 {
		alphas = kb.AlphaValues
	}
	for _, a := range alphas {
		if a <= 0 {
			s.fail(c, invalidf("alpha must be positive, got %v", a))
			return
		}
	}
	s.runSweep(c, sweep.Alpha(grid, alphas))
}

// sweepXRCases handles POST /api/v1/sweeps/xr-cases
func (s *Server) sweepXRCases(c *gin.Context) {
	var req SweepRequest
	if !s.bindSweep(c, &req) {
		return
	}
	grid, err := s.grid(req)
	if err != nil {
		s.fail(c, err)
		return
	}
	cases := s.opts.XRCases
	if len(req.XRCases) > 0 {
		cases = make([]model.XRCase, 0, len(req.XRCases))
		for _, raw := range req.XRCases {
			xc, err := model.ParseXRCase(raw)
			if err != nil {
				s.fail(c, invalid(err))
				return
			}
			cases = append(cases, xc)
		}
	}
	s.runSweep(c, sweep.XRCases(grid, cases))
}

func (s *Server) bindSweep(c *gin.Context, req *SweepRequest) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil {
		abortWithError(c, http.StatusBadRequest, codeInvalidArgument, err.Error())
		return false
	}
	return true
}

func (s *Server) runSweep(c *gin.Context, points []sweep.Point) {
	ctx := c.Request.Context()
	runner := sweep.NewRunner(s.planner, s.opts.Workers, logging.FromContext(ctx, s.log))
	results, err := runner.Run(ctx, points)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, SweepResponse{Count: len(results), Results: results})
}
