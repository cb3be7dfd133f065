// Package api exposes the planner over HTTP.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/fronthaul-planner/dimension"
	"github.com/signalsfoundry/fronthaul-planner/internal/logging"
	"github.com/signalsfoundry/fronthaul-planner/internal/observability"
	"github.com/signalsfoundry/fronthaul-planner/internal/sweep"
	"github.com/signalsfoundry/fronthaul-planner/model"
)

// Options tunes the server. Zero values fall back to the package defaults.
type Options struct {
	CORSOrigins []string
	Workers     int
	Defaults    sweep.Grid
	Alphas      []float64
	XRCases     []model.XRCase
	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
}

// Server serves the planner API.
type Server struct {
	planner *dimension.Planner
	metrics *observability.PlannerCollector
	log     logging.Logger
	opts    Options

	engine  *gin.Engine
	handler http.Handler
}

// NewServer builds the router. metrics may be nil, in which case /metrics
// and request metrics are disabled.
func NewServer(planner *dimension.Planner, metrics *observability.PlannerCollector, log logging.Logger, opts Options) *Server {
	if log == nil {
		log = logging.Noop()
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if len(opts.Defaults.Architectures) == 0 {
		opts.Defaults.Architectures = model.Architectures()
	}
	if len(opts.Defaults.Scenarios) == 0 {
		opts.Defaults.Scenarios = model.Scenarios()
	}
	if len(opts.Defaults.Terms) == 0 {
		opts.Defaults.Terms = model.Terms()
	}
	if len(opts.XRCases) == 0 {
		opts.XRCases = []model.XRCase{model.XRBest, model.XRWorst}
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}

	s := &Server{planner: planner, metrics: metrics, log: log, opts: opts}
	s.engine = s.routes()
	s.handler = cors.New(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	}).Handler(s.engine)
	return s
}

// Handler returns the CORS-wrapped router.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(recovery(s.log))
	if s.metrics != nil {
		router.Use(s.metrics.GinMiddleware())
	}
	router.Use(requestLogger(s.log))
	router.Use(tracing(s.opts.TracerProvider))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if s.metrics != nil {
		router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	api := router.Group("/api/v1")
	{
		api.GET("/architectures", s.listArchitectures)
		api.GET("/catalog", s.getCatalog)
		api.POST("/plan", s.plan)
		api.POST("/sweeps/alpha", s.sweepAlpha)
		api.POST("/sweeps/xr-cases", s.sweepXRCases)
	}

	router.NoRoute(func(c *gin.Context) {
		abortWithError(c, http.StatusNotFound, codeNotFound, "Not found")
	})
	return router
}
