package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/signalsfoundry/fronthaul-planner/dimension"
	"github.com/signalsfoundry/fronthaul-planner/internal/api"
	"github.com/signalsfoundry/fronthaul-planner/internal/config"
	"github.com/signalsfoundry/fronthaul-planner/internal/logging"
	"github.com/signalsfoundry/fronthaul-planner/internal/observability"
	"github.com/signalsfoundry/fronthaul-planner/internal/sweep"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.NewFromEnv().Error(context.Background(), "failed to load config", logging.Err(err))
		os.Exit(1)
	}
	if *addr != "" {
		cfg.API.Addr = *addr
	}
	log := logging.New(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lis, err := net.Listen("tcp", cfg.API.Addr)
	if err != nil {
		log.Error(ctx, "failed to listen", logging.String("addr", cfg.API.Addr), logging.Err(err))
		os.Exit(1)
	}
	if err := run(ctx, cfg, log, lis); err != nil {
		log.Error(ctx, "planner API exited", logging.Err(err))
		os.Exit(1)
	}
}

// run serves the API on lis until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, log logging.Logger, lis net.Listener) error {
	if log == nil {
		log = logging.Noop()
	}

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Tracing, log)
	if err != nil {
		return err
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	collector, err := observability.NewPlannerCollector(nil)
	if err != nil {
		return err
	}

	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}
	unwatch := collector.WatchCatalog(cat)
	defer unwatch()

	planner := dimension.NewPlanner(cat, log, collector)
	planner.Options = cfg.PlannerOptions()
	planner.FiberSlots = cfg.Planner.FiberSlots

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := api.NewServer(planner, collector, log, api.Options{
		CORSOrigins: cfg.API.CORSOrigins,
		Workers:     cfg.Sweep.Workers,
		Defaults: sweep.Grid{
			Architectures: cfg.Sweep.Architectures,
			Scenarios:     cfg.Sweep.Scenarios,
			Terms:         cfg.Sweep.Terms,
		},
		Alphas:  cfg.Sweep.Alphas,
		XRCases: cfg.Sweep.XRCases,
	})

	httpSrv := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	metricsSrv := serveMetrics(cfg.Metrics.Addr, collector, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting planner API", logging.String("addr", lis.Addr().String()))
		if err := httpSrv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	log.Info(context.Background(), "shutting down planner API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func serveMetrics(addr string, collector *observability.PlannerCollector, log logging.Logger) *http.Server {
	if addr == "" || collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.Err(err))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
