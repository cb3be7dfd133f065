package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/signalsfoundry/fronthaul-planner/aggregate"
	"github.com/signalsfoundry/fronthaul-planner/core"
	"github.com/signalsfoundry/fronthaul-planner/demand"
	"github.com/signalsfoundry/fronthaul-planner/dimension"
	"github.com/signalsfoundry/fronthaul-planner/geotype"
	"github.com/signalsfoundry/fronthaul-planner/internal/config"
	"github.com/signalsfoundry/fronthaul-planner/internal/logging"
	"github.com/signalsfoundry/fronthaul-planner/internal/observability"
	"github.com/signalsfoundry/fronthaul-planner/internal/report"
	"github.com/signalsfoundry/fronthaul-planner/internal/sweep"
	"github.com/signalsfoundry/fronthaul-planner/model"
)

const usage = `usage: planner <command> [flags]

commands:
  run        dimension one architecture on one geotype (or a topology file)
  compare    every architecture over the configured scenarios and terms
  alpha      XR price sensitivity sweep
  xr-cases   best/worst XR assumptions sweep
  topology   write a geotype tree as JSON

run "planner <command> -h" for the flags of a command.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// env is what every sub-command shares once flags and config are read.
type env struct {
	cfg     *config.Config
	log     logging.Logger
	planner *dimension.Planner
	stdout  io.Writer
	stderr  io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var cmd func(context.Context, *env, []string) error
	switch args[0] {
	case "run":
		cmd = runPlan
	case "compare":
		cmd = runCompare
	case "alpha":
		cmd = runAlpha
	case "xr-cases":
		cmd = runXRCases
	case "topology":
		cmd = runTopology
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file")
	rest, err := splitConfigFlag(fs, args[1:])
	if err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	log := logging.NewWithWriter(cfg.Logging, stderr)

	shutdown, err := observability.InitTracing(ctx, cfg.Tracing, log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.Err(err))
		return 1
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdown, log)

	cat, err := cfg.Catalog()
	if err != nil {
		log.Error(ctx, "failed to build catalog", logging.Err(err))
		return 1
	}
	planner := dimension.NewPlanner(cat, log, nil)
	planner.Options = cfg.PlannerOptions()
	planner.FiberSlots = cfg.Planner.FiberSlots

	e := &env{cfg: cfg, log: log, planner: planner, stdout: stdout, stderr: stderr}
	if err := cmd(ctx, e, rest); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		var ue usageError
		if errors.As(err, &ue) {
			fmt.Fprintf(stderr, "%s: %v\n", args[0], err)
			return 2
		}
		log.Error(ctx, "command failed", logging.String("command", args[0]), logging.Err(err))
		return 1
	}
	return 0
}

// splitConfigFlag pulls -config out of args and returns the remainder so
// each sub-command can parse its own flags.
func splitConfigFlag(fs *flag.FlagSet, args []string) ([]string, error) {
	var own, rest []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "-config" || a == "--config":
			own = append(own, a)
			if i+1 < len(args) {
				i++
				own = append(own, args[i])
			}
		case strings.HasPrefix(a, "-config=") || strings.HasPrefix(a, "--config="):
			own = append(own, a)
		default:
			rest = append(rest, a)
		}
	}
	return rest, fs.Parse(own)
}

type usageError struct{ err error }

func (u usageError) Error() string { return u.err.Error() }
func (u usageError) Unwrap() error { return u.err }

func parseFlags(fs *flag.FlagSet, args []string, stderr io.Writer) error {
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return usageError{err}
	}
	return nil
}

func runPlan(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	arch := fs.String("arch", "P2P", "architecture: P2P, WDM, WDM-WP, P2MP, P2MP-WP")
	scenario := fs.String("scenario", "Dense Urban", "geotype: Dense Urban, Urban, Suburban, Rural")
	term := fs.String("term", "Medium", "planning term: Medium or Long")
	alpha := fs.Float64("alpha", 0, "price XR optics at alpha times grey LR (0 keeps catalog prices)")
	xrCase := fs.String("xr-case", "", "apply best or worst XR assumptions")
	topoPath := fs.String("topology", "", "dimension a JSON topology instead of the geotype tree")
	area := fs.Float64("area", 0, "service area in km² for -topology runs")
	format := fs.String("format", "text", "output format: text, json or csv")
	details := fs.String("details", e.cfg.Output.NodeDetailsCSV, "write per-node equipment CSV to this path")
	if err := parseFlags(fs, args, e.stderr); err != nil {
		return err
	}

	point, err := parsePoint(*arch, *scenario, *term, *xrCase)
	if err != nil {
		return usageError{err}
	}
	point.Alpha = *alpha

	cat := e.planner.Catalog.Overlay()
	if point.Alpha > 0 {
		if err := cat.ApplyAlpha(point.Alpha); err != nil {
			return err
		}
	}
	if point.XRCase != "" {
		if err := cat.ApplyXRCase(point.XRCase); err != nil {
			return err
		}
	}
	planner := e.planner.WithCatalog(cat)

	var (
		summary aggregate.Summary
		topo    *core.Topology
	)
	if *topoPath != "" {
		topo, err = loadTopology(*topoPath)
		if err != nil {
			return err
		}
		if err := demand.DeployDemand(topo, cat, point.Scenario, point.Term); err != nil {
			return err
		}
		res, err := planner.Run(ctx, point.Architecture, topo, point.Term)
		if err != nil {
			return err
		}
		summary = aggregate.Summarize(topo, point.Term, *area)
		summary.Architecture = point.Architecture
		summary.Scenario = point.Scenario
		summary.RunID = res.RunID
	} else {
		out, err := planner.PlanDetailed(ctx, point.request())
		if err != nil {
			return err
		}
		summary, topo = out.Summary, out.Topology
	}
	summary.Alpha = point.Alpha
	if point.XRCase != "" {
		summary.XRCase = string(point.XRCase)
	}

	if *details != "" {
		if err := writeFile(*details, func(w io.Writer) error { return report.WriteNodeDetails(w, topo) }); err != nil {
			return err
		}
		e.log.Info(ctx, "wrote node details", logging.String("path", *details))
	}
	return writeSummaries(e.stdout, *format, []aggregate.Summary{summary})
}

func loadTopology(path string) (*core.Topology, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return core.LoadTopology(f)
}

// sweepFlags registers the flags the sweep commands share.
func sweepFlags(fs *flag.FlagSet, cfg *config.Config) (*string, *string, *string, *string, *int) {
	archs := fs.String("archs", "", "comma-separated architectures (default from config)")
	scenarios := fs.String("scenarios", "", "comma-separated geotypes (default from config)")
	terms := fs.String("terms", "", "comma-separated terms (default from config)")
	out := fs.String("out", cfg.Output.SummaryCSV, "write CSV here instead of stdout")
	workers := fs.Int("workers", cfg.Sweep.Workers, "parallel planning jobs")
	return archs, scenarios, terms, out, workers
}

func runCompare(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	archs, scenarios, terms, out, workers := sweepFlags(fs, e.cfg)
	if err := parseFlags(fs, args, e.stderr); err != nil {
		return err
	}
	g, err := grid(e.cfg, *archs, *scenarios, *terms)
	if err != nil {
		return usageError{err}
	}
	return runSweep(ctx, e, sweep.Compare(g), *workers, *out)
}

func runAlpha(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("alpha", flag.ContinueOnError)
	archs, scenarios, terms, out, workers := sweepFlags(fs, e.cfg)
	alphaList := fs.String("alphas", "", "comma-separated alpha values (default from config)")
	if err := parseFlags(fs, args, e.stderr); err != nil {
		return err
	}
	g, err := grid(e.cfg, *archs, *scenarios, *terms)
	if err != nil {
		return usageError{err}
	}
	alphas := e.cfg.Sweep.Alphas
	if *alphaList != "" {
		if alphas, err = parseFloats(*alphaList); err != nil {
			return usageError{err}
		}
	}
	return runSweep(ctx, e, sweep.Alpha(g, alphas), *workers, *out)
}

func runXRCases(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("xr-cases", flag.ContinueOnError)
	archs, scenarios, terms, out, workers := sweepFlags(fs, e.cfg)
	caseList := fs.String("cases", "", "comma-separated XR cases (default from config)")
	if err := parseFlags(fs, args, e.stderr); err != nil {
		return err
	}
	g, err := grid(e.cfg, *archs, *scenarios, *terms)
	if err != nil {
		return usageError{err}
	}
	cases := e.cfg.Sweep.XRCases
	if *caseList != "" {
		cases = nil
		for _, raw := range splitList(*caseList) {
			xc, err := model.ParseXRCase(raw)
			if err != nil {
				return usageError{err}
			}
			cases = append(cases, xc)
		}
	}
	return runSweep(ctx, e, sweep.XRCases(g, cases), *workers, *out)
}

func runSweep(ctx context.Context, e *env, points []sweep.Point, workers int, out string) error {
	runner := sweep.NewRunner(e.planner, workers, e.log)
	rows, err := runner.Run(ctx, points)
	if err != nil {
		return err
	}
	if out == "" {
		return report.WriteRows(e.stdout, rows)
	}
	if err := writeFile(out, func(w io.Writer) error { return report.WriteRows(w, rows) }); err != nil {
		return err
	}
	e.log.Info(ctx, "wrote sweep results", logging.String("path", out), logging.Int("rows", len(rows)))
	return nil
}

func runTopology(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("topology", flag.ContinueOnError)
	scenario := fs.String("scenario", "Dense Urban", "geotype to build")
	routed := fs.Bool("routed", false, "insert corner nodes so every edge follows the street grid")
	out := fs.String("out", e.cfg.Output.TopologyJSON, "write JSON here instead of stdout")
	if err := parseFlags(fs, args, e.stderr); err != nil {
		return err
	}
	s, err := model.ParseScenario(*scenario)
	if err != nil {
		return usageError{err}
	}
	g, err := geotype.New(s, e.cfg.Planner.FiberSlots)
	if err != nil {
		return err
	}
	topo := g.Tree
	if *routed {
		if topo, err = g.Routed(); err != nil {
			return err
		}
	}
	if *out == "" {
		return core.WriteTopology(e.stdout, topo)
	}
	if err := writeFile(*out, func(w io.Writer) error { return core.WriteTopology(w, topo) }); err != nil {
		return err
	}
	e.log.Info(ctx, "wrote topology", logging.String("path", *out), logging.Int("nodes", len(topo.NodeIDs())))
	return nil
}

func writeSummaries(w io.Writer, format string, rows []aggregate.Summary) error {
	switch strings.ToLower(format) {
	case "csv":
		return report.WriteRows(w, rows)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "text", "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, s := range rows {
			fmt.Fprintf(tw, "architecture\t%s\n", s.Architecture)
			fmt.Fprintf(tw, "scenario\t%s\n", s.Scenario)
			fmt.Fprintf(tw, "term\t%s\n", s.Term)
			fmt.Fprintf(tw, "xr case\t%s\n", s.XRCase)
			fmt.Fprintf(tw, "total cost\t%.3f\n", s.TotalCost)
			fmt.Fprintf(tw, "  transceivers\t%.3f\n", s.TransceiverCost)
			fmt.Fprintf(tw, "  switching\t%.3f\n", s.SwitchingCost)
			fmt.Fprintf(tw, "cost per km²\t%.3f\n", s.NormalizedCost)
			fmt.Fprintf(tw, "energy MWh/yr\t%.3f\n", s.TotalEnergyMWh)
			fmt.Fprintf(tw, "fibres\t%d (%d occupied)\n", s.Fibers, s.OccupiedFibers)
			fmt.Fprintf(tw, "switches S/M/B/XL\t%d/%d/%d/%d\n", s.SwitchesSmall, s.SwitchesMedium, s.SwitchesBig, s.SwitchesExtraLarge)
		}
		return tw.Flush()
	default:
		return usageError{fmt.Errorf("unknown format %q", format)}
	}
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
