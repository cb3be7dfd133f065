// Package config loads the planner's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/signalsfoundry/fronthaul-planner/core"
	"github.com/signalsfoundry/fronthaul-planner/dimension"
	"github.com/signalsfoundry/fronthaul-planner/internal/logging"
	"github.com/signalsfoundry/fronthaul-planner/internal/observability"
	"github.com/signalsfoundry/fronthaul-planner/kb"
	"github.com/signalsfoundry/fronthaul-planner/model"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Logging logging.Config              `yaml:"logging"`
	Tracing observability.TracingConfig `yaml:"tracing"`
	API     APIConfig                   `yaml:"api"`
	Metrics MetricsConfig               `yaml:"metrics"`
	Planner PlannerConfig               `yaml:"planner"`
	Sweep   SweepConfig                 `yaml:"sweep"`

	// CatalogOverrides is applied to the base catalog before any run.
	CatalogOverrides map[model.EquipmentType]kb.CostOverride `yaml:"catalog_overrides"`

	Output OutputConfig `yaml:"output"`
}

type APIConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type MetricsConfig struct {
	// Addr serves /metrics on its own listener. Empty disables it; the API
	// server exposes /metrics regardless.
	Addr string `yaml:"addr"`
}

type PlannerConfig struct {
	FiberSlots            int  `yaml:"fiber_slots"`
	InterpolatedRootPower bool `yaml:"interpolated_root_power"`
}

type SweepConfig struct {
	Architectures []model.Architecture `yaml:"architectures"`
	Scenarios     []model.Scenario     `yaml:"scenarios"`
	Terms         []model.Term         `yaml:"terms"`
	Alphas        []float64            `yaml:"alphas"`
	XRCases       []model.XRCase       `yaml:"xr_cases"`
	Workers       int                  `yaml:"workers"`
}

type OutputConfig struct {
	SummaryCSV     string `yaml:"summary_csv"`
	NodeDetailsCSV string `yaml:"node_details_csv"`
	TopologyJSON   string `yaml:"topology_json"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Logging: logging.Config{Level: "info", Format: "text"},
		Tracing: observability.DefaultTracingConfig(),
		API: APIConfig{
			Addr:        ":8080",
			CORSOrigins: []string{"*"},
		},
		Planner: PlannerConfig{FiberSlots: core.DefaultFiberSlots},
		Sweep: SweepConfig{
			Architectures: model.Architectures(),
			Scenarios:     model.Scenarios(),
			Terms:         model.Terms(),
			Alphas:        append([]float64(nil), kb.AlphaValues...),
			XRCases:       []model.XRCase{model.XRBest, model.XRWorst},
			Workers:       4,
		},
	}
}

// Load reads path over the defaults, applies env overrides and validates.
// An empty path yields the validated defaults.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	c.applyEnv()
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PLANNER_API_ADDR"); v != "" {
		c.API.Addr = v
	}
	if v := os.Getenv("PLANNER_METRICS_ADDR"); v != "" {
		c.Metrics.Addr = v
	}
	c.Logging = logging.ConfigFromEnv(c.Logging)
	c.Tracing = observability.ApplyTracingEnv(c.Tracing)
}

// Validate reports every problem found, joined into one error.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	var errs []error
	if c.Planner.FiberSlots <= 0 {
		errs = append(errs, fmt.Errorf("planner.fiber_slots must be positive, got %d", c.Planner.FiberSlots))
	}
	if c.Sweep.Workers <= 0 {
		errs = append(errs, fmt.Errorf("sweep.workers must be positive, got %d", c.Sweep.Workers))
	}
	for _, a := range c.Sweep.Architectures {
		if _, err := model.ParseArchitecture(string(a)); err != nil {
			errs = append(errs, fmt.Errorf("sweep.architectures: %w", err))
		}
	}
	for _, s := range c.Sweep.Scenarios {
		if !s.Valid() {
			errs = append(errs, fmt.Errorf("sweep.scenarios: invalid scenario %d", int(s)))
		}
	}
	for _, t := range c.Sweep.Terms {
		if _, err := model.ParseTerm(string(t)); err != nil {
			errs = append(errs, fmt.Errorf("sweep.terms: %w", err))
		}
	}
	for _, a := range c.Sweep.Alphas {
		if a <= 0 {
			errs = append(errs, fmt.Errorf("sweep.alphas: alpha must be positive, got %v", a))
		}
	}
	for _, x := range c.Sweep.XRCases {
		if _, err := model.ParseXRCase(string(x)); err != nil {
			errs = append(errs, fmt.Errorf("sweep.xr_cases: %w", err))
		}
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("tracing.sample_ratio must be within [0,1], got %v", c.Tracing.SampleRatio))
	}
	if len(c.CatalogOverrides) > 0 {
		cat := kb.NewCatalog()
		for id := range c.CatalogOverrides {
			if _, err := cat.Lookup(id); err != nil {
				errs = append(errs, fmt.Errorf("catalog_overrides: %w", err))
			}
		}
	}
	return errors.Join(errs...)
}

// Catalog builds the base catalog with the configured overrides applied.
// Overrides are applied in catalog id order.
func (c *Config) Catalog() (*kb.Catalog, error) {
	cat := kb.NewCatalog()
	for _, id := range cat.Types() {
		o, ok := c.CatalogOverrides[id]
		if !ok {
			continue
		}
		if err := cat.OverrideCosts(id, o); err != nil {
			return nil, err
		}
	}
	for id := range c.CatalogOverrides {
		if _, err := cat.Lookup(id); err != nil {
			return nil, fmt.Errorf("catalog_overrides: %w", err)
		}
	}
	return cat, nil
}

// PlannerOptions maps the planner section onto dimensioning options.
func (c *Config) PlannerOptions() dimension.Options {
	return dimension.Options{InterpolatedRootPower: c.Planner.InterpolatedRootPower}
}
