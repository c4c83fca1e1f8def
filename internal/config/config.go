// Package config loads engine configuration from a YAML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/abhisek/twotor/internal/helpdesk"
	"github.com/abhisek/twotor/internal/mastery"
	"github.com/abhisek/twotor/internal/predict"
	"gopkg.in/yaml.v3"
)

// Log modes.
const (
	LogDevelopment = "dev"
	LogProduction  = "prod"
	LogOff         = "off"
)

// Config holds all engine configuration.
type Config struct {
	// DBPath is the SQLite file. Empty resolves to the default data path.
	DBPath string `yaml:"db_path"`
	// ContentPath is the course content JSON. Empty uses the bundled sample.
	ContentPath string `yaml:"content_path"`
	LogMode     string `yaml:"log_mode"`

	Mastery    MasteryConfig   `yaml:"mastery"`
	Prediction predict.Weights `yaml:"prediction"`
	Helpdesk   helpdesk.Config `yaml:"helpdesk"`
}

// MasteryConfig holds the knowledge-tracing parameters per skill.
type MasteryConfig struct {
	DefaultPrior float64                `yaml:"default_prior"`
	Skills       map[string]SkillConfig `yaml:"skills"`
}

// SkillConfig is one skill family's parameters and optional prior.
type SkillConfig struct {
	mastery.Params `yaml:",inline"`
	Prior          *float64 `yaml:"prior,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	skills := make(map[string]SkillConfig)
	priors := mastery.DefaultPriors()
	for skill, p := range mastery.DefaultParams() {
		prior := priors[skill]
		skills[skill] = SkillConfig{Params: p, Prior: &prior}
	}
	return Config{
		LogMode: LogOff,
		Mastery: MasteryConfig{
			DefaultPrior: mastery.DefaultPrior,
			Skills:       skills,
		},
		Prediction: predict.DefaultWeights(),
		Helpdesk:   helpdesk.DefaultConfig(),
	}
}

// Load reads path over the defaults. A missing file is not an error when
// path is empty. Environment overrides are applied last.
//
// A prediction section replaces the default weights as a whole; coefficients
// it does not list are dropped rather than kept at their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		var overlay struct {
			Prediction *predict.Weights `yaml:"prediction"`
		}
		if err := yaml.Unmarshal(raw, &overlay); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		if overlay.Prediction != nil {
			cfg.Prediction = *overlay.Prediction
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from TWOTOR_DB, TWOTOR_CONTENT and TWOTOR_LOG.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("TWOTOR_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("TWOTOR_CONTENT"); v != "" {
		c.ContentPath = v
	}
	if v := os.Getenv("TWOTOR_LOG"); v != "" {
		c.LogMode = v
	}
}

// Validate checks probabilities and the log mode.
func (c *Config) Validate() error {
	var errs []error
	switch c.LogMode {
	case LogDevelopment, LogProduction, LogOff, "":
	default:
		errs = append(errs, fmt.Errorf("log_mode %q must be one of dev, prod, off", c.LogMode))
	}
	if c.Mastery.DefaultPrior < 0 || c.Mastery.DefaultPrior > 1 {
		errs = append(errs, fmt.Errorf("mastery.default_prior %v out of [0,1]", c.Mastery.DefaultPrior))
	}
	for skill, s := range c.Mastery.Skills {
		if !s.Params.Valid() {
			errs = append(errs, fmt.Errorf("mastery.skills.%s: parameters must lie in [0,1]", skill))
		}
		if s.Prior != nil && (*s.Prior < 0 || *s.Prior > 1) {
			errs = append(errs, fmt.Errorf("mastery.skills.%s.prior %v out of [0,1]", skill, *s.Prior))
		}
	}
	if c.Helpdesk.AppointmentHour < 0 || c.Helpdesk.AppointmentHour > 23 {
		errs = append(errs, fmt.Errorf("helpdesk.appointment_hour %d out of range", c.Helpdesk.AppointmentHour))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// MasteryParams returns the per-skill parameter map.
func (c *Config) MasteryParams() map[string]mastery.Params {
	out := make(map[string]mastery.Params, len(c.Mastery.Skills))
	for skill, s := range c.Mastery.Skills {
		out[skill] = s.Params
	}
	return out
}

// MasteryPriors returns the priors of skills that configure one.
func (c *Config) MasteryPriors() map[string]float64 {
	out := make(map[string]float64)
	for skill, s := range c.Mastery.Skills {
		if s.Prior != nil {
			out[skill] = *s.Prior
		}
	}
	return out
}
