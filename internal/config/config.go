/*
 * config.go, part of psigo.
 *
 * Copyright 2026 The psigo Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package config holds the configuration of the psitrace command.
package config

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	psi "github.com/dstansby/psigo"
	"github.com/dstansby/psigo/mas"
	v3 "github.com/dstansby/psigo/v3"
)

// Config is the psitrace configuration.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Tracer  TracerConfig  `yaml:"tracer"`
	Seeds   SeedsConfig   `yaml:"seeds"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig selects the MAS output to trace.
type DataConfig struct {
	Dir      string `yaml:"dir"`
	Variable string `yaml:"variable"`
	Timestep int    `yaml:"timestep"` // -1 for the latest
	Polarity string `yaml:"polarity"` // scalar used to color lines, empty to skip
}

// TracerConfig mirrors psi.Options.
type TracerConfig struct {
	Method    string  `yaml:"method"`
	StepSize  float64 `yaml:"step_size"`
	MaxSteps  int     `yaml:"max_steps"`
	Direction string  `yaml:"direction"`
	Cpus      int     `yaml:"cpus"` // 0 for all CPUs
}

// SeedsConfig describes where streamlines start. Angles are in degrees,
// radii in the units of the MAS grid.
type SeedsConfig struct {
	Mode   string  `yaml:"mode"` // band or grid
	N      int     `yaml:"n"`
	LatMin float64 `yaml:"lat_min"`
	LatMax float64 `yaml:"lat_max"`
	R      float64 `yaml:"r"`
	Random int64   `yaml:"random_seed"`

	Phi   []float64 `yaml:"phi,omitempty"`
	Theta []float64 `yaml:"theta,omitempty"`
	Radii []float64 `yaml:"radii,omitempty"`
}

// OutputConfig says where results go. Empty paths disable that output.
type OutputConfig struct {
	Lines   string `yaml:"lines"`
	Map     string `yaml:"map"`
	Profile string `yaml:"profile"`
	Catalog string `yaml:"catalog"`
	Bins    int    `yaml:"bins"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration: 100 seeds in a band
// between -60 and 60 degrees at r=2.5, traced both ways with RK4.
func DefaultConfig() *Config {
	o := psi.DefaultOptions()
	return &Config{
		Data: DataConfig{
			Dir:      ".",
			Variable: "b",
			Timestep: mas.Latest,
			Polarity: "br",
		},
		Tracer: TracerConfig{
			Method:    o.Method(),
			StepSize:  o.StepSize(),
			MaxSteps:  o.MaxSteps(),
			Direction: o.Direction().String(),
		},
		Seeds: SeedsConfig{
			Mode:   "band",
			N:      100,
			LatMin: -60,
			LatMax: 60,
			R:      2.5,
			Random: 1,
		},
		Output: OutputConfig{
			Lines:   "lines.slf",
			Catalog: "psitrace.db",
			Bins:    20,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the configuration at path on top of the defaults.
// A missing file gives the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks the values that the libraries would otherwise reject
// later, and with a less helpful message.
func (c *Config) Validate() error {
	if c.Data.Variable == "" {
		return fmt.Errorf("data.variable must be set")
	}
	if c.Data.Timestep < mas.Latest {
		return fmt.Errorf("data.timestep must be -1 or a timestep, got %d", c.Data.Timestep)
	}
	if _, err := c.Options(); err != nil {
		return err
	}
	switch c.Seeds.Mode {
	case "band":
		if c.Seeds.N < 1 {
			return fmt.Errorf("seeds.n must be positive, got %d", c.Seeds.N)
		}
		if c.Seeds.LatMin > c.Seeds.LatMax || c.Seeds.LatMin < -90 || c.Seeds.LatMax > 90 {
			return fmt.Errorf("invalid seed band [%g, %g]", c.Seeds.LatMin, c.Seeds.LatMax)
		}
		if !(c.Seeds.R > 0) {
			return fmt.Errorf("seeds.r must be positive, got %g", c.Seeds.R)
		}
	case "grid":
		if len(c.Seeds.Phi) == 0 || len(c.Seeds.Theta) == 0 || len(c.Seeds.Radii) == 0 {
			return fmt.Errorf("grid seeds need phi, theta and radii")
		}
	default:
		return fmt.Errorf("unknown seeds.mode %q", c.Seeds.Mode)
	}
	if c.Output.Bins < 0 {
		return fmt.Errorf("output.bins must not be negative, got %d", c.Output.Bins)
	}
	return nil
}

// Options returns the tracer options given by the configuration.
func (c *Config) Options() (*psi.Options, error) {
	t := c.Tracer
	if t.MaxSteps < 1 {
		return nil, fmt.Errorf("tracer.max_steps must be at least 1, got %d", t.MaxSteps)
	}
	if !(t.StepSize > 0) || math.IsInf(t.StepSize, 0) {
		return nil, fmt.Errorf("tracer.step_size must be positive and finite, got %g", t.StepSize)
	}
	dir, err := psi.ParseDirection(t.Direction)
	if err != nil {
		return nil, fmt.Errorf("tracer.direction: %w", err)
	}
	if t.Method != psi.RK4 && t.Method != psi.Euler {
		return nil, fmt.Errorf("unknown tracer.method %q", t.Method)
	}
	o := psi.DefaultOptions()
	o.Method(t.Method)
	o.StepSize(t.StepSize)
	o.MaxSteps(t.MaxSteps)
	o.Direction(dir)
	o.Cpus(t.Cpus)
	return o, nil
}

func radians(deg []float64) []float64 {
	r := make([]float64, len(deg))
	for i, d := range deg {
		r[i] = d * math.Pi / 180
	}
	return r
}

// SeedMatrix returns the seed points, (phi, theta, r) with angles in radians.
func (c *Config) SeedMatrix() (*v3.Matrix, error) {
	s := c.Seeds
	if s.Mode == "grid" {
		return psi.SeedGrid(radians(s.Phi), radians(s.Theta), s.Radii)
	}
	rng := rand.New(rand.NewSource(s.Random))
	return psi.SeedBand(s.N, s.LatMin*math.Pi/180, s.LatMax*math.Pi/180, s.R, rng)
}
