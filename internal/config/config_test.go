/*
 * config_test.go, part of psigo.
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

package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	psi "github.com/dstansby/psigo"
)

func TestDefaults(Te *testing.T) {
	cfg, err := Load(filepath.Join(Te.TempDir(), "missing.yaml"))
	require.NoError(Te, err)
	require.NoError(Te, cfg.Validate())
	assert.Equal(Te, "b", cfg.Data.Variable)
	assert.Equal(Te, -1, cfg.Data.Timestep)
	o, err := cfg.Options()
	require.NoError(Te, err)
	assert.Equal(Te, psi.RK4, o.Method())
	assert.Equal(Te, psi.Both, o.Direction())
	S, err := cfg.SeedMatrix()
	require.NoError(Te, err)
	assert.Equal(Te, 100, S.NVecs())
	first, last := S.Vec(0), S.Vec(99)
	assert.InDelta(Te, -math.Pi/3, first[1], 1e-12)
	assert.InDelta(Te, math.Pi/3, last[1], 1e-12)
	assert.Equal(Te, 2.5, last[2])
}

func TestLoadSave(Te *testing.T) {
	dir := Te.TempDir()
	path := filepath.Join(dir, "sub", "psitrace.yaml")
	cfg := DefaultConfig()
	cfg.Tracer.Method = psi.Euler
	cfg.Tracer.Direction = "forward"
	cfg.Seeds.Mode = "grid"
	cfg.Seeds.Phi = []float64{0, 90}
	cfg.Seeds.Theta = []float64{0}
	cfg.Seeds.Radii = []float64{1.5, 2}
	require.NoError(Te, cfg.Save(path))
	got, err := Load(path)
	require.NoError(Te, err)
	assert.Equal(Te, cfg, got)
	S, err := got.SeedMatrix()
	require.NoError(Te, err)
	require.Equal(Te, 4, S.NVecs())
	assert.InDelta(Te, math.Pi/2, S.Vec(2)[0], 1e-12)
	o, err := got.Options()
	require.NoError(Te, err)
	assert.Equal(Te, psi.Forward, o.Direction())
}

func TestPartialFile(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "c.yaml")
	require.NoError(Te, os.WriteFile(path, []byte("data:\n  dir: /runs/cr2210\ntracer:\n  max_steps: 50\n"), 0644))
	cfg, err := Load(path)
	require.NoError(Te, err)
	assert.Equal(Te, "/runs/cr2210", cfg.Data.Dir)
	assert.Equal(Te, 50, cfg.Tracer.MaxSteps)
	assert.Equal(Te, "b", cfg.Data.Variable, "untouched keys keep their defaults")
	assert.Equal(Te, 0.01, cfg.Tracer.StepSize)
	require.NoError(Te, os.WriteFile(path, []byte("data: [1, 2"), 0644))
	_, err = Load(path)
	assert.Error(Te, err)
}

func TestValidate(Te *testing.T) {
	for name, mod := range map[string]func(*Config){
		"no variable":  func(c *Config) { c.Data.Variable = "" },
		"timestep":     func(c *Config) { c.Data.Timestep = -2 },
		"steps":        func(c *Config) { c.Tracer.MaxSteps = 0 },
		"step size":    func(c *Config) { c.Tracer.StepSize = -1 },
		"direction":    func(c *Config) { c.Tracer.Direction = "sideways" },
		"method":       func(c *Config) { c.Tracer.Method = "leapfrog" },
		"band":         func(c *Config) { c.Seeds.LatMin = 70 },
		"radius":       func(c *Config) { c.Seeds.R = 0 },
		"n":            func(c *Config) { c.Seeds.N = 0 },
		"mode":         func(c *Config) { c.Seeds.Mode = "spiral" },
		"grid missing": func(c *Config) { c.Seeds.Mode = "grid" },
		"bins":         func(c *Config) { c.Output.Bins = -3 },
	} {
		cfg := DefaultConfig()
		mod(cfg)
		assert.Error(Te, cfg.Validate(), name)
	}
}
