/*
 * output.go, part of psigo.
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

package mas

import (
	"math"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	psi "github.com/dstansby/psigo"
)

// Latest selects the last timestep available for each variable.
const Latest = -1

// Output is a directory of MAS output, at a given timestep.
// It implements psi.FieldSource.
type Output struct {
	dir      string
	timestep int
	cache    *Cache
}

// NewOutput returns the output in dir at the latest timestep, with its own cache.
// The directory must hold at least one variable.
func NewOutput(dir string) (*Output, error) {
	dir = filepath.Clean(dir)
	if _, err := Variables(dir); err != nil {
		return nil, errDecorate(err, "NewOutput")
	}
	return &Output{dir: dir, timestep: Latest, cache: NewCache()}, nil
}

// WithCache returns a copy of O using the cache C, which can be shared with other outputs.
func (O *Output) WithCache(C *Cache) *Output {
	r := *O
	r.cache = C
	return &r
}

// At returns a copy of O at timestep ts, or at the latest one if ts is Latest.
// The cache is shared.
func (O *Output) At(ts int) *Output {
	r := *O
	r.timestep = ts
	return &r
}

func (O *Output) Dir() string { return O.dir }

func (O *Output) Timestep() int { return O.timestep }

func (O *Output) Cache() *Cache { return O.cache }

// Variables returns the variables in the output.
func (O *Output) Variables() ([]string, error) {
	return Variables(O.dir)
}

// Timesteps returns the sorted timesteps available for variable.
func (O *Output) Timesteps(variable string) ([]int, error) {
	files, err := Filenames(O.dir, variable)
	if err != nil {
		return nil, errDecorate(err, "Timesteps")
	}
	ts := make([]int, 0, len(files))
	for _, f := range files {
		t, err := Timestep(f)
		if err != nil {
			return nil, errDecorate(err, "Timesteps")
		}
		ts = append(ts, t)
	}
	sort.Ints(ts)
	return ts, nil
}

// Get returns variable at the timestep of O, reading it if it is not cached.
func (O *Output) Get(variable string) (*Variable, error) {
	files, err := Filenames(O.dir, variable)
	if err != nil {
		return nil, errDecorate(err, "Get")
	}
	path := ""
	ts := O.timestep
	for _, f := range files {
		t, err := Timestep(f)
		if err != nil {
			continue
		}
		if (O.timestep == Latest && (path == "" || t >= ts)) || t == O.timestep {
			path, ts = f, t
		}
	}
	if path == "" {
		return nil, Error{"no file for timestep", O.dir, []string{"Get"}, true, ErrNotFound}
	}
	k := Key{Dir: O.dir, Var: variable, Timestep: ts}
	if v, ok := O.cache.Get(k); ok {
		return v, nil
	}
	v, err := ReadFile(path)
	if err != nil {
		return nil, errDecorate(err, "Get")
	}
	d := v.Dims()
	logger.Debug("read MAS file", zap.String("file", path), zap.Ints("dims", d[:]))
	O.cache.Put(k, v)
	return v, nil
}

// CellCentered returns the vector variable with the components {variable}p,
// {variable}t and {variable}r resampled onto a common grid: phi and theta
// from the radial component, r from the theta component. If extraPhi is true
// the first phi plane is repeated at phi+2pi.
func (O *Output) CellCentered(variable string, extraPhi bool) (*psi.VectorData, error) {
	var comps [3]*Variable
	for i, c := range []string{"p", "t", "r"} {
		v, err := O.Get(variable + c)
		if err != nil {
			return nil, errDecorate(err, "CellCentered")
		}
		comps[i] = v
	}
	br, bt := comps[2], comps[1]
	phi := append([]float64(nil), br.Phi[:br.nphi]...)
	theta := append([]float64(nil), br.Theta...)
	r := append([]float64(nil), bt.R...)
	np, nt, nr := len(phi), len(theta), len(r)
	planes := np
	if extraPhi {
		planes++
	}
	data := make([]float64, planes*nt*nr*3)
	for i, p := range phi {
		for j, t := range theta {
			for k, rad := range r {
				o := ((i*nt+j)*nr + k) * 3
				for c, v := range comps {
					data[o+c] = v.sampleClamped(p, t, rad)
				}
			}
		}
	}
	if extraPhi {
		phi = append(phi, phi[0]+2*math.Pi)
		copy(data[np*nt*nr*3:], data[:nt*nr*3])
	}
	return &psi.VectorData{Name: variable, Phi: phi, Theta: theta, R: r, Data: data}, nil
}
