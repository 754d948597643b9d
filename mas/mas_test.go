/*
 * mas_test.go, part of psigo.
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
	"encoding/gob"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	psi "github.com/dstansby/psigo"
	v3 "github.com/dstansby/psigo/v3"
)

func span(n int, lo, hi float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return s
}

func centres(edges []float64) []float64 {
	c := make([]float64, len(edges)-1)
	for i := range c {
		c[i] = (edges[i] + edges[i+1]) / 2
	}
	return c
}

// writeVar writes a .mzs file for name at timestep ts, sampling f on the given grid.
func writeVar(Te *testing.T, dir, name string, ts int, phi, theta, r []float64, f func(p, t, r float64) float64) string {
	Te.Helper()
	data := make([]float64, 0, len(phi)*len(theta)*len(r))
	for _, p := range phi {
		for _, t := range theta {
			for _, rad := range r {
				data = append(data, f(p, t, rad))
			}
		}
	}
	V, err := NewVariable(name, ts, phi, theta, r, data)
	require.NoError(Te, err)
	path := filepath.Join(dir, fmt.Sprintf("%s%03d%s", name, ts, ExtArchive))
	require.NoError(Te, WriteFile(path, V))
	return path
}

var (
	phiHalf   = span(13, 0, 2*math.Pi)[:12]
	phiC      = centres(span(13, 0, 2*math.Pi))
	thetaHalf = span(9, -math.Pi/2, math.Pi/2)
	thetaC    = centres(thetaHalf)
	rHalf     = span(6, 1, 6)
	rC        = centres(rHalf)
)

// writeVector writes the staggered components of a vector variable.
func writeVector(Te *testing.T, dir, name string, ts int, f func(p, t, r float64) [3]float64) {
	writeVar(Te, dir, name+"r", ts, phiC, thetaC, rHalf, func(p, t, r float64) float64 { return f(p, t, r)[2] })
	writeVar(Te, dir, name+"t", ts, phiC, thetaHalf, rC, func(p, t, r float64) float64 { return f(p, t, r)[1] })
	writeVar(Te, dir, name+"p", ts, phiHalf, thetaC, rC, func(p, t, r float64) float64 { return f(p, t, r)[0] })
}

func TestFilesAndVariables(Te *testing.T) {
	dir := Te.TempDir()
	one := func(p, t, r float64) float64 { return 1 }
	writeVar(Te, dir, "br", 2, phiC, thetaC, rHalf, one)
	writeVar(Te, dir, "br", 1, phiC, thetaC, rHalf, one)
	writeVar(Te, dir, "rho", 10, phiC, thetaC, rC, one)
	require.NoError(Te, os.WriteFile(filepath.Join(dir, "bt001.hdf"), nil, 0o644))
	require.NoError(Te, os.WriteFile(filepath.Join(dir, "notes001.txt"), nil, 0o644))
	vars, err := Variables(dir)
	require.NoError(Te, err)
	assert.Equal(Te, []string{"br", "bt", "rho"}, vars)
	files, err := Filenames(dir, "br")
	require.NoError(Te, err)
	require.Len(Te, files, 2)
	assert.Equal(Te, "br001.mzs", filepath.Base(files[0]))
	ts, err := Timestep(files[1])
	require.NoError(Te, err)
	assert.Equal(Te, 2, ts)
	_, err = Filenames(dir, "vr")
	assert.True(Te, errors.Is(err, ErrNotFound))
	_, err = Variables(Te.TempDir())
	assert.True(Te, errors.Is(err, ErrNotFound))
	_, err = Timestep("br.mzs")
	assert.Error(Te, err)
	_, err = ReadFile(filepath.Join(dir, "bt001.hdf"))
	assert.True(Te, errors.Is(err, ErrFormatUnavailable))
	var ferr psi.FileError
	require.True(Te, errors.As(err, &ferr))
	assert.Equal(Te, filepath.Join(dir, "bt001.hdf"), ferr.FileName())
}

func TestArchiveRoundTrip(Te *testing.T) {
	dir := Te.TempDir()
	f := func(p, t, r float64) float64 { return r + 10*t + math.Cos(p) }
	path := writeVar(Te, dir, "rho", 3, phiC, thetaC, rC, f)
	V, err := ReadFile(path)
	require.NoError(Te, err)
	assert.Equal(Te, "rho", V.Name)
	assert.Equal(Te, 3, V.Timestep)
	assert.Equal(Te, [3]int{12, 8, 5}, V.Dims())
	for j := range thetaC {
		assert.InDelta(Te, thetaC[j], V.Theta[j], 1e-12)
	}
	assert.InDelta(Te, f(phiC[4], thetaC[2], rC[1]), V.At(4, 2, 1), 1e-5)
}

func TestReadColatitude(Te *testing.T) {
	//MAS stores colatitude from the north pole down
	path := filepath.Join(Te.TempDir(), "vr001.mzs")
	a := archive{Phi: []float64{0, math.Pi}, Colat: []float64{0.5, 1.5, 2.5}, R: []float64{1, 2}}
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 2; k++ {
				a.Data = append(a.Data, float32(100*i+10*j+k))
			}
		}
	}
	fh, err := os.Create(path)
	require.NoError(Te, err)
	zw, err := zstd.NewWriter(fh)
	require.NoError(Te, err)
	require.NoError(Te, gob.NewEncoder(zw).Encode(&a))
	require.NoError(Te, zw.Close())
	require.NoError(Te, fh.Close())
	V, err := ReadFile(path)
	require.NoError(Te, err)
	assert.Equal(Te, "vr", V.Name, "name taken from the file")
	assert.Equal(Te, 1, V.Timestep)
	assert.InDeltaSlice(Te, []float64{math.Pi/2 - 2.5, math.Pi/2 - 1.5, math.Pi/2 - 0.5}, V.Theta, 1e-12)
	//south-most latitude was the last colatitude
	assert.Equal(Te, 121.0, V.At(1, 0, 1))
	assert.Equal(Te, 1.0, V.At(0, 2, 1))
}

func TestSampleAt(Te *testing.T) {
	f := func(p, t, r float64) float64 { return 2*r - t }
	data := make([]float64, 0)
	for range phiC {
		for _, t := range thetaC {
			for _, r := range rC {
				data = append(data, f(0, t, r))
			}
		}
	}
	V, err := NewVariable("rho", 0, phiC, thetaC, rC, data)
	require.NoError(Te, err)
	v, ok := V.SampleAt(0.01, 0.1, 2.2)
	require.True(Te, ok)
	assert.InDelta(Te, f(0, 0.1, 2.2), v, 1e-12)
	//beyond the last phi centre, wrapping to the first one
	v, ok = V.SampleAt(2*math.Pi-0.01, -0.3, 3)
	require.True(Te, ok)
	assert.InDelta(Te, f(0, -0.3, 3), v, 1e-12)
	_, ok = V.SampleAt(1, 0, 0.5)
	assert.False(Te, ok)
	_, ok = V.SampleAt(1, math.Pi/2, 2)
	assert.False(Te, ok, "pole is outside the cell centres")
	_, err = NewVariable("rho", 0, phiC, thetaC, rC, data[1:])
	assert.True(Te, errors.Is(err, ErrInvalidArchive))
}

// A scalar variable and a vector grid holding it in every component must
// interpolate to the same values.
func TestSampleMatchesGrid(Te *testing.T) {
	f := func(p, t, r float64) float64 { return math.Cos(p) + t*r }
	data := make([]float64, 0)
	vec := make([]float64, 0)
	for _, p := range phiC {
		for _, t := range thetaC {
			for _, r := range rC {
				data = append(data, f(p, t, r))
				vec = append(vec, f(p, t, r), f(p, t, r), f(p, t, r))
			}
		}
	}
	V, err := NewVariable("rho", 0, phiC, thetaC, rC, data)
	require.NoError(Te, err)
	G, err := psi.NewGrid(vec, phiC, thetaC, rC, [3]bool{true, false, false})
	require.NoError(Te, err)
	for _, p := range [][3]float64{{0.3, 0.1, 2.2}, {6.2, -1.2, 5.4}, {0, 0, 1.5}, {3.9, 0.77, 4.01}} {
		v, ok := V.SampleAt(p[0], p[1], p[2])
		require.True(Te, ok, fmt.Sprint(p))
		idx, in := G.ToIndex(p)
		require.True(Te, in)
		g, ok := G.Interpolate(idx)
		require.True(Te, ok)
		assert.InDelta(Te, g[0], v, 1e-12, fmt.Sprint(p))
	}
}

func TestOutputTimestepsAndCache(Te *testing.T) {
	dir := Te.TempDir()
	for ts := 1; ts <= 3; ts++ {
		writeVar(Te, dir, "rho", ts, phiC, thetaC, rC, func(p, t, r float64) float64 { return float64(ts) })
	}
	O, err := NewOutput(dir)
	require.NoError(Te, err)
	steps, err := O.Timesteps("rho")
	require.NoError(Te, err)
	assert.Equal(Te, []int{1, 2, 3}, steps)
	V, err := O.Get("rho")
	require.NoError(Te, err)
	assert.Equal(Te, 3, V.Timestep)
	assert.Equal(Te, 3.0, V.At(0, 0, 0))
	V2, err := O.At(2).Get("rho")
	require.NoError(Te, err)
	assert.Equal(Te, 2.0, V2.At(0, 0, 0))
	_, err = O.Get("rho")
	require.NoError(Te, err)
	hits, misses := O.Cache().Stats()
	assert.Equal(Te, 1, hits)
	assert.Equal(Te, 2, misses)
	assert.Equal(Te, 2, O.Cache().Len())
	_, err = O.At(7).Get("rho")
	assert.True(Te, errors.Is(err, ErrNotFound))
	O.Cache().Invalidate(Key{Dir: dir + "/", Var: "rho", Timestep: 3})
	assert.Equal(Te, 1, O.Cache().Len())
	assert.Equal(Te, 1, O.Cache().InvalidateDir(dir))
	O.Cache().Put(Key{Dir: dir, Var: "rho", Timestep: 9}, V)
	O.Cache().Purge()
	assert.Equal(Te, 0, O.Cache().Len())
	_, err = NewOutput(Te.TempDir())
	assert.True(Te, errors.Is(err, ErrNotFound))
}

func TestCellCentered(Te *testing.T) {
	dir := Te.TempDir()
	writeVector(Te, dir, "b", 1, func(p, t, r float64) [3]float64 { return [3]float64{3, 2 * t, r} })
	O, err := NewOutput(dir)
	require.NoError(Te, err)
	vd, err := O.CellCentered("b", false)
	require.NoError(Te, err)
	assert.Equal(Te, "b", vd.Name)
	require.Len(Te, vd.Phi, 12)
	assert.InDeltaSlice(Te, phiC, vd.Phi, 1e-12)
	assert.InDeltaSlice(Te, thetaC, vd.Theta, 1e-12)
	assert.InDeltaSlice(Te, rC, vd.R, 1e-12)
	nt, nr := len(thetaC), len(rC)
	o := ((5*nt+3)*nr + 2) * 3
	assert.InDelta(Te, 3, vd.Data[o], 1e-5)
	assert.InDelta(Te, 2*thetaC[3], vd.Data[o+1], 1e-5)
	assert.InDelta(Te, rC[2], vd.Data[o+2], 1e-5)
	ex, err := O.CellCentered("b", true)
	require.NoError(Te, err)
	require.Len(Te, ex.Phi, 13)
	assert.InDelta(Te, phiC[0]+2*math.Pi, ex.Phi[12], 1e-12)
	assert.Equal(Te, ex.Data[:nt*nr*3], ex.Data[12*nt*nr*3:])
	_, err = O.CellCentered("v", false)
	assert.True(Te, errors.Is(err, ErrNotFound))
}

func TestTraceOutput(Te *testing.T) {
	dir := Te.TempDir()
	writeVector(Te, dir, "b", 1, func(p, t, r float64) [3]float64 { return [3]float64{0, 0, 1 / (r * r)} })
	O, err := NewOutput(dir)
	require.NoError(Te, err)
	o := psi.DefaultOptions()
	o.StepSize(0.25)
	o.Cpus(2)
	T, err := psi.NewTracer(o)
	require.NoError(Te, err)
	seeds := v3.FromVecs([][3]float64{{1, 0.2, 3}, {4, -0.5, 2.5}})
	lines, err := T.TraceSource(seeds, O, "b")
	require.NoError(Te, err)
	require.Len(Te, lines, 2)
	for _, S := range lines {
		assert.Equal(Te, psi.OutOfBounds, S.Forward)
		assert.Equal(Te, psi.OutOfBounds, S.Backward)
		assert.InDelta(Te, rC[0], S.End(false)[psi.R], 0.3)
		assert.InDelta(Te, rC[len(rC)-1], S.End(true)[psi.R], 0.3)
		assert.InDelta(Te, S.SeedPoint()[psi.Theta], S.End(true)[psi.Theta], 1e-9)
	}
}

func TestWatcher(Te *testing.T) {
	dir := Te.TempDir()
	one := func(p, t, r float64) float64 { return 1 }
	writeVar(Te, dir, "rho", 1, phiC, thetaC, rC, one)
	writeVar(Te, dir, "rho", 2, phiC, thetaC, rC, one)
	O, err := NewOutput(dir)
	require.NoError(Te, err)
	W, err := Watch(dir, O.Cache())
	require.NoError(Te, err)
	defer W.Close()
	_, err = O.At(1).Get("rho")
	require.NoError(Te, err)
	_, err = O.At(2).Get("rho")
	require.NoError(Te, err)
	require.Equal(Te, 2, O.Cache().Len())
	writeVar(Te, dir, "rho", 1, phiC, thetaC, rC, func(p, t, r float64) float64 { return 5 })
	require.Eventually(Te, func() bool { return O.Cache().Len() == 1 }, 5*time.Second, 20*time.Millisecond)
	V, err := O.At(1).Get("rho")
	require.NoError(Te, err)
	assert.InDelta(Te, 5, V.At(0, 0, 0), 1e-6)
	select {
	case k := <-W.Changes():
		assert.Equal(Te, Key{Dir: filepath.Clean(dir), Var: "rho", Timestep: 1}, k)
	case <-time.After(5 * time.Second):
		Te.Fatal("no change reported")
	}
	require.NoError(Te, W.Close())
	_, open := <-W.Changes()
	for open {
		_, open = <-W.Changes()
	}
}
