/*
 * axis.go, part of psigo.
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

package psi

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/stat"
)

// Axis maps between the physical coordinate along one grid dimension and the
// fractional grid index. Coordinates must be strictly increasing but need not
// be uniformly spaced. On a cyclic axis index n is the same as index 0.
type Axis struct {
	coords  []float64
	cyclic  bool
	period  float64
	spacing float64
	toIndex interp.PiecewiseLinear
	toCoord interp.PiecewiseLinear
}

// NewAxis builds an axis from coords. period is only used if cyclic is true, and the
// coordinates must then span less than one period.
func NewAxis(coords []float64, cyclic bool, period float64) (*Axis, error) {
	n := len(coords)
	if n < 2 {
		return nil, newError(ErrInvalidGrid, "NewAxis", "axis needs at least 2 points, got %d", n)
	}
	for i, c := range coords {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, newError(ErrInvalidGrid, "NewAxis", "non-finite coordinate at %d", i)
		}
		if i > 0 && c <= coords[i-1] {
			return nil, newError(ErrInvalidGrid, "NewAxis", "coordinates not strictly increasing at %d (%g <= %g)", i, c, coords[i-1])
		}
	}
	A := &Axis{coords: append([]float64(nil), coords...), cyclic: cyclic}
	xs := A.coords
	if cyclic {
		if !(period > 0) || math.IsInf(period, 0) {
			return nil, newError(ErrInvalidGrid, "NewAxis", "cyclic axis needs a positive period, got %g", period)
		}
		if coords[n-1]-coords[0] >= period {
			return nil, newError(ErrInvalidGrid, "NewAxis", "cyclic axis spans %g, not less than its period %g", coords[n-1]-coords[0], period)
		}
		A.period = period
		A.spacing = period / float64(n)
		xs = append(append([]float64(nil), coords...), coords[0]+period)
	} else {
		diffs := make([]float64, n-1)
		floats.SubTo(diffs, coords[1:], coords[:n-1])
		A.spacing = stat.Mean(diffs, nil)
	}
	idx := make([]float64, len(xs))
	floats.Span(idx, 0, float64(len(xs)-1))
	if err := A.toIndex.Fit(xs, idx); err != nil {
		return nil, newError(ErrInvalidGrid, "NewAxis", "%s", err)
	}
	if err := A.toCoord.Fit(idx, xs); err != nil {
		return nil, newError(ErrInvalidGrid, "NewAxis", "%s", err)
	}
	return A, nil
}

// Len returns the number of points in the axis.
func (A *Axis) Len() int { return len(A.coords) }

// Cyclic returns whether the axis wraps around.
func (A *Axis) Cyclic() bool { return A.cyclic }

// Period returns the period of a cyclic axis, or 0.
func (A *Axis) Period() float64 { return A.period }

// Spacing returns the mean spacing between successive points. For a cyclic axis
// it is the mean over the full period.
func (A *Axis) Spacing() float64 { return A.spacing }

// Coords returns a copy of the coordinates.
func (A *Axis) Coords() []float64 { return append([]float64(nil), A.coords...) }

// Contains reports whether the fractional index idx lies in the domain of the axis.
func (A *Axis) Contains(idx float64) bool {
	if math.IsNaN(idx) || math.IsInf(idx, 0) {
		return false
	}
	if A.cyclic {
		return true
	}
	return idx >= 0 && idx <= float64(len(A.coords)-1)
}

// wrap brings an index on a cyclic axis into [0, n).
func (A *Axis) wrap(idx float64) float64 {
	if !A.cyclic {
		return idx
	}
	return mod(idx, float64(len(A.coords)))
}

// Index returns the fractional index for coordinate x, and whether x lies in the
// domain. Outside the domain of a non-cyclic axis the index is linearly
// extrapolated from the closest cell.
func (A *Axis) Index(x float64) (float64, bool) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return math.NaN(), false
	}
	n := len(A.coords)
	c := A.coords
	if A.cyclic {
		x = c[0] + mod(x-c[0], A.period)
		i := A.toIndex.Predict(x)
		//x may round to c[0]+period.
		return A.wrap(i), true
	}
	switch {
	case x < c[0]:
		return (x - c[0]) / (c[1] - c[0]), false
	case x > c[n-1]:
		return float64(n-1) + (x-c[n-1])/(c[n-1]-c[n-2]), false
	}
	return A.toIndex.Predict(x), true
}

// Coord returns the physical coordinate at the fractional index idx. Coordinates
// on a cyclic axis are reported in [0, period).
func (A *Axis) Coord(idx float64) float64 {
	n := len(A.coords)
	c := A.coords
	if A.cyclic {
		x := A.toCoord.Predict(A.wrap(idx))
		return mod(x, A.period)
	}
	switch {
	case idx < 0:
		return c[0] + idx*(c[1]-c[0])
	case idx > float64(n-1):
		return c[n-1] + (idx-float64(n-1))*(c[n-1]-c[n-2])
	}
	return A.toCoord.Predict(idx)
}

// Cell returns the grid points lo and hi around the fractional index idx, and the
// weight f of hi. On a cyclic axis the cell past the last point wraps to the first
// one. On other axes the last point belongs to the last cell, and indexes outside
// the axis use the closest cell, so f is then outside [0, 1].
func (A *Axis) Cell(idx float64) (lo, hi int, f float64) {
	n := len(A.coords)
	x := A.wrap(idx)
	l := int(math.Floor(x))
	if A.cyclic {
		return l % n, (l + 1) % n, x - float64(l)
	}
	l = max(0, min(l, n-2))
	return l, l + 1, x - float64(l)
}

// Trilinear calls fn with each of the 8 grid points around idx, on the
// given axes, and its trilinear weight. Points with a zero weight are skipped.
func Trilinear(axes [3]*Axis, idx [3]float64, fn func(i, j, k int, w float64)) {
	var lo, hi [3]int
	var f [3]float64
	for a := range axes {
		lo[a], hi[a], f[a] = axes[a].Cell(idx[a])
	}
	for c := 0; c < 8; c++ {
		i, wi := lo[0], 1-f[0]
		if c&4 != 0 {
			i, wi = hi[0], f[0]
		}
		j, wj := lo[1], 1-f[1]
		if c&2 != 0 {
			j, wj = hi[1], f[1]
		}
		k, wk := lo[2], 1-f[2]
		if c&1 != 0 {
			k, wk = hi[2], f[2]
		}
		if w := wi * wj * wk; w != 0 {
			fn(i, j, k, w)
		}
	}
}

// mod returns x modulo m, in [0, m).
func mod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	if r >= m {
		r = 0
	}
	return r
}
