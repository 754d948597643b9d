/*
 * grid.go, part of psigo.
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
)

// Axis numbers in a Grid.
const (
	Phi = iota
	Theta
	R
)

// Grid is a 3-component vector field sampled on a spherical (phi, theta, r) grid.
// The samples are stored phi-major with the component fastest, i.e. the
// shape is (n_phi, n_theta, n_r, 3). A Grid is never modified after construction,
// so it can be shared by any number of goroutines.
type Grid struct {
	data    []float64
	axes    [3]*Axis
	dims    [3]int
	spacing [3]float64
}

// NewGrid returns a grid for data on the given axes. Cyclic axes are taken to have
// a period of 2pi. The data slice is used as is, not copied.
func NewGrid(data []float64, phi, theta, r []float64, cyclic [3]bool) (*Grid, error) {
	G := new(Grid)
	for i, c := range [3][]float64{phi, theta, r} {
		a, err := NewAxis(c, cyclic[i], 2*math.Pi)
		if err != nil {
			return nil, errDecorate(err, "NewGrid")
		}
		G.axes[i] = a
		G.dims[i] = a.Len()
		G.spacing[i] = a.Spacing()
	}
	if want := G.dims[0] * G.dims[1] * G.dims[2] * 3; len(data) != want {
		return nil, newError(ErrInvalidGrid, "NewGrid", "data has %d values, the %dx%dx%dx3 grid needs %d", len(data), G.dims[0], G.dims[1], G.dims[2], want)
	}
	G.data = data
	return G, nil
}

// Dims returns the number of points along phi, theta and r.
func (G *Grid) Dims() [3]int { return G.dims }

// Spacing returns the mean spacing of each axis.
func (G *Grid) Spacing() [3]float64 { return G.spacing }

// Cyclic returns the cyclic flag of each axis.
func (G *Grid) Cyclic() [3]bool {
	return [3]bool{G.axes[0].Cyclic(), G.axes[1].Cyclic(), G.axes[2].Cyclic()}
}

// Axis returns the ith axis (Phi, Theta or R).
func (G *Grid) Axis(i int) *Axis { return G.axes[i] }

func (G *Grid) offset(i, j, k int) int {
	return ((i*G.dims[1]+j)*G.dims[2] + k) * 3
}

// At returns the vector stored at the grid point (i, j, k).
func (G *Grid) At(i, j, k int) [3]float64 {
	o := G.offset(i, j, k)
	return [3]float64{G.data[o], G.data[o+1], G.data[o+2]}
}

// Contains reports whether the fractional index lies in the domain.
func (G *Grid) Contains(idx [3]float64) bool {
	for i, a := range G.axes {
		if !a.Contains(idx[i]) {
			return false
		}
	}
	return true
}

// ToIndex returns the fractional index of the physical point p, and whether
// p is inside the domain.
func (G *Grid) ToIndex(p [3]float64) ([3]float64, bool) {
	var idx [3]float64
	in := true
	for i, a := range G.axes {
		var ok bool
		idx[i], ok = a.Index(p[i])
		in = in && ok
	}
	return idx, in
}

// ToCoord returns the physical point at the fractional index idx.
func (G *Grid) ToCoord(idx [3]float64) [3]float64 {
	var p [3]float64
	for i, a := range G.axes {
		p[i] = a.Coord(idx[i])
	}
	return p
}

// Wrap brings the cyclic coordinates of the physical point p into [0, period).
func (G *Grid) Wrap(p [3]float64) [3]float64 {
	for i, a := range G.axes {
		if a.Cyclic() {
			p[i] = mod(p[i], a.Period())
		}
	}
	return p
}

// Interpolate returns the trilinear interpolation of the field at the fractional
// index idx, from the 8 surrounding grid points. The second value is false, and
// the vector is zero, if idx is outside the domain of a non-cyclic axis.
func (G *Grid) Interpolate(idx [3]float64) ([3]float64, bool) {
	if !G.Contains(idx) {
		return [3]float64{}, false
	}
	var v [3]float64
	Trilinear(G.axes, idx, func(i, j, k int, w float64) {
		o := G.offset(i, j, k)
		v[0] += w * G.data[o]
		v[1] += w * G.data[o+1]
		v[2] += w * G.data[o+2]
	})
	return v, true
}
