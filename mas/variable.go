/*
 * variable.go, part of psigo.
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

	psi "github.com/dstansby/psigo"
)

// Variable is a scalar MAS variable at one timestep. Theta is latitude,
// increasing. Data has shape (len(Phi), len(Theta), len(R)), phi-major.
type Variable struct {
	Name     string
	Timestep int
	Phi      []float64
	Theta    []float64
	R        []float64
	Data     []float64

	axes [3]*psi.Axis
	nphi int //phi planes used for sampling; the last plane is skipped if it repeats the first
}

// NewVariable builds a variable, checking the shape of data. The slices are not copied.
func NewVariable(name string, timestep int, phi, theta, r, data []float64) (*Variable, error) {
	V := &Variable{Name: name, Timestep: timestep, Phi: phi, Theta: theta, R: r, Data: data}
	if len(data) != len(phi)*len(theta)*len(r) {
		return nil, Error{"data does not match the grid of " + name, "", []string{"NewVariable"}, true, ErrInvalidArchive}
	}
	V.nphi = len(phi)
	if V.nphi > 2 && phi[V.nphi-1]-phi[0] >= 2*math.Pi-1e-9 {
		V.nphi--
	}
	var err error
	if V.axes[0], err = psi.NewAxis(phi[:V.nphi], true, 2*math.Pi); err != nil {
		return nil, Error{err.Error(), "", []string{"NewVariable"}, true, ErrInvalidArchive}
	}
	if V.axes[1], err = psi.NewAxis(theta, false, 0); err != nil {
		return nil, Error{err.Error(), "", []string{"NewVariable"}, true, ErrInvalidArchive}
	}
	if V.axes[2], err = psi.NewAxis(r, false, 0); err != nil {
		return nil, Error{err.Error(), "", []string{"NewVariable"}, true, ErrInvalidArchive}
	}
	return V, nil
}

// Dims returns the number of points along phi, theta and r.
func (V *Variable) Dims() [3]int {
	return [3]int{len(V.Phi), len(V.Theta), len(V.R)}
}

// At returns the value at the grid point (i, j, k).
func (V *Variable) At(i, j, k int) float64 {
	return V.Data[(i*len(V.Theta)+j)*len(V.R)+k]
}

// SampleAt returns the trilinear interpolation of the variable at the given point.
// Phi wraps around; the second value is false if theta or r are outside the grid.
func (V *Variable) SampleAt(phi, theta, r float64) (float64, bool) {
	var idx [3]float64
	for i, x := range [3]float64{phi, theta, r} {
		var ok bool
		idx[i], ok = V.axes[i].Index(x)
		if !ok {
			return math.NaN(), false
		}
	}
	return V.sample(idx), true
}

// sampleClamped is like SampleAt, but points outside the grid take the value at
// the closest edge.
func (V *Variable) sampleClamped(phi, theta, r float64) float64 {
	var idx [3]float64
	for i, x := range [3]float64{phi, theta, r} {
		idx[i], _ = V.axes[i].Index(x)
		if i > 0 {
			idx[i] = math.Max(0, math.Min(idx[i], float64(V.axes[i].Len()-1)))
		}
	}
	return V.sample(idx)
}

func (V *Variable) sample(idx [3]float64) float64 {
	var v float64
	psi.Trilinear(V.axes, idx, func(i, j, k int, w float64) {
		v += w * V.At(i, j, k)
	})
	return v
}
