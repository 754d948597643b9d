/*
 * correct.go, part of psigo.
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

// PoleTolerance is the value of |cos(theta)| below which theta is taken to be a pole.
const PoleTolerance = 1e-9

// AtPole returns whether the latitude theta is at one of the poles.
func AtPole(theta float64) bool {
	return math.Abs(math.Cos(theta)) < PoleTolerance
}

// Correct converts the spherical components v (phi, theta, r) of a vector at latitude
// theta and radius r into coordinate rates: the phi component is divided by r cos(theta)
// and the theta component by r. The radial component is unchanged.
// At a pole the phi rate is undefined; it is set to 0 and Correct returns false.
func Correct(v [3]float64, theta, r float64) ([3]float64, bool) {
	out := v
	out[Theta] = v[Theta] / r
	if AtPole(theta) {
		out[Phi] = 0
		return out, false
	}
	out[Phi] = v[Phi] / (math.Cos(theta) * r)
	return out, true
}

// CorrectField applies Correct to every sample of data, a (phi, theta, r, 3) array
// on the given axes, and returns the result in a new slice. The number of samples
// found at a pole is also returned.
func CorrectField(data, phi, theta, r []float64) ([]float64, int, error) {
	np, nt, nr := len(phi), len(theta), len(r)
	if len(data) != np*nt*nr*3 {
		return nil, 0, newError(ErrInvalidGrid, "CorrectField", "data has %d values, the %dx%dx%dx3 grid needs %d", len(data), np, nt, nr, np*nt*nr*3)
	}
	out := make([]float64, len(data))
	poles := 0
	for i := 0; i < np; i++ {
		for j, th := range theta {
			for k, rad := range r {
				o := ((i*nt+j)*nr + k) * 3
				c, ok := Correct([3]float64{data[o], data[o+1], data[o+2]}, th, rad)
				if !ok {
					poles++
				}
				copy(out[o:o+3], c[:])
			}
		}
	}
	return out, poles, nil
}
