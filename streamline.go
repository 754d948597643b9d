/*
 * streamline.go, part of psigo.
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
	"fmt"
	"math"

	v3 "github.com/dstansby/psigo/v3"
)

// Status is the state of the integration of one direction of a streamline.
type Status int

const (
	Running     Status = iota //still integrating, or never integrated
	MaxSteps                  //step budget exhausted
	OutOfBounds               //left the domain of a non-cyclic axis
	Singularity               //reached a pole, or a non-finite field value
	Stationary                //zero field
)

var statusNames = [...]string{"running", "max-steps", "out-of-bounds", "singularity", "stationary"}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// ParseStatus is the inverse of Status.String.
func ParseStatus(s string) (Status, error) {
	for i, n := range statusNames {
		if n == s {
			return Status(i), nil
		}
	}
	return Running, fmt.Errorf("unknown streamline status %q", s)
}

// Streamline is the polyline traced from one seed. Points holds one (phi, theta, r)
// row per point, ordered from the end of the backward integration to the end
// of the forward one. Seed is the row of the seed.
type Streamline struct {
	Points   *v3.Matrix
	Seed     int
	Forward  Status
	Backward Status
}

// Len returns the number of points.
func (S *Streamline) Len() int {
	if S.Points == nil {
		return 0
	}
	return S.Points.NVecs()
}

// Point returns the ith point.
func (S *Streamline) Point(i int) [3]float64 {
	return S.Points.Vec(i)
}

// SeedPoint returns the seed of the streamline.
func (S *Streamline) SeedPoint() [3]float64 {
	return S.Points.Vec(S.Seed)
}

// ToCartesian converts a (phi, theta, r) point, theta being latitude, to x, y, z.
func ToCartesian(p [3]float64) [3]float64 {
	ct := math.Cos(p[Theta])
	return [3]float64{
		p[R] * ct * math.Cos(p[Phi]),
		p[R] * ct * math.Sin(p[Phi]),
		p[R] * math.Sin(p[Theta]),
	}
}

// Cartesian returns the points of the streamline in cartesian coordinates.
func (S *Streamline) Cartesian() *v3.Matrix {
	n := S.Len()
	C := v3.Zeros(n)
	for i := 0; i < n; i++ {
		C.SetVec(i, ToCartesian(S.Points.Vec(i)))
	}
	return C
}

// ArcLength returns the length of the polyline, in the units of r.
func (S *Streamline) ArcLength() float64 {
	n := S.Len()
	var l float64
	if n < 2 {
		return 0
	}
	prev := ToCartesian(S.Points.Vec(0))
	for i := 1; i < n; i++ {
		p := ToCartesian(S.Points.Vec(i))
		l += math.Sqrt((p[0]-prev[0])*(p[0]-prev[0]) + (p[1]-prev[1])*(p[1]-prev[1]) + (p[2]-prev[2])*(p[2]-prev[2]))
		prev = p
	}
	return l
}

// End returns the last point of the streamline in the given direction
// (the seed if that direction has no points).
func (S *Streamline) End(forward bool) [3]float64 {
	if forward {
		return S.Points.Vec(S.Len() - 1)
	}
	return S.Points.Vec(0)
}

func (S *Streamline) String() string {
	return fmt.Sprintf("streamline of %d points (seed at %d, backward %s, forward %s)", S.Len(), S.Seed, S.Backward, S.Forward)
}
