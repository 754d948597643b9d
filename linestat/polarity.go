/*
 * polarity.go, part of psigo.
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

package linestat

import (
	psi "github.com/dstansby/psigo"
)

// Sampler returns the value of a scalar at a point, and whether the point
// is in its domain. mas.Variable.SampleAt is a Sampler.
type Sampler func(phi, theta, r float64) (float64, bool)

// Polarity is the sign of a scalar (usually br) at a point of a streamline.
type Polarity int

const (
	Unknown Polarity = iota
	Positive
	Negative
)

func (p Polarity) String() string {
	switch p {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	}
	return "unknown"
}

// PolarityPoint is the point of the streamline used by Classify, counted from
// its first point. Lines shorter than that use their last point.
const PolarityPoint = 2

// Classify returns the sign of sample at the PolarityPoint-th point of line.
func Classify(line *psi.Streamline, sample Sampler) Polarity {
	if line == nil || line.Len() == 0 {
		return Unknown
	}
	i := PolarityPoint
	if i >= line.Len() {
		i = line.Len() - 1
	}
	p := line.Point(i)
	v, ok := sample(p[psi.Phi], p[psi.Theta], p[psi.R])
	switch {
	case !ok || v != v:
		return Unknown
	case v > 0:
		return Positive
	case v < 0:
		return Negative
	}
	return Unknown
}

// ClassifyAll classifies every line.
func ClassifyAll(lines []*psi.Streamline, sample Sampler) []Polarity {
	r := make([]Polarity, len(lines))
	for i, l := range lines {
		r[i] = Classify(l, sample)
	}
	return r
}

// Connectivity tells where the two ends of a streamline are.
type Connectivity int

const (
	Incomplete   Connectivity = iota //at least one end is inside the domain
	Closed                           //both ends on the inner boundary
	Open                             //one end on each boundary
	Disconnected                     //both ends on the outer boundary
)

func (c Connectivity) String() string {
	switch c {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case Disconnected:
		return "disconnected"
	}
	return "incomplete"
}

// Connect returns the connectivity of line, with inner and outer the radial
// boundaries of the domain. An end counts as being on a boundary if the
// direction left the domain within tol of it.
func Connect(line *psi.Streamline, inner, outer, tol float64) Connectivity {
	if line == nil || line.Len() == 0 {
		return Incomplete
	}
	where := func(p [3]float64, st psi.Status) int {
		if st != psi.OutOfBounds {
			return 0
		}
		switch {
		case p[psi.R]-inner <= tol:
			return 1
		case outer-p[psi.R] <= tol:
			return 2
		}
		return 0
	}
	b := where(line.End(false), line.Backward)
	f := where(line.End(true), line.Forward)
	switch {
	case b == 0 || f == 0:
		return Incomplete
	case b == 1 && f == 1:
		return Closed
	case b == 2 && f == 2:
		return Disconnected
	}
	return Open
}
