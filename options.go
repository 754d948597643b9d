/*
 * options.go, part of psigo.
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
	"runtime"
)

// Direction selects which way streamlines are integrated from the seed.
type Direction int

const (
	Both Direction = iota
	Forward
	Backward
)

func (d Direction) String() string {
	switch d {
	case Both:
		return "both"
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection returns the Direction named s.
func ParseDirection(s string) (Direction, error) {
	for _, d := range []Direction{Both, Forward, Backward} {
		if d.String() == s {
			return d, nil
		}
	}
	return Both, newError(ErrInvalidOptions, "ParseDirection", "unknown direction %q", s)
}

// Integration methods.
const (
	RK4   = "rk4"
	Euler = "euler"
)

// Options contains the options for tracing streamlines.
type Options struct {
	maxSteps  int
	stepSize  float64
	direction Direction
	method    string
	cpus      int
}

// DefaultOptions returns a pointer to a set of options filled with default values.
// Streamlines are traced both ways with RK4, up to 1000 steps of 0.01 mean cells each,
// using all logical CPUs.
func DefaultOptions() *Options {
	r := new(Options)
	r.maxSteps = 1000
	r.stepSize = 0.01
	r.direction = Both
	r.method = RK4
	r.cpus = runtime.NumCPU()
	return r
}

// MaxSteps returns the maximum number of steps per direction,
// and sets it to a new value, if given.
func (O *Options) MaxSteps(n ...int) int {
	if len(n) > 0 {
		O.maxSteps = n[0]
	}
	return O.maxSteps
}

// StepSize returns the step length, in mean grid cells,
// and sets it to a new value, if given.
func (O *Options) StepSize(h ...float64) float64 {
	if len(h) > 0 {
		O.stepSize = h[0]
	}
	return O.stepSize
}

// Direction returns the integration direction, and sets it to a new value, if given.
func (O *Options) Direction(d ...Direction) Direction {
	if len(d) > 0 {
		O.direction = d[0]
	}
	return O.direction
}

// Method returns the name of the integration method,
// and sets it to a new value, if given.
func (O *Options) Method(m ...string) string {
	if len(m) > 0 && m[0] != "" {
		O.method = m[0]
	}
	return O.method
}

// Cpus returns the number of gorutines to be used,
// and sets it to a new value, if given.
func (O *Options) Cpus(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.cpus = n[0]
	}
	return O.cpus
}

func (O *Options) String() string {
	return fmt.Sprintf("method=%s step=%g max-steps=%d direction=%s", O.method, O.stepSize, O.maxSteps, O.direction)
}
