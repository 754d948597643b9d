/*
 * tracer.go, part of psigo.
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

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	v3 "github.com/dstansby/psigo/v3"
)

// stepper advances the point p by h times the displacement returned by dir.
type stepper func(p [3]float64, h float64, dir func([3]float64) ([3]float64, Status)) ([3]float64, Status)

var steppers = map[string]stepper{
	Euler: eulerStep,
	RK4:   rk4Step,
}

// Tracer integrates streamlines through a Grid. A Tracer holds no state besides
// its options, so one Tracer can trace any number of grids, also concurrently.
type Tracer struct {
	maxSteps  int
	stepSize  float64
	direction Direction
	cpus      int
	method    string
	step      stepper
}

// NewTracer returns a tracer using the options in o, or the default options if o is nil.
// An unknown integration method gives an error wrapping ErrBackendUnavailable.
func NewTracer(o *Options) (*Tracer, error) {
	if o == nil {
		o = DefaultOptions()
	}
	if o.maxSteps < 1 {
		return nil, newError(ErrInvalidOptions, "NewTracer", "max steps must be positive, got %d", o.maxSteps)
	}
	if !(o.stepSize > 0) || math.IsInf(o.stepSize, 0) {
		return nil, newError(ErrInvalidOptions, "NewTracer", "step size must be positive and finite, got %g", o.stepSize)
	}
	if o.direction < Both || o.direction > Backward {
		return nil, newError(ErrInvalidOptions, "NewTracer", "invalid direction %d", int(o.direction))
	}
	if o.cpus < 1 {
		return nil, newError(ErrInvalidOptions, "NewTracer", "cpus must be positive, got %d", o.cpus)
	}
	s, ok := steppers[o.method]
	if !ok {
		return nil, newError(ErrBackendUnavailable, "NewTracer", "no integration method %q", o.method)
	}
	return &Tracer{maxSteps: o.maxSteps, stepSize: o.stepSize, direction: o.direction, cpus: o.cpus, method: o.method, step: s}, nil
}

// Trace traces one streamline per row of seeds through G. The result is
// index-aligned with seeds. Seeds are traced concurrently; each streamline is
// the same as TraceOne would give for its seed alone.
func (T *Tracer) Trace(seeds *v3.Matrix, G *Grid) ([]*Streamline, error) {
	if G == nil {
		return nil, newError(ErrInvalidGrid, "Trace", "nil grid")
	}
	if seeds == nil {
		return nil, newError(ErrInvalidSeeds, "Trace", "nil seeds")
	}
	if _, c := seeds.Dims(); c != 3 {
		return nil, newError(ErrInvalidSeeds, "Trace", "seeds must have 3 columns, got %d", c)
	}
	n := seeds.NVecs()
	res := make([]*Streamline, n)
	var eg errgroup.Group
	eg.SetLimit(T.cpus)
	for i := 0; i < n; i++ {
		eg.Go(func() error {
			res[i] = T.TraceOne(seeds.Vec(i), G)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, errDecorate(err, "Trace")
	}
	logger.Debug("traced streamlines", zap.Int("seeds", n), zap.String("method", T.method), zap.Float64("step", T.stepSize))
	return res, nil
}

// TraceSource obtains variable from src on its cell-centred grid and traces seeds through it.
func (T *Tracer) TraceSource(seeds *v3.Matrix, src FieldSource, variable string) ([]*Streamline, error) {
	vd, err := src.CellCentered(variable, true)
	if err != nil {
		return nil, errDecorate(err, "TraceSource")
	}
	G, err := VectorGrid(vd)
	if err != nil {
		return nil, errDecorate(err, "TraceSource")
	}
	lines, err := T.Trace(seeds, G)
	if err != nil {
		return nil, errDecorate(err, "TraceSource")
	}
	return lines, nil
}

// TraceOne traces a single streamline from seed, a (phi, theta, r) point.
// It never fails: a seed outside the domain gives a streamline with only the seed,
// and the traced directions OutOfBounds. Cyclic coordinates of the seed are
// reported wrapped, like those of every other point.
func (T *Tracer) TraceOne(seed [3]float64, G *Grid) *Streamline {
	S := &Streamline{Forward: Running, Backward: Running}
	back := T.direction == Both || T.direction == Backward
	forth := T.direction == Both || T.direction == Forward
	seed = G.Wrap(seed)
	if _, in := G.ToIndex(seed); !in {
		if back {
			S.Backward = OutOfBounds
		}
		if forth {
			S.Forward = OutOfBounds
		}
		S.Points = v3.FromVecs([][3]float64{seed})
		return S
	}
	var fw, bw [][3]float64
	if back {
		bw, S.Backward = T.integrate(G, seed, -1)
	}
	if forth {
		fw, S.Forward = T.integrate(G, seed, 1)
	}
	S.Points = v3.Zeros(len(bw) + 1 + len(fw))
	for i := range bw {
		S.Points.SetVec(len(bw)-1-i, bw[i])
	}
	S.Seed = len(bw)
	S.Points.SetVec(S.Seed, seed)
	for i, p := range fw {
		S.Points.SetVec(S.Seed+1+i, p)
	}
	return S
}

// integrate follows the field from the physical point p, along it if sign is 1 or
// against it if sign is -1, and returns the points reached (not including p).
// Steps are taken in physical coordinates, each one stepSize mean cells long;
// the grid only maps positions to fractional indexes for the interpolation.
func (T *Tracer) integrate(G *Grid, p [3]float64, sign float64) ([][3]float64, Status) {
	dir := func(at [3]float64) ([3]float64, Status) {
		return direction(G, at, sign)
	}
	var pts [][3]float64
	for s := 0; s < T.maxSteps; s++ {
		if AtPole(p[Theta]) {
			return pts, Singularity
		}
		next, st := T.step(p, T.stepSize, dir)
		if st != Running {
			return pts, st
		}
		if _, in := G.ToIndex(next); !in {
			return pts, OutOfBounds
		}
		p = G.Wrap(next)
		pts = append(pts, p)
	}
	return pts, MaxSteps
}

// direction returns the displacement, in physical coordinates, for a unit step
// along the field at p times sign. The field is normalized with each axis scaled
// by its mean spacing, so a unit step is one mean cell long.
func direction(G *Grid, p [3]float64, sign float64) ([3]float64, Status) {
	idx, in := G.ToIndex(p)
	if !in {
		return idx, OutOfBounds
	}
	v, ok := G.Interpolate(idx)
	if !ok {
		return v, OutOfBounds
	}
	var u [3]float64
	var norm float64
	for i := range v {
		if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
			return u, Singularity
		}
		u[i] = v[i] / G.spacing[i]
		norm += u[i] * u[i]
	}
	if norm == 0 {
		return u, Stationary
	}
	norm = math.Sqrt(norm)
	if math.IsInf(norm, 0) {
		return u, Singularity
	}
	for i := range u {
		u[i] = sign * u[i] / norm * G.spacing[i]
	}
	return u, Running
}

func axpy(a float64, x, y [3]float64) [3]float64 {
	return [3]float64{y[0] + a*x[0], y[1] + a*x[1], y[2] + a*x[2]}
}

func eulerStep(p [3]float64, h float64, dir func([3]float64) ([3]float64, Status)) ([3]float64, Status) {
	d, st := dir(p)
	if st != Running {
		return p, st
	}
	return axpy(h, d, p), Running
}

// rk4Step is the classic fourth order Runge-Kutta step over normalized directions.
func rk4Step(p [3]float64, h float64, dir func([3]float64) ([3]float64, Status)) ([3]float64, Status) {
	k1, st := dir(p)
	if st != Running {
		return p, st
	}
	k2, st := dir(axpy(h/2, k1, p))
	if st != Running {
		return p, st
	}
	k3, st := dir(axpy(h/2, k2, p))
	if st != Running {
		return p, st
	}
	k4, st := dir(axpy(h, k3, p))
	if st != Running {
		return p, st
	}
	var sum [3]float64
	for i := range sum {
		sum[i] = (k1[i] + 2*k2[i] + 2*k3[i] + k4[i]) / 6
	}
	return axpy(h, sum, p), Running
}
