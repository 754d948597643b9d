/*
 * seeds.go, part of psigo.
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
	"math/rand"

	"gonum.org/v1/gonum/floats"

	v3 "github.com/dstansby/psigo/v3"
)

// SeedGrid returns one seed for every combination of the given phi, theta and r
// values, phi varying slowest.
func SeedGrid(phi, theta, r []float64) (*v3.Matrix, error) {
	n := len(phi) * len(theta) * len(r)
	if n == 0 {
		return nil, newError(ErrInvalidSeeds, "SeedGrid", "empty seed axes (%d, %d, %d)", len(phi), len(theta), len(r))
	}
	S := v3.Zeros(n)
	row := 0
	for _, p := range phi {
		for _, t := range theta {
			for _, rad := range r {
				S.SetVec(row, [3]float64{p, t, rad})
				row++
			}
		}
	}
	return S, nil
}

// SeedBand returns n seeds at radius r, with latitudes evenly spaced between
// latMin and latMax (radians, both included) and longitudes drawn uniformly
// from [0, 2pi) with rng. A nil rng gives a generator seeded with 1, so the
// seeds are reproducible.
func SeedBand(n int, latMin, latMax, r float64, rng *rand.Rand) (*v3.Matrix, error) {
	if n < 1 {
		return nil, newError(ErrInvalidSeeds, "SeedBand", "need at least one seed, got %d", n)
	}
	if latMin > latMax || latMin < -math.Pi/2 || latMax > math.Pi/2 {
		return nil, newError(ErrInvalidSeeds, "SeedBand", "invalid latitude band [%g, %g]", latMin, latMax)
	}
	if !(r > 0) {
		return nil, newError(ErrInvalidSeeds, "SeedBand", "radius must be positive, got %g", r)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	lats := make([]float64, n)
	if n == 1 {
		lats[0] = (latMin + latMax) / 2
	} else {
		floats.Span(lats, latMin, latMax)
	}
	S := v3.Zeros(n)
	for i, lat := range lats {
		S.SetVec(i, [3]float64{rng.Float64() * 2 * math.Pi, lat, r})
	}
	return S, nil
}
