/*
 * correct_test.go, part of psigo.
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
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrect(Te *testing.T) {
	v, ok := Correct([3]float64{2, 4, 7}, math.Pi/3, 2)
	require.True(Te, ok)
	assert.InDelta(Te, 2, v[Phi], 1e-12) //2/(0.5*2)
	assert.InDelta(Te, 2, v[Theta], 1e-12)
	assert.Equal(Te, 7.0, v[R])
	v, ok = Correct([3]float64{2, 4, 7}, -math.Pi/2, 2)
	assert.False(Te, ok)
	assert.Equal(Te, [3]float64{0, 2, 7}, v)
	assert.True(Te, AtPole(math.Pi/2))
	assert.False(Te, AtPole(math.Pi/2-1e-6))
}

func TestCorrectField(Te *testing.T) {
	phi := uniformPhi(4)
	theta := []float64{-math.Pi / 2, 0, math.Pi / 2}
	r := []float64{1, 2}
	data := fieldData(phi, theta, r, func(p, t, r float64) [3]float64 { return [3]float64{1, 1, 1} })
	out, poles, err := CorrectField(data, phi, theta, r)
	require.NoError(Te, err)
	assert.Equal(Te, 4*2*2, poles)
	assert.Equal(Te, 1.0, data[0], "input untouched")
	o := ((1*3+1)*2 + 1) * 3 //phi 1, theta 0, r 2
	assert.InDelta(Te, 0.5, out[o], 1e-12)
	assert.InDelta(Te, 0.5, out[o+1], 1e-12)
	assert.InDelta(Te, 1, out[o+2], 1e-12)
	_, _, err = CorrectField(data[:5], phi, theta, r)
	assert.True(Te, errors.Is(err, ErrInvalidGrid))
}

func TestVectorGridDropsWrap(Te *testing.T) {
	phi := append(uniformPhi(6), 2*math.Pi)
	theta := []float64{-0.5, 0, 0.5}
	r := []float64{1, 2, 3}
	vd := &VectorData{Name: "b", Phi: phi, Theta: theta, R: r,
		Data: fieldData(phi, theta, r, func(p, t, r float64) [3]float64 { return [3]float64{r, 0, 1} })}
	G, err := VectorGrid(vd)
	require.NoError(Te, err)
	assert.Equal(Te, [3]int{6, 3, 3}, G.Dims())
	assert.True(Te, G.Cyclic()[Phi])
	//phi component r/(r cos(theta))
	v := G.At(2, 0, 2)
	assert.InDelta(Te, 1/math.Cos(-0.5), v[Phi], 1e-12)
	_, err = VectorGrid(nil)
	assert.True(Te, errors.Is(err, ErrInvalidGrid))
}
