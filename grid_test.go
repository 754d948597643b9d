/*
 * grid_test.go, part of psigo.
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
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uniformPhi returns n longitudes evenly spaced on [0, 2pi).
func uniformPhi(n int) []float64 {
	p := make([]float64, n)
	for i := range p {
		p[i] = float64(i) * 2 * math.Pi / float64(n)
	}
	return p
}

// fieldData samples f at every point of the grid.
func fieldData(phi, theta, r []float64, f func(p, t, r float64) [3]float64) []float64 {
	data := make([]float64, 0, len(phi)*len(theta)*len(r)*3)
	for _, p := range phi {
		for _, t := range theta {
			for _, rad := range r {
				v := f(p, t, rad)
				data = append(data, v[:]...)
			}
		}
	}
	return data
}

func TestAxisRoundTrip(Te *testing.T) {
	A, err := NewAxis([]float64{1, 1.5, 2.5, 4, 7}, false, 0)
	require.NoError(Te, err)
	assert.InDelta(Te, 1.5, A.Spacing(), 1e-12)
	for _, idx := range []float64{0, 0.25, 1, 1.7, 2.5, 3.999, 4} {
		x := A.Coord(idx)
		back, ok := A.Index(x)
		require.True(Te, ok, "index %g", idx)
		assert.InDelta(Te, idx, back, 1e-12)
	}
	_, ok := A.Index(0.5)
	assert.False(Te, ok)
	_, ok = A.Index(7.1)
	assert.False(Te, ok)
	assert.False(Te, A.Contains(-0.01))
	assert.False(Te, A.Contains(4.01))
	assert.False(Te, A.Contains(math.NaN()))
}

func TestCyclicAxis(Te *testing.T) {
	A, err := NewAxis(uniformPhi(8), true, 2*math.Pi)
	require.NoError(Te, err)
	assert.InDelta(Te, math.Pi/4, A.Spacing(), 1e-12)
	assert.True(Te, A.Contains(-3))
	assert.True(Te, A.Contains(100))
	//index n is index 0
	assert.InDelta(Te, 0, A.Coord(8), 1e-12)
	assert.InDelta(Te, 7.5*math.Pi/4, A.Coord(-0.5), 1e-12)
	idx, ok := A.Index(-math.Pi / 8)
	require.True(Te, ok)
	assert.InDelta(Te, 7.5, idx, 1e-12)
	idx, ok = A.Index(2*math.Pi + math.Pi/4)
	require.True(Te, ok)
	assert.InDelta(Te, 1, idx, 1e-12)
	for _, i := range []float64{0, 0.3, 3.2, 7.5, 7.99} {
		back, ok := A.Index(A.Coord(i))
		require.True(Te, ok)
		assert.InDelta(Te, i, back, 1e-9)
	}
	_, err = NewAxis(uniformPhi(9)[:9], true, math.Pi)
	assert.True(Te, errors.Is(err, ErrInvalidGrid), "span longer than the period")
}

func TestAxisCell(Te *testing.T) {
	A, err := NewAxis([]float64{1, 1.1, 1.3, 9}, false, 0)
	require.NoError(Te, err)
	lo, hi, f := A.Cell(1.25)
	assert.Equal(Te, []int{1, 2}, []int{lo, hi})
	assert.InDelta(Te, 0.25, f, 1e-12)
	//the last point closes the last cell
	lo, hi, f = A.Cell(3)
	assert.Equal(Te, []int{2, 3}, []int{lo, hi})
	assert.Equal(Te, 1.0, f)
	C, err := NewAxis(uniformPhi(6), true, 2*math.Pi)
	require.NoError(Te, err)
	lo, hi, f = C.Cell(5.5)
	assert.Equal(Te, []int{5, 0}, []int{lo, hi})
	assert.InDelta(Te, 0.5, f, 1e-12)
	lo, hi, f = C.Cell(-0.25)
	assert.Equal(Te, []int{5, 0}, []int{lo, hi})
	assert.InDelta(Te, 0.75, f, 1e-12)
}

func TestGridWrap(Te *testing.T) {
	phi := uniformPhi(4)
	G, err := NewGrid(make([]float64, 4*2*2*3), phi, []float64{0, 1}, []float64{1, 2}, [3]bool{true, false, false})
	require.NoError(Te, err)
	p := G.Wrap([3]float64{-0.5, -3, 7})
	assert.InDelta(Te, 2*math.Pi-0.5, p[Phi], 1e-12)
	assert.Equal(Te, -3.0, p[Theta], "only cyclic axes wrap")
	assert.Equal(Te, 7.0, p[R])
}

func TestGridRoundTrip(Te *testing.T) {
	phi := uniformPhi(16)
	theta := []float64{-1.2, -0.5, 0, 0.3, 1.1}
	r := []float64{1, 1.1, 1.3, 2, 3.5, 10}
	G, err := NewGrid(make([]float64, 16*5*6*3), phi, theta, r, [3]bool{true, false, false})
	require.NoError(Te, err)
	for _, idx := range [][3]float64{{0, 0, 0}, {15.5, 4, 5}, {3.3, 2.7, 1.1}, {8, 0.5, 4.9}} {
		p := G.ToCoord(idx)
		back, ok := G.ToIndex(p)
		require.True(Te, ok, fmt.Sprint(idx))
		for i := range idx {
			assert.InDelta(Te, idx[i], back[i], 1e-9)
		}
	}
	_, ok := G.ToIndex([3]float64{0, 0, 0.5})
	assert.False(Te, ok)
	_, ok = G.ToIndex([3]float64{-10, 0, 2})
	assert.True(Te, ok, "phi is cyclic")
	assert.Equal(Te, [3]int{16, 5, 6}, G.Dims())
	assert.Equal(Te, [3]bool{true, false, false}, G.Cyclic())
}

func TestInterpolate(Te *testing.T) {
	phi := uniformPhi(8)
	theta := []float64{-0.6, -0.2, 0.2, 0.6}
	r := []float64{1, 2, 3}
	//values linear in the index
	data := make([]float64, 0, 8*4*3*3)
	for i := range phi {
		for j := range theta {
			for k := range r {
				data = append(data, float64(j), float64(k), float64(i+j+k))
			}
		}
	}
	G, err := NewGrid(data, phi, theta, r, [3]bool{true, false, false})
	require.NoError(Te, err)
	assert.Equal(Te, [3]float64{2, 1, 6}, G.At(3, 2, 1))
	v, ok := G.Interpolate([3]float64{2.5, 1.25, 0.5})
	require.True(Te, ok)
	assert.InDelta(Te, 1.25, v[0], 1e-12)
	assert.InDelta(Te, 0.5, v[1], 1e-12)
	assert.InDelta(Te, 4.25, v[2], 1e-12)
	//the upper edges are part of the domain
	v, ok = G.Interpolate([3]float64{0, 3, 2})
	require.True(Te, ok)
	assert.InDelta(Te, 5, v[2], 1e-12)
	//between the last phi plane and the first one
	v, ok = G.Interpolate([3]float64{7.5, 0, 0})
	require.True(Te, ok)
	assert.InDelta(Te, 3.5, v[2], 1e-12)
	v2, ok := G.Interpolate([3]float64{-0.5, 0, 0})
	require.True(Te, ok)
	assert.Equal(Te, v, v2)
	for _, out := range [][3]float64{{0, -0.1, 0}, {0, 3.01, 0}, {0, 0, 2.5}, {0, math.NaN(), 0}} {
		v, ok = G.Interpolate(out)
		assert.False(Te, ok, fmt.Sprint(out))
		assert.Equal(Te, [3]float64{}, v)
	}
}

func TestNewGridErrors(Te *testing.T) {
	phi := uniformPhi(4)
	theta := []float64{-0.5, 0, 0.5}
	r := []float64{1, 2}
	_, err := NewGrid(make([]float64, 10), phi, theta, r, [3]bool{true, false, false})
	require.Error(Te, err)
	assert.True(Te, errors.Is(err, ErrInvalidGrid))
	fmt.Println("Expected error:", err)
	_, err = NewGrid(make([]float64, 4*3*2*3), phi, []float64{0, -0.5, 0.5}, r, [3]bool{true, false, false})
	assert.True(Te, errors.Is(err, ErrInvalidGrid))
	_, err = NewGrid(make([]float64, 4*3*3), phi, theta, []float64{1}, [3]bool{true, false, false})
	assert.True(Te, errors.Is(err, ErrInvalidGrid))
	_, err = NewGrid(make([]float64, 4*3*2*3), phi, theta, []float64{1, math.Inf(1)}, [3]bool{true, false, false})
	assert.True(Te, errors.Is(err, ErrInvalidGrid))
	var perr Error
	require.True(Te, errors.As(err, &perr))
	assert.True(Te, perr.Critical())
	assert.Contains(Te, perr.Trace(), "NewGrid")
}
