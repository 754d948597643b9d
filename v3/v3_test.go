/*
 * v3_test.go, part of psigo.
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

package v3

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatrix(Te *testing.T) {
	_, err := NewMatrix(nil)
	require.Error(Te, err)
	_, err = NewMatrix([]float64{1, 2, 3, 4})
	require.Error(Te, err)
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.NoError(Te, err)
	assert.Equal(Te, 3, A.NVecs())
	assert.Equal(Te, [3]float64{4, 5, 6}, A.Vec(1))
	fmt.Println(A)
}

func TestViews(Te *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.NoError(Te, err)
	View := A.VecView(1)
	View.Set(0, 0, 100)
	assert.Equal(Te, 100.0, A.At(1, 0))
	V2 := A.View(1, 2)
	assert.Equal(Te, 2, V2.NVecs())
	assert.Equal(Te, [3]float64{7, 8, 9}, V2.Vec(1))
	assert.Equal(Te, []float64{3, 6, 9}, A.Col(2))
}

func TestSomeVecs(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	A, err := NewMatrix(a)
	require.NoError(Te, err)
	B := Zeros(3)
	cind := []int{1, 3, 5}
	require.NoError(Te, B.SomeVecsSafe(A, cind))
	assert.Equal(Te, [3]float64{4, 5, 6}, B.Vec(0))
	assert.Equal(Te, [3]float64{16, 17, 18}, B.Vec(2))
	C := Zeros(2)
	err = C.SomeVecsSafe(A, cind)
	require.Error(Te, err)
	fmt.Println("Expected error:", err)
	D := Zeros(6)
	D.SetVecs(B, []int{0, 2, 4})
	assert.Equal(Te, [3]float64{10, 11, 12}, D.Vec(2))
	assert.Equal(Te, [3]float64{0, 0, 0}, D.Vec(1))
}

func TestStack(Te *testing.T) {
	A := FromVecs([][3]float64{{1, 1, 1}})
	B := FromVecs([][3]float64{{2, 2, 2}, {3, 3, 3}})
	S := Zeros(3)
	S.Stack(A, B)
	assert.Equal(Te, [3]float64{1, 1, 1}, S.Vec(0))
	assert.Equal(Te, [3]float64{3, 3, 3}, S.Vec(2))
	assert.Panics(Te, func() { Zeros(2).Stack(A, B) })
}
