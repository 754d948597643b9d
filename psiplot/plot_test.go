/*
 * plot_test.go, part of psigo.
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

package psiplot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	psi "github.com/dstansby/psigo"
	"github.com/dstansby/psigo/linestat"
	v3 "github.com/dstansby/psigo/v3"
)

func testLines() []*psi.Streamline {
	return []*psi.Streamline{
		{Points: v3.FromVecs([][3]float64{{6.0, 0.1, 1}, {6.2, 0.15, 1.5}, {0.05, 0.2, 2}, {0.2, 0.25, 2.5}}), Seed: 1, Backward: psi.OutOfBounds, Forward: psi.OutOfBounds},
		{Points: v3.FromVecs([][3]float64{{3, -0.4, 1}, {3.1, -0.5, 1.2}}), Seed: 0, Backward: psi.Running, Forward: psi.MaxSteps},
		{Points: v3.FromVecs([][3]float64{{1, 0, 3}}), Seed: 0, Backward: psi.Stationary, Forward: psi.Stationary},
	}
}

func TestSegments(Te *testing.T) {
	segs := segments(testLines()[0])
	require.Len(Te, segs, 2)
	assert.Len(Te, segs[0], 2)
	assert.InDelta(Te, 0.05*180/math.Pi, segs[1][0].X, 1e-9)
	assert.Len(Te, segments(testLines()[1]), 1)
}

func TestColors(Te *testing.T) {
	r, g, b := iHVS2RGB(0, 1, 1)
	assert.Equal(Te, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})
	r, g, b = iHVS2RGB(120, 1, 1)
	assert.Equal(Te, [3]uint8{0, 255, 0}, [3]uint8{r, g, b})
	r, g, b = iHVS2RGB(50, 0.5, 0)
	assert.Equal(Te, [3]uint8{127, 127, 127}, [3]uint8{r, g, b})
	assert.NotEqual(Te, palette(0, 3), palette(2, 3))
	assert.Equal(Te, PositiveColor, polarityColor(linestat.Positive))
	assert.Equal(Te, UnknownColor, polarityColor(linestat.Unknown))
}

func TestRender(Te *testing.T) {
	dir := Te.TempDir()
	M := NewMapRenderer(filepath.Join(dir, "map.png"), "field lines")
	M.Polarity = []linestat.Polarity{linestat.Positive, linestat.Negative}
	var R psi.Renderer = M
	require.NoError(Te, R.Render(testLines()))
	st, err := os.Stat(M.Path)
	require.NoError(Te, err)
	assert.Greater(Te, st.Size(), int64(0))
	svg := filepath.Join(dir, "profile.svg")
	require.NoError(Te, RadialProfile(testLines(), "profiles", svg))
	_, err = os.Stat(svg)
	require.NoError(Te, err)
}
