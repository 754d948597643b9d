/*
 * colors.go, part of psigo.
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
	"image/color"
	"math"

	"github.com/dstansby/psigo/linestat"
)

// takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, p, q, t float64
	var r, g, b float64
	conversion := 255.0 * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = math.Mod(h, 360) / 60
	i = math.Floor(h)
	f = h - i
	p = 1 - s
	q = 1 - s*f
	t = 1 - s*(1-f)
	switch int(i) {
	case 0:
		r, g, b = 1, t, p
	case 1:
		r, g, b = q, 1, p
	case 2:
		r, g, b = p, 1, t
	case 3:
		r, g, b = p, q, 1
	case 4:
		r, g, b = t, p, 1
	default: //case 5
		r, g, b = 1, p, q
	}
	return uint8(r * conversion), uint8(g * conversion), uint8(b * conversion)
}

// palette returns the color of the key-th of steps lines, going through
// the hues from red to violet.
func palette(key, steps int) color.RGBA {
	if steps < 1 {
		steps = 1
	}
	h := 280.0 * float64(key) / float64(steps)
	r, g, b := iHVS2RGB(h, 0.9, 0.8)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Polarity colors, as in the usual field line plots: blue for outward, red for inward.
var (
	PositiveColor = color.RGBA{B: 220, A: 255}
	NegativeColor = color.RGBA{R: 220, A: 255}
	UnknownColor  = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

func polarityColor(p linestat.Polarity) color.RGBA {
	switch p {
	case linestat.Positive:
		return PositiveColor
	case linestat.Negative:
		return NegativeColor
	}
	return UnknownColor
}
