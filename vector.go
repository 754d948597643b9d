/*
 * vector.go, part of psigo.
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
)

// VectorData is a vector variable on a spherical grid, as delivered by a FieldSource.
// Theta is latitude. Data has shape (len(Phi), len(Theta), len(R), 3), phi-major,
// with the phi, theta and r components in that order. The components are
// the physical ones, not yet converted to coordinate rates.
type VectorData struct {
	Name  string
	Phi   []float64
	Theta []float64
	R     []float64
	Data  []float64
}

// wrapTolerance is the tolerance to decide that the last phi plane repeats the first.
const wrapTolerance = 1e-9

// VectorGrid builds a Grid from vd, ready for tracing: a phi plane that duplicates the
// first one at phi+2pi is dropped, the components are converted with CorrectField,
// and phi is made cyclic.
func VectorGrid(vd *VectorData) (*Grid, error) {
	if vd == nil {
		return nil, newError(ErrInvalidGrid, "VectorGrid", "nil vector data")
	}
	phi := vd.Phi
	data := vd.Data
	np := len(phi)
	if np >= 2 && math.Abs(phi[np-1]-phi[0]-2*math.Pi) < wrapTolerance {
		logger.Debug("dropping duplicate phi wrap sample", zap.String("variable", vd.Name), zap.Float64("phi", phi[np-1]))
		phi = phi[:np-1]
		plane := len(vd.Theta) * len(vd.R) * 3
		if len(data) == np*plane {
			data = data[:(np-1)*plane]
		}
	}
	corrected, poles, err := CorrectField(data, phi, vd.Theta, vd.R)
	if err != nil {
		return nil, errDecorate(err, "VectorGrid")
	}
	if poles > 0 {
		logger.Debug("grid samples at the poles", zap.String("variable", vd.Name), zap.Int("samples", poles))
	}
	G, err := NewGrid(corrected, phi, vd.Theta, vd.R, [3]bool{true, false, false})
	if err != nil {
		return nil, errDecorate(err, "VectorGrid")
	}
	return G, nil
}
