/*
 * archive.go, part of psigo.
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

package mas

import (
	"encoding/gob"
	"math"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// archive is the content of a .mzs file. Theta is colatitude, as in MAS.
type archive struct {
	Name     string
	Timestep int
	Phi      []float64
	Colat    []float64
	R        []float64
	Data     []float32
}

// ReadFile reads a single MAS file. Colatitude is converted to latitude and the
// theta axis is ordered from south to north.
func ReadFile(path string) (*Variable, error) {
	switch filepath.Ext(path) {
	case ExtArchive:
	case ExtHDF4, ExtHDF5:
		return nil, Error{"HDF files must be converted to " + ExtArchive, path, []string{"ReadFile"}, true, ErrFormatUnavailable}
	default:
		return nil, Error{"unknown extension", path, []string{"ReadFile"}, true, ErrFormatUnavailable}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, Error{err.Error(), path, []string{"os.Open", "ReadFile"}, true, ErrNotFound}
	}
	defer f.Close()
	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, Error{err.Error(), path, []string{"zstd.NewReader", "ReadFile"}, true, ErrInvalidArchive}
	}
	defer zr.Close()
	var a archive
	if err := gob.NewDecoder(zr).Decode(&a); err != nil {
		return nil, Error{err.Error(), path, []string{"Decode", "ReadFile"}, true, ErrInvalidArchive}
	}
	np, nt, nr := len(a.Phi), len(a.Colat), len(a.R)
	if len(a.Data) != np*nt*nr {
		return nil, Error{"data does not match the grid", path, []string{"ReadFile"}, true, ErrInvalidArchive}
	}
	theta := make([]float64, nt)
	for j, c := range a.Colat {
		theta[j] = math.Pi/2 - c
	}
	data := make([]float64, len(a.Data))
	reverse := nt > 1 && theta[0] > theta[nt-1]
	if reverse {
		for j := 0; j < nt/2; j++ {
			theta[j], theta[nt-1-j] = theta[nt-1-j], theta[j]
		}
	}
	for i := 0; i < np; i++ {
		for j := 0; j < nt; j++ {
			src := j
			if reverse {
				src = nt - 1 - j
			}
			for k := 0; k < nr; k++ {
				data[(i*nt+j)*nr+k] = float64(a.Data[(i*nt+src)*nr+k])
			}
		}
	}
	if a.Name == "" {
		a.Name, a.Timestep, _ = splitName(path)
	}
	V, err := NewVariable(a.Name, a.Timestep, a.Phi, theta, a.R, data)
	if err != nil {
		return nil, Error{err.Error(), path, []string{"NewVariable", "ReadFile"}, true, ErrInvalidArchive}
	}
	return V, nil
}

// WriteFile writes V to path as a .mzs archive, with MAS conventions: theta
// as colatitude and single precision data.
func WriteFile(path string, V *Variable) error {
	if filepath.Ext(path) != ExtArchive {
		return Error{"can only write " + ExtArchive + " archives", path, []string{"WriteFile"}, true, ErrFormatUnavailable}
	}
	a := archive{Name: V.Name, Timestep: V.Timestep, Phi: V.Phi, R: V.R}
	a.Colat = make([]float64, len(V.Theta))
	for j, t := range V.Theta {
		a.Colat[j] = math.Pi/2 - t
	}
	a.Data = make([]float32, len(V.Data))
	for i, d := range V.Data {
		a.Data[i] = float32(d)
	}
	f, err := os.Create(path)
	if err != nil {
		return Error{err.Error(), path, []string{"os.Create", "WriteFile"}, true, ErrInvalidArchive}
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return Error{err.Error(), path, []string{"zstd.NewWriter", "WriteFile"}, true, ErrInvalidArchive}
	}
	if err := gob.NewEncoder(zw).Encode(&a); err != nil {
		zw.Close()
		f.Close()
		return Error{err.Error(), path, []string{"Encode", "WriteFile"}, true, ErrInvalidArchive}
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return Error{err.Error(), path, []string{"zstd.Close", "WriteFile"}, true, ErrInvalidArchive}
	}
	return f.Close()
}
