/*
 * interfaces.go, part of psigo.
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

// FieldSource is anything that can provide a vector variable on a common
// cell-centred spherical grid. mas.Output implements it.
type FieldSource interface {
	//CellCentered returns the three components of variable on a common grid. If extraPhi
	//is true, the phi=0 plane is repeated at phi=2pi.
	CellCentered(variable string, extraPhi bool) (*VectorData, error)
}

// Renderer is a sink for traced streamlines (a plot, a file, a viewer).
type Renderer interface {
	Render(lines []*Streamline) error
}

//Errors

// Decorator is the interface for errors that all packages in psigo implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Decorator interface {
	Error() string
	Decorate(string) []string //Adds the caller to the decoration slice and returns it. An empty string just returns the slice.
}

// FileError is the interface for errors related to a particular file.
type FileError interface {
	Decorator
	Critical() bool
	FileName() string
}
