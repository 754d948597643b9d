/*
 * doc.go, part of psigo.
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

/*
Package mas reads and writes the output of the MAS (Magnetohydrodynamics Around a
Sphere) heliospheric model.

MAS writes one file per variable and timestep, named {var}{ddd}.{ext}, where ddd is
the zero padded timestep. Each file holds a scalar on a (phi, colatitude, r) grid.
This package converts colatitude to latitude, so theta increases from south to north,
and can combine the three staggered components of a vector variable (for
instance br, bt and bp) onto a common cell-centred grid, ready to be traced with psi.

The native MAS files are HDF4 or HDF5, which are recognized but cannot be read.
Data is exchanged in .mzs archives: a zstd-compressed gob stream with the same content.
*/
package mas
