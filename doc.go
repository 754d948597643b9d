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
Package psi traces magnetic field lines through vector fields sampled on spherical
(phi, theta, r) grids, such as the output of the MAS heliospheric MHD code.

	**psigo capabilities**

	Stores a 3-component vector field on a grid with non-uniform, strictly increasing
	axes, a cyclic longitude axis and latitude theta (pi/2 minus the colatitude).

	Trilinear interpolation at fractional grid indices, with modulo arithmetic on
	cyclic axes and an explicit out-of-domain report elsewhere.

	Converts spherical vector components to coordinate rates (the phi component is
	divided by r cos(theta), the theta component by r), with the poles flagged.

	Integrates streamlines in physical coordinates with a fixed step measured in mean
	grid cells (Euler or classic RK4), on axes with any spacing,
	forward, backward or both, and reports why each direction stopped.

	Traces batches of seeds concurrently; the result is index-aligned with the seeds.

The leaf packages read MAS output (mas), store streamlines (traj/slf), summarize them
(linestat), plot them (psiplot) and keep a catalog of runs (catalog).
*/
package psi
