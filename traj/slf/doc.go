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

//Package slf implements the streamline line format, a simple compressed text format
//to store the output of the psi tracer. It aims at files that are easy to read and
//write from other languages, while being reasonably small.

/******************** Format Specification   ***************************************************

An SLF file has the extension slf, and it is compressed with z-standard (zstd). As with
other compressed text formats, the last letter of the extension selects the compression
when writing and reading: 'z' gzip, 'r' raw deflate, 'l' lzw, anything else zstd.

A SLF file may only contain ASCII symbols.

A SLF file has a "header" starting in the first line, and ending with a line that starts with
the characters "**" followed by one or more spaces and the format version (currently 1).

Each line of the header must be a pair key=value. The precision (an integer greater than 0,
see below) must be included in the header, with the key "prec". Other keys are free; psitrace
writes the run id, the data directory, variable, timestep and the tracer options.

After the header, each streamline is stored as one line per point, with 3 integers: phi,
theta (latitude) and r, each multiplied by 10 to the power of the precision and rounded.
Angles are in radians and phi is in [0, 2pi). The default precision is 6.

Each streamline ends with a line starting with the character "*", followed by one or more
whitespace and three fields: the row of the seed in the streamline (0-based), and the
terminal state of the backward and forward integrations, by name (running, max-steps,
out-of-bounds, singularity, stationary).

The "**" sequence may only be used as a header termination.

***************************************************************************************************/

package slf
