/*
 * errors.go, part of psigo.
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

package slf

import (
	"errors"
	"fmt"
)

// Error is the general structure for slf errors. It fullfills psi.FileError.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("slf file %s error: %s", err.filename, err.message)
}

// Decorate Adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file to which the failing streamline file was associated
func (err Error) FileName() string { return err.filename }

// Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	UnIniRead      = "File not open for reading"
	UnIniWrite     = "File not open for writing"
	NilStreamline  = "Given nil streamline"
	WrongFormat    = "Wrong format in the SLF file or frame"
	MalformedHead  = "Malformed header"
	UnexpectedEOF  = "File ends in the middle of a streamline"
	defaultVersion = "1"
)

// lastFrameError marks the normal end of a file.
type lastFrameError struct {
	deco     []string
	fileName string
}

// NormalLastFrameTermination does nothing. It distinguishes the end of a file from other errors.
func (E lastFrameError) NormalLastFrameTermination() {}

func (E lastFrameError) FileName() string { return E.fileName }

func (E lastFrameError) Error() string { return "EOF" }

func (E lastFrameError) Critical() bool { return false }

func (E lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	e := new(lastFrameError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}

// IsEOF returns true if err marks the normal end of a file.
func IsEOF(err error) bool {
	var e interface{ NormalLastFrameTermination() }
	return errors.As(err, &e)
}
