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

package mas

import (
	"errors"
	"fmt"
)

// Kinds of error returned by the package.
var (
	ErrNotFound          = errors.New("no MAS files found")
	ErrFormatUnavailable = errors.New("MAS file format not supported")
	ErrInvalidArchive    = errors.New("invalid MAS archive")
)

// Error is the error type for the mas package. It fullfills psi.FileError.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
	kind     error
}

func (err Error) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("mas: %s: %s", err.kind, err.message)
	}
	return fmt.Sprintf("mas file %s: %s: %s", err.filename, err.kind, err.message)
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func (err Error) FileName() string { return err.filename }

func (err Error) Critical() bool { return err.critical }

func (err Error) Unwrap() error { return err.kind }

func errDecorate(err error, caller string) error {
	var e Error
	if !errors.As(err, &e) {
		return err
	}
	e.deco = e.Decorate(caller)
	return e
}
