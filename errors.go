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

package psi

import (
	"errors"
	"fmt"
	"strings"
)

// Kinds of error returned by the package. Use errors.Is to check them.
var (
	ErrInvalidGrid        = errors.New("invalid grid")
	ErrInvalidOptions     = errors.New("invalid tracer options")
	ErrBackendUnavailable = errors.New("integration backend unavailable")
	ErrInvalidSeeds       = errors.New("invalid seeds")
)

// Error is the error type of the psi package.
type Error struct {
	message  string
	deco     []string
	critical bool
	kind     error
}

func newError(kind error, caller, format string, a ...interface{}) Error {
	return Error{message: fmt.Sprintf(format, a...), deco: []string{caller}, critical: true, kind: kind}
}

// Error returns a string with an error message.
func (err Error) Error() string {
	if err.kind == nil {
		return "psi: " + err.message
	}
	return fmt.Sprintf("psi: %s: %s", err.kind, err.message)
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Trace returns the decoration of the error as a call chain, innermost first.
func (err Error) Trace() string {
	return strings.Join(err.deco, " <- ")
}

// Critical returns whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

// Unwrap gives access to the error kind.
func (err Error) Unwrap() error { return err.kind }

// errDecorate adds caller to the decoration of err, if err is a psi Error.
func errDecorate(err error, caller string) error {
	var e Error
	if !errors.As(err, &e) {
		return err
	}
	e.deco = e.Decorate(caller)
	return e
}
