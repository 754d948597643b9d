/*
 * files.go, part of psigo.
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
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Extensions of the files that may hold MAS output.
const (
	ExtArchive = ".mzs"
	ExtHDF4    = ".hdf"
	ExtHDF5    = ".h5"
)

func knownExt(path string) bool {
	switch filepath.Ext(path) {
	case ExtArchive, ExtHDF4, ExtHDF5:
		return true
	}
	return false
}

// splitName splits a MAS file name into variable and timestep.
func splitName(path string) (string, int, bool) {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if len(stem) < 4 {
		return "", 0, false
	}
	ts, err := strconv.Atoi(stem[len(stem)-3:])
	if err != nil || strings.ContainsAny(stem[len(stem)-3:], "+-") {
		return "", 0, false
	}
	return stem[:len(stem)-3], ts, true
}

// Filenames returns the sorted paths of the files holding variable in dir.
func Filenames(dir, variable string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, variable+"[0-9][0-9][0-9].*"))
	if err != nil {
		return nil, Error{err.Error(), dir, []string{"Filenames"}, true, ErrNotFound}
	}
	files := matches[:0]
	for _, m := range matches {
		if !knownExt(m) {
			logger.Debug("skipping file with unknown extension", zap.String("file", m))
			continue
		}
		files = append(files, m)
	}
	if len(files) == 0 {
		return nil, Error{"no files for variable " + variable, dir, []string{"Filenames"}, true, ErrNotFound}
	}
	sort.Strings(files)
	return files, nil
}

// Variables returns the sorted names of the variables with files in dir.
func Variables(dir string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, Error{err.Error(), dir, []string{"Variables"}, true, ErrNotFound}
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*[0-9][0-9][0-9].*"))
	if err != nil {
		return nil, Error{err.Error(), dir, []string{"Variables"}, true, ErrNotFound}
	}
	seen := make(map[string]bool)
	var names []string
	for _, m := range matches {
		if !knownExt(m) {
			continue
		}
		v, _, ok := splitName(m)
		if !ok || v == "" || seen[v] {
			continue
		}
		seen[v] = true
		names = append(names, v)
	}
	if len(names) == 0 {
		return nil, Error{"no variable files", dir, []string{"Variables"}, true, ErrNotFound}
	}
	sort.Strings(names)
	return names, nil
}

// Timestep returns the timestep encoded in the name of a MAS file.
func Timestep(path string) (int, error) {
	_, ts, ok := splitName(path)
	if !ok {
		return 0, Error{"no timestep in file name", path, []string{"Timestep"}, true, ErrNotFound}
	}
	return ts, nil
}
