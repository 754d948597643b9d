/*
 * catalog.go, part of psigo.
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

// Package catalog keeps a record of trace runs in a sqlite database.
package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// schema.sql creates the runs table.
//
//go:embed schema.sql
var schemaSQL string

// ErrNoRun is returned by Get when there is no run with the given id.
var ErrNoRun = errors.New("catalog: no such run")

// Run describes one invocation of the tracer.
type Run struct {
	ID       string
	Created  time.Time
	DataDir  string
	Variable string
	Timestep int
	Options  string
	Seeds    int
	Points   int
	Statuses map[string]int //terminal states of the forward integrations
	Output   string
}

// NewRun returns a run with a fresh id, created now.
func NewRun(dir, variable string, timestep int) Run {
	return Run{ID: uuid.NewString(), Created: time.Now(), DataDir: dir, Variable: variable, Timestep: timestep}
}

type Catalog struct {
	*sql.DB
}

// Open opens (or creates) the catalog at path and makes sure the schema exists.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("catalog: opening %s: %w", path, err)
	}
	if _, err = db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: creating schema in %s: %w", path, err)
	}
	return &Catalog{db}, nil
}

// Record stores r. A run with the same id is replaced.
func (C *Catalog) Record(ctx context.Context, r Run) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if _, err := uuid.Parse(r.ID); err != nil {
		return fmt.Errorf("catalog: invalid run id %q: %w", r.ID, err)
	}
	st, err := json.Marshal(r.Statuses)
	if err != nil {
		return fmt.Errorf("catalog: encoding statuses: %w", err)
	}
	query := `
		INSERT OR REPLACE INTO runs (id, created_ns, data_dir, variable, timestep, options, seeds, points, statuses, output)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = C.ExecContext(ctx, query, r.ID, r.Created.UnixNano(), r.DataDir, r.Variable, r.Timestep, r.Options, r.Seeds, r.Points, string(st), r.Output)
	if err != nil {
		return fmt.Errorf("catalog: failed to record run %s: %w", r.ID, err)
	}
	return nil
}

const columns = `id, created_ns, data_dir, variable, timestep, options, seeds, points, statuses, output`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var r Run
	var created int64
	var st string
	if err := s.Scan(&r.ID, &created, &r.DataDir, &r.Variable, &r.Timestep, &r.Options, &r.Seeds, &r.Points, &st, &r.Output); err != nil {
		return r, err
	}
	r.Created = time.Unix(0, created)
	if err := json.Unmarshal([]byte(st), &r.Statuses); err != nil {
		return r, fmt.Errorf("catalog: decoding statuses of run %s: %w", r.ID, err)
	}
	return r, nil
}

// Get returns the run with the given id.
func (C *Catalog) Get(ctx context.Context, id string) (Run, error) {
	r, err := scanRun(C.QueryRowContext(ctx, `SELECT `+columns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return r, fmt.Errorf("%w: %s", ErrNoRun, id)
	}
	return r, err
}

// Runs returns the most recent runs first, at most limit of them (all if limit < 1).
// If variable is not empty, only runs for that variable are returned.
func (C *Catalog) Runs(ctx context.Context, variable string, limit int) ([]Run, error) {
	if limit < 1 {
		limit = -1
	}
	rows, err := C.QueryContext(ctx, `SELECT `+columns+` FROM runs WHERE (? = '' OR variable = ?) ORDER BY created_ns DESC LIMIT ?`, variable, variable, limit)
	if err != nil {
		return nil, fmt.Errorf("catalog: listing runs: %w", err)
	}
	defer rows.Close()
	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Delete removes the run with the given id.
func (C *Catalog) Delete(ctx context.Context, id string) error {
	res, err := C.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("catalog: deleting run %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNoRun, id)
	}
	return nil
}
