/*
 * commands.go, part of psigo.
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

package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dstansby/psigo/catalog"
	"github.com/dstansby/psigo/linestat"
	"github.com/dstansby/psigo/mas"
	"github.com/dstansby/psigo/traj/slf"
)

var varsCmd = &cobra.Command{
	Use:   "vars [dir]",
	Short: "List the variables of a MAS output and their timesteps",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := ""
		if len(args) > 0 {
			dir = args[0]
		} else {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dir = cfg.Data.Dir
		}
		out, err := mas.NewOutput(dir)
		if err != nil {
			return err
		}
		vars, err := out.Variables()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, v := range vars {
			ts, err := out.Timesteps(v)
			if err != nil {
				return err
			}
			s := make([]string, len(ts))
			for i, t := range ts {
				s[i] = fmt.Sprintf("%03d", t)
			}
			fmt.Fprintf(w, "%s\t%s\n", v, strings.Join(s, " "))
		}
		return w.Flush()
	},
}

var (
	inspectBins int
	inspectJSON bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect file.slf",
	Short: "Summarize a streamline file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, header, err := slf.ReadFile(args[0])
		if err != nil {
			return err
		}
		S := linestat.Summarize(lines, inspectBins)
		w := cmd.OutOrStdout()
		if inspectJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Header  map[string]string `json:"header"`
				Summary *linestat.Summary `json:"summary"`
			}{header, S})
		}
		for _, k := range sortedKeys(header) {
			fmt.Fprintf(w, "%s: %s\n", k, header[k])
		}
		fmt.Fprint(w, S)
		return nil
	},
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var (
	runsLimit    int
	runsVariable string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List the runs recorded in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Output.Catalog == "" {
			return fmt.Errorf("no catalog configured")
		}
		C, err := catalog.Open(cfg.Output.Catalog)
		if err != nil {
			return err
		}
		defer C.Close()
		runs, err := C.Runs(cmd.Context(), runsVariable, runsLimit)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCREATED\tVARIABLE\tTIMESTEP\tLINES\tPOINTS\tOUTPUT")
		for _, r := range runs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n", shortID(r.ID), r.Created.Format("2006-01-02 15:04:05"), r.Variable, r.Timestep, r.Seeds, r.Points, r.Output)
		}
		return w.Flush()
	},
}

// shortID is the first block of a run id, enough to tell runs apart in listings.
func shortID(id string) string {
	u, err := uuid.Parse(id)
	if err != nil {
		return id
	}
	return u.String()[:8]
}
