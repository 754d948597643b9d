/*
 * trace.go, part of psigo.
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
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	psi "github.com/dstansby/psigo"
	"github.com/dstansby/psigo/catalog"
	"github.com/dstansby/psigo/internal/config"
	"github.com/dstansby/psigo/linestat"
	"github.com/dstansby/psigo/mas"
	"github.com/dstansby/psigo/psiplot"
	"github.com/dstansby/psigo/traj/slf"
)

var traceFlags struct {
	dir, variable, out, plot, method string
	timestep, maxSteps, nseeds       int
	step                             float64
	noCatalog, watch                 bool
}

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Trace streamlines and save them",
	Long: `trace reads the configured vector variable, seeds streamlines and traces
them. Flags override the configuration file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyTraceFlags(cmd, cfg)
		if traceFlags.watch {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return watchTrace(ctx, cfg, cmd.OutOrStdout(), watchSettle)
		}
		_, err = runTrace(cmd.Context(), cfg, cmd.OutOrStdout(), nil)
		return err
	},
}

func applyTraceFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("dir") {
		cfg.Data.Dir = traceFlags.dir
	}
	if f.Changed("var") {
		cfg.Data.Variable = traceFlags.variable
	}
	if f.Changed("timestep") {
		cfg.Data.Timestep = traceFlags.timestep
	}
	if f.Changed("out") {
		cfg.Output.Lines = traceFlags.out
	}
	if f.Changed("map") {
		cfg.Output.Map = traceFlags.plot
	}
	if f.Changed("method") {
		cfg.Tracer.Method = traceFlags.method
	}
	if f.Changed("step") {
		cfg.Tracer.StepSize = traceFlags.step
	}
	if f.Changed("max-steps") {
		cfg.Tracer.MaxSteps = traceFlags.maxSteps
	}
	if f.Changed("seeds") {
		cfg.Seeds.N = traceFlags.nseeds
	}
	if traceFlags.noCatalog {
		cfg.Output.Catalog = ""
	}
}

// runTrace does the work of the trace command, printing a summary to w.
// Variables are read through cache, or a new cache if it is nil.
func runTrace(ctx context.Context, cfg *config.Config, w io.Writer, cache *mas.Cache) (*catalog.Run, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	seeds, err := cfg.SeedMatrix()
	if err != nil {
		return nil, err
	}
	out, err := mas.NewOutput(cfg.Data.Dir)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		out = out.WithCache(cache)
	}
	ts := cfg.Data.Timestep
	if ts == mas.Latest {
		all, err := out.Timesteps(cfg.Data.Variable + "r")
		if err != nil {
			return nil, err
		}
		ts = all[len(all)-1]
	}
	out = out.At(ts)
	vd, err := out.CellCentered(cfg.Data.Variable, true)
	if err != nil {
		return nil, err
	}
	G, err := psi.VectorGrid(vd)
	if err != nil {
		return nil, err
	}
	T, err := psi.NewTracer(opts)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	lines, err := T.Trace(seeds, G)
	if err != nil {
		return nil, err
	}
	logger.Info("traced", zap.Int("lines", len(lines)), zap.Duration("elapsed", time.Since(start)))

	run := catalog.NewRun(out.Dir(), cfg.Data.Variable, ts)
	run.Options = opts.String()
	run.Seeds = len(lines)
	run.Output = cfg.Output.Lines

	S := linestat.Summarize(lines, cfg.Output.Bins)
	run.Points = S.Points
	run.Statuses = S.Forward
	rs := G.Axis(psi.R).Coords()
	S.AddConnectivity(lines, rs[0], rs[len(rs)-1], G.Spacing()[psi.R])
	var pol []linestat.Polarity
	if cfg.Data.Polarity != "" {
		br, err := out.Get(cfg.Data.Polarity)
		if err != nil {
			logger.Warn("no polarity variable", zap.String("variable", cfg.Data.Polarity), zap.Error(err))
		} else {
			pol = S.AddPolarity(lines, br.SampleAt)
		}
	}

	if cfg.Output.Lines != "" {
		header := map[string]string{
			"run":      run.ID,
			"dir":      run.DataDir,
			"variable": run.Variable,
			"timestep": strconv.Itoa(run.Timestep),
			"options":  run.Options,
		}
		if err := slf.WriteFile(cfg.Output.Lines, header, lines); err != nil {
			return nil, err
		}
	}
	if cfg.Output.Map != "" {
		M := psiplot.NewMapRenderer(cfg.Output.Map, fmt.Sprintf("%s, timestep %d", run.Variable, run.Timestep))
		M.Polarity = pol
		if err := M.Render(lines); err != nil {
			return nil, err
		}
	}
	if cfg.Output.Profile != "" {
		if err := psiplot.RadialProfile(lines, run.Variable, cfg.Output.Profile); err != nil {
			return nil, err
		}
	}
	if cfg.Output.Catalog != "" {
		C, err := catalog.Open(cfg.Output.Catalog)
		if err != nil {
			return nil, err
		}
		defer C.Close()
		if err := C.Record(ctx, run); err != nil {
			return nil, err
		}
	}
	fmt.Fprintf(w, "run %s\n%s", run.ID, S)
	return &run, nil
}

// watchSettle is how long the data directory must stay quiet before a change
// triggers a new trace, so a model writing several files causes one run.
const watchSettle = 500 * time.Millisecond

// watchTrace traces once, then again every time a file of the data directory
// changes, until ctx is done. Only the first trace can fail the command; later
// failures (often a half-written file) are logged and the next change retried.
func watchTrace(ctx context.Context, cfg *config.Config, w io.Writer, settle time.Duration) error {
	C := mas.NewCache()
	W, err := mas.Watch(cfg.Data.Dir, C)
	if err != nil {
		return err
	}
	defer W.Close()
	if _, err := runTrace(ctx, cfg, w, C); err != nil {
		return err
	}
	logger.Info("watching for new output", zap.String("dir", cfg.Data.Dir))
	for {
		select {
		case <-ctx.Done():
			return nil
		case k, ok := <-W.Changes():
			if !ok {
				return nil
			}
			logger.Debug("output changed", zap.String("variable", k.Var), zap.Int("timestep", k.Timestep))
		}
		timer := time.NewTimer(settle)
	settling:
		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil
			case <-W.Changes():
				timer.Reset(settle)
			case <-timer.C:
				break settling
			}
		}
		if _, err := runTrace(ctx, cfg, w, C); err != nil {
			logger.Warn("trace after change failed", zap.Error(err))
		}
	}
}
