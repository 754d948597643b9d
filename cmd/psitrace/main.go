/*
 * main.go, part of psigo.
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

// psitrace traces magnetic field lines through MAS model output.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	psi "github.com/dstansby/psigo"
	"github.com/dstansby/psigo/internal/config"
	"github.com/dstansby/psigo/mas"
	"github.com/dstansby/psigo/traj/slf"
)

var (
	verbose    bool
	configPath string
	logger     = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "psitrace",
	Short: "Trace field lines through MAS heliospheric model output",
	Long: `psitrace reads a vector variable of a MAS run (for instance b, from
br, bt and bp), traces streamlines through it from a set of seeds, and
writes them to an SLF file, with optional plots and a record in a run
catalog.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		psi.SetLogger(l)
		mas.SetLogger(l)
		slf.SetLogger(l)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// loadConfig reads the configuration file given with --config.
func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "psitrace.yaml", "Configuration file")

	traceCmd.Flags().StringVarP(&traceFlags.dir, "dir", "d", "", "MAS output directory")
	traceCmd.Flags().StringVar(&traceFlags.variable, "var", "", "Vector variable to trace")
	traceCmd.Flags().IntVarP(&traceFlags.timestep, "timestep", "t", mas.Latest, "Timestep (-1 for the latest)")
	traceCmd.Flags().StringVarP(&traceFlags.out, "out", "o", "", "SLF output file")
	traceCmd.Flags().StringVar(&traceFlags.plot, "map", "", "Save a longitude-latitude map of the lines")
	traceCmd.Flags().StringVar(&traceFlags.method, "method", "", "Integration method (rk4 or euler)")
	traceCmd.Flags().Float64Var(&traceFlags.step, "step", 0, "Step length, in mean grid cells")
	traceCmd.Flags().IntVar(&traceFlags.maxSteps, "max-steps", 0, "Maximum steps per direction")
	traceCmd.Flags().IntVarP(&traceFlags.nseeds, "seeds", "n", 0, "Number of seeds in the latitude band")
	traceCmd.Flags().BoolVar(&traceFlags.noCatalog, "no-catalog", false, "Do not record the run in the catalog")
	traceCmd.Flags().BoolVarP(&traceFlags.watch, "watch", "w", false, "Trace again whenever the MAS output changes")

	inspectCmd.Flags().IntVar(&inspectBins, "bins", 20, "Bins of the length histogram")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Print the summary as JSON")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum runs to list (0 for all)")
	runsCmd.Flags().StringVar(&runsVariable, "var", "", "Only list runs of this variable")

	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(varsCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(runsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
