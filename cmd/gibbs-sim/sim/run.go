// Copyright 2026 VeriMCMC Authors
// This file is part of VeriMCMC, a testable Gibbs-sampling infrastructure.
//
// VeriMCMC is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// VeriMCMC is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with VeriMCMC. If not, see <http://www.gnu.org/licenses/>.

// Package sim hosts the commands of the gibbs-sim tool.
package sim

import (
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"github.com/verimcmc/gibbs/config"
	"github.com/verimcmc/gibbs/experiment"
	"github.com/verimcmc/gibbs/gibbs/engine"
	"github.com/verimcmc/gibbs/gibbs/export"
	"github.com/verimcmc/gibbs/gibbs/trajectory"
	"github.com/verimcmc/gibbs/logger"
	"github.com/verimcmc/gibbs/rundb"
)

// RunCommand data structure for the run app.
var RunCommand = cli.Command{
	Action:    runAction,
	Name:      "run",
	Usage:     "run a Gibbs sampler on an experiment",
	ArgsUsage: "<experiment.json>",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&config.SeedFlag,
		&config.SweepsFlag,
		&config.BurnInFlag,
		&config.EpsFlag,
		&config.TrialsFlag,
		&config.OutputFlag,
		&config.DbFileFlag,
	},
	Description: "The run command samples the posterior of an experiment and prints its summary",
}

// applyOverrides lets command-line flags override the chain parameters
// of the experiment file.
func applyOverrides(ctx *cli.Context, cfg *config.Config, e *experiment.Experiment) {
	if ctx.IsSet(config.SeedFlag.Name) {
		e.Seed = cfg.Seed
	}
	if ctx.IsSet(config.SweepsFlag.Name) {
		e.Sweeps = cfg.Sweeps
	}
	if ctx.IsSet(config.BurnInFlag.Name) {
		e.BurnIn = cfg.BurnIn
	}
}

// printSummaries prints the posterior summary of a run.
func printSummaries(w io.Writer, summaries []trajectory.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Parameter", "Mean", "StdDev", "2.5%", "Median", "97.5%"})
	for _, s := range summaries {
		t.AppendRow(table.Row{s.Param, s.Mean, s.StdDev, s.Q025, s.Median, s.Q975})
	}
	t.Render()
}

// runAction samples the posterior of an experiment.
func runAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx, config.ExperimentArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "GibbsRun")

	e, err := experiment.Read(cfg.ExperimentFile)
	if err != nil {
		return err
	}
	applyOverrides(ctx, cfg, e)

	m, d, initial, err := e.Build()
	if err != nil {
		return err
	}
	log.Infof("Sample %v model; %v observations, %v sweeps, seed %v", e.Model, d.Len(), e.Sweeps, e.Seed)

	start := time.Now()
	t, err := engine.RunSeed(m, d, initial, e.Sweeps, e.Seed)
	if err != nil {
		return err
	}
	hours, minutes, seconds := logger.ParseTime(time.Since(start))
	log.Infof("Sampling finished. Total elapsed time: %vh %vm %vs", hours, minutes, seconds)

	summaries, err := t.Summarize(e.BurnIn)
	if err != nil {
		return err
	}
	printSummaries(os.Stdout, summaries)

	if cfg.Output != "" {
		log.Noticef("Write trajectory file %v", cfg.Output)
		if err := export.WriteCSV(t, cfg.Output); err != nil {
			return err
		}
	}
	if cfg.DbFile != "" {
		log.Noticef("Store run in database %v", cfg.DbFile)
		db, err := rundb.NewRunDB(cfg.DbFile)
		if err != nil {
			return err
		}
		meta := rundb.RunMeta{
			Model:           e.Model,
			Seed:            e.Seed,
			Sweeps:          e.Sweeps,
			BurnIn:          e.BurnIn,
			NumObservations: d.Len(),
		}
		id, err := rundb.StoreRun(db, meta, t)
		if err != nil {
			_ = db.Close()
			return err
		}
		log.Infof("Stored run %v", id)
		if err := db.Close(); err != nil {
			return err
		}
	}
	return nil
}
