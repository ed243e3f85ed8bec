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

package sim

import (
	"github.com/urfave/cli/v2"

	"github.com/verimcmc/gibbs/config"
	"github.com/verimcmc/gibbs/experiment"
	"github.com/verimcmc/gibbs/gibbs/engine"
	"github.com/verimcmc/gibbs/gibbs/visualizer"
	"github.com/verimcmc/gibbs/logger"
)

// VisualizeCommand data structure for the visualize app.
var VisualizeCommand = cli.Command{
	Action:    visualizeAction,
	Name:      "visualize",
	Usage:     "sample an experiment and serve its charts on a local web server",
	ArgsUsage: "<experiment.json>",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&config.SeedFlag,
		&config.SweepsFlag,
		&config.BurnInFlag,
		&config.PortFlag,
	},
	Description: "The visualize command samples the posterior of an experiment and serves " +
		"trace plots, posterior marginals, and the update order on the given port",
}

// visualizeAction samples an experiment and fires up the web server.
func visualizeAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx, config.ExperimentArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "GibbsVisualize")

	e, err := experiment.Read(cfg.ExperimentFile)
	if err != nil {
		return err
	}
	applyOverrides(ctx, cfg, e)

	m, d, initial, err := e.Build()
	if err != nil {
		return err
	}
	t, err := engine.RunSeed(m, d, initial, e.Sweeps, e.Seed)
	if err != nil {
		return err
	}

	log.Infof("Open web browser on port %v", cfg.Port)
	log.Warning("Cancel the visualizer with Ctrl-C")
	return visualizer.FireUpWeb(t, e.BurnIn, cfg.Port)
}
