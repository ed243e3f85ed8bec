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
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/verimcmc/gibbs/config"
	"github.com/verimcmc/gibbs/experiment"
	"github.com/verimcmc/gibbs/gibbs/equivalence"
	"github.com/verimcmc/gibbs/gibbs/fastpath"
	"github.com/verimcmc/gibbs/logger"
)

// EquivalenceCommand data structure for the equivalence app.
var EquivalenceCommand = cli.Command{
	Action:    equivalenceAction,
	Name:      "equivalence",
	Usage:     "prove the fast-path sampler identical to the modular engine",
	ArgsUsage: "<experiment.json>",
	Flags: []cli.Flag{
		&logger.LogLevelFlag,
		&config.SeedFlag,
		&config.SweepsFlag,
	},
	Description: "The equivalence command runs the modular engine and the fast-path " +
		"sampler under a shared seed and compares their trajectories value by value",
}

// equivalenceAction compares the modular and the fast-path sampler.
func equivalenceAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx, config.ExperimentArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "GibbsEquivalence")

	e, err := experiment.Read(cfg.ExperimentFile)
	if err != nil {
		return err
	}
	if ctx.IsSet(config.SeedFlag.Name) {
		e.Seed = cfg.Seed
	}
	if ctx.IsSet(config.SweepsFlag.Name) {
		e.Sweeps = cfg.Sweeps
	}
	if e.Model != experiment.KindNormal {
		return fmt.Errorf("no fast-path sampler for %v model", e.Model)
	}
	m, d, initial, err := e.Build()
	if err != nil {
		return err
	}
	fast, err := fastpath.NormalSampler(e.Mu0, e.Tau20, e.Nu0, e.Sigma20)
	if err != nil {
		return err
	}

	log.Infof("Compare samplers; %v observations, %v sweeps, seed %v", d.Len(), e.Sweeps, e.Seed)
	res, err := equivalence.Check(equivalence.EngineSampler(m), fast, d, initial, e.Sweeps, e.Seed, 0.0)
	if err != nil {
		return err
	}
	log.Noticef("Samplers are equivalent; maximal difference %v", res.MaxAbsDiff)
	return nil
}
