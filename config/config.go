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

// Package config holds the command-line configuration of the sampling
// tools.
package config

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/verimcmc/gibbs/logger"
)

// Command line flags of the sampling tools.
var (
	SeedFlag = cli.Uint64Flag{
		Name:  "seed",
		Usage: "seed of the random stream",
		Value: 42,
	}
	SweepsFlag = cli.IntFlag{
		Name:  "sweeps",
		Usage: "number of Gibbs sweeps",
		Value: 10_000,
	}
	BurnInFlag = cli.IntFlag{
		Name:  "burn-in",
		Usage: "number of discarded initial states",
		Value: 1_000,
	}
	TrialsFlag = cli.IntFlag{
		Name:  "trials",
		Usage: "number of randomized oracle trials",
		Value: 100,
	}
	EpsFlag = cli.Float64Flag{
		Name:  "eps",
		Usage: "relative tolerance of numerical comparisons",
		Value: 1e-9,
	}
	OutputFlag = cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file",
	}
	DbFileFlag = cli.StringFlag{
		Name:  "db-file",
		Usage: "sqlite3 file for storing runs",
	}
	PortFlag = cli.StringFlag{
		Name:    "port",
		Aliases: []string{"v"},
		Usage:   "enable visualization on `PORT`",
		Value:   "8080",
	}
)

// Config of a sampling-tool invocation.
type Config struct {
	ExperimentFile string // path of the experiment file
	LogLevel       string // level of the logging
	Seed           uint64 // seed of the random stream
	Sweeps         int    // number of Gibbs sweeps
	BurnIn         int    // number of discarded initial states
	Trials         int    // number of randomized oracle trials
	Eps            float64
	Output         string // output file
	DbFile         string // sqlite3 file for storing runs
	Port           string // HTTP port of the visualization
}

// Argument modes of the sampling tools.
type ArgumentMode int

const (
	NoArgs         ArgumentMode = iota // command takes no positional argument
	ExperimentArgs                     // command takes one experiment file
)

// NewConfig reads the configuration of a command invocation from its
// context.
func NewConfig(ctx *cli.Context, mode ArgumentMode) (*Config, error) {
	cfg := &Config{
		LogLevel: ctx.String(logger.LogLevelFlag.Name),
		Seed:     ctx.Uint64(SeedFlag.Name),
		Sweeps:   ctx.Int(SweepsFlag.Name),
		BurnIn:   ctx.Int(BurnInFlag.Name),
		Trials:   ctx.Int(TrialsFlag.Name),
		Eps:      ctx.Float64(EpsFlag.Name),
		Output:   ctx.String(OutputFlag.Name),
		DbFile:   ctx.String(DbFileFlag.Name),
		Port:     ctx.String(PortFlag.Name),
	}
	switch mode {
	case NoArgs:
		if ctx.Args().Len() != 0 {
			return nil, fmt.Errorf("NewConfig: command expects no arguments")
		}
	case ExperimentArgs:
		if ctx.Args().Len() != 1 {
			return nil, fmt.Errorf("NewConfig: command expects one experiment file as argument")
		}
		cfg.ExperimentFile = ctx.Args().Get(0)
	default:
		return nil, fmt.Errorf("NewConfig: unknown argument mode (%v)", mode)
	}
	if cfg.Sweeps < 0 {
		return nil, fmt.Errorf("NewConfig: number of sweeps (%v) is negative", cfg.Sweeps)
	}
	if cfg.BurnIn < 0 || cfg.BurnIn > cfg.Sweeps {
		return nil, fmt.Errorf("NewConfig: burn-in (%v) is not in interval [0,%v]", cfg.BurnIn, cfg.Sweeps)
	}
	if cfg.Trials < 0 {
		return nil, fmt.Errorf("NewConfig: number of trials (%v) is negative", cfg.Trials)
	}
	if !(cfg.Eps > 0.0) {
		return nil, fmt.Errorf("NewConfig: tolerance (%v) must be positive", cfg.Eps)
	}
	return cfg, nil
}
