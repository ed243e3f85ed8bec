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

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/verimcmc/gibbs/cmd/gibbs-sim/sim"
)

var gibbsSimApp = &cli.App{
	Name:      "Gibbs sampling tool",
	HelpName:  "gibbs-sim",
	Copyright: "(c) 2026 VeriMCMC Authors",
	Commands: []*cli.Command{
		&sim.RunCommand,
		&sim.CheckCommand,
		&sim.EquivalenceCommand,
		&sim.VisualizeCommand,
	},
}

func main() {
	if err := gibbsSimApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
