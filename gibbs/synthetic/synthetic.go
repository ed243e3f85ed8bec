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

// Package synthetic generates observation sets for experiments and
// integration tests.
package synthetic

import (
	"fmt"
	"math"

	"github.com/verimcmc/gibbs/gibbs/model"
	"github.com/verimcmc/gibbs/gibbs/randvar"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Normal produces n observations from a stratified normal design with
// the exact requested sample mean and unbiased sample variance. The
// values are standard-normal quantiles at equispaced probabilities,
// standardized and rescaled; no random stream is consumed, so the data
// set is reproducible without a seed.
func Normal(n int, mean float64, variance float64) (model.Data, error) {
	if n < 2 {
		return model.Data{}, fmt.Errorf("Normal: need at least two observations (%v)", n)
	}
	if !(variance > 0.0) {
		return model.Data{}, fmt.Errorf("Normal: variance (%v) must be positive", variance)
	}
	obs := make([]float64, n)
	for i := 0; i < n; i++ {
		p := (float64(i) + 0.5) / float64(n)
		obs[i] = distuv.UnitNormal.Quantile(p)
	}
	m, s := stat.MeanStdDev(obs, nil)
	scale := math.Sqrt(variance) / s
	for i := 0; i < n; i++ {
		obs[i] = mean + (obs[i]-m)*scale
	}
	return model.NewData(obs), nil
}

// Counts produces n Poisson observations with the given rate, drawn from
// a deterministic stream for the given seed.
func Counts(n int, rate float64, seed uint64) (model.Data, error) {
	if n < 1 {
		return model.Data{}, fmt.Errorf("Counts: need at least one observation (%v)", n)
	}
	p, err := randvar.NewPoisson(rate)
	if err != nil {
		return model.Data{}, err
	}
	rg := randvar.NewStream(seed)
	obs := make([]float64, n)
	for i := 0; i < n; i++ {
		obs[i] = p.Sample(rg)
	}
	return model.NewData(obs), nil
}
