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

// Package fastpath contains hand-specialized Gibbs loops that trade the
// modular model interface for raw throughput. A fast-path sampler is
// only trusted after the equivalence checker has proven it
// stream-identical to the modular engine; to stay provable, each loop
// must keep the conditional-parameter arithmetic and the per-sweep draw
// order of its modular counterpart. In particular the sum of squared
// deviations is accumulated term by term rather than expanded
// algebraically: a reassociated floating-point sum changes the low bits
// of the inverse-gamma rate, and through it the low bits of every
// subsequent draw, so the trajectories stop being bit-identical.
package fastpath

import (
	"fmt"

	"github.com/verimcmc/gibbs/gibbs/equivalence"
	"github.com/verimcmc/gibbs/gibbs/model"
	"github.com/verimcmc/gibbs/gibbs/randvar"
	"github.com/verimcmc/gibbs/gibbs/trajectory"
	"golang.org/x/exp/rand"
)

// NormalSampler returns a monolithic Gibbs sampler for the
// semi-conjugate normal model with the given hyperparameters. The loop
// draws theta, then sigma2, once per sweep, exactly like the modular
// engine does for model.Normal.
func NormalSampler(mu0, tau20, nu0, sigma20 float64) (equivalence.Sampler, error) {
	if _, err := model.NewNormal(mu0, tau20, nu0, sigma20); err != nil {
		return nil, err
	}
	return func(d model.Data, initial model.State, sweeps int, rg *rand.Rand) (*trajectory.Trajectory, error) {
		if sweeps < 0 {
			return nil, fmt.Errorf("NormalSampler: number of sweeps (%v) is negative", sweeps)
		}
		if rg == nil {
			return nil, fmt.Errorf("NormalSampler: random stream is nil")
		}
		theta, err := initial.Get(model.ParamTheta)
		if err != nil {
			return nil, err
		}
		sigma2, err := initial.Get(model.ParamSigma2)
		if err != nil {
			return nil, err
		}
		if !(sigma2 > 0.0) {
			return nil, fmt.Errorf("NormalSampler: initial sigma2 (%v) is outside its support", sigma2)
		}

		n := float64(d.Len())
		ybar := d.Mean()

		t := trajectory.New([]string{model.ParamTheta, model.ParamSigma2})
		s, err := model.NewStateFromMap([]string{model.ParamTheta, model.ParamSigma2},
			map[string]float64{model.ParamTheta: theta, model.ParamSigma2: sigma2})
		if err != nil {
			return nil, err
		}
		if err := t.Append(s); err != nil {
			return nil, err
		}

		for sweepIdx := 0; sweepIdx < sweeps; sweepIdx++ {
			tau2n := 1.0 / (1.0/tau20 + n/sigma2)
			mun := tau2n * (mu0/tau20 + n*ybar/sigma2)
			theta = randvar.Normal{Mean: mun, Variance: tau2n}.Sample(rg)

			nun := nu0 + n
			ss := nu0 * sigma20
			for i := 0; i < d.Len(); i++ {
				dev := d.Value(i) - theta
				ss += dev * dev
			}
			sigma2 = randvar.InvGamma{Shape: nun / 2.0, Rate: ss / 2.0}.Sample(rg)

			if err := s.Set(model.ParamTheta, theta); err != nil {
				return nil, err
			}
			if err := s.Set(model.ParamSigma2, sigma2); err != nil {
				return nil, err
			}
			if err := t.Append(s); err != nil {
				return nil, err
			}
		}
		return t, nil
	}, nil
}
