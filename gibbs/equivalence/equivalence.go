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

// Package equivalence proves a fast, monolithic sampler numerically
// identical to the modular reference sampler by driving both with the
// same data, starting values, and random-stream seed. The comparison is
// only meaningful when both samplers consume the stream in identical
// order and granularity; this is part of the Sampler contract, not
// something the checker can enforce.
package equivalence

import (
	"fmt"
	"math"

	"github.com/verimcmc/gibbs/gibbs/engine"
	"github.com/verimcmc/gibbs/gibbs/model"
	"github.com/verimcmc/gibbs/gibbs/randvar"
	"github.com/verimcmc/gibbs/gibbs/trajectory"
	"golang.org/x/exp/rand"
)

// DefaultEps is the absolute per-value tolerance of the comparison.
const DefaultEps = 1e-12

// Sampler runs a complete Gibbs chain and records its trajectory. A
// sampler must draw exactly one value per parameter per sweep, in the
// model's declaration order, through the randvar primitives.
type Sampler func(d model.Data, initial model.State, sweeps int, rg *rand.Rand) (*trajectory.Trajectory, error)

// Result reports the outcome of an equivalence check.
type Result struct {
	Pass       bool
	MaxAbsDiff float64
}

// EquivalenceMismatchError reports the first diverging value of two
// trajectories.
type EquivalenceMismatchError struct {
	Sweep int
	Param string
	Ref   float64
	Fast  float64
}

func (e *EquivalenceMismatchError) Error() string {
	return fmt.Sprintf("trajectories diverge at sweep %v, parameter %v: reference %v, fast-path %v",
		e.Sweep, e.Param, e.Ref, e.Fast)
}

// EngineSampler adapts the modular engine to the Sampler contract.
func EngineSampler(m model.Model) Sampler {
	return func(d model.Data, initial model.State, sweeps int, rg *rand.Rand) (*trajectory.Trajectory, error) {
		return engine.Run(m, d, initial, sweeps, rg)
	}
}

// Check runs the reference and the fast-path sampler under a shared seed
// and compares the trajectories value by value. eps <= 0 selects
// DefaultEps. On divergence the result is accompanied by an
// EquivalenceMismatchError for the first diverging value.
func Check(reference Sampler, fast Sampler, d model.Data, initial model.State, sweeps int, seed uint64, eps float64) (Result, error) {
	if eps <= 0.0 {
		eps = DefaultEps
	}
	refT, err := reference(d, initial.Clone(), sweeps, randvar.NewStream(seed))
	if err != nil {
		return Result{}, fmt.Errorf("Check: reference sampler failed; %v", err)
	}
	fastT, err := fast(d, initial.Clone(), sweeps, randvar.NewStream(seed))
	if err != nil {
		return Result{}, fmt.Errorf("Check: fast-path sampler failed; %v", err)
	}
	if refT.Len() != fastT.Len() {
		return Result{}, fmt.Errorf("Check: trajectory lengths differ (%v != %v)", refT.Len(), fastT.Len())
	}

	maxDiff := 0.0
	var first *EquivalenceMismatchError
	for _, param := range refT.Params() {
		ref, err := refT.Marginal(param)
		if err != nil {
			return Result{}, err
		}
		fst, err := fastT.Marginal(param)
		if err != nil {
			return Result{}, err
		}
		for i := range ref {
			diff := math.Abs(ref[i] - fst[i])
			if diff > maxDiff {
				maxDiff = diff
			}
			if diff > eps && (first == nil || i < first.Sweep) {
				first = &EquivalenceMismatchError{Sweep: i, Param: param, Ref: ref[i], Fast: fst[i]}
			}
		}
	}
	if first != nil {
		return Result{Pass: false, MaxAbsDiff: maxDiff}, first
	}
	return Result{Pass: true, MaxAbsDiff: maxDiff}, nil
}
