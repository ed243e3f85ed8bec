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

// Package oracle validates a model's full-conditional derivations
// against its joint log-density, independent of any sampling.
//
// For a correct conditional, the log-ratio of the conditional density at
// two probe values equals the log-ratio of the joint density at the same
// two points with every other parameter held fixed. The conditional's
// unknown normalizing constant cancels in the ratio, so the identity
// holds exactly and is suitable for property-based testing.
package oracle

import (
	"fmt"
	"math"

	"github.com/verimcmc/gibbs/gibbs/model"
	"golang.org/x/exp/rand"
)

// DefaultEps is the relative tolerance of the identity check.
const DefaultEps = 1e-9

// Result reports the outcome of one conditional-identity check.
type Result struct {
	Param    string
	V1       float64
	V2       float64
	Residual float64
	Pass     bool
}

// ConditionalMismatchError reports a conditional whose identity residual
// exceeds the tolerance. It carries the offending parameter, the two
// probe values, and the numeric residual for debugging.
type ConditionalMismatchError struct {
	Param    string
	V1       float64
	V2       float64
	Residual float64
}

func (e *ConditionalMismatchError) Error() string {
	return fmt.Sprintf("conditional of %v mismatches the joint density: residual %v at probes (%v, %v)",
		e.Param, e.Residual, e.V1, e.V2)
}

// Check evaluates the conditional-identity residual of one parameter at
// two probe values. The probe values must lie in the parameter's
// support; eps <= 0 selects DefaultEps. The residual is relative to the
// magnitude of the compared log-ratios.
func Check(m model.Model, param string, s model.State, d model.Data, v1, v2, eps float64) (Result, error) {
	if eps <= 0.0 {
		eps = DefaultEps
	}
	s1, err := s.With(param, v1)
	if err != nil {
		return Result{}, err
	}
	s2, err := s.With(param, v2)
	if err != nil {
		return Result{}, err
	}

	cond, err := m.Conditional(param, s1, d)
	if err != nil {
		return Result{}, err
	}
	lhs := cond.LogDensity(v1) - cond.LogDensity(v2)

	j1, err := m.JointLogDensity(s1, d)
	if err != nil {
		return Result{}, err
	}
	j2, err := m.JointLogDensity(s2, d)
	if err != nil {
		return Result{}, err
	}
	rhs := j1 - j2

	if math.IsNaN(lhs) || math.IsInf(lhs, 0) || math.IsNaN(rhs) || math.IsInf(rhs, 0) {
		return Result{}, fmt.Errorf("Check: log-ratio is not finite for %v at probes (%v, %v); probe outside support?", param, v1, v2)
	}

	residual := math.Abs(lhs-rhs) / math.Max(1.0, math.Max(math.Abs(lhs), math.Abs(rhs)))
	return Result{
		Param:    param,
		V1:       v1,
		V2:       v2,
		Residual: residual,
		Pass:     residual <= eps,
	}, nil
}

// Verify is Check with a failing identity reported as a
// ConditionalMismatchError.
func Verify(m model.Model, param string, s model.State, d model.Data, v1, v2, eps float64) error {
	r, err := Check(m, param, s, d, v1, v2, eps)
	if err != nil {
		return err
	}
	if !r.Pass {
		return &ConditionalMismatchError{Param: r.Param, V1: r.V1, V2: r.V2, Residual: r.Residual}
	}
	return nil
}

// CheckRandom verifies the identity for every declared parameter over
// randomized trials. States and probe values are drawn from the model's
// priors, which keeps all probes inside their parameter's support. The
// first failing trial is returned.
func CheckRandom(m model.Model, d model.Data, trials int, rg *rand.Rand, eps float64) error {
	if trials < 1 {
		return fmt.Errorf("CheckRandom: number of trials (%v) must be positive", trials)
	}
	if rg == nil {
		return fmt.Errorf("CheckRandom: no random stream provided")
	}
	params := m.Parameters()
	for trialIdx := 0; trialIdx < trials; trialIdx++ {
		values := make([]float64, len(params))
		for i, p := range params {
			prior, err := m.Prior(p)
			if err != nil {
				return err
			}
			values[i] = prior.Sample(rg)
		}
		s, err := model.NewState(params, values)
		if err != nil {
			return err
		}
		for _, p := range params {
			prior, err := m.Prior(p)
			if err != nil {
				return err
			}
			v1 := prior.Sample(rg)
			v2 := prior.Sample(rg)
			if err := Verify(m, p, s, d, v1, v2, eps); err != nil {
				return err
			}
		}
	}
	return nil
}
