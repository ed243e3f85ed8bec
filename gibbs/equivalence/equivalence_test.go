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

package equivalence

import (
	"errors"
	"fmt"
	"testing"

	"github.com/verimcmc/gibbs/gibbs/model"
	"github.com/verimcmc/gibbs/gibbs/trajectory"
	"golang.org/x/exp/rand"
)

func testFixture(t *testing.T) (*model.Normal, model.Data, model.State) {
	t.Helper()
	m, err := model.NewNormal(0.0, 100.0, 1.0, 1.0)
	if err != nil {
		t.Fatalf("failed to create model; %v", err)
	}
	d := model.NewData([]float64{1.1, 1.9, 3.2, 2.4, 1.6})
	s, err := model.NewStateFromMap(m.Parameters(), map[string]float64{
		model.ParamTheta:  d.Mean(),
		model.ParamSigma2: d.Variance(),
	})
	if err != nil {
		t.Fatalf("failed to create initial state; %v", err)
	}
	return m, d, s
}

// perturb wraps a sampler and nudges one parameter of one recorded state
// by delta, leaving the random stream untouched.
func perturb(inner Sampler, sweep int, param string, delta float64) Sampler {
	return func(d model.Data, initial model.State, sweeps int, rg *rand.Rand) (*trajectory.Trajectory, error) {
		orig, err := inner(d, initial, sweeps, rg)
		if err != nil {
			return nil, err
		}
		out := trajectory.New(orig.Params())
		for i := 0; i < orig.Len(); i++ {
			s, err := orig.State(i)
			if err != nil {
				return nil, err
			}
			if i == sweep {
				v, err := s.Get(param)
				if err != nil {
					return nil, err
				}
				if err := s.Set(param, v+delta); err != nil {
					return nil, err
				}
			}
			if err := out.Append(s); err != nil {
				return nil, err
			}
		}
		return out, nil
	}
}

// TestCheck_SamplerAgainstItself shares one seed between two runs of the
// modular engine; the trajectories must match exactly.
func TestCheck_SamplerAgainstItself(t *testing.T) {
	m, d, initial := testFixture(t)
	sampler := EngineSampler(m)
	for _, sweeps := range []int{0, 2, 1000} {
		res, err := Check(sampler, sampler, d, initial, sweeps, 42, 0.0)
		if err != nil {
			t.Fatalf("check of %v sweeps failed; %v", sweeps, err)
		}
		if !res.Pass {
			t.Errorf("identical samplers diverge after %v sweeps", sweeps)
		}
		if res.MaxAbsDiff != 0.0 {
			t.Errorf("identical samplers differ by %v after %v sweeps", res.MaxAbsDiff, sweeps)
		}
	}
}

// TestCheck_DetectsPerturbation verifies that a single perturbed value is
// found and pinpointed.
func TestCheck_DetectsPerturbation(t *testing.T) {
	m, d, initial := testFixture(t)
	reference := EngineSampler(m)
	fast := perturb(reference, 3, model.ParamSigma2, 1e-6)

	res, err := Check(reference, fast, d, initial, 10, 42, 0.0)
	if res.Pass {
		t.Fatalf("perturbed sampler passed the check")
	}
	var mismatch *EquivalenceMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected a mismatch error; got %v", err)
	}
	if mismatch.Sweep != 3 || mismatch.Param != model.ParamSigma2 {
		t.Errorf("divergence located at sweep %v, parameter %v; expected sweep 3, parameter %v",
			mismatch.Sweep, mismatch.Param, model.ParamSigma2)
	}
	if got := mismatch.Fast - mismatch.Ref; got < 0.9e-6 || got > 1.1e-6 {
		t.Errorf("reported divergence %v does not match the injected perturbation", got)
	}
	if res.MaxAbsDiff < 0.9e-6 {
		t.Errorf("maximal difference %v is below the injected perturbation", res.MaxAbsDiff)
	}
}

// TestCheck_ReportsFirstDivergence perturbs two values and expects the
// earlier one in the report.
func TestCheck_ReportsFirstDivergence(t *testing.T) {
	m, d, initial := testFixture(t)
	reference := EngineSampler(m)
	fast := perturb(perturb(reference, 7, model.ParamTheta, 1.0), 2, model.ParamSigma2, 1e-3)

	_, err := Check(reference, fast, d, initial, 10, 42, 0.0)
	var mismatch *EquivalenceMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected a mismatch error; got %v", err)
	}
	if mismatch.Sweep != 2 || mismatch.Param != model.ParamSigma2 {
		t.Errorf("expected first divergence at sweep 2, parameter %v; got sweep %v, parameter %v",
			model.ParamSigma2, mismatch.Sweep, mismatch.Param)
	}
}

// TestCheck_ToleratesSubThresholdNoise accepts differences below eps.
func TestCheck_ToleratesSubThresholdNoise(t *testing.T) {
	m, d, initial := testFixture(t)
	reference := EngineSampler(m)
	fast := perturb(reference, 5, model.ParamTheta, 1e-14)

	res, err := Check(reference, fast, d, initial, 10, 42, 1e-12)
	if err != nil {
		t.Fatalf("check failed; %v", err)
	}
	if !res.Pass {
		t.Errorf("sub-threshold difference rejected")
	}
	if res.MaxAbsDiff <= 0.0 || res.MaxAbsDiff > 1e-12 {
		t.Errorf("unexpected maximal difference %v", res.MaxAbsDiff)
	}
}

func TestCheck_Errors(t *testing.T) {
	m, d, initial := testFixture(t)
	reference := EngineSampler(m)

	failing := func(model.Data, model.State, int, *rand.Rand) (*trajectory.Trajectory, error) {
		return nil, fmt.Errorf("broken sampler")
	}
	if _, err := Check(failing, reference, d, initial, 5, 42, 0.0); err == nil {
		t.Errorf("failing reference sampler not reported")
	}
	if _, err := Check(reference, failing, d, initial, 5, 42, 0.0); err == nil {
		t.Errorf("failing fast-path sampler not reported")
	}

	truncated := func(d model.Data, initial model.State, sweeps int, rg *rand.Rand) (*trajectory.Trajectory, error) {
		orig, err := reference(d, initial, sweeps, rg)
		if err != nil {
			return nil, err
		}
		out := trajectory.New(orig.Params())
		for i := 0; i < orig.Len() - 1; i++ {
			s, err := orig.State(i)
			if err != nil {
				return nil, err
			}
			if err := out.Append(s); err != nil {
				return nil, err
			}
		}
		return out, nil
	}
	if _, err := Check(reference, truncated, d, initial, 5, 42, 0.0); err == nil {
		t.Errorf("trajectory length mismatch not reported")
	}
}
