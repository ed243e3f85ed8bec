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

// Package trajectory records the sequence of states produced by a
// sampling run. The store is append-only and owns deep copies of its
// states; accessors hand out copies so that history cannot be corrupted
// by aliasing.
package trajectory

import (
	"fmt"
	"sort"

	"github.com/verimcmc/gibbs/gibbs/model"
	"gonum.org/v1/gonum/stat"
)

// Trajectory is the ordered sequence of states of one chain.
type Trajectory struct {
	params []string
	states []model.State
}

// Summary describes the posterior marginal of one parameter.
type Summary struct {
	Param  string
	Mean   float64
	StdDev float64
	Q025   float64
	Median float64
	Q975   float64
}

// New creates an empty trajectory for the given parameter names.
func New(params []string) *Trajectory {
	t := &Trajectory{params: make([]string, len(params))}
	copy(t.params, params)
	return t
}

// Params returns the recorded parameter names.
func (t *Trajectory) Params() []string {
	params := make([]string, len(t.params))
	copy(params, t.params)
	return params
}

// Append records a state. The state must assign all recorded parameters;
// the trajectory stores its own copy.
func (t *Trajectory) Append(s model.State) error {
	if err := s.Complete(t.params); err != nil {
		return err
	}
	t.states = append(t.states, s.Clone())
	return nil
}

// Len returns the number of recorded states.
func (t *Trajectory) Len() int {
	return len(t.states)
}

// State returns a copy of the state at the given sweep index.
func (t *Trajectory) State(i int) (model.State, error) {
	if i < 0 || i >= len(t.states) {
		return model.State{}, fmt.Errorf("State: sweep index (%v) out of range [0,%v)", i, len(t.states))
	}
	return t.states[i].Clone(), nil
}

// Marginal returns the sequence of one parameter's values across all
// recorded sweeps.
func (t *Trajectory) Marginal(param string) ([]float64, error) {
	found := false
	for _, p := range t.params {
		if p == param {
			found = true
			break
		}
	}
	if !found {
		return nil, &model.UnknownParameterError{Param: param}
	}
	values := make([]float64, len(t.states))
	for i, s := range t.states {
		v, err := s.Get(param)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// Mean returns the mean of a parameter's marginal after discarding the
// first burnIn states.
func (t *Trajectory) Mean(param string, burnIn int) (float64, error) {
	values, err := t.tail(param, burnIn)
	if err != nil {
		return 0, err
	}
	return stat.Mean(values, nil), nil
}

// Quantile returns an empirical quantile of a parameter's marginal after
// discarding the first burnIn states.
func (t *Trajectory) Quantile(param string, p float64, burnIn int) (float64, error) {
	if p < 0.0 || p > 1.0 {
		return 0, fmt.Errorf("Quantile: probability (%v) is not in interval [0,1]", p)
	}
	values, err := t.tail(param, burnIn)
	if err != nil {
		return 0, err
	}
	sort.Float64s(values)
	return stat.Quantile(p, stat.Empirical, values, nil), nil
}

// Summarize produces posterior summaries for all parameters after
// discarding the first burnIn states.
func (t *Trajectory) Summarize(burnIn int) ([]Summary, error) {
	summaries := make([]Summary, 0, len(t.params))
	for _, param := range t.params {
		values, err := t.tail(param, burnIn)
		if err != nil {
			return nil, err
		}
		mean, std := stat.MeanStdDev(values, nil)
		sort.Float64s(values)
		summaries = append(summaries, Summary{
			Param:  param,
			Mean:   mean,
			StdDev: std,
			Q025:   stat.Quantile(0.025, stat.Empirical, values, nil),
			Median: stat.Quantile(0.5, stat.Empirical, values, nil),
			Q975:   stat.Quantile(0.975, stat.Empirical, values, nil),
		})
	}
	return summaries, nil
}

// tail returns a mutable copy of a marginal without its burn-in prefix.
func (t *Trajectory) tail(param string, burnIn int) ([]float64, error) {
	if burnIn < 0 || burnIn >= len(t.states) {
		return nil, fmt.Errorf("burn-in (%v) out of range [0,%v)", burnIn, len(t.states))
	}
	values, err := t.Marginal(param)
	if err != nil {
		return nil, err
	}
	return values[burnIn:], nil
}
