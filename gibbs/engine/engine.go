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

// Package engine drives Gibbs sweeps over a model. The engine is a
// fixed-iteration-count driver without convergence detection; each sweep
// updates every parameter once, in a fixed order, drawing from its full
// conditional. Within a sweep, a later parameter conditions on the
// already updated values of earlier parameters (sequential substitution).
package engine

import (
	"fmt"

	"github.com/verimcmc/gibbs/gibbs/model"
	"github.com/verimcmc/gibbs/gibbs/randvar"
	"github.com/verimcmc/gibbs/gibbs/trajectory"
	"golang.org/x/exp/rand"
)

// InvalidConfigurationError reports an unusable engine configuration.
// It is fatal and checked at entry, before any sweep runs.
type InvalidConfigurationError struct {
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %v", e.Reason)
}

// status of the engine state machine.
type status int

const (
	initialized status = iota
	sweeping
	stopped
)

// Engine performs Gibbs sweeps for one chain. An engine owns its working
// state and its random stream; it must not be shared across chains.
type Engine struct {
	m      model.Model
	d      model.Data
	order  []string
	work   model.State
	sweeps int
	done   int
	rg     *rand.Rand
	st     status
}

// New creates an engine. A nil order selects the model's declaration
// order; otherwise order must be a permutation of the declared
// parameters. The initial state must be complete with respect to the
// model and is copied; sweeps must not be negative.
func New(m model.Model, d model.Data, initial model.State, order []string, sweeps int, rg *rand.Rand) (*Engine, error) {
	if sweeps < 0 {
		return nil, &InvalidConfigurationError{Reason: fmt.Sprintf("sweep count (%v) is negative", sweeps)}
	}
	if rg == nil {
		return nil, &InvalidConfigurationError{Reason: "no random stream provided"}
	}
	params := m.Parameters()
	if order == nil {
		order = params
	} else if err := checkPermutation(order, params); err != nil {
		return nil, &InvalidConfigurationError{Reason: err.Error()}
	}
	if err := initial.Complete(params); err != nil {
		return nil, err
	}
	e := &Engine{
		m:      m,
		d:      d,
		order:  make([]string, len(order)),
		work:   initial.Clone(),
		sweeps: sweeps,
		rg:     rg,
		st:     initialized,
	}
	copy(e.order, order)
	return e, nil
}

// checkPermutation verifies that order is a permutation of params.
func checkPermutation(order []string, params []string) error {
	if len(order) != len(params) {
		return fmt.Errorf("update order has %v parameters, model declares %v", len(order), len(params))
	}
	declared := make(map[string]bool, len(params))
	for _, p := range params {
		declared[p] = true
	}
	seen := make(map[string]bool, len(order))
	for _, p := range order {
		if !declared[p] {
			return fmt.Errorf("update order names undeclared parameter (%v)", p)
		}
		if seen[p] {
			return fmt.Errorf("update order names parameter (%v) twice", p)
		}
		seen[p] = true
	}
	return nil
}

// Advance performs exactly one sweep and returns a snapshot of the new
// state. After the configured number of sweeps the engine stops and
// further calls fail.
func (e *Engine) Advance() (model.State, error) {
	if e.st == stopped {
		return model.State{}, fmt.Errorf("Advance: engine already performed all %v sweeps", e.sweeps)
	}
	e.st = sweeping
	for _, p := range e.order {
		dist, err := e.m.Conditional(p, e.work, e.d)
		if err != nil {
			return model.State{}, fmt.Errorf("Advance: conditional of %v failed in sweep %v; %v", p, e.done+1, err)
		}
		// Update in place so the next conditional in this sweep sees
		// the freshly drawn value.
		if err := e.work.Set(p, dist.Sample(e.rg)); err != nil {
			return model.State{}, err
		}
	}
	e.done++
	if e.done >= e.sweeps {
		e.st = stopped
	}
	return e.work.Clone(), nil
}

// Done returns the number of completed sweeps.
func (e *Engine) Done() int {
	return e.done
}

// State returns a snapshot of the current working state.
func (e *Engine) State() model.State {
	return e.work.Clone()
}

// Run performs a complete sampling run in declaration order and records
// the trajectory: sweeps+1 states, with state 0 equal to the initial
// state.
func Run(m model.Model, d model.Data, initial model.State, sweeps int, rg *rand.Rand) (*trajectory.Trajectory, error) {
	e, err := New(m, d, initial, nil, sweeps, rg)
	if err != nil {
		return nil, err
	}
	t := trajectory.New(m.Parameters())
	if err := t.Append(initial); err != nil {
		return nil, err
	}
	for sweepIdx := 0; sweepIdx < sweeps; sweepIdx++ {
		s, err := e.Advance()
		if err != nil {
			return nil, err
		}
		if err := t.Append(s); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// RunSeed is Run with a fresh deterministic stream for the given seed.
func RunSeed(m model.Model, d model.Data, initial model.State, sweeps int, seed uint64) (*trajectory.Trajectory, error) {
	return Run(m, d, initial, sweeps, randvar.NewStream(seed))
}
