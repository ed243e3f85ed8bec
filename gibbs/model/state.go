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

package model

import (
	"fmt"
	"math"
)

// State is an ordered assignment of parameter names to scalar values.
// A State behaves as a value object: With returns a modified copy and
// Clone produces an independent deep copy. Callers recording histories
// must store clones; the engine's working state is mutated in place
// between snapshots.
type State struct {
	names  []string
	values map[string]float64
}

// NewState creates a state for the given parameter names and values.
// Names must be unique and of the same cardinality as the values.
func NewState(names []string, values []float64) (State, error) {
	if len(names) != len(values) {
		return State{}, fmt.Errorf("NewState: number of names (%v) mismatches number of values (%v)", len(names), len(values))
	}
	s := State{
		names:  make([]string, len(names)),
		values: make(map[string]float64, len(names)),
	}
	copy(s.names, names)
	for i, name := range names {
		if _, ok := s.values[name]; ok {
			return State{}, fmt.Errorf("NewState: parameter (%v) occurs more than once", name)
		}
		if math.IsNaN(values[i]) {
			return State{}, fmt.Errorf("NewState: value of parameter (%v) is not a number", name)
		}
		s.values[name] = values[i]
	}
	return s, nil
}

// NewStateFromMap creates a state for the given parameter names taking
// the values from a map. The map must assign a value to every name.
func NewStateFromMap(names []string, values map[string]float64) (State, error) {
	ordered := make([]float64, 0, len(names))
	for _, name := range names {
		v, ok := values[name]
		if !ok {
			return State{}, fmt.Errorf("NewStateFromMap: no value for parameter (%v)", name)
		}
		ordered = append(ordered, v)
	}
	if len(values) != len(names) {
		return State{}, fmt.Errorf("NewStateFromMap: number of names (%v) mismatches number of values (%v)", len(names), len(values))
	}
	return NewState(names, ordered)
}

// Names returns the parameter names in declaration order.
func (s State) Names() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// Get returns the value of a parameter.
func (s State) Get(name string) (float64, error) {
	v, ok := s.values[name]
	if !ok {
		return 0, &UnknownParameterError{Param: name}
	}
	return v, nil
}

// Set assigns a parameter value in place. The parameter must exist.
func (s State) Set(name string, value float64) error {
	if _, ok := s.values[name]; !ok {
		return &UnknownParameterError{Param: name}
	}
	s.values[name] = value
	return nil
}

// With returns a copy of the state with one parameter replaced.
func (s State) With(name string, value float64) (State, error) {
	if _, ok := s.values[name]; !ok {
		return State{}, &UnknownParameterError{Param: name}
	}
	c := s.Clone()
	c.values[name] = value
	return c, nil
}

// Clone produces an independent deep copy of the state.
func (s State) Clone() State {
	c := State{
		names:  make([]string, len(s.names)),
		values: make(map[string]float64, len(s.values)),
	}
	copy(c.names, s.names)
	for k, v := range s.values {
		c.values[k] = v
	}
	return c
}

// Complete checks that the state assigns a value to every given parameter.
func (s State) Complete(params []string) error {
	for _, p := range params {
		if _, ok := s.values[p]; !ok {
			return &IncompleteStateError{Param: p}
		}
	}
	return nil
}

// Equal reports whether two states assign identical values to identical
// parameters in identical order.
func (s State) Equal(o State) bool {
	if len(s.names) != len(o.names) {
		return false
	}
	for i := range s.names {
		if s.names[i] != o.names[i] {
			return false
		}
		if s.values[s.names[i]] != o.values[o.names[i]] {
			return false
		}
	}
	return true
}
