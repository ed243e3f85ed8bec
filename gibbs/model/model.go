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

// Package model defines Bayesian models whose full-conditional
// distributions can be verified against the joint density. A model
// derives its conditionals by hand algebra and its joint log-density by
// direct composition of prior and likelihood terms; the two derivations
// are deliberately independent so that an error in either surfaces as a
// mismatch in the conditional-correctness check.
package model

import (
	"fmt"

	"github.com/verimcmc/gibbs/gibbs/randvar"
)

// Model declares parameters, their priors, a conditional-derivation rule
// per parameter, and the joint log-density of parameters and data.
//
// Conditional must be a pure function of its inputs; it is re-evaluated
// at arbitrary state values by the correctness oracle. The returned
// distribution, as a function of the named parameter with all other
// parameters held at their state values, must be proportional to the
// joint density.
type Model interface {
	// Parameters returns the declared parameter names. The declaration
	// order is the default update order of the Gibbs engine.
	Parameters() []string

	// Prior returns the prior distribution of a declared parameter.
	Prior(param string) (randvar.Distribution, error)

	// Conditional returns the full-conditional posterior distribution of
	// a declared parameter given the remaining state and the data.
	Conditional(param string, s State, d Data) (randvar.Distribution, error)

	// JointLogDensity returns the sum of all prior log-densities and the
	// data likelihood log-density at the given state.
	JointLogDensity(s State, d Data) (float64, error)
}

// UnknownParameterError reports a request for a parameter the model does
// not declare. This is a programmer error and not recoverable locally.
type UnknownParameterError struct {
	Param string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("unknown parameter (%v)", e.Param)
}

// IncompleteStateError reports a state that misses a declared parameter.
type IncompleteStateError struct {
	Param string
}

func (e *IncompleteStateError) Error() string {
	return fmt.Sprintf("state misses a value for parameter (%v)", e.Param)
}
