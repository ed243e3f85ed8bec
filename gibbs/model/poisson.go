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

	"github.com/verimcmc/gibbs/gibbs/randvar"
)

// ParamLambda is the rate parameter of the Gamma-Poisson model.
const ParamLambda = "lambda"

// Poisson is the conjugate Gamma-Poisson rate model
//
//	y_i | lambda ~ Poisson(lambda)
//	lambda       ~ Gamma(A0, B0)
//
// With a single parameter, a Gibbs sweep degenerates to one exact draw
// from the posterior. The model's value lies in exercising the
// correctness oracle against a discrete likelihood.
type Poisson struct {
	A0 float64 // prior shape of lambda
	B0 float64 // prior rate of lambda
}

// NewPoisson creates the Gamma-Poisson model and validates its
// hyperparameters.
func NewPoisson(a0, b0 float64) (*Poisson, error) {
	if !(a0 > 0.0) || math.IsInf(a0, 0) {
		return nil, fmt.Errorf("NewPoisson: a0 (%v) must be positive and finite", a0)
	}
	if !(b0 > 0.0) || math.IsInf(b0, 0) {
		return nil, fmt.Errorf("NewPoisson: b0 (%v) must be positive and finite", b0)
	}
	return &Poisson{A0: a0, B0: b0}, nil
}

func (m *Poisson) Parameters() []string {
	return []string{ParamLambda}
}

func (m *Poisson) Prior(param string) (randvar.Distribution, error) {
	if param != ParamLambda {
		return nil, &UnknownParameterError{Param: param}
	}
	return randvar.Gamma{Shape: m.A0, Rate: m.B0}, nil
}

// Conditional derives the posterior of lambda by conjugacy.
func (m *Poisson) Conditional(param string, s State, d Data) (randvar.Distribution, error) {
	if param != ParamLambda {
		return nil, &UnknownParameterError{Param: param}
	}
	n := float64(d.Len())
	return randvar.Gamma{Shape: m.A0 + d.Sum(), Rate: m.B0 + n}, nil
}

// JointLogDensity composes the gamma prior and the Poisson likelihood.
func (m *Poisson) JointLogDensity(s State, d Data) (float64, error) {
	lambda, err := s.Get(ParamLambda)
	if err != nil {
		return 0, err
	}
	prior, err := m.Prior(ParamLambda)
	if err != nil {
		return 0, err
	}
	logp := prior.LogDensity(lambda)
	if !(lambda > 0.0) {
		return math.Inf(-1), nil
	}
	likelihood := randvar.Poisson{Lambda: lambda}
	for i := 0; i < d.Len(); i++ {
		logp += likelihood.LogDensity(d.Value(i))
	}
	return logp, nil
}
