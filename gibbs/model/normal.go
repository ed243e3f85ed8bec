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

// Parameter names of the semi-conjugate normal model.
const (
	ParamTheta  = "theta"
	ParamSigma2 = "sigma2"
)

// Normal is the semi-conjugate univariate normal model
//
//	y_i | theta, sigma2 ~ N(theta, sigma2)
//	theta              ~ N(Mu0, Tau20)
//	sigma2             ~ scaled-inv-chi2(Nu0, Sigma20)
//
// Both full conditionals have closed forms: a normal distribution for
// theta and an inverse-gamma distribution for sigma2.
type Normal struct {
	Mu0     float64 // prior mean of theta
	Tau20   float64 // prior variance of theta
	Nu0     float64 // prior degrees of freedom of sigma2
	Sigma20 float64 // prior scale of sigma2
}

// NewNormal creates the semi-conjugate normal model and validates its
// hyperparameters.
func NewNormal(mu0, tau20, nu0, sigma20 float64) (*Normal, error) {
	if math.IsNaN(mu0) || math.IsInf(mu0, 0) {
		return nil, fmt.Errorf("NewNormal: mu0 (%v) is not finite", mu0)
	}
	if !(tau20 > 0.0) || math.IsInf(tau20, 0) {
		return nil, fmt.Errorf("NewNormal: tau20 (%v) must be positive and finite", tau20)
	}
	if !(nu0 > 0.0) || math.IsInf(nu0, 0) {
		return nil, fmt.Errorf("NewNormal: nu0 (%v) must be positive and finite", nu0)
	}
	if !(sigma20 > 0.0) || math.IsInf(sigma20, 0) {
		return nil, fmt.Errorf("NewNormal: sigma20 (%v) must be positive and finite", sigma20)
	}
	return &Normal{Mu0: mu0, Tau20: tau20, Nu0: nu0, Sigma20: sigma20}, nil
}

func (m *Normal) Parameters() []string {
	return []string{ParamTheta, ParamSigma2}
}

func (m *Normal) Prior(param string) (randvar.Distribution, error) {
	switch param {
	case ParamTheta:
		return randvar.Normal{Mean: m.Mu0, Variance: m.Tau20}, nil
	case ParamSigma2:
		return randvar.InvGamma{Shape: m.Nu0 / 2.0, Rate: m.Nu0 * m.Sigma20 / 2.0}, nil
	default:
		return nil, &UnknownParameterError{Param: param}
	}
}

// Conditional derives the full-conditional posterior of a parameter by
// the standard semi-conjugate algebra.
func (m *Normal) Conditional(param string, s State, d Data) (randvar.Distribution, error) {
	switch param {
	case ParamTheta:
		sigma2, err := s.Get(ParamSigma2)
		if err != nil {
			return nil, err
		}
		if !(sigma2 > 0.0) {
			return nil, fmt.Errorf("Conditional: sigma2 (%v) is outside its support", sigma2)
		}
		n := float64(d.Len())
		tau2n := 1.0 / (1.0/m.Tau20 + n/sigma2)
		mun := tau2n * (m.Mu0/m.Tau20 + n*d.Mean()/sigma2)
		return randvar.Normal{Mean: mun, Variance: tau2n}, nil
	case ParamSigma2:
		theta, err := s.Get(ParamTheta)
		if err != nil {
			return nil, err
		}
		n := float64(d.Len())
		nun := m.Nu0 + n
		ss := m.Nu0 * m.Sigma20
		for i := 0; i < d.Len(); i++ {
			dev := d.Value(i) - theta
			ss += dev * dev
		}
		return randvar.InvGamma{Shape: nun / 2.0, Rate: ss / 2.0}, nil
	default:
		return nil, &UnknownParameterError{Param: param}
	}
}

// JointLogDensity composes prior and likelihood log-densities directly,
// without reusing the conditional algebra.
func (m *Normal) JointLogDensity(s State, d Data) (float64, error) {
	theta, err := s.Get(ParamTheta)
	if err != nil {
		return 0, err
	}
	sigma2, err := s.Get(ParamSigma2)
	if err != nil {
		return 0, err
	}
	thetaPrior, err := m.Prior(ParamTheta)
	if err != nil {
		return 0, err
	}
	sigma2Prior, err := m.Prior(ParamSigma2)
	if err != nil {
		return 0, err
	}
	logp := thetaPrior.LogDensity(theta) + sigma2Prior.LogDensity(sigma2)
	if !(sigma2 > 0.0) {
		return math.Inf(-1), nil
	}
	likelihood := randvar.Normal{Mean: theta, Variance: sigma2}
	for i := 0; i < d.Len(); i++ {
		logp += likelihood.LogDensity(d.Value(i))
	}
	return logp, nil
}
