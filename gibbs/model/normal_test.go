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
	"errors"
	"math"
	"testing"

	"github.com/verimcmc/gibbs/gibbs/randvar"
)

// TestNormal_New tests hyperparameter validation.
func TestNormal_New(t *testing.T) {
	if _, err := NewNormal(0.0, 10000.0, 1.0, 1.0); err != nil {
		t.Fatalf("Expected a normal model. Error: %v", err)
	}
	if _, err := NewNormal(math.Inf(1), 1.0, 1.0, 1.0); err == nil {
		t.Fatalf("Expected an error due to infinite mu0.")
	}
	if _, err := NewNormal(0.0, 0.0, 1.0, 1.0); err == nil {
		t.Fatalf("Expected an error due to zero tau20.")
	}
	if _, err := NewNormal(0.0, 1.0, -1.0, 1.0); err == nil {
		t.Fatalf("Expected an error due to negative nu0.")
	}
	if _, err := NewNormal(0.0, 1.0, 1.0, math.NaN()); err == nil {
		t.Fatalf("Expected an error due to NaN sigma20.")
	}
}

// TestNormal_ConditionalTheta checks the theta conditional against the
// closed-form posterior parameters.
func TestNormal_ConditionalTheta(t *testing.T) {
	m, err := NewNormal(1.0, 4.0, 2.0, 0.5)
	if err != nil {
		t.Fatalf("Expected a normal model. Error: %v", err)
	}
	d := NewData([]float64{2.0, 3.0, 4.0})
	s, err := NewState([]string{ParamTheta, ParamSigma2}, []float64{0.0, 2.0})
	if err != nil {
		t.Fatalf("Expected a state. Error: %v", err)
	}

	dist, err := m.Conditional(ParamTheta, s, d)
	if err != nil {
		t.Fatalf("Expected a conditional distribution. Error: %v", err)
	}
	normal, ok := dist.(randvar.Normal)
	if !ok {
		t.Fatalf("Expected a normal conditional. Got %T.", dist)
	}

	// tau2n = 1/(1/4 + 3/2), mun = tau2n*(1/4 + 3*3/2)
	wantVar := 1.0 / (1.0/4.0 + 3.0/2.0)
	wantMean := wantVar * (1.0/4.0 + 3.0*3.0/2.0)
	if math.Abs(normal.Variance-wantVar) > 1e-12 {
		t.Fatalf("posterior variance mismatch: want %v, got %v", wantVar, normal.Variance)
	}
	if math.Abs(normal.Mean-wantMean) > 1e-12 {
		t.Fatalf("posterior mean mismatch: want %v, got %v", wantMean, normal.Mean)
	}
}

// TestNormal_ConditionalSigma2 checks the sigma2 conditional against the
// closed-form inverse-gamma parameters.
func TestNormal_ConditionalSigma2(t *testing.T) {
	m, err := NewNormal(0.0, 1.0, 2.0, 0.5)
	if err != nil {
		t.Fatalf("Expected a normal model. Error: %v", err)
	}
	d := NewData([]float64{1.0, -1.0})
	s, err := NewState([]string{ParamTheta, ParamSigma2}, []float64{0.5, 1.0})
	if err != nil {
		t.Fatalf("Expected a state. Error: %v", err)
	}

	dist, err := m.Conditional(ParamSigma2, s, d)
	if err != nil {
		t.Fatalf("Expected a conditional distribution. Error: %v", err)
	}
	ig, ok := dist.(randvar.InvGamma)
	if !ok {
		t.Fatalf("Expected an inverse-gamma conditional. Got %T.", dist)
	}

	// nun = 2+2, ss = 2*0.5 + (1-0.5)^2 + (-1-0.5)^2 = 1 + 0.25 + 2.25
	if math.Abs(ig.Shape-2.0) > 1e-12 {
		t.Fatalf("posterior shape mismatch: want 2, got %v", ig.Shape)
	}
	if math.Abs(ig.Rate-3.5/2.0) > 1e-12 {
		t.Fatalf("posterior rate mismatch: want 1.75, got %v", ig.Rate)
	}
}

// TestNormal_Errors checks the error conditions of the model contract.
func TestNormal_Errors(t *testing.T) {
	m, err := NewNormal(0.0, 1.0, 1.0, 1.0)
	if err != nil {
		t.Fatalf("Expected a normal model. Error: %v", err)
	}
	d := NewData([]float64{1.0})
	s, err := NewState([]string{ParamTheta, ParamSigma2}, []float64{0.0, 1.0})
	if err != nil {
		t.Fatalf("Expected a state. Error: %v", err)
	}

	var unknown *UnknownParameterError
	if _, err := m.Conditional("tau", s, d); !errors.As(err, &unknown) {
		t.Fatalf("Expected UnknownParameterError. Got %v.", err)
	}
	if _, err := m.Prior("tau"); !errors.As(err, &unknown) {
		t.Fatalf("Expected UnknownParameterError from Prior. Got %v.", err)
	}

	// conditioning on a state without sigma2 must fail
	incomplete, err := NewState([]string{ParamTheta}, []float64{0.0})
	if err != nil {
		t.Fatalf("Expected a state. Error: %v", err)
	}
	if _, err := m.Conditional(ParamTheta, incomplete, d); err == nil {
		t.Fatalf("Expected an error for a state without sigma2.")
	}
}

// TestNormal_JointLogDensity checks the joint against an independently
// composed sum of prior and likelihood terms.
func TestNormal_JointLogDensity(t *testing.T) {
	m, err := NewNormal(0.0, 1.0, 1.0, 1.0)
	if err != nil {
		t.Fatalf("Expected a normal model. Error: %v", err)
	}
	d := NewData([]float64{0.3, -0.7})
	s, err := NewState([]string{ParamTheta, ParamSigma2}, []float64{0.5, 1.2})
	if err != nil {
		t.Fatalf("Expected a state. Error: %v", err)
	}

	got, err := m.JointLogDensity(s, d)
	if err != nil {
		t.Fatalf("Expected a joint log-density. Error: %v", err)
	}

	logNormal := func(x, mean, variance float64) float64 {
		return -0.5*math.Log(2.0*math.Pi*variance) - (x-mean)*(x-mean)/(2.0*variance)
	}
	lg, _ := math.Lgamma(0.5)
	logInvGamma := 0.5*math.Log(0.5) - lg - 1.5*math.Log(1.2) - 0.5/1.2
	want := logNormal(0.5, 0.0, 1.0) + logInvGamma +
		logNormal(0.3, 0.5, 1.2) + logNormal(-0.7, 0.5, 1.2)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("joint log-density mismatch: want %v, got %v", want, got)
	}

	// outside the support of sigma2 the joint density is zero
	sNeg, err := NewState([]string{ParamTheta, ParamSigma2}, []float64{0.5, -1.0})
	if err != nil {
		t.Fatalf("Expected a state. Error: %v", err)
	}
	got, err = m.JointLogDensity(sNeg, d)
	if err != nil {
		t.Fatalf("Expected a joint log-density. Error: %v", err)
	}
	if !math.IsInf(got, -1) {
		t.Fatalf("Expected -Inf outside the support. Got %v.", got)
	}
}
