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

// Package experiment defines the on-disk description of a sampling run:
// model kind, hyperparameters, observations, seed, and chain length. An
// experiment file is the unit of exchange between the command-line tools
// and the unit a stored run in the run database refers back to.
package experiment

import (
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/verimcmc/gibbs/gibbs/model"
)

// Model kinds an experiment file may declare.
const (
	KindNormal  = "normal"
	KindPoisson = "poisson"
)

// fileId stamps experiment files so that other JSON files are rejected
// on read.
const fileId = "experiment"

// Experiment is the JSON struct describing one sampling run. The
// hyperparameter fields of the inactive model kind are ignored.
type Experiment struct {
	FileId string `json:"FileId"` // file identification
	Model  string `json:"model"`  // model kind

	// semi-conjugate normal model hyperparameters
	Mu0     float64 `json:"mu0,omitempty"`
	Tau20   float64 `json:"tau20,omitempty"`
	Nu0     float64 `json:"nu0,omitempty"`
	Sigma20 float64 `json:"sigma20,omitempty"`

	// conjugate gamma-Poisson model hyperparameters
	A0 float64 `json:"a0,omitempty"`
	B0 float64 `json:"b0,omitempty"`

	Observations []float64 `json:"observations"`
	Seed         uint64    `json:"seed"`
	Sweeps       int       `json:"sweeps"`
	BurnIn       int       `json:"burnIn"`
}

// Read an experiment from a file in JSON format.
func Read(filename string) (e *Experiment, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed opening experiment file %v", filename)
	}
	defer func(file *os.File) {
		err = errors.Join(err, file.Close())
	}(file)
	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.Wrap(err, "failed reading experiment file")
	}
	var exp Experiment
	if err := json.Unmarshal(contents, &exp); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal experiment")
	}
	if exp.FileId != fileId {
		return nil, errors.Newf("file %v is not an experiment file", filename)
	}
	return &exp, nil
}

// Write an experiment in JSON format. The file identification is
// stamped on write.
func (e *Experiment) Write(filename string) (err error) {
	f, fErr := os.Create(filename)
	if fErr != nil {
		return errors.Wrap(fErr, "cannot open JSON file")
	}
	defer func(f *os.File) {
		err = errors.Join(err, f.Close())
	}(f)
	out := *e
	out.FileId = fileId
	jOut, err := json.MarshalIndent(&out, "", "    ")
	if err != nil {
		return errors.Wrap(err, "failed to convert JSON file")
	}
	if _, err := f.Write(append(jOut, '\n')); err != nil {
		return errors.Wrap(err, "failed to write JSON file")
	}
	return nil
}

// Validate checks the run description without building the model.
func (e *Experiment) Validate() error {
	switch e.Model {
	case KindNormal, KindPoisson:
	default:
		return errors.Newf("unknown model kind %q", e.Model)
	}
	if len(e.Observations) == 0 {
		return errors.New("experiment has no observations")
	}
	for i, y := range e.Observations {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return errors.Newf("observation %v (%v) is not finite", i, y)
		}
		if e.Model == KindPoisson && (y < 0.0 || y != math.Trunc(y)) {
			return errors.Newf("observation %v (%v) is not a count", i, y)
		}
	}
	if e.Sweeps < 0 {
		return errors.Newf("number of sweeps (%v) is negative", e.Sweeps)
	}
	if e.BurnIn < 0 || e.BurnIn > e.Sweeps {
		return errors.Newf("burn-in (%v) is not in interval [0,%v]", e.BurnIn, e.Sweeps)
	}
	return nil
}

// Build constructs the model, the data, and a method-of-moments starting
// state from the run description.
func (e *Experiment) Build() (model.Model, model.Data, model.State, error) {
	if err := e.Validate(); err != nil {
		return nil, model.Data{}, model.State{}, err
	}
	d := model.NewData(e.Observations)
	switch e.Model {
	case KindNormal:
		m, err := model.NewNormal(e.Mu0, e.Tau20, e.Nu0, e.Sigma20)
		if err != nil {
			return nil, model.Data{}, model.State{}, err
		}
		sigma2 := d.Variance()
		if !(sigma2 > 0.0) {
			// constant observations; fall back to the prior scale
			sigma2 = e.Sigma20
		}
		s, err := model.NewStateFromMap(m.Parameters(), map[string]float64{
			model.ParamTheta:  d.Mean(),
			model.ParamSigma2: sigma2,
		})
		if err != nil {
			return nil, model.Data{}, model.State{}, err
		}
		return m, d, s, nil
	case KindPoisson:
		m, err := model.NewPoisson(e.A0, e.B0)
		if err != nil {
			return nil, model.Data{}, model.State{}, err
		}
		lambda := d.Mean()
		if !(lambda > 0.0) {
			// all-zero counts; fall back to the prior mean
			lambda = e.A0 / e.B0
		}
		s, err := model.NewStateFromMap(m.Parameters(), map[string]float64{
			model.ParamLambda: lambda,
		})
		if err != nil {
			return nil, model.Data{}, model.State{}, err
		}
		return m, d, s, nil
	default:
		return nil, model.Data{}, model.State{}, errors.Newf("unknown model kind %q", e.Model)
	}
}
