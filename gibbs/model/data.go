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
	"gonum.org/v1/gonum/stat"
)

// Data is an immutable sequence of observations, fixed for the lifetime
// of a sampling run. Sample moments are computed once at construction.
type Data struct {
	obs      []float64
	sum      float64
	mean     float64
	variance float64
}

// NewData creates an observation container. The input slice is copied;
// later mutation of the argument does not affect the data.
func NewData(obs []float64) Data {
	d := Data{obs: make([]float64, len(obs))}
	copy(d.obs, obs)
	for _, y := range d.obs {
		d.sum += y
	}
	if len(d.obs) > 0 {
		d.mean = stat.Mean(d.obs, nil)
	}
	if len(d.obs) > 1 {
		d.variance = stat.Variance(d.obs, nil)
	}
	return d
}

// Len returns the number of observations.
func (d Data) Len() int {
	return len(d.obs)
}

// Value returns the i-th observation.
func (d Data) Value(i int) float64 {
	return d.obs[i]
}

// Values returns a copy of all observations.
func (d Data) Values() []float64 {
	obs := make([]float64, len(d.obs))
	copy(obs, d.obs)
	return obs
}

// Sum returns the sum of all observations.
func (d Data) Sum() float64 {
	return d.sum
}

// Mean returns the sample mean.
func (d Data) Mean() float64 {
	return d.mean
}

// Variance returns the unbiased sample variance.
func (d Data) Variance() float64 {
	return d.variance
}
