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

// Package visualizer serves trace plots, posterior marginals, and the
// parameter update order of a recorded chain on a local web server.
package visualizer

import (
	"fmt"
	"math"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"

	"github.com/verimcmc/gibbs/gibbs/trajectory"
)

// maxTracePoints bounds the number of points of a rendered trace.
// Longer chains are thinned by line simplification so that the shape of
// the trace survives while the page stays responsive.
const maxTracePoints = 2000

// numBins of a rendered posterior marginal.
const numBins = 30

// histogram of one posterior marginal.
type histogram struct {
	labels []string
	counts []int
}

type viewState struct {
	params    []string
	burnIn    int
	traces    map[string][][2]float64
	marginals map[string]histogram
	summaries []trajectory.Summary
}

var (
	currentMu    sync.RWMutex
	currentState *viewState
)

func setViewState(t *trajectory.Trajectory, burnIn int) error {
	if t == nil {
		return fmt.Errorf("visualizer: trajectory is nil")
	}
	derived, err := buildViewState(t, burnIn)
	if err != nil {
		return err
	}
	currentMu.Lock()
	currentState = derived
	currentMu.Unlock()
	return nil
}

func buildViewState(t *trajectory.Trajectory, burnIn int) (*viewState, error) {
	if burnIn < 0 || burnIn >= t.Len() {
		return nil, fmt.Errorf("visualizer: burn-in (%v) out of range [0,%v)", burnIn, t.Len())
	}
	summaries, err := t.Summarize(burnIn)
	if err != nil {
		return nil, fmt.Errorf("visualizer: summarize trajectory: %w", err)
	}

	traces := map[string][][2]float64{}
	marginals := map[string]histogram{}
	for _, param := range t.Params() {
		values, err := t.Marginal(param)
		if err != nil {
			return nil, fmt.Errorf("visualizer: marginal of %v: %w", param, err)
		}
		traces[param] = thinTrace(values)
		marginals[param] = buildHistogram(values[burnIn:])
	}

	return &viewState{
		params:    t.Params(),
		burnIn:    burnIn,
		traces:    traces,
		marginals: marginals,
		summaries: summaries,
	}, nil
}

// thinTrace converts a marginal into plot points, thinning long chains
// by Visvalingam line simplification.
func thinTrace(values []float64) [][2]float64 {
	line := make(orb.LineString, len(values))
	for i, v := range values {
		line[i] = orb.Point{float64(i), v}
	}
	if len(line) > maxTracePoints {
		line = simplify.VisvalingamKeep(maxTracePoints).Simplify(line).(orb.LineString)
	}
	points := make([][2]float64, len(line))
	for i, p := range line {
		points[i] = [2]float64{p[0], p[1]}
	}
	return points
}

// buildHistogram bins the retained part of a marginal.
func buildHistogram(values []float64) histogram {
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		return histogram{
			labels: []string{fmt.Sprintf("%.4g", lo)},
			counts: []int{len(values)},
		}
	}
	width := (hi - lo) / numBins
	counts := make([]int, numBins)
	for _, v := range values {
		bin := int((v - lo) / width)
		if bin >= numBins {
			bin = numBins - 1
		}
		counts[bin]++
	}
	labels := make([]string, numBins)
	for i := 0; i < numBins; i++ {
		labels[i] = fmt.Sprintf("%.4g", lo+(float64(i)+0.5)*width)
	}
	return histogram{labels: labels, counts: counts}
}

func currentView() (*viewState, error) {
	currentMu.RLock()
	defer currentMu.RUnlock()
	if currentState == nil {
		return nil, fmt.Errorf("visualizer: trajectory not initialised")
	}
	return currentState, nil
}
