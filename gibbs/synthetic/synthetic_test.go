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

package synthetic

import (
	"math"
	"testing"
)

// TestSynthetic_NormalMoments checks that the stratified design hits the
// requested sample moments exactly.
func TestSynthetic_NormalMoments(t *testing.T) {
	d, err := Normal(1000, 2.0, 3.5)
	if err != nil {
		t.Fatalf("Expected a data set. Error: %v", err)
	}
	if d.Len() != 1000 {
		t.Fatalf("Expected 1000 observations. Got %v.", d.Len())
	}
	if math.Abs(d.Mean()-2.0) > 1e-9 {
		t.Fatalf("sample mean (%v) must be exactly 2.0", d.Mean())
	}
	if math.Abs(d.Variance()-3.5) > 1e-9 {
		t.Fatalf("sample variance (%v) must be exactly 3.5", d.Variance())
	}
}

// TestSynthetic_NormalErrors checks input validation.
func TestSynthetic_NormalErrors(t *testing.T) {
	if _, err := Normal(1, 0.0, 1.0); err == nil {
		t.Fatalf("Expected an error for a single observation.")
	}
	if _, err := Normal(10, 0.0, -1.0); err == nil {
		t.Fatalf("Expected an error for a negative variance.")
	}
}

// TestSynthetic_CountsDeterminism checks reproducibility and integrality
// of Poisson counts.
func TestSynthetic_CountsDeterminism(t *testing.T) {
	d1, err := Counts(100, 3.5, 999)
	if err != nil {
		t.Fatalf("Expected a data set. Error: %v", err)
	}
	d2, err := Counts(100, 3.5, 999)
	if err != nil {
		t.Fatalf("Expected a data set. Error: %v", err)
	}
	for i := 0; i < d1.Len(); i++ {
		if d1.Value(i) != d2.Value(i) {
			t.Fatalf("counts diverge for identical seeds at index %v", i)
		}
		if d1.Value(i) < 0 || math.Floor(d1.Value(i)) != d1.Value(i) {
			t.Fatalf("count (%v) is not a non-negative integer", d1.Value(i))
		}
	}
}
