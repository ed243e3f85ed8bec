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

// Package export writes recorded trajectories as CSV files for analysis
// with external tooling. Files with a .gz suffix are compressed on the
// fly.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/verimcmc/gibbs/gibbs/trajectory"
)

// WriteCSV writes a trajectory as a CSV file with one row per sweep and
// one column per parameter.
func WriteCSV(t *trajectory.Trajectory, filename string) (err error) {
	f, fErr := os.Create(filename)
	if fErr != nil {
		return fmt.Errorf("WriteCSV: cannot create file %v; %v", filename, fErr)
	}
	defer func(f *os.File) {
		err = errors.Join(err, f.Close())
	}(f)

	var w io.Writer = f
	if strings.HasSuffix(filename, ".gz") {
		zw := gzip.NewWriter(f)
		defer func(zw *gzip.Writer) {
			err = errors.Join(err, zw.Close())
		}(zw)
		w = zw
	}
	return write(t, w)
}

func write(t *trajectory.Trajectory, w io.Writer) error {
	params := t.Params()
	marginals := make([][]float64, len(params))
	for i, param := range params {
		values, err := t.Marginal(param)
		if err != nil {
			return err
		}
		marginals[i] = values
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"sweep"}, params...)); err != nil {
		return fmt.Errorf("WriteCSV: cannot write header; %v", err)
	}
	record := make([]string, len(params)+1)
	for sweep := 0; sweep < t.Len(); sweep++ {
		record[0] = strconv.Itoa(sweep)
		for i := range params {
			record[i+1] = strconv.FormatFloat(marginals[i][sweep], 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("WriteCSV: cannot write record %v; %v", sweep, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
