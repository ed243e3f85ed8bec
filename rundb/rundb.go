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

// Package rundb persists sampling runs in a sqlite3 database so that
// chains can be inspected and compared after the fact.
package rundb

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	// Your main or test packages require this import so the sql package is properly initialized.
	_ "github.com/mattn/go-sqlite3"

	"github.com/verimcmc/gibbs/gibbs/trajectory"
)

const (
	// bufferSize of the in-memory buffer for storing sample records
	bufferSize = 1000

	// SQL statement for inserting the metadata of a new run
	insertRunSQL = `
INSERT INTO run (
	model, seed, sweeps, burnIn, numObservations
) VALUES (
	?, ?, ?, ?, ?
)
`
	// SQL statement for inserting a single recorded parameter value
	insertSampleSQL = `
INSERT INTO sample (
	run, sweep, param, value
) VALUES (
	?, ?, ?, ?
)
`
	// SQL statement for inserting a posterior summary of one parameter
	insertSummarySQL = `
INSERT INTO summary (
	run, param, mean, stddev, q025, median, q975
) VALUES (
	?, ?, ?, ?, ?, ?, ?
)
`
	// SQL statement for creating run tables
	createSQL = `
PRAGMA journal_mode = MEMORY;
CREATE TABLE IF NOT EXISTS run (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	createTimestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	model TEXT,
	seed INTEGER,
	sweeps INTEGER,
	burnIn INTEGER,
	numObservations INTEGER
);
CREATE TABLE IF NOT EXISTS sample (
	run INTEGER,
	sweep INTEGER,
	param TEXT,
	value FLOAT
);
CREATE TABLE IF NOT EXISTS summary (
	run INTEGER,
	param TEXT,
	mean FLOAT,
	stddev FLOAT,
	q025 FLOAT,
	median FLOAT,
	q975 FLOAT
);
`
)

// RunMeta describes a stored run.
type RunMeta struct {
	Model           string
	Seed            uint64
	Sweeps          int
	BurnIn          int
	NumObservations int
}

// Sample is a single recorded parameter value of a stored run.
type Sample struct {
	Run   int64
	Sweep int
	Param string
	Value float64
}

//go:generate mockgen -source rundb.go -destination rundb_mock.go -package rundb
type RunDB interface {
	Close() error
	AddRun(meta RunMeta) (int64, error)
	AddSample(s Sample) error
	AddSummary(run int64, s trajectory.Summary) error
	Flush() error
}

// runDB is a sqlite3-backed run database.
type runDB struct {
	sql         *sqlx.DB   // Sqlite3 database
	sampleStmt  *sqlx.Stmt // Prepared insert statement for a sample
	summaryStmt *sqlx.Stmt // Prepared insert statement for a summary
	buffer      []Sample   // record buffer
}

// NewRunDB constructs a new run database.
func NewRunDB(dbFile string) (RunDB, error) {
	return newRunDB(dbFile)
}

func newRunDB(dbFile string) (*runDB, error) {
	sqlDB, err := sqlx.Open("sqlite3", dbFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %v; %v", dbFile, err)
	}
	// create run schema if not exists
	if _, err = sqlDB.Exec(createSQL); err != nil {
		return nil, fmt.Errorf("failed to create run schema; %v", err)
	}
	// prepare INSERT statements for subsequent use
	sampleStmt, err := sqlDB.Preparex(insertSampleSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare a SQL statement for samples; %v", err)
	}
	summaryStmt, err := sqlDB.Preparex(insertSummarySQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare a SQL statement for summaries; %v", err)
	}
	return &runDB{
		sql:         sqlDB,
		sampleStmt:  sampleStmt,
		summaryStmt: summaryStmt,
		buffer:      make([]Sample, 0, bufferSize),
	}, nil
}

// Close flushes the sample buffer and closes the run database.
func (db *runDB) Close() error {
	defer func() {
		db.sampleStmt.Close()
		db.summaryStmt.Close()
		db.sql.Close()
	}()
	if err := db.Flush(); err != nil {
		return err
	}
	return nil
}

// AddRun stores the metadata of a new run and returns its identifier.
func (db *runDB) AddRun(meta RunMeta) (int64, error) {
	res, err := db.sql.Exec(insertRunSQL, meta.Model, meta.Seed, meta.Sweeps, meta.BurnIn, meta.NumObservations)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run metadata; %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to obtain run identifier; %v", err)
	}
	return id, nil
}

// AddSample buffers a sample record and flushes the buffer when full.
func (db *runDB) AddSample(s Sample) error {
	db.buffer = append(db.buffer, s)
	if len(db.buffer) == cap(db.buffer) {
		if err := db.Flush(); err != nil {
			return fmt.Errorf("unable to flush samples: %w", err)
		}
	}
	return nil
}

// AddSummary stores the posterior summary of one parameter.
func (db *runDB) AddSummary(run int64, s trajectory.Summary) error {
	_, err := db.summaryStmt.Exec(run, s.Param, s.Mean, s.StdDev, s.Q025, s.Median, s.Q975)
	if err != nil {
		return fmt.Errorf("failed to insert summary; %v", err)
	}
	return nil
}

// Flush the buffered sample records into the database.
func (db *runDB) Flush() error {
	tx, err := db.sql.Beginx()
	if err != nil {
		return err
	}
	for _, s := range db.buffer {
		if _, err := tx.Stmtx(db.sampleStmt).Exec(s.Run, s.Sweep, s.Param, s.Value); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	db.buffer = db.buffer[:0]
	return tx.Commit()
}

// StoreRun stores a complete trajectory with its posterior summaries.
func StoreRun(db RunDB, meta RunMeta, t *trajectory.Trajectory) (int64, error) {
	id, err := db.AddRun(meta)
	if err != nil {
		return 0, err
	}
	for _, param := range t.Params() {
		values, err := t.Marginal(param)
		if err != nil {
			return 0, err
		}
		for sweep, value := range values {
			if err := db.AddSample(Sample{Run: id, Sweep: sweep, Param: param, Value: value}); err != nil {
				return 0, err
			}
		}
	}
	if t.Len() > meta.BurnIn {
		summaries, err := t.Summarize(meta.BurnIn)
		if err != nil {
			return 0, err
		}
		for _, s := range summaries {
			if err := db.AddSummary(id, s); err != nil {
				return 0, err
			}
		}
	}
	return id, db.Flush()
}
