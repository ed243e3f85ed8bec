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

package rundb

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/verimcmc/gibbs/gibbs/model"
	"github.com/verimcmc/gibbs/gibbs/trajectory"
)

func testTrajectory(t *testing.T) *trajectory.Trajectory {
	t.Helper()
	tr := trajectory.New([]string{"a", "b"})
	for i := 0; i < 3; i++ {
		s, err := model.NewStateFromMap([]string{"a", "b"}, map[string]float64{
			"a": float64(i),
			"b": float64(i * 10),
		})
		require.NoError(t, err)
		require.NoError(t, tr.Append(s))
	}
	return tr
}

func TestRunDB_AddAndFlush(t *testing.T) {
	require := require.New(t)

	dbFile := filepath.Join(t.TempDir(), "runs.db")
	db, err := newRunDB(dbFile)
	require.NoError(err)

	id, err := db.AddRun(RunMeta{Model: "normal", Seed: 42, Sweeps: 2, BurnIn: 0, NumObservations: 5})
	require.NoError(err)
	require.Greater(id, int64(0))

	for i := 0; i < 3; i++ {
		require.NoError(db.AddSample(Sample{Run: id, Sweep: i, Param: "theta", Value: float64(i)}))
	}
	require.Len(db.buffer, 3)
	require.NoError(db.Flush())
	require.Len(db.buffer, 0)
	require.NoError(db.AddSummary(id, trajectory.Summary{Param: "theta", Mean: 1.0}))
	require.NoError(db.Close())

	// reopen and count the persisted records
	sqlDB, err := sqlx.Open("sqlite3", dbFile)
	require.NoError(err)
	defer sqlDB.Close()
	var samples, summaries int
	require.NoError(sqlDB.Get(&samples, "SELECT COUNT(*) FROM sample WHERE run = ?", id))
	require.NoError(sqlDB.Get(&summaries, "SELECT COUNT(*) FROM summary WHERE run = ?", id))
	assert.Equal(t, 3, samples)
	assert.Equal(t, 1, summaries)
}

func TestRunDB_AddSampleFlushesFullBuffer(t *testing.T) {
	require := require.New(t)

	db, err := newRunDB(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(err)
	defer func() {
		require.NoError(db.Close())
	}()

	for i := 1; i < bufferSize; i++ {
		require.NoError(db.AddSample(Sample{Sweep: i, Param: "theta"}))
		require.Len(db.buffer, i)
	}
	require.NoError(db.AddSample(Sample{Sweep: bufferSize, Param: "theta"}))
	require.Len(db.buffer, 0)
}

func TestRunDB_Flush(t *testing.T) {
	mockErr := errors.New("mock error")

	newMocked := func(t *testing.T) (*runDB, sqlmock.Sqlmock, *sqlmock.ExpectedPrepare) {
		db, mockDb, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		xdb := sqlx.NewDb(db, "sqlite3")
		mockSampleStmt := mockDb.ExpectPrepare("")
		sampleStmt, err := xdb.Preparex("")
		require.NoError(t, err)

		return &runDB{
			sql:        xdb,
			sampleStmt: sampleStmt,
			buffer:     []Sample{},
		}, mockDb, mockSampleStmt
	}

	t.Run("Success", func(t *testing.T) {
		db, mockDb, mockSampleStmt := newMocked(t)
		mockDb.ExpectBegin()
		mockSampleStmt.ExpectExec().WillReturnResult(sqlmock.NewResult(1, 1))
		mockDb.ExpectCommit()

		assert.NoError(t, db.AddSample(Sample{Run: 1, Sweep: 0, Param: "theta", Value: 0.5}))
		assert.NoError(t, mockDb.ExpectationsWereMet())
	})

	t.Run("BeginError", func(t *testing.T) {
		db, mockDb, _ := newMocked(t)
		mockDb.ExpectBegin().WillReturnError(mockErr)

		err := db.AddSample(Sample{Run: 1, Sweep: 0, Param: "theta", Value: 0.5})
		assert.ErrorContains(t, err, mockErr.Error())
		assert.NoError(t, mockDb.ExpectationsWereMet())
	})

	t.Run("ExecError", func(t *testing.T) {
		db, mockDb, mockSampleStmt := newMocked(t)
		mockDb.ExpectBegin()
		mockSampleStmt.ExpectExec().WillReturnError(mockErr)
		mockDb.ExpectRollback()

		err := db.AddSample(Sample{Run: 1, Sweep: 0, Param: "theta", Value: 0.5})
		assert.ErrorContains(t, err, mockErr.Error())
		assert.NoError(t, mockDb.ExpectationsWereMet())
	})
}

func TestStoreRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tr := testTrajectory(t)
	meta := RunMeta{Model: "normal", Seed: 42, Sweeps: 2, BurnIn: 1, NumObservations: 5}

	t.Run("Success", func(t *testing.T) {
		db := NewMockRunDB(ctrl)
		db.EXPECT().AddRun(meta).Return(int64(7), nil)
		db.EXPECT().AddSample(gomock.Any()).Return(nil).Times(6)
		db.EXPECT().AddSummary(int64(7), gomock.Any()).Return(nil).Times(2)
		db.EXPECT().Flush().Return(nil)

		id, err := StoreRun(db, meta, tr)
		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
	})

	t.Run("AddRunError", func(t *testing.T) {
		db := NewMockRunDB(ctrl)
		db.EXPECT().AddRun(meta).Return(int64(0), errors.New("mock error"))

		_, err := StoreRun(db, meta, tr)
		assert.Error(t, err)
	})

	t.Run("AddSampleError", func(t *testing.T) {
		db := NewMockRunDB(ctrl)
		db.EXPECT().AddRun(meta).Return(int64(7), nil)
		db.EXPECT().AddSample(gomock.Any()).Return(errors.New("mock error"))

		_, err := StoreRun(db, meta, tr)
		assert.Error(t, err)
	})

	t.Run("SkipsSummariesWhenFullyBurntIn", func(t *testing.T) {
		burnt := RunMeta{Model: "normal", Seed: 42, Sweeps: 2, BurnIn: 3, NumObservations: 5}
		db := NewMockRunDB(ctrl)
		db.EXPECT().AddRun(burnt).Return(int64(8), nil)
		db.EXPECT().AddSample(gomock.Any()).Return(nil).Times(6)
		db.EXPECT().Flush().Return(nil)

		id, err := StoreRun(db, burnt, tr)
		require.NoError(t, err)
		assert.Equal(t, int64(8), id)
	})
}
