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

// Package rundb is a generated GoMock package.
package rundb

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"

	trajectory "github.com/verimcmc/gibbs/gibbs/trajectory"
)

// MockRunDB is a mock of RunDB interface.
type MockRunDB struct {
	ctrl     *gomock.Controller
	recorder *MockRunDBMockRecorder
	isgomock struct{}
}

// MockRunDBMockRecorder is the mock recorder for MockRunDB.
type MockRunDBMockRecorder struct {
	mock *MockRunDB
}

// NewMockRunDB creates a new mock instance.
func NewMockRunDB(ctrl *gomock.Controller) *MockRunDB {
	mock := &MockRunDB{ctrl: ctrl}
	mock.recorder = &MockRunDBMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRunDB) EXPECT() *MockRunDBMockRecorder {
	return m.recorder
}

// AddRun mocks base method.
func (m *MockRunDB) AddRun(meta RunMeta) (int64, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddRun", meta)
	ret0, _ := ret[0].(int64)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// AddRun indicates an expected call of AddRun.
func (mr *MockRunDBMockRecorder) AddRun(meta any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddRun", reflect.TypeOf((*MockRunDB)(nil).AddRun), meta)
}

// AddSample mocks base method.
func (m *MockRunDB) AddSample(s Sample) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddSample", s)
	ret0, _ := ret[0].(error)
	return ret0
}

// AddSample indicates an expected call of AddSample.
func (mr *MockRunDBMockRecorder) AddSample(s any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddSample", reflect.TypeOf((*MockRunDB)(nil).AddSample), s)
}

// AddSummary mocks base method.
func (m *MockRunDB) AddSummary(run int64, s trajectory.Summary) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddSummary", run, s)
	ret0, _ := ret[0].(error)
	return ret0
}

// AddSummary indicates an expected call of AddSummary.
func (mr *MockRunDBMockRecorder) AddSummary(run, s any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddSummary", reflect.TypeOf((*MockRunDB)(nil).AddSummary), run, s)
}

// Close mocks base method.
func (m *MockRunDB) Close() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Close")
	ret0, _ := ret[0].(error)
	return ret0
}

// Close indicates an expected call of Close.
func (mr *MockRunDBMockRecorder) Close() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Close", reflect.TypeOf((*MockRunDB)(nil).Close))
}

// Flush mocks base method.
func (m *MockRunDB) Flush() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Flush")
	ret0, _ := ret[0].(error)
	return ret0
}

// Flush indicates an expected call of Flush.
func (mr *MockRunDBMockRecorder) Flush() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Flush", reflect.TypeOf((*MockRunDB)(nil).Flush))
}
