package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/you-humble/mraos/internal/model"
)

type MockEngine struct {
	mock.Mock
}

func NewMockEngine(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEngine {
	m := &MockEngine{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEngine) Generate() model.Snapshot {
	args := m.Called()
	return args.Get(0).(model.Snapshot)
}

func (m *MockEngine) Tick(s model.Snapshot) model.Snapshot {
	args := m.Called(s)
	return args.Get(0).(model.Snapshot)
}

func (m *MockEngine) AssignOperator(s model.Snapshot, p model.AssignOperatorParams, actor model.Actor) (model.Snapshot, error) {
	args := m.Called(s, p, actor)
	return snapshotResult(args)
}

func (m *MockEngine) AssignMachine(s model.Snapshot, p model.AssignMachineParams, actor model.Actor) (model.Snapshot, error) {
	args := m.Called(s, p, actor)
	return snapshotResult(args)
}

func (m *MockEngine) AcknowledgeAlert(s model.Snapshot, alertID string) (model.Snapshot, error) {
	args := m.Called(s, alertID)
	return snapshotResult(args)
}

func (m *MockEngine) UpdateOperatorStatus(s model.Snapshot, id string, status model.ResourceStatus, actor model.Actor) (model.Snapshot, error) {
	args := m.Called(s, id, status, actor)
	return snapshotResult(args)
}

func (m *MockEngine) UpdateMachineStatus(s model.Snapshot, id string, status model.ResourceStatus, actor model.Actor) (model.Snapshot, error) {
	args := m.Called(s, id, status, actor)
	return snapshotResult(args)
}

func (m *MockEngine) UpdateWorkOrderStatus(s model.Snapshot, id string, status model.WorkOrderStatus, actor model.Actor) (model.Snapshot, error) {
	args := m.Called(s, id, status, actor)
	return snapshotResult(args)
}

func snapshotResult(args mock.Arguments) (model.Snapshot, error) {
	s, _ := args.Get(0).(model.Snapshot)
	return s, args.Error(1)
}
