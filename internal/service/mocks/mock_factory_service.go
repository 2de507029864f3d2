package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/you-humble/mraos/internal/model"
)

type MockFactoryService struct {
	mock.Mock
}

func NewMockFactoryService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFactoryService {
	m := &MockFactoryService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockFactoryService) Snapshot(ctx context.Context) model.Snapshot {
	args := m.Called(ctx)
	return args.Get(0).(model.Snapshot)
}

func (m *MockFactoryService) Metrics(ctx context.Context) model.FactoryMetrics {
	args := m.Called(ctx)
	return args.Get(0).(model.FactoryMetrics)
}

func (m *MockFactoryService) Operators(ctx context.Context) []model.Operator {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]model.Operator)
	return v
}

func (m *MockFactoryService) Machines(ctx context.Context) []model.Machine {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]model.Machine)
	return v
}

func (m *MockFactoryService) WorkOrders(ctx context.Context) []model.WorkOrder {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]model.WorkOrder)
	return v
}

func (m *MockFactoryService) Materials(ctx context.Context) []model.Material {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]model.Material)
	return v
}

func (m *MockFactoryService) AuditLog(ctx context.Context) []model.AuditLogEntry {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]model.AuditLogEntry)
	return v
}

func (m *MockFactoryService) Alerts(ctx context.Context, filter model.AlertsFilter) []model.Alert {
	args := m.Called(ctx, filter)
	v, _ := args.Get(0).([]model.Alert)
	return v
}

func (m *MockFactoryService) AssignOperator(ctx context.Context, params model.AssignOperatorParams) (*model.WorkOrder, error) {
	args := m.Called(ctx, params)
	v, _ := args.Get(0).(*model.WorkOrder)
	return v, args.Error(1)
}

func (m *MockFactoryService) AssignMachine(ctx context.Context, params model.AssignMachineParams) (*model.WorkOrder, error) {
	args := m.Called(ctx, params)
	v, _ := args.Get(0).(*model.WorkOrder)
	return v, args.Error(1)
}

func (m *MockFactoryService) AcknowledgeAlert(ctx context.Context, alertID string) (*model.Alert, error) {
	args := m.Called(ctx, alertID)
	v, _ := args.Get(0).(*model.Alert)
	return v, args.Error(1)
}

func (m *MockFactoryService) UpdateOperatorStatus(ctx context.Context, id string, status model.ResourceStatus) (*model.Operator, error) {
	args := m.Called(ctx, id, status)
	v, _ := args.Get(0).(*model.Operator)
	return v, args.Error(1)
}

func (m *MockFactoryService) UpdateMachineStatus(ctx context.Context, id string, status model.ResourceStatus) (*model.Machine, error) {
	args := m.Called(ctx, id, status)
	v, _ := args.Get(0).(*model.Machine)
	return v, args.Error(1)
}

func (m *MockFactoryService) UpdateWorkOrderStatus(ctx context.Context, id string, status model.WorkOrderStatus) (*model.WorkOrder, error) {
	args := m.Called(ctx, id, status)
	v, _ := args.Get(0).(*model.WorkOrder)
	return v, args.Error(1)
}

func (m *MockFactoryService) Tick(ctx context.Context) model.FactoryMetrics {
	args := m.Called(ctx)
	return args.Get(0).(model.FactoryMetrics)
}

func (m *MockFactoryService) Refresh(ctx context.Context) model.FactoryMetrics {
	args := m.Called(ctx)
	return args.Get(0).(model.FactoryMetrics)
}
