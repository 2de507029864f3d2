package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/you-humble/mraos/internal/model"
)

type MockEventSink struct {
	mock.Mock
}

func NewMockEventSink(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventSink {
	m := &MockEventSink{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventSink) AlertsRaised(ctx context.Context, alerts []model.Alert) error {
	args := m.Called(ctx, alerts)
	return args.Error(0)
}

func (m *MockEventSink) AuditAppended(ctx context.Context, entries []model.AuditLogEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}
