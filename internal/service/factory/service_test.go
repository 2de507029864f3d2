package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/mraos/internal/model"
	"github.com/you-humble/mraos/internal/service/mocks"
	"github.com/you-humble/mraos/internal/simulation"
)

var actor = model.Actor{ID: "U-001", Name: "Supervisor"}

func baseSnapshot() model.Snapshot {
	return model.Snapshot{
		Operators: []model.Operator{
			{ID: "O-100", Name: "Ann Lee", CurrentStatus: model.StatusIdle, IdleDurationMinutes: 12},
		},
		WorkOrders: []model.WorkOrder{
			{ID: "WO-4500", TargetQuantity: 20, Status: model.WorkOrderQueued, AssignedOperatorIDs: []string{}},
		},
		Alerts: []model.Alert{
			{ID: "a-1", Severity: model.SeverityWarning, ResourceID: "O-100"},
		},
		AuditLog: []model.AuditLogEntry{{ID: "AUDIT-00001"}},
	}
}

func assignedSnapshot() model.Snapshot {
	s := baseSnapshot()
	s.Operators[0].CurrentStatus = model.StatusBusy
	s.Operators[0].IdleDurationMinutes = 0
	s.WorkOrders[0].Status = model.WorkOrderInProgress
	s.WorkOrders[0].AssignedOperatorIDs = []string{"O-100"}
	s.Alerts = []model.Alert{}
	s.AuditLog = append([]model.AuditLogEntry{{ID: "AUDIT-00002", Action: "Assigned operator to work order"}}, s.AuditLog...)
	return s
}

func TestServiceAssignOperator(t *testing.T) {
	t.Parallel()

	type deps struct {
		engine *mocks.MockEngine
		sink   *mocks.MockEventSink
	}

	type testCase struct {
		name   string
		params model.AssignOperatorParams
		setup  func(d deps)
		assert func(t *testing.T, svc *service, res *model.WorkOrder, err error, d deps)
	}

	tests := []testCase{
		{
			name:   "validation error: empty operator id after trim",
			params: model.AssignOperatorParams{OperatorID: "  ", WorkOrderID: "WO-4500"},
			setup: func(d deps) {
				// No calls expected.
			},
			assert: func(t *testing.T, _ *service, res *model.WorkOrder, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrValidation)
				assert.Nil(t, res)

				d.engine.AssertNotCalled(t, "AssignOperator", mock.Anything, mock.Anything, mock.Anything)
			},
		},
		{
			name:   "engine error: unknown operator keeps state",
			params: model.AssignOperatorParams{OperatorID: "O-999", WorkOrderID: "WO-4500"},
			setup: func(d deps) {
				d.engine.
					On("AssignOperator", baseSnapshot(), model.AssignOperatorParams{OperatorID: "O-999", WorkOrderID: "WO-4500"}, actor).
					Return(model.Snapshot{}, model.ErrOperatorNotFound).
					Once()
			},
			assert: func(t *testing.T, svc *service, res *model.WorkOrder, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrNotFound)
				assert.ErrorContains(t, err, "factory.service.AssignOperator")
				assert.Nil(t, res)
				assert.Equal(t, baseSnapshot(), svc.Snapshot(context.Background()))

				d.sink.AssertNotCalled(t, "AuditAppended", mock.Anything, mock.Anything)
			},
		},
		{
			name:   "success: trims ids, stores the result and reports the audit entry",
			params: model.AssignOperatorParams{OperatorID: " O-100\t", WorkOrderID: "\nWO-4500 "},
			setup: func(d deps) {
				d.engine.
					On("AssignOperator", baseSnapshot(), model.AssignOperatorParams{OperatorID: "O-100", WorkOrderID: "WO-4500"}, actor).
					Return(assignedSnapshot(), nil).
					Once()
				d.sink.
					On("AuditAppended", mock.Anything, assignedSnapshot().AuditLog[:1]).
					Return(nil).
					Once()
			},
			assert: func(t *testing.T, svc *service, res *model.WorkOrder, err error, d deps) {
				require.NoError(t, err)
				require.NotNil(t, res)
				assert.Equal(t, assignedSnapshot().WorkOrders[0], *res)
				assert.Equal(t, assignedSnapshot(), svc.Snapshot(context.Background()))

				d.sink.AssertNotCalled(t, "AlertsRaised", mock.Anything, mock.Anything)
			},
		},
		{
			name:   "sink failure does not fail the mutation",
			params: model.AssignOperatorParams{OperatorID: "O-100", WorkOrderID: "WO-4500"},
			setup: func(d deps) {
				d.engine.
					On("AssignOperator", mock.Anything, mock.Anything, actor).
					Return(assignedSnapshot(), nil).
					Once()
				d.sink.
					On("AuditAppended", mock.Anything, mock.Anything).
					Return(errors.New("broker down")).
					Once()
			},
			assert: func(t *testing.T, _ *service, res *model.WorkOrder, err error, d deps) {
				require.NoError(t, err)
				assert.Equal(t, []string{"O-100"}, res.AssignedOperatorIDs)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := deps{
				engine: mocks.NewMockEngine(t),
				sink:   mocks.NewMockEventSink(t),
			}
			d.engine.On("Generate").Return(baseSnapshot()).Once()
			if tt.setup != nil {
				tt.setup(d)
			}

			svc := NewFactoryService(d.engine, actor, d.sink)

			res, err := svc.AssignOperator(context.Background(), tt.params)
			tt.assert(t, svc, res, err, d)
		})
	}
}

func TestServiceTick_ReportsRaisedAlerts(t *testing.T) {
	t.Parallel()

	engine := mocks.NewMockEngine(t)
	sink := mocks.NewMockEventSink(t)

	base := baseSnapshot()
	ticked := baseSnapshot()
	ticked.Operators[0].IdleDurationMinutes = 21
	ticked.Alerts = []model.Alert{
		{ID: "a-1", Severity: model.SeverityCritical, ResourceID: "O-100"},
		{ID: "a-2", Severity: model.SeverityCritical, ResourceID: "M-200"},
	}
	ticked.Metrics.ActiveAlerts = 2

	engine.On("Generate").Return(base).Once()
	engine.On("Tick", base).Return(ticked).Once()
	sink.On("AlertsRaised", mock.Anything, ticked.Alerts).Return(nil).Once()

	svc := NewFactoryService(engine, actor, sink)
	m := svc.Tick(context.Background())

	assert.Equal(t, 2, m.ActiveAlerts)
}

func TestServiceTick_SlowSinkIsCutOff(t *testing.T) {
	t.Parallel()

	engine := mocks.NewMockEngine(t)
	slow := mocks.NewMockEventSink(t)
	fast := mocks.NewMockEventSink(t)

	base := baseSnapshot()
	ticked := baseSnapshot()
	ticked.Alerts = []model.Alert{{ID: "a-3", Severity: model.SeverityCritical, ResourceID: "O-100"}}

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	engine.On("Generate").Return(base).Once()
	engine.On("Tick", base).Return(ticked).Once()
	slow.On("AlertsRaised", mock.Anything, ticked.Alerts).
		Run(func(mock.Arguments) { <-release }).
		Return(nil).Once()
	fast.On("AlertsRaised", mock.Anything, ticked.Alerts).
		Run(func(args mock.Arguments) {
			_, ok := args.Get(0).(context.Context).Deadline()
			assert.True(t, ok, "sink context must carry a deadline")
		}).
		Return(nil).Once()

	svc := NewFactoryService(engine, actor, slow, fast).SetSinkTimeout(20 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Tick(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("tick blocked on a slow sink")
	}
}

func TestServiceRefresh_WaitsForRunningMutation(t *testing.T) {
	t.Parallel()

	engine := mocks.NewMockEngine(t)

	base := baseSnapshot()
	fresh := assignedSnapshot()
	freshTicked := assignedSnapshot()
	freshTicked.Metrics.TotalOperators = 7

	generating := make(chan struct{})
	release := make(chan struct{})

	engine.On("Generate").Return(base).Once()
	engine.On("Generate").
		Run(func(mock.Arguments) {
			close(generating)
			<-release
		}).
		Return(fresh).Once()
	engine.On("Tick", fresh).Return(freshTicked).Once()

	svc := NewFactoryService(engine, actor)
	ctx := context.Background()

	refreshed := make(chan struct{})
	go func() {
		defer close(refreshed)
		svc.Refresh(ctx)
	}()
	<-generating

	ticked := make(chan model.FactoryMetrics, 1)
	go func() { ticked <- svc.Tick(ctx) }()

	select {
	case <-ticked:
		t.Fatal("tick ran while the state was being regenerated")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-refreshed

	select {
	case m := <-ticked:
		assert.Equal(t, 7, m.TotalOperators)
	case <-time.After(2 * time.Second):
		t.Fatal("tick never ran")
	}
}

func TestServiceAlerts(t *testing.T) {
	t.Parallel()

	s := model.Snapshot{Alerts: []model.Alert{
		{ID: "a-1"},
		{ID: "a-2", Acknowledged: true},
		{ID: "a-3"},
		{ID: "a-4"},
	}}

	tests := []struct {
		name   string
		filter model.AlertsFilter
		want   []string
	}{
		{name: "all", filter: model.AlertsFilter{}, want: []string{"a-1", "a-2", "a-3", "a-4"}},
		{name: "active only", filter: model.AlertsFilter{ActiveOnly: true}, want: []string{"a-1", "a-3", "a-4"}},
		{name: "active with limit", filter: model.AlertsFilter{ActiveOnly: true, Limit: 2}, want: []string{"a-1", "a-3"}},
		{name: "limit above size", filter: model.AlertsFilter{Limit: 10}, want: []string{"a-1", "a-2", "a-3", "a-4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine := mocks.NewMockEngine(t)
			engine.On("Generate").Return(s).Once()

			svc := NewFactoryService(engine, actor)
			got := svc.Alerts(context.Background(), tt.filter)

			ids := make([]string, 0, len(got))
			for _, a := range got {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestServiceStatusUpdates_Validation(t *testing.T) {
	t.Parallel()

	engine := mocks.NewMockEngine(t)
	engine.On("Generate").Return(baseSnapshot()).Once()
	svc := NewFactoryService(engine, actor)
	ctx := context.Background()

	_, err := svc.UpdateOperatorStatus(ctx, " ", model.StatusIdle)
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.UpdateMachineStatus(ctx, "", model.StatusIdle)
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.UpdateWorkOrderStatus(ctx, "", model.WorkOrderBlocked)
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.AcknowledgeAlert(ctx, "")
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.AssignMachine(ctx, model.AssignMachineParams{MachineID: "M-200"})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestServiceAcknowledgeAlert(t *testing.T) {
	t.Parallel()

	engine := mocks.NewMockEngine(t)
	base := baseSnapshot()
	acked := baseSnapshot()
	acked.Alerts[0].Acknowledged = true

	engine.On("Generate").Return(base).Once()
	engine.On("AcknowledgeAlert", base, "a-1").Return(acked, nil).Once()
	engine.On("AcknowledgeAlert", acked, "a-9").Return(model.Snapshot{}, model.ErrAlertNotFound).Once()

	svc := NewFactoryService(engine, actor)

	a, err := svc.AcknowledgeAlert(context.Background(), "a-1")
	require.NoError(t, err)
	assert.True(t, a.Acknowledged)

	_, err = svc.AcknowledgeAlert(context.Background(), "a-9")
	assert.ErrorIs(t, err, model.ErrAlertNotFound)
}

func TestServiceRefresh_ReplacesStateSilently(t *testing.T) {
	t.Parallel()

	engine := mocks.NewMockEngine(t)
	sink := mocks.NewMockEventSink(t)

	fresh := assignedSnapshot()
	fresh.Metrics.TotalOperators = 1
	fresh.Alerts = []model.Alert{{ID: "a-2", Severity: model.SeverityCritical}}

	engine.On("Generate").Return(baseSnapshot()).Once()
	engine.On("Generate").Return(fresh).Once()

	svc := NewFactoryService(engine, actor, sink)

	m := svc.Refresh(context.Background())
	assert.Equal(t, 1, m.TotalOperators)
	assert.Equal(t, fresh.Alerts, svc.Alerts(context.Background(), model.AlertsFilter{}))

	sink.AssertNotCalled(t, "AlertsRaised", mock.Anything, mock.Anything)
	sink.AssertNotCalled(t, "AuditAppended", mock.Anything, mock.Anything)
}

// Concurrent writers against a real engine must leave a consistent state.
func TestService_ConcurrentMutations(t *testing.T) {
	t.Parallel()

	engine := simulation.NewEngine(
		gofakeit.New(21),
		simulation.DefaultCounts(),
		simulation.WithClock(func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }),
	)
	svc := NewFactoryService(engine, actor)
	ctx := context.Background()

	start := svc.Snapshot(ctx)
	open := make([]string, 0)
	for _, wo := range start.WorkOrders {
		if wo.Status != model.WorkOrderCompleted {
			open = append(open, wo.ID)
		}
	}
	require.NotEmpty(t, open)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			svc.Tick(ctx)
		}()
		go func() {
			defer wg.Done()
			_, _ = svc.AssignOperator(ctx, model.AssignOperatorParams{
				OperatorID:  start.Operators[i].ID,
				WorkOrderID: open[i%len(open)],
			})
			_ = svc.Metrics(ctx)
		}()
	}
	wg.Wait()

	end := svc.Snapshot(ctx)
	assert.Equal(t, simulation.CalculateMetrics(end.Operators, end.Machines, end.WorkOrders, end.Alerts), end.Metrics)
	for _, wo := range end.WorkOrders {
		assert.Equal(t, simulation.Progress(wo.CompletedQuantity, wo.TargetQuantity), wo.ProgressPercentage)
	}
}
