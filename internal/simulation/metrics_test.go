package simulation

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/mraos/internal/model"
)

func TestCalculateMetrics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		snap   model.Snapshot
		assert func(t *testing.T, m model.FactoryMetrics)
	}{
		{
			name: "empty factory yields zero ratios",
			snap: model.Snapshot{},
			assert: func(t *testing.T, m model.FactoryMetrics) {
				assert.Equal(t, model.FactoryMetrics{}, m)
			},
		},
		{
			name: "counts and rounded ratios",
			snap: model.Snapshot{
				Operators: []model.Operator{
					{CurrentStatus: model.StatusBusy},
					{CurrentStatus: model.StatusIdle, IdleDurationMinutes: 7},
					{CurrentStatus: model.StatusAvailable},
				},
				Machines: []model.Machine{
					{CurrentStatus: model.StatusBreakdown},
					{CurrentStatus: model.StatusBusy},
					{CurrentStatus: model.StatusIdle, IdleDurationMinutes: 12},
				},
				WorkOrders: []model.WorkOrder{
					{Status: model.WorkOrderQueued},
					{Status: model.WorkOrderInProgress},
					{Status: model.WorkOrderInProgress},
					{Status: model.WorkOrderBlocked},
				},
				Alerts: []model.Alert{{Acknowledged: true}, {}, {}},
			},
			assert: func(t *testing.T, m model.FactoryMetrics) {
				assert.Equal(t, 3, m.TotalOperators)
				assert.Equal(t, 1, m.AvailableOperators)
				assert.Equal(t, 1, m.BusyOperators)
				assert.Equal(t, 1, m.IdleOperators)
				assert.Equal(t, 3, m.TotalMachines)
				assert.Equal(t, 0, m.AvailableMachines)
				assert.Equal(t, 1, m.BusyMachines)
				assert.Equal(t, 1, m.IdleMachines)
				assert.Equal(t, 4, m.TotalWorkOrders)
				assert.Equal(t, 1, m.QueuedWorkOrders)
				assert.Equal(t, 2, m.InProgressWorkOrders)
				assert.Equal(t, 0, m.CompletedWorkOrders)
				assert.Equal(t, 2, m.ActiveAlerts)
				// 19 / 6 = 3.1666
				assert.Equal(t, 3.2, m.AverageIdleTimeMinutes)
				// 2 / 6 * 100 = 33.333
				assert.Equal(t, 33.3, m.UtilizationPercentage)
			},
		},
		{
			name: "rounds half away from zero",
			snap: model.Snapshot{
				Operators: append(
					make([]model.Operator, 19),
					model.Operator{CurrentStatus: model.StatusIdle, IdleDurationMinutes: 1},
				),
			},
			assert: func(t *testing.T, m model.FactoryMetrics) {
				// 1 / 20 = 0.05
				assert.Equal(t, 0.1, m.AverageIdleTimeMinutes)
				assert.Equal(t, 0.0, m.UtilizationPercentage)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := CalculateMetrics(tt.snap.Operators, tt.snap.Machines, tt.snap.WorkOrders, tt.snap.Alerts)
			tt.assert(t, m)
		})
	}
}

func TestCalculateMetrics_GeneratedSnapshots(t *testing.T) {
	t.Parallel()

	for seed := uint64(1); seed <= 20; seed++ {
		f := gofakeit.New(seed)
		s := Generate(f, DefaultCounts(), testNow)

		first := CalculateMetrics(s.Operators, s.Machines, s.WorkOrders, s.Alerts)
		second := CalculateMetrics(s.Operators, s.Machines, s.WorkOrders, s.Alerts)
		require.Equal(t, first, second, "seed %d", seed)

		assert.GreaterOrEqual(t, first.UtilizationPercentage, 0.0)
		assert.LessOrEqual(t, first.UtilizationPercentage, 100.0)

		busy := first.BusyOperators + first.BusyMachines
		total := first.TotalOperators + first.TotalMachines
		assert.Equal(t, ratio(busy*100, total), first.UtilizationPercentage)
	}
}
