package simulation

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/you-humble/mraos/internal/model"
)

// CalculateMetrics reduces the collections into aggregate counts and ratios.
// It has no side effects; with no operators and no machines both ratios are 0.
func CalculateMetrics(
	operators []model.Operator,
	machines []model.Machine,
	workOrders []model.WorkOrder,
	alerts []model.Alert,
) model.FactoryMetrics {
	opsIn := func(s model.ResourceStatus) int {
		return lo.CountBy(operators, func(o model.Operator) bool { return o.CurrentStatus == s })
	}
	machinesIn := func(s model.ResourceStatus) int {
		return lo.CountBy(machines, func(m model.Machine) bool { return m.CurrentStatus == s })
	}
	ordersIn := func(s model.WorkOrderStatus) int {
		return lo.CountBy(workOrders, func(wo model.WorkOrder) bool { return wo.Status == s })
	}

	m := model.FactoryMetrics{
		TotalOperators:     len(operators),
		AvailableOperators: opsIn(model.StatusAvailable),
		BusyOperators:      opsIn(model.StatusBusy),
		IdleOperators:      opsIn(model.StatusIdle),

		TotalMachines:     len(machines),
		AvailableMachines: machinesIn(model.StatusAvailable),
		BusyMachines:      machinesIn(model.StatusBusy),
		IdleMachines:      machinesIn(model.StatusIdle),

		TotalWorkOrders:      len(workOrders),
		QueuedWorkOrders:     ordersIn(model.WorkOrderQueued),
		InProgressWorkOrders: ordersIn(model.WorkOrderInProgress),
		CompletedWorkOrders:  ordersIn(model.WorkOrderCompleted),

		ActiveAlerts: lo.CountBy(alerts, func(a model.Alert) bool { return !a.Acknowledged }),
	}

	resources := len(operators) + len(machines)
	idleMinutes := lo.SumBy(operators, func(o model.Operator) int { return o.IdleDurationMinutes }) +
		lo.SumBy(machines, func(m model.Machine) int { return m.IdleDurationMinutes })

	m.AverageIdleTimeMinutes = ratio(idleMinutes, resources)
	m.UtilizationPercentage = ratio((m.BusyOperators+m.BusyMachines)*100, resources)

	return m
}

// ratio returns num/den rounded half away from zero to one decimal place.
func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(num)).
		DivRound(decimal.NewFromInt(int64(den)), 1).
		InexactFloat64()
}
