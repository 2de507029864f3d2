package simulation

import (
	"time"

	"github.com/you-humble/mraos/internal/model"
)

const (
	statusRollChance    = 0.1
	busyReleaseChance   = 0.3
	availableIdleChance = 0.2
	progressChance      = 0.3
	maxProgressStep     = 9

	OperatorIdleOnsetMinutes = 5
	MachineIdleOnsetMinutes  = 10
	OperatorIdleStepMinutes  = 1
	MachineIdleStepMinutes   = 2
)

type resourceState struct {
	status      model.ResourceStatus
	workOrderID string
	idle        int
}

// Step produces the snapshot one tick after s. s itself is left untouched.
// Alerts and metrics of the result are recomputed.
func Step(s model.Snapshot, r Rand, now time.Time) model.Snapshot {
	next := s.Clone()

	for i := range next.Operators {
		op := &next.Operators[i]
		st, changed := advanceResource(r, resourceState{
			status:      op.CurrentStatus,
			workOrderID: op.CurrentWorkOrderID,
			idle:        op.IdleDurationMinutes,
		}, OperatorIdleOnsetMinutes, OperatorIdleStepMinutes)

		op.CurrentStatus, op.CurrentWorkOrderID, op.IdleDurationMinutes = st.status, st.workOrderID, st.idle
		if changed {
			op.StatusUpdatedAt = now
			if op.CurrentWorkOrderID == "" {
				releaseOperator(next.WorkOrders, op.ID, "")
			}
		}
	}

	for i := range next.Machines {
		m := &next.Machines[i]
		st, changed := advanceResource(r, resourceState{
			status:      m.CurrentStatus,
			workOrderID: m.CurrentWorkOrderID,
			idle:        m.IdleDurationMinutes,
		}, MachineIdleOnsetMinutes, MachineIdleStepMinutes)

		m.CurrentStatus, m.CurrentWorkOrderID, m.IdleDurationMinutes = st.status, st.workOrderID, st.idle
		if changed {
			m.StatusUpdatedAt = now
			if m.CurrentWorkOrderID == "" {
				releaseMachine(next.WorkOrders, m.ID, "")
			}
		}
	}

	for i := range next.WorkOrders {
		wo := &next.WorkOrders[i]
		if wo.Status != model.WorkOrderInProgress || !chance(r, progressChance) {
			continue
		}
		advanceWorkOrder(wo, r.Number(0, maxProgressStep))
	}

	return Recompute(next, r, now)
}

// Recompute re-derives alerts (carrying over the ones already in s) and
// metrics.
func Recompute(s model.Snapshot, r Rand, now time.Time) model.Snapshot {
	s.Alerts = DeriveAlerts(s.Operators, s.Machines, s.Alerts, r, now)
	s.Metrics = CalculateMetrics(s.Operators, s.Machines, s.WorkOrders, s.Alerts)
	return s
}

func advanceResource(r Rand, st resourceState, idleOnset, idleStep int) (resourceState, bool) {
	if chance(r, statusRollChance) {
		switch {
		case st.status == model.StatusBusy && chance(r, busyReleaseChance):
			return resourceState{status: model.StatusAvailable}, true
		case st.status == model.StatusAvailable && chance(r, availableIdleChance):
			return resourceState{status: model.StatusIdle, idle: idleOnset}, true
		}
	}

	if st.status == model.StatusIdle {
		st.idle += idleStep
	}
	return st, false
}

// advanceWorkOrder moves progress forward by delta points. The completed
// quantity is the smallest one reaching the new progress; it never decreases
// and progress is always derived from it.
func advanceWorkOrder(wo *model.WorkOrder, delta int) {
	want := min(100, wo.ProgressPercentage+delta)

	completed := wo.CompletedQuantity
	for completed < wo.TargetQuantity && Progress(completed, wo.TargetQuantity) < want {
		completed++
	}
	setCompleted(wo, completed)
}
