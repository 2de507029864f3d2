package simulation

import (
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/you-humble/mraos/internal/model"
)

// An operator is listed on a work order iff its CurrentWorkOrderID names that
// work order; the same holds for a machine and AssignedMachineID.

// releaseOperator drops operatorID from every work order other than keep.
func releaseOperator(orders []model.WorkOrder, operatorID, keep string) {
	for i := range orders {
		if orders[i].ID != keep && slices.Contains(orders[i].AssignedOperatorIDs, operatorID) {
			orders[i].AssignedOperatorIDs = lo.Without(orders[i].AssignedOperatorIDs, operatorID)
		}
	}
}

// releaseMachine clears machineID from every work order other than keep.
func releaseMachine(orders []model.WorkOrder, machineID, keep string) {
	for i := range orders {
		if orders[i].ID != keep && orders[i].AssignedMachineID == machineID {
			orders[i].AssignedMachineID = ""
		}
	}
}

// displaceMachine frees the machine currently assigned to wo when another one
// takes its place.
func displaceMachine(machines []model.Machine, wo *model.WorkOrder, incoming string, now time.Time) {
	if wo.AssignedMachineID == "" || wo.AssignedMachineID == incoming {
		return
	}

	i := slices.IndexFunc(machines, func(m model.Machine) bool { return m.ID == wo.AssignedMachineID })
	if i < 0 || machines[i].CurrentWorkOrderID != wo.ID {
		return
	}

	m := &machines[i]
	m.CurrentWorkOrderID = ""
	if m.CurrentStatus == model.StatusBusy {
		m.CurrentStatus = model.StatusAvailable
		m.StatusUpdatedAt = now
	}
	m.IdleDurationMinutes = 0
}

// linkGenerated attaches busy operators and machines to in-progress work
// orders. A busy resource stays unattached when there is nothing to work on;
// a work order takes at most one machine.
func linkGenerated(r Rand, s *model.Snapshot) {
	open := make([]int, 0, len(s.WorkOrders))
	for i, wo := range s.WorkOrders {
		if wo.Status == model.WorkOrderInProgress {
			open = append(open, i)
		}
	}

	for i := range s.Operators {
		op := &s.Operators[i]
		if op.CurrentStatus != model.StatusBusy || len(open) == 0 {
			continue
		}
		wo := &s.WorkOrders[pick(r, open)]
		op.CurrentWorkOrderID = wo.ID
		wo.AssignedOperatorIDs = append(wo.AssignedOperatorIDs, op.ID)
	}

	for i := range s.Machines {
		m := &s.Machines[i]
		if m.CurrentStatus != model.StatusBusy {
			continue
		}
		free := lo.Filter(open, func(j int, _ int) bool { return s.WorkOrders[j].AssignedMachineID == "" })
		if len(free) == 0 {
			continue
		}
		wo := &s.WorkOrders[pick(r, free)]
		m.CurrentWorkOrderID = wo.ID
		wo.AssignedMachineID = m.ID
	}
}
