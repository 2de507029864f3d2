package simulation

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/you-humble/mraos/internal/model"
)

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

// scriptedRand replays fixed draws. Float draws are fractions of the range;
// once exhausted, floats return the top of the range and ints the minimum,
// so no chance ever fires.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64Range(min, max float64) float64 {
	if len(r.floats) == 0 {
		return max
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return min + v*(max-min)
}

func (r *scriptedRand) Number(min, max int) int {
	if len(r.ints) == 0 {
		return min
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return min + v%(max-min+1)
}

func (r *scriptedRand) FirstName() string { return "Ann" }
func (r *scriptedRand) LastName() string  { return "Lee" }

// never is a Rand for which no chance fires.
func never() *scriptedRand { return &scriptedRand{} }

func idleOperator(id string, idle int) model.Operator {
	return model.Operator{ID: id, Name: "Op " + id, CurrentStatus: model.StatusIdle, IdleDurationMinutes: idle}
}

func idleMachine(id string, idle int) model.Machine {
	return model.Machine{ID: id, Name: "Machine " + id, CurrentStatus: model.StatusIdle, IdleDurationMinutes: idle}
}

func fixtureSnapshot() model.Snapshot {
	s := model.Snapshot{
		Operators: []model.Operator{
			{ID: "O-100", Name: "Ann Lee", CurrentStatus: model.StatusAvailable},
			{ID: "O-101", Name: "Bob Ray", CurrentStatus: model.StatusBusy, CurrentWorkOrderID: "WO-4500"},
			idleOperator("O-102", 25),
		},
		Machines: []model.Machine{
			{ID: "M-200", Name: "Welding Robot 01", CurrentStatus: model.StatusAvailable},
			{ID: "M-201", Name: "Paint Booth 02", CurrentStatus: model.StatusBreakdown},
		},
		WorkOrders: []model.WorkOrder{
			{
				ID: "WO-4500", TargetQuantity: 50, CompletedQuantity: 10, ProgressPercentage: 20,
				Status: model.WorkOrderInProgress, AssignedOperatorIDs: []string{"O-101"},
			},
			{ID: "WO-4501", TargetQuantity: 20, Status: model.WorkOrderQueued, AssignedOperatorIDs: []string{}},
			{ID: "WO-4502", TargetQuantity: 10, CompletedQuantity: 10, ProgressPercentage: 100, Status: model.WorkOrderCompleted},
		},
		AuditLog: []model.AuditLogEntry{},
	}
	return Recompute(s, never(), testNow)
}

// assertAssignmentsLinked checks that resource and work order assignments
// agree in both directions.
func assertAssignmentsLinked(t *testing.T, s model.Snapshot) bool {
	t.Helper()

	ok := true
	for _, op := range s.Operators {
		linked := op.CurrentWorkOrderID == ""
		for _, wo := range s.WorkOrders {
			listed := slices.Contains(wo.AssignedOperatorIDs, op.ID)
			ok = assert.Equal(t, op.CurrentWorkOrderID == wo.ID, listed, "operator %s on %s", op.ID, wo.ID) && ok
			linked = linked || listed
		}
		ok = assert.True(t, linked, "operator %s points at unknown %s", op.ID, op.CurrentWorkOrderID) && ok
	}

	for _, m := range s.Machines {
		linked := m.CurrentWorkOrderID == ""
		for _, wo := range s.WorkOrders {
			assigned := wo.AssignedMachineID == m.ID
			ok = assert.Equal(t, m.CurrentWorkOrderID == wo.ID, assigned, "machine %s on %s", m.ID, wo.ID) && ok
			linked = linked || assigned
		}
		ok = assert.True(t, linked, "machine %s points at unknown %s", m.ID, m.CurrentWorkOrderID) && ok
	}

	return ok
}
