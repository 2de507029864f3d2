package simulation

import (
	"fmt"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/you-humble/mraos/internal/model"
)

const (
	entityAllocation = "Allocation"
	entityOperator   = "Operator"
	entityMachine    = "Machine"
	entityWorkOrder  = "WorkOrder"
)

// Engine applies mutations to snapshots. Every method returns a new snapshot
// and never modifies its input. Engine is not safe for concurrent use; the
// caller serializes access.
type Engine struct {
	faker  Faker
	counts Counts
	now    func() time.Time
}

type Option func(*Engine)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(faker Faker, counts Counts, opts ...Option) *Engine {
	e := &Engine{faker: faker, counts: counts, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Generate() model.Snapshot {
	return Generate(e.faker, e.counts, e.now().UTC())
}

func (e *Engine) Tick(s model.Snapshot) model.Snapshot {
	return Step(s, e.faker, e.now().UTC())
}

func (e *Engine) AssignOperator(s model.Snapshot, p model.AssignOperatorParams, actor model.Actor) (model.Snapshot, error) {
	next := s.Clone()
	now := e.now().UTC()

	oi := slices.IndexFunc(next.Operators, func(o model.Operator) bool { return o.ID == p.OperatorID })
	if oi < 0 {
		return model.Snapshot{}, model.ErrOperatorNotFound
	}
	wo, err := openWorkOrder(next.WorkOrders, p.WorkOrderID)
	if err != nil {
		return model.Snapshot{}, err
	}

	op := &next.Operators[oi]
	releaseOperator(next.WorkOrders, op.ID, wo.ID)

	if op.CurrentStatus != model.StatusBusy {
		op.StatusUpdatedAt = now
	}
	op.CurrentStatus = model.StatusBusy
	op.CurrentWorkOrderID = wo.ID
	op.IdleDurationMinutes = 0

	if !slices.Contains(wo.AssignedOperatorIDs, op.ID) {
		wo.AssignedOperatorIDs = append(wo.AssignedOperatorIDs, op.ID)
	}
	wo.Status = model.WorkOrderInProgress

	next.AuditLog = prependAudit(next.AuditLog, model.AuditLogEntry{
		Timestamp:  now,
		UserID:     actor.ID,
		UserName:   actor.Name,
		Action:     "Assigned operator to work order",
		EntityType: entityAllocation,
		EntityID:   op.ID + "-" + wo.ID,
		Changes:    map[string]model.Change{"operatorId": {New: lo.ToPtr(op.ID)}},
	})

	return Recompute(next, e.faker, now), nil
}

func (e *Engine) AssignMachine(s model.Snapshot, p model.AssignMachineParams, actor model.Actor) (model.Snapshot, error) {
	next := s.Clone()
	now := e.now().UTC()

	mi := slices.IndexFunc(next.Machines, func(m model.Machine) bool { return m.ID == p.MachineID })
	if mi < 0 {
		return model.Snapshot{}, model.ErrMachineNotFound
	}
	wo, err := openWorkOrder(next.WorkOrders, p.WorkOrderID)
	if err != nil {
		return model.Snapshot{}, err
	}

	m := &next.Machines[mi]
	releaseMachine(next.WorkOrders, m.ID, wo.ID)
	displaceMachine(next.Machines, wo, m.ID, now)

	if m.CurrentStatus != model.StatusBusy {
		m.StatusUpdatedAt = now
	}
	m.CurrentStatus = model.StatusBusy
	m.CurrentWorkOrderID = wo.ID
	m.IdleDurationMinutes = 0

	var old *string
	if wo.AssignedMachineID != "" {
		old = lo.ToPtr(wo.AssignedMachineID)
	}
	wo.AssignedMachineID = m.ID
	wo.Status = model.WorkOrderInProgress

	next.AuditLog = prependAudit(next.AuditLog, model.AuditLogEntry{
		Timestamp:  now,
		UserID:     actor.ID,
		UserName:   actor.Name,
		Action:     "Assigned machine to work order",
		EntityType: entityAllocation,
		EntityID:   m.ID + "-" + wo.ID,
		Changes:    map[string]model.Change{"machineId": {Old: old, New: lo.ToPtr(m.ID)}},
	})

	return Recompute(next, e.faker, now), nil
}

// AcknowledgeAlert marks the alert acknowledged. Only metrics are recomputed,
// alerts are not re-derived.
func (e *Engine) AcknowledgeAlert(s model.Snapshot, alertID string) (model.Snapshot, error) {
	next := s.Clone()

	i := slices.IndexFunc(next.Alerts, func(a model.Alert) bool { return a.ID == alertID })
	if i < 0 {
		return model.Snapshot{}, model.ErrAlertNotFound
	}
	next.Alerts[i].Acknowledged = true
	next.Metrics = CalculateMetrics(next.Operators, next.Machines, next.WorkOrders, next.Alerts)

	return next, nil
}

func (e *Engine) UpdateOperatorStatus(
	s model.Snapshot,
	operatorID string,
	status model.ResourceStatus,
	actor model.Actor,
) (model.Snapshot, error) {
	if !status.Valid() {
		return model.Snapshot{}, fmt.Errorf("%w %q", model.ErrUnknownStatus, status)
	}

	next := s.Clone()
	now := e.now().UTC()

	i := slices.IndexFunc(next.Operators, func(o model.Operator) bool { return o.ID == operatorID })
	if i < 0 {
		return model.Snapshot{}, model.ErrOperatorNotFound
	}

	op := &next.Operators[i]
	if old := op.CurrentStatus; old != status {
		op.CurrentStatus = status
		op.IdleDurationMinutes = 0
		op.StatusUpdatedAt = now
		if status != model.StatusBusy {
			op.CurrentWorkOrderID = ""
			releaseOperator(next.WorkOrders, op.ID, "")
		}

		next.AuditLog = prependAudit(next.AuditLog, statusAudit(now, actor, "Changed operator status", entityOperator, op.ID, string(old), string(status)))
	}

	return Recompute(next, e.faker, now), nil
}

func (e *Engine) UpdateMachineStatus(
	s model.Snapshot,
	machineID string,
	status model.ResourceStatus,
	actor model.Actor,
) (model.Snapshot, error) {
	if !status.Valid() {
		return model.Snapshot{}, fmt.Errorf("%w %q", model.ErrUnknownStatus, status)
	}

	next := s.Clone()
	now := e.now().UTC()

	i := slices.IndexFunc(next.Machines, func(m model.Machine) bool { return m.ID == machineID })
	if i < 0 {
		return model.Snapshot{}, model.ErrMachineNotFound
	}

	m := &next.Machines[i]
	if old := m.CurrentStatus; old != status {
		m.CurrentStatus = status
		m.IdleDurationMinutes = 0
		m.StatusUpdatedAt = now
		if status != model.StatusBusy {
			m.CurrentWorkOrderID = ""
			releaseMachine(next.WorkOrders, m.ID, "")
		}

		next.AuditLog = prependAudit(next.AuditLog, statusAudit(now, actor, "Changed machine status", entityMachine, m.ID, string(old), string(status)))
	}

	return Recompute(next, e.faker, now), nil
}

// UpdateWorkOrderStatus sets the work order status. Completing it fills the
// completed quantity; a completed work order cannot be reopened.
func (e *Engine) UpdateWorkOrderStatus(
	s model.Snapshot,
	workOrderID string,
	status model.WorkOrderStatus,
	actor model.Actor,
) (model.Snapshot, error) {
	if !status.Valid() {
		return model.Snapshot{}, fmt.Errorf("%w %q", model.ErrUnknownStatus, status)
	}

	next := s.Clone()
	now := e.now().UTC()

	i := slices.IndexFunc(next.WorkOrders, func(w model.WorkOrder) bool { return w.ID == workOrderID })
	if i < 0 {
		return model.Snapshot{}, model.ErrWorkOrderNotFound
	}

	wo := &next.WorkOrders[i]
	old := wo.Status
	if old == status {
		return Recompute(next, e.faker, now), nil
	}
	if old == model.WorkOrderCompleted {
		return model.Snapshot{}, model.ErrWorkOrderClosed
	}

	wo.Status = status
	if status == model.WorkOrderCompleted {
		setCompleted(wo, wo.TargetQuantity)
		wo.Status = model.WorkOrderCompleted
	}

	action := "Updated work order status"
	if status == model.WorkOrderCompleted {
		action = "Completed work order"
	}
	next.AuditLog = prependAudit(next.AuditLog, statusAudit(now, actor, action, entityWorkOrder, wo.ID, string(old), string(status)))

	return Recompute(next, e.faker, now), nil
}

// openWorkOrder returns a pointer into orders for id. Completed work orders
// accept no further assignments.
func openWorkOrder(orders []model.WorkOrder, id string) (*model.WorkOrder, error) {
	i := slices.IndexFunc(orders, func(w model.WorkOrder) bool { return w.ID == id })
	if i < 0 {
		return nil, model.ErrWorkOrderNotFound
	}
	if orders[i].Status == model.WorkOrderCompleted {
		return nil, model.ErrWorkOrderClosed
	}
	return &orders[i], nil
}

func statusAudit(now time.Time, actor model.Actor, action, entityType, entityID, old, new string) model.AuditLogEntry {
	return model.AuditLogEntry{
		Timestamp:  now,
		UserID:     actor.ID,
		UserName:   actor.Name,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Changes:    map[string]model.Change{"status": {Old: lo.ToPtr(old), New: lo.ToPtr(new)}},
	}
}

// prependAudit numbers e after the existing entries and puts it first.
func prependAudit(log []model.AuditLogEntry, e model.AuditLogEntry) []model.AuditLogEntry {
	e.ID = auditID(len(log) + 1)
	return append([]model.AuditLogEntry{e}, log...)
}
