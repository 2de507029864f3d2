package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/you-humble/mraos/internal/model"
	"github.com/you-humble/mraos/internal/simulation"
	"github.com/you-humble/mraos/platform/logger"
)

type Engine interface {
	Generate() model.Snapshot
	Tick(s model.Snapshot) model.Snapshot
	AssignOperator(s model.Snapshot, p model.AssignOperatorParams, actor model.Actor) (model.Snapshot, error)
	AssignMachine(s model.Snapshot, p model.AssignMachineParams, actor model.Actor) (model.Snapshot, error)
	AcknowledgeAlert(s model.Snapshot, alertID string) (model.Snapshot, error)
	UpdateOperatorStatus(s model.Snapshot, id string, status model.ResourceStatus, actor model.Actor) (model.Snapshot, error)
	UpdateMachineStatus(s model.Snapshot, id string, status model.ResourceStatus, actor model.Actor) (model.Snapshot, error)
	UpdateWorkOrderStatus(s model.Snapshot, id string, status model.WorkOrderStatus, actor model.Actor) (model.Snapshot, error)
}

// EventSink is told about alerts that were raised or escalated and about new
// audit entries after every successful mutation.
type EventSink interface {
	AlertsRaised(ctx context.Context, alerts []model.Alert) error
	AuditAppended(ctx context.Context, entries []model.AuditLogEntry) error
}

// DefaultSinkTimeout bounds a single sink call.
const DefaultSinkTimeout = 3 * time.Second

// service owns the one factory snapshot. Mutations run under mu one at a
// time; sinks are notified after the lock is released.
type service struct {
	mu          sync.RWMutex
	snap        model.Snapshot
	engine      Engine
	actor       model.Actor
	sinks       []EventSink
	sinkTimeout time.Duration
}

func NewFactoryService(engine Engine, actor model.Actor, sinks ...EventSink) *service {
	return &service{
		snap:        engine.Generate(),
		engine:      engine,
		actor:       actor,
		sinks:       sinks,
		sinkTimeout: DefaultSinkTimeout,
	}
}

// SetSinkTimeout changes how long a single sink call may take. Non-positive
// values are ignored.
func (svc *service) SetSinkTimeout(d time.Duration) *service {
	if d > 0 {
		svc.sinkTimeout = d
	}
	return svc
}

func (svc *service) Snapshot(_ context.Context) model.Snapshot {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	return svc.snap.Clone()
}

func (svc *service) Metrics(_ context.Context) model.FactoryMetrics {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	return svc.snap.Metrics
}

func (svc *service) Operators(ctx context.Context) []model.Operator {
	return svc.Snapshot(ctx).Operators
}

func (svc *service) Machines(ctx context.Context) []model.Machine {
	return svc.Snapshot(ctx).Machines
}

func (svc *service) WorkOrders(ctx context.Context) []model.WorkOrder {
	return svc.Snapshot(ctx).WorkOrders
}

func (svc *service) Materials(ctx context.Context) []model.Material {
	return svc.Snapshot(ctx).Materials
}

func (svc *service) AuditLog(ctx context.Context) []model.AuditLogEntry {
	return svc.Snapshot(ctx).AuditLog
}

// Alerts lists alerts in derivation order. A non-positive limit means no limit.
func (svc *service) Alerts(ctx context.Context, filter model.AlertsFilter) []model.Alert {
	alerts := svc.Snapshot(ctx).Alerts
	if filter.ActiveOnly {
		alerts = lo.Filter(alerts, func(a model.Alert, _ int) bool { return !a.Acknowledged })
	}
	if filter.Limit > 0 && len(alerts) > filter.Limit {
		alerts = alerts[:filter.Limit]
	}
	return alerts
}

func (svc *service) AssignOperator(ctx context.Context, params model.AssignOperatorParams) (*model.WorkOrder, error) {
	const op string = "factory.service.AssignOperator"
	params.OperatorID = strings.TrimSpace(params.OperatorID)
	params.WorkOrderID = strings.TrimSpace(params.WorkOrderID)
	log := logger.With(
		logger.String("operator_id", params.OperatorID),
		logger.String("work_order_id", params.WorkOrderID),
	)

	if params.OperatorID == "" || params.WorkOrderID == "" {
		log.Error(ctx, "wrong params")
		return nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	next, err := svc.apply(ctx, func(s model.Snapshot) (model.Snapshot, error) {
		return svc.engine.AssignOperator(s, params, svc.actor)
	})
	if err != nil {
		log.Error(ctx, "engine assign operator", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return workOrderByID(next, params.WorkOrderID)
}

func (svc *service) AssignMachine(ctx context.Context, params model.AssignMachineParams) (*model.WorkOrder, error) {
	const op string = "factory.service.AssignMachine"
	params.MachineID = strings.TrimSpace(params.MachineID)
	params.WorkOrderID = strings.TrimSpace(params.WorkOrderID)
	log := logger.With(
		logger.String("machine_id", params.MachineID),
		logger.String("work_order_id", params.WorkOrderID),
	)

	if params.MachineID == "" || params.WorkOrderID == "" {
		log.Error(ctx, "wrong params")
		return nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	next, err := svc.apply(ctx, func(s model.Snapshot) (model.Snapshot, error) {
		return svc.engine.AssignMachine(s, params, svc.actor)
	})
	if err != nil {
		log.Error(ctx, "engine assign machine", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return workOrderByID(next, params.WorkOrderID)
}

func (svc *service) AcknowledgeAlert(ctx context.Context, alertID string) (*model.Alert, error) {
	const op string = "factory.service.AcknowledgeAlert"
	alertID = strings.TrimSpace(alertID)
	log := logger.With(logger.String("alert_id", alertID))

	if alertID == "" {
		log.Error(ctx, "empty alert id")
		return nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	next, err := svc.apply(ctx, func(s model.Snapshot) (model.Snapshot, error) {
		return svc.engine.AcknowledgeAlert(s, alertID)
	})
	if err != nil {
		log.Error(ctx, "engine acknowledge alert", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a, ok := lo.Find(next.Alerts, func(a model.Alert) bool { return a.ID == alertID })
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, model.ErrAlertNotFound)
	}
	a = a.Clone()
	return &a, nil
}

func (svc *service) UpdateOperatorStatus(ctx context.Context, id string, status model.ResourceStatus) (*model.Operator, error) {
	const op string = "factory.service.UpdateOperatorStatus"
	id = strings.TrimSpace(id)
	log := logger.With(
		logger.String("operator_id", id),
		logger.String("status", string(status)),
	)

	if id == "" {
		log.Error(ctx, "empty operator id")
		return nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	next, err := svc.apply(ctx, func(s model.Snapshot) (model.Snapshot, error) {
		return svc.engine.UpdateOperatorStatus(s, id, status, svc.actor)
	})
	if err != nil {
		log.Error(ctx, "engine update operator status", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	o, ok := lo.Find(next.Operators, func(o model.Operator) bool { return o.ID == id })
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, model.ErrOperatorNotFound)
	}
	o.Skills = slices.Clone(o.Skills)
	return &o, nil
}

func (svc *service) UpdateMachineStatus(ctx context.Context, id string, status model.ResourceStatus) (*model.Machine, error) {
	const op string = "factory.service.UpdateMachineStatus"
	id = strings.TrimSpace(id)
	log := logger.With(
		logger.String("machine_id", id),
		logger.String("status", string(status)),
	)

	if id == "" {
		log.Error(ctx, "empty machine id")
		return nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	next, err := svc.apply(ctx, func(s model.Snapshot) (model.Snapshot, error) {
		return svc.engine.UpdateMachineStatus(s, id, status, svc.actor)
	})
	if err != nil {
		log.Error(ctx, "engine update machine status", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m, ok := lo.Find(next.Machines, func(m model.Machine) bool { return m.ID == id })
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, model.ErrMachineNotFound)
	}
	return &m, nil
}

func (svc *service) UpdateWorkOrderStatus(ctx context.Context, id string, status model.WorkOrderStatus) (*model.WorkOrder, error) {
	const op string = "factory.service.UpdateWorkOrderStatus"
	id = strings.TrimSpace(id)
	log := logger.With(
		logger.String("work_order_id", id),
		logger.String("status", string(status)),
	)

	if id == "" {
		log.Error(ctx, "empty work order id")
		return nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	next, err := svc.apply(ctx, func(s model.Snapshot) (model.Snapshot, error) {
		return svc.engine.UpdateWorkOrderStatus(s, id, status, svc.actor)
	})
	if err != nil {
		log.Error(ctx, "engine update work order status", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return workOrderByID(next, id)
}

// Tick advances the simulation one step and returns the new metrics.
func (svc *service) Tick(ctx context.Context) model.FactoryMetrics {
	next, _ := svc.apply(ctx, func(s model.Snapshot) (model.Snapshot, error) {
		return svc.engine.Tick(s), nil
	})
	return next.Metrics
}

// Refresh discards the current state and generates a new one. Sinks are not
// notified: nothing was raised or changed on the floor.
func (svc *service) Refresh(ctx context.Context) model.FactoryMetrics {
	svc.mu.Lock()
	next := svc.engine.Generate()
	svc.snap = next
	svc.mu.Unlock()

	logger.Info(ctx, "factory state regenerated",
		logger.Int("operators", next.Metrics.TotalOperators),
		logger.Int("machines", next.Metrics.TotalMachines),
		logger.Int("work_orders", next.Metrics.TotalWorkOrders),
	)
	return next.Metrics
}

// apply runs fn against the current snapshot and, on success, publishes its
// result. The returned snapshot must be treated as read-only.
func (svc *service) apply(ctx context.Context, fn func(model.Snapshot) (model.Snapshot, error)) (model.Snapshot, error) {
	svc.mu.Lock()
	prev := svc.snap
	next, err := fn(prev)
	if err != nil {
		svc.mu.Unlock()
		return model.Snapshot{}, err
	}
	svc.snap = next
	svc.mu.Unlock()

	svc.notify(ctx, prev, next)
	return next, nil
}

func (svc *service) notify(ctx context.Context, prev, next model.Snapshot) {
	if len(svc.sinks) == 0 {
		return
	}

	raised := simulation.NewlyRaised(prev.Alerts, next.Alerts)

	seen := lo.SliceToMap(prev.AuditLog, func(e model.AuditLogEntry) (string, struct{}) { return e.ID, struct{}{} })
	appended := lo.Filter(next.AuditLog, func(e model.AuditLogEntry, _ int) bool {
		_, ok := seen[e.ID]
		return !ok
	})

	for _, sink := range svc.sinks {
		if len(raised) > 0 {
			err := svc.withSinkTimeout(ctx, func(ctx context.Context) error { return sink.AlertsRaised(ctx, raised) })
			if err != nil {
				logger.Warn(ctx, "alerts raised sink", logger.Int("alerts", len(raised)), logger.ErrorF(err))
			}
		}
		if len(appended) > 0 {
			err := svc.withSinkTimeout(ctx, func(ctx context.Context) error { return sink.AuditAppended(ctx, appended) })
			if err != nil {
				logger.Warn(ctx, "audit appended sink", logger.Int("entries", len(appended)), logger.ErrorF(err))
			}
		}
	}
}

// withSinkTimeout waits at most sinkTimeout for call. A sink that ignores its
// context keeps running in the background and its result is dropped.
func (svc *service) withSinkTimeout(ctx context.Context, call func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), svc.sinkTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- call(ctx) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func workOrderByID(s model.Snapshot, id string) (*model.WorkOrder, error) {
	wo, ok := lo.Find(s.WorkOrders, func(wo model.WorkOrder) bool { return wo.ID == id })
	if !ok {
		return nil, model.ErrWorkOrderNotFound
	}
	wo = wo.Clone()
	return &wo, nil
}
