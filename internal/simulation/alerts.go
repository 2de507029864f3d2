package simulation

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/you-humble/mraos/internal/model"
)

const (
	OperatorIdleWarningMinutes  = 10
	OperatorIdleCriticalMinutes = 20
	MachineIdleWarningMinutes   = 15
	MachineIdleCriticalMinutes  = 30
)

const suggestedActionAssign = "assign_to_work_order"

var alertNamespace = uuid.MustParse("7c0f6a3e-2f4b-5d8e-9a61-3b2c4d5e6f70")

// AlertID is a UUIDv5 of the resource and the condition, so the same
// condition on the same resource always maps to the same id.
func AlertID(rt model.ResourceType, resourceID string, c model.AlertCondition) string {
	return uuid.NewSHA1(alertNamespace, []byte(string(rt)+"/"+resourceID+"/"+string(c))).String()
}

// DeriveAlerts scans operators and machines for idle and breakdown conditions.
// Alerts present in previous keep their timestamp, suggested action and
// acknowledgement; an escalation to a higher severity clears the
// acknowledgement. Only alerts new to previous draw from r.
func DeriveAlerts(
	operators []model.Operator,
	machines []model.Machine,
	previous []model.Alert,
	r Rand,
	now time.Time,
) []model.Alert {
	prev := lo.KeyBy(previous, func(a model.Alert) string { return a.ID })
	alerts := make([]model.Alert, 0, len(previous))

	for _, op := range operators {
		if op.CurrentStatus != model.StatusIdle || op.IdleDurationMinutes <= OperatorIdleWarningMinutes {
			continue
		}

		a := model.Alert{
			ID:                  AlertID(model.ResourceOperator, op.ID, model.ConditionIdle),
			Timestamp:           now,
			Severity:            idleSeverity(op.IdleDurationMinutes, OperatorIdleCriticalMinutes),
			Condition:           model.ConditionIdle,
			ResourceType:        model.ResourceOperator,
			ResourceID:          op.ID,
			ResourceName:        op.Name,
			Message:             fmt.Sprintf("Operator %s has been idle for %d minutes", op.Name, op.IdleDurationMinutes),
			IdleDurationMinutes: lo.ToPtr(op.IdleDurationMinutes),
		}
		alerts = append(alerts, carryOver(a, prev, func() []model.SuggestedAction {
			return []model.SuggestedAction{
				placeholderAction(r, 0.85, 0.95, 30, 90, "High skill match and proximity to work order location"),
			}
		}))
	}

	for _, m := range machines {
		if m.CurrentStatus != model.StatusIdle || m.IdleDurationMinutes <= MachineIdleWarningMinutes {
			continue
		}

		a := model.Alert{
			ID:                  AlertID(model.ResourceMachine, m.ID, model.ConditionIdle),
			Timestamp:           now,
			Severity:            idleSeverity(m.IdleDurationMinutes, MachineIdleCriticalMinutes),
			Condition:           model.ConditionIdle,
			ResourceType:        model.ResourceMachine,
			ResourceID:          m.ID,
			ResourceName:        m.Name,
			Message:             fmt.Sprintf("Machine %s has been idle for %d minutes", m.Name, m.IdleDurationMinutes),
			IdleDurationMinutes: lo.ToPtr(m.IdleDurationMinutes),
		}
		alerts = append(alerts, carryOver(a, prev, func() []model.SuggestedAction {
			return []model.SuggestedAction{
				placeholderAction(r, 0.80, 0.92, 45, 120, "Machine type matches work order requirements"),
			}
		}))
	}

	for _, m := range machines {
		if m.CurrentStatus != model.StatusBreakdown {
			continue
		}

		a := model.Alert{
			ID:           AlertID(model.ResourceMachine, m.ID, model.ConditionBreakdown),
			Timestamp:    now,
			Severity:     model.SeverityCritical,
			Condition:    model.ConditionBreakdown,
			ResourceType: model.ResourceMachine,
			ResourceID:   m.ID,
			ResourceName: m.Name,
			Message:      fmt.Sprintf("Machine %s is experiencing a breakdown", m.Name),
		}
		alerts = append(alerts, carryOver(a, prev, nil))
	}

	return alerts
}

// NewlyRaised returns the alerts of next that are absent from prev or whose
// severity went up.
func NewlyRaised(prev, next []model.Alert) []model.Alert {
	before := lo.KeyBy(prev, func(a model.Alert) string { return a.ID })

	return lo.Filter(next, func(a model.Alert, _ int) bool {
		old, ok := before[a.ID]
		return !ok || a.Severity.Rank() > old.Severity.Rank()
	})
}

func idleSeverity(idleMinutes, criticalAfter int) model.AlertSeverity {
	if idleMinutes > criticalAfter {
		return model.SeverityCritical
	}
	return model.SeverityWarning
}

func carryOver(a model.Alert, prev map[string]model.Alert, suggest func() []model.SuggestedAction) model.Alert {
	old, ok := prev[a.ID]
	if !ok {
		if suggest != nil {
			a.SuggestedActions = suggest()
		}
		return a
	}

	a.Timestamp = old.Timestamp
	a.SuggestedActions = slices.Clone(old.SuggestedActions)
	a.Acknowledged = old.Acknowledged && a.Severity.Rank() <= old.Severity.Rank()
	return a
}

// placeholderAction fabricates a suggestion for display. Nothing about it is
// derived from the factory state.
func placeholderAction(
	r Rand,
	minConfidence, maxConfidence float64,
	minSaved, maxSaved int,
	reason string,
) model.SuggestedAction {
	return model.SuggestedAction{
		Action:                       suggestedActionAssign,
		WorkOrderID:                  fmt.Sprintf("WO-%04d", r.Number(4500, 4530)),
		WorkOrderName:                pick(r, products),
		ConfidenceScore:              r.Float64Range(minConfidence, maxConfidence),
		ExpectedIdleTimeSavedMinutes: r.Number(minSaved, maxSaved),
		Reason:                       reason,
		NonAuthoritative:             true,
	}
}
