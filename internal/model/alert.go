package model

import "time"

type (
	AlertSeverity  string
	AlertCondition string
)

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

const (
	ConditionIdle      AlertCondition = "idle"
	ConditionBreakdown AlertCondition = "breakdown"
)

// Rank orders severities so that a higher rank is more severe.
func (s AlertSeverity) Rank() int {
	switch s {
	case SeverityInfo:
		return 1
	case SeverityWarning:
		return 2
	case SeverityCritical:
		return 3
	default:
		return 0
	}
}

// Alert is derived state. ID comes from resource type, resource id and
// condition, so it stays the same across recomputations while the condition
// holds.
type Alert struct {
	ID                  string            `json:"id"`
	Timestamp           time.Time         `json:"timestamp"`
	Severity            AlertSeverity     `json:"severity"`
	Condition           AlertCondition    `json:"condition"`
	ResourceType        ResourceType      `json:"resourceType"`
	ResourceID          string            `json:"resourceId"`
	ResourceName        string            `json:"resourceName"`
	Message             string            `json:"message"`
	IdleDurationMinutes *int              `json:"idleDurationMinutes,omitempty"`
	SuggestedActions    []SuggestedAction `json:"suggestedActions,omitempty"`
	Acknowledged        bool              `json:"acknowledged"`
}

// SuggestedAction is a display placeholder. Its work order, confidence and
// time saved are random draws, not the output of any recommendation model.
type SuggestedAction struct {
	Action                       string  `json:"action"`
	WorkOrderID                  string  `json:"workOrderId"`
	WorkOrderName                string  `json:"workOrderName"`
	ConfidenceScore              float64 `json:"confidenceScore"`
	ExpectedIdleTimeSavedMinutes int     `json:"expectedIdleTimeSavedMinutes"`
	Reason                       string  `json:"reason"`
	NonAuthoritative             bool    `json:"nonAuthoritative"`
}

type AlertsFilter struct {
	ActiveOnly bool
	Limit      int
}
