package model

import "time"

type (
	ResourceStatus string
	ResourceType   string
)

const (
	StatusAvailable   ResourceStatus = "available"
	StatusBusy        ResourceStatus = "busy"
	StatusIdle        ResourceStatus = "idle"
	StatusMaintenance ResourceStatus = "maintenance"
	StatusBreakdown   ResourceStatus = "breakdown"
)

const (
	ResourceOperator ResourceType = "operator"
	ResourceMachine  ResourceType = "machine"
)

func (s ResourceStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusBusy, StatusIdle, StatusMaintenance, StatusBreakdown:
		return true
	default:
		return false
	}
}

type Skill struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	CertificationDate time.Time `json:"certificationDate"`
}

// Operator is a shop-floor worker. IdleDurationMinutes counts consecutive
// minutes in the idle status and is zero otherwise. EfficiencyRating is on a
// 0-5 scale.
type Operator struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	CurrentStatus       ResourceStatus `json:"currentStatus"`
	Skills              []Skill        `json:"skills"`
	EfficiencyRating    float64        `json:"efficiencyRating"`
	CurrentWorkOrderID  string         `json:"currentWorkOrderId,omitempty"`
	Location            string         `json:"location"`
	ShiftStart          string         `json:"shiftStart"`
	ShiftEnd            string         `json:"shiftEnd"`
	IdleDurationMinutes int            `json:"idleDurationMinutes"`
	StatusUpdatedAt     time.Time      `json:"statusUpdatedAt"`
}

// Machine is a piece of production equipment. OEEPercent is display only and
// is not computed from availability, performance and quality.
type Machine struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Type                string         `json:"type"`
	CurrentStatus       ResourceStatus `json:"currentStatus"`
	ProductionLine      string         `json:"productionLine"`
	CurrentWorkOrderID  string         `json:"currentWorkOrderId,omitempty"`
	UtilizationPercent  int            `json:"utilizationPercentage"`
	OEEPercent          int            `json:"oeePercentage"`
	IdleDurationMinutes int            `json:"idleDurationMinutes"`
	StatusUpdatedAt     time.Time      `json:"statusUpdatedAt"`
	LastMaintenanceDate time.Time      `json:"lastMaintenanceDate"`
}
