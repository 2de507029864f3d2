package model

import "time"

type (
	WorkOrderStatus   string
	WorkOrderPriority string
)

const (
	WorkOrderQueued     WorkOrderStatus = "queued"
	WorkOrderInProgress WorkOrderStatus = "in-progress"
	WorkOrderCompleted  WorkOrderStatus = "completed"
	WorkOrderBlocked    WorkOrderStatus = "blocked"
)

const (
	PriorityLow      WorkOrderPriority = "low"
	PriorityMedium   WorkOrderPriority = "medium"
	PriorityHigh     WorkOrderPriority = "high"
	PriorityCritical WorkOrderPriority = "critical"
)

func (s WorkOrderStatus) Valid() bool {
	switch s {
	case WorkOrderQueued, WorkOrderInProgress, WorkOrderCompleted, WorkOrderBlocked:
		return true
	default:
		return false
	}
}

type MaterialRequirement struct {
	MaterialID string `json:"materialId"`
	Quantity   int    `json:"quantity"`
}

// WorkOrder is a production job. ProgressPercentage is always
// round(CompletedQuantity/TargetQuantity*100) clamped to [0,100].
type WorkOrder struct {
	ID                       string                `json:"id"`
	ProductName              string                `json:"productName"`
	TargetQuantity           int                   `json:"targetQuantity"`
	CompletedQuantity        int                   `json:"completedQuantity"`
	Status                   WorkOrderStatus       `json:"status"`
	Priority                 WorkOrderPriority     `json:"priority"`
	DueDate                  time.Time             `json:"dueDate"`
	EstimatedDurationMinutes int                   `json:"estimatedDurationMinutes"`
	ProgressPercentage       int                   `json:"progressPercentage"`
	RequiredSkills           []string              `json:"requiredSkills"`
	RequiredMachineType      string                `json:"requiredMachineType,omitempty"`
	RequiredMaterials        []MaterialRequirement `json:"requiredMaterials"`
	AssignedOperatorIDs      []string              `json:"assignedOperatorIds"`
	AssignedMachineID        string                `json:"assignedMachineId,omitempty"`
	ProductionLine           string                `json:"productionLine"`
}

type Material struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	PartNumber        string `json:"partNumber"`
	QuantityAvailable int    `json:"quantityAvailable"`
	QuantityAllocated int    `json:"quantityAllocated"`
	Unit              string `json:"unit"`
	Location          string `json:"location"`
}
