package model

type FactoryMetrics struct {
	TotalOperators     int `json:"totalOperators"`
	AvailableOperators int `json:"availableOperators"`
	BusyOperators      int `json:"busyOperators"`
	IdleOperators      int `json:"idleOperators"`

	TotalMachines     int `json:"totalMachines"`
	AvailableMachines int `json:"availableMachines"`
	BusyMachines      int `json:"busyMachines"`
	IdleMachines      int `json:"idleMachines"`

	TotalWorkOrders      int `json:"totalWorkOrders"`
	QueuedWorkOrders     int `json:"queuedWorkOrders"`
	InProgressWorkOrders int `json:"inProgressWorkOrders"`
	CompletedWorkOrders  int `json:"completedWorkOrders"`

	AverageIdleTimeMinutes float64 `json:"averageIdleTimeMinutes"`
	UtilizationPercentage  float64 `json:"utilizationPercentage"`
	ActiveAlerts           int     `json:"activeAlerts"`
}
