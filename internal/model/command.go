package model

type CommandKind string

const (
	CommandAssignOperator        CommandKind = "assign_operator"
	CommandAssignMachine         CommandKind = "assign_machine"
	CommandAcknowledgeAlert      CommandKind = "acknowledge_alert"
	CommandUpdateOperatorStatus  CommandKind = "update_operator_status"
	CommandUpdateMachineStatus   CommandKind = "update_machine_status"
	CommandUpdateWorkOrderStatus CommandKind = "update_work_order_status"
)

// Command is a mutation request received from outside the HTTP API.
type Command struct {
	Kind        CommandKind
	OperatorID  string
	MachineID   string
	WorkOrderID string
	AlertID     string
	Status      string
}

type AssignOperatorParams struct {
	OperatorID  string
	WorkOrderID string
}

type AssignMachineParams struct {
	MachineID   string
	WorkOrderID string
}
