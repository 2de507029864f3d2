package http

type assignOperatorRequest struct {
	OperatorID string `json:"operator_id"`
}

type assignMachineRequest struct {
	MachineID string `json:"machine_id"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
