package simulation

import (
	"math"

	"github.com/you-humble/mraos/internal/model"
)

// Progress returns round(completed/target*100) clamped to [0,100]. A
// non-positive target yields 0.
func Progress(completed, target int) int {
	if target <= 0 {
		return 0
	}
	p := int(math.Round(float64(completed) / float64(target) * 100))
	return min(max(p, 0), 100)
}

// setCompleted keeps CompletedQuantity, ProgressPercentage and Status
// consistent. Reaching 100% completes the work order.
func setCompleted(wo *model.WorkOrder, completed int) {
	wo.CompletedQuantity = min(max(completed, 0), max(wo.TargetQuantity, 0))
	wo.ProgressPercentage = Progress(wo.CompletedQuantity, wo.TargetQuantity)

	if wo.ProgressPercentage == 100 {
		wo.CompletedQuantity = wo.TargetQuantity
		wo.Status = model.WorkOrderCompleted
	}
}
