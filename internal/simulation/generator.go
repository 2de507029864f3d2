package simulation

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/you-humble/mraos/internal/model"
)

var (
	skills = []string{
		"Assembly", "Welding", "Quality Control", "Machine Operation", "Electrical Work",
		"Painting", "Packaging", "Forklift Operation", "CNC Programming", "Maintenance",
	}
	productionLines = []string{"Line 1", "Line 2", "Line 3", "Line 4", "Line 5", "Line 6"}
	zones           = []string{"Zone A", "Zone B", "Zone C", "Zone D"}
	products        = []string{
		"Refrigerator Model A", "Refrigerator Model B", "Washing Machine Standard",
		"Washing Machine Deluxe", "Dishwasher Compact", "Dishwasher Full-Size",
		"Microwave Oven", "Range Hood",
	}
	machineTypes = []string{
		"Assembly Station", "Welding Robot", "Paint Booth",
		"Testing Station", "Packaging Line", "CNC Machine",
	}
	materialNames = []string{
		"Steel Sheet", "Aluminum Panel", "Plastic Housing", "Electronic Control Board",
		"Motor Assembly", "Compressor Unit", "Glass Panel", "Rubber Seal",
		"Power Cable", "Insulation Foam", "Screws Set", "Paint (White)",
		"Paint (Black)", "LED Display", "Temperature Sensor", "Door Hinge",
		"Wire Harness", "Pump Assembly", "Fan Blade", "Gasket Kit",
	}
	materialUnits = []string{"pcs", "kg", "liters", "sets"}
	warehouses    = []string{"A", "B", "C"}
	supervisors   = []string{"John Smith", "Sarah Johnson", "Mike Williams"}

	operatorStatuses = []model.ResourceStatus{
		model.StatusAvailable, model.StatusBusy, model.StatusBusy, model.StatusBusy,
		model.StatusIdle, model.StatusMaintenance,
	}
	machineStatuses = append(slices.Clone(operatorStatuses), model.StatusBreakdown)

	workOrderStatuses = []model.WorkOrderStatus{
		model.WorkOrderQueued, model.WorkOrderQueued,
		model.WorkOrderInProgress, model.WorkOrderInProgress, model.WorkOrderInProgress,
		model.WorkOrderCompleted, model.WorkOrderBlocked,
	}
	priorities = []model.WorkOrderPriority{
		model.PriorityLow, model.PriorityMedium, model.PriorityMedium,
		model.PriorityHigh, model.PriorityCritical,
	}
)

type historicalAction struct {
	action     string
	entityType string
	field      string
	old, new   string
}

var historicalActions = []historicalAction{
	{"Assigned operator", "Allocation", "status", "unassigned", "assigned"},
	{"Updated work order status", "WorkOrder", "status", "queued", "in-progress"},
	{"Completed work order", "WorkOrder", "status", "in-progress", "completed"},
	{"Changed operator status", "Operator", "status", "available", "busy"},
	{"Applied AI suggestion", "Allocation", "method", "manual", "ai-assisted"},
}

// Counts sizes every generated collection.
type Counts struct {
	Operators    int
	Machines     int
	WorkOrders   int
	Materials    int
	AuditEntries int
}

func DefaultCounts() Counts {
	return Counts{Operators: 25, Machines: 20, WorkOrders: 30, Materials: 20, AuditEntries: 50}
}

func operatorID(i int) string  { return fmt.Sprintf("O-%03d", 100+i) }
func machineID(i int) string   { return fmt.Sprintf("M-%03d", 200+i) }
func workOrderID(i int) string { return fmt.Sprintf("WO-%04d", 4500+i) }
func materialID(i int) string  { return fmt.Sprintf("MAT-%03d", 1+i) }
func auditID(n int) string     { return fmt.Sprintf("AUDIT-%05d", n) }

// Generate builds a fresh snapshot with derived alerts and metrics.
func Generate(f Faker, c Counts, now time.Time) model.Snapshot {
	s := model.Snapshot{
		Operators:  GenerateOperators(f, c, now),
		Machines:   GenerateMachines(f, c, now),
		WorkOrders: GenerateWorkOrders(f, c, now),
		Materials:  GenerateMaterials(f, c.Materials),
		AuditLog:   GenerateAuditLog(f, c.AuditEntries, now),
	}
	linkGenerated(f, &s)
	return Recompute(s, f, now)
}

func GenerateOperators(f Faker, c Counts, now time.Time) []model.Operator {
	operators := make([]model.Operator, 0, c.Operators)

	for i := range c.Operators {
		status := pick(f, operatorStatuses)

		op := model.Operator{
			ID:               operatorID(i),
			Name:             f.FirstName() + " " + f.LastName(),
			CurrentStatus:    status,
			Skills:           generateSkills(f, now),
			EfficiencyRating: f.Float64Range(3.5, 5),
			Location:         pick(f, productionLines) + ", " + pick(f, zones),
			ShiftStart:       "08:00",
			ShiftEnd:         "16:00",
			StatusUpdatedAt:  now,
		}

		if status == model.StatusIdle {
			op.IdleDurationMinutes = f.Number(5, 30)
		}

		operators = append(operators, op)
	}

	return operators
}

func generateSkills(r Rand, now time.Time) []model.Skill {
	n := r.Number(2, 4)
	out := make([]model.Skill, 0, n)

	for range n {
		idx := r.Number(0, len(skills)-1)
		out = append(out, model.Skill{
			ID:                fmt.Sprintf("skill-%d", idx+1),
			Name:              skills[idx],
			CertificationDate: dayOf(now.AddDate(0, 0, -r.Number(30, 365))),
		})
	}

	return lo.UniqBy(out, func(s model.Skill) string { return s.ID })
}

func GenerateMachines(r Rand, c Counts, now time.Time) []model.Machine {
	machines := make([]model.Machine, 0, c.Machines)

	for i := range c.Machines {
		typ := pick(r, machineTypes)
		status := pick(r, machineStatuses)

		m := model.Machine{
			ID:                  machineID(i),
			Name:                fmt.Sprintf("%s %02d", typ, i+1),
			Type:                typ,
			CurrentStatus:       status,
			ProductionLine:      pick(r, productionLines),
			OEEPercent:          r.Number(75, 92),
			StatusUpdatedAt:     now,
			LastMaintenanceDate: dayOf(now.AddDate(0, 0, -r.Number(1, 30))),
		}

		switch status {
		case model.StatusBusy:
			m.UtilizationPercent = r.Number(70, 95)
		case model.StatusIdle:
			m.UtilizationPercent = r.Number(10, 30)
			m.IdleDurationMinutes = r.Number(10, 45)
		}

		machines = append(machines, m)
	}

	return machines
}

func GenerateWorkOrders(r Rand, c Counts, now time.Time) []model.WorkOrder {
	orders := make([]model.WorkOrder, 0, c.WorkOrders)

	for i := range c.WorkOrders {
		status := pick(r, workOrderStatuses)
		target := r.Number(10, 100)

		var completed int
		switch status {
		case model.WorkOrderCompleted:
			completed = target
		case model.WorkOrderInProgress:
			completed = r.Number(0, target-1)
		}

		requiredSkills := make([]string, 0, 3)
		for range r.Number(1, 3) {
			requiredSkills = append(requiredSkills, pick(r, skills))
		}

		wo := model.WorkOrder{
			ID:                       workOrderID(i),
			ProductName:              pick(r, products),
			TargetQuantity:           target,
			CompletedQuantity:        completed,
			Status:                   status,
			Priority:                 pick(r, priorities),
			DueDate:                  now.Add(time.Duration(r.Number(4, 72)) * time.Hour).Truncate(time.Minute),
			EstimatedDurationMinutes: r.Number(60, 480),
			ProgressPercentage:       Progress(completed, target),
			RequiredSkills:           lo.Uniq(requiredSkills),
			RequiredMaterials:        []model.MaterialRequirement{},
			AssignedOperatorIDs:      []string{},
		}

		if chance(r, 0.7) {
			wo.RequiredMachineType = pick(r, machineTypes)
		}
		if c.Materials > 0 {
			wo.RequiredMaterials = append(wo.RequiredMaterials, model.MaterialRequirement{
				MaterialID: materialID(r.Number(0, c.Materials-1)),
				Quantity:   r.Number(5, 50),
			})
		}
		wo.ProductionLine = pick(r, productionLines)

		orders = append(orders, wo)
	}

	return orders
}

func GenerateMaterials(r Rand, n int) []model.Material {
	materials := make([]model.Material, 0, n)

	for i := range n {
		available := r.Number(50, 500)
		name := materialNames[i%len(materialNames)]
		if round := i / len(materialNames); round > 0 {
			name = fmt.Sprintf("%s #%d", name, round+1)
		}

		materials = append(materials, model.Material{
			ID:                materialID(i),
			Name:              name,
			PartNumber:        fmt.Sprintf("PN-%d", r.Number(10000, 99999)),
			QuantityAvailable: available,
			QuantityAllocated: r.Number(0, min(50, available)),
			Unit:              pick(r, materialUnits),
			Location:          fmt.Sprintf("Warehouse %s, Aisle %d", pick(r, warehouses), r.Number(1, 10)),
		})
	}

	return materials
}

// GenerateAuditLog returns n historical entries from the last week, newest
// first. Ids are numbered so the newest entry carries the highest number.
func GenerateAuditLog(r Rand, n int, now time.Time) []model.AuditLogEntry {
	entries := make([]model.AuditLogEntry, 0, n)

	for range n {
		a := pick(r, historicalActions)
		ts := now.AddDate(0, 0, -r.Number(0, 7)).Add(-time.Duration(r.Number(0, 24*60-1)) * time.Minute)

		e := model.AuditLogEntry{
			Timestamp:  ts.Truncate(time.Second),
			UserID:     fmt.Sprintf("U-%d", r.Number(1, 10)),
			UserName:   pick(r, supervisors),
			Action:     a.action,
			EntityType: a.entityType,
			EntityID:   fmt.Sprintf("%s-%d", strings.ToUpper(a.entityType), r.Number(1000, 9999)),
			Changes:    map[string]model.Change{a.field: {Old: lo.ToPtr(a.old), New: lo.ToPtr(a.new)}},
		}
		if chance(r, 0.5) {
			e.Reason = "Optimizing resource allocation"
		}

		entries = append(entries, e)
	}

	slices.SortStableFunc(entries, func(a, b model.AuditLogEntry) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	for i := range entries {
		entries[i].ID = auditID(n - i)
	}

	return entries
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
