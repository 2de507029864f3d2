package model

import "slices"

// Snapshot is the complete in-memory factory state at one point in time.
// Alerts and Metrics are derived from the other collections.
type Snapshot struct {
	Operators  []Operator      `json:"operators"`
	Machines   []Machine       `json:"machines"`
	WorkOrders []WorkOrder     `json:"workOrders"`
	Materials  []Material      `json:"materials"`
	Alerts     []Alert         `json:"alerts"`
	AuditLog   []AuditLogEntry `json:"auditLog"`
	Metrics    FactoryMetrics  `json:"metrics"`
}

// Clone returns a deep copy that shares no slices or maps with s.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Operators:  make([]Operator, len(s.Operators)),
		Machines:   slices.Clone(s.Machines),
		WorkOrders: make([]WorkOrder, len(s.WorkOrders)),
		Materials:  slices.Clone(s.Materials),
		Alerts:     make([]Alert, len(s.Alerts)),
		AuditLog:   make([]AuditLogEntry, len(s.AuditLog)),
		Metrics:    s.Metrics,
	}

	for i, op := range s.Operators {
		op.Skills = slices.Clone(op.Skills)
		out.Operators[i] = op
	}

	for i, wo := range s.WorkOrders {
		out.WorkOrders[i] = wo.Clone()
	}

	for i, a := range s.Alerts {
		out.Alerts[i] = a.Clone()
	}

	for i, e := range s.AuditLog {
		out.AuditLog[i] = e.Clone()
	}

	return out
}

func (wo WorkOrder) Clone() WorkOrder {
	wo.RequiredSkills = slices.Clone(wo.RequiredSkills)
	wo.RequiredMaterials = slices.Clone(wo.RequiredMaterials)
	wo.AssignedOperatorIDs = slices.Clone(wo.AssignedOperatorIDs)
	return wo
}

func (a Alert) Clone() Alert {
	if a.IdleDurationMinutes != nil {
		v := *a.IdleDurationMinutes
		a.IdleDurationMinutes = &v
	}
	a.SuggestedActions = slices.Clone(a.SuggestedActions)
	return a
}

func (e AuditLogEntry) Clone() AuditLogEntry {
	if e.Changes == nil {
		return e
	}
	changes := make(map[string]Change, len(e.Changes))
	for k, v := range e.Changes {
		changes[k] = v
	}
	e.Changes = changes
	return e
}
