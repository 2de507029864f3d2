package converter

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/you-humble/mraos/internal/model"
)

type kafkaConverter struct{}

func NewKafkaConverter() *kafkaConverter { return &kafkaConverter{} }

func (c *kafkaConverter) CommandToModel(data []byte) (model.Command, error) {
	var pb structpb.Struct
	if err := proto.Unmarshal(data, &pb); err != nil {
		return model.Command{}, fmt.Errorf("failed to unmarshal protobuf: %w", err)
	}

	fields := pb.GetFields()
	str := func(key string) string { return fields[key].GetStringValue() }

	return model.Command{
		Kind:        model.CommandKind(str("command")),
		OperatorID:  str("operator_id"),
		MachineID:   str("machine_id"),
		WorkOrderID: str("work_order_id"),
		AlertID:     str("alert_id"),
		Status:      str("status"),
	}, nil
}

func (c *kafkaConverter) CommandToPayload(cmd model.Command) ([]byte, error) {
	return marshalStruct(map[string]any{
		"command":       string(cmd.Kind),
		"operator_id":   cmd.OperatorID,
		"machine_id":    cmd.MachineID,
		"work_order_id": cmd.WorkOrderID,
		"alert_id":      cmd.AlertID,
		"status":        cmd.Status,
	})
}

func (c *kafkaConverter) AlertRaisedToPayload(e model.AlertRaisedEvent) ([]byte, error) {
	a := e.Alert

	actions := make([]any, 0, len(a.SuggestedActions))
	for _, sa := range a.SuggestedActions {
		actions = append(actions, map[string]any{
			"action":                           sa.Action,
			"work_order_id":                    sa.WorkOrderID,
			"work_order_name":                  sa.WorkOrderName,
			"confidence_score":                 sa.ConfidenceScore,
			"expected_idle_time_saved_minutes": sa.ExpectedIdleTimeSavedMinutes,
			"reason":                           sa.Reason,
			"non_authoritative":                sa.NonAuthoritative,
		})
	}

	data := map[string]any{
		"id":                a.ID,
		"timestamp":         a.Timestamp.UTC().Format(time.RFC3339),
		"severity":          string(a.Severity),
		"condition":         string(a.Condition),
		"resource_type":     string(a.ResourceType),
		"resource_id":       a.ResourceID,
		"resource_name":     a.ResourceName,
		"message":           a.Message,
		"acknowledged":      a.Acknowledged,
		"suggested_actions": actions,
	}
	if a.IdleDurationMinutes != nil {
		data["idle_duration_minutes"] = *a.IdleDurationMinutes
	}

	return marshalEvent(e.EventID.String(), model.EventAlertRaised, e.OccurredAt, data)
}

func (c *kafkaConverter) AuditAppendedToPayload(e model.AuditAppendedEvent) ([]byte, error) {
	entry := e.Entry

	changes := make(map[string]any, len(entry.Changes))
	for field, ch := range entry.Changes {
		changes[field] = map[string]any{"old": strOrNil(ch.Old), "new": strOrNil(ch.New)}
	}

	data := map[string]any{
		"id":          entry.ID,
		"timestamp":   entry.Timestamp.UTC().Format(time.RFC3339),
		"user_id":     entry.UserID,
		"user_name":   entry.UserName,
		"action":      entry.Action,
		"entity_type": entry.EntityType,
		"entity_id":   entry.EntityID,
		"changes":     changes,
	}
	if entry.Reason != "" {
		data["reason"] = entry.Reason
	}

	return marshalEvent(e.EventID.String(), model.EventAuditAppended, e.OccurredAt, data)
}

func marshalEvent(id string, kind model.EventKind, at time.Time, data map[string]any) ([]byte, error) {
	return marshalStruct(map[string]any{
		"event_id":    id,
		"kind":        string(kind),
		"occurred_at": at.UTC().Format(time.RFC3339),
		"data":        data,
	})
}

func marshalStruct(m map[string]any) ([]byte, error) {
	pb, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("failed to build protobuf struct: %w", err)
	}

	payload, err := proto.Marshal(pb)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal protobuf: %w", err)
	}

	return payload, nil
}

func strOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
