package model

import (
	"time"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventAlertRaised   EventKind = "alert_raised"
	EventAuditAppended EventKind = "audit_appended"
)

type AlertRaisedEvent struct {
	EventID    uuid.UUID
	OccurredAt time.Time
	Alert      Alert
}

type AuditAppendedEvent struct {
	EventID    uuid.UUID
	OccurredAt time.Time
	Entry      AuditLogEntry
}
