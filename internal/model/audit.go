package model

import "time"

type Actor struct {
	ID   string
	Name string
}

type Change struct {
	Old *string `json:"old"`
	New *string `json:"new"`
}

type AuditLogEntry struct {
	ID         string            `json:"id"`
	Timestamp  time.Time         `json:"timestamp"`
	UserID     string            `json:"userId"`
	UserName   string            `json:"userName"`
	Action     string            `json:"action"`
	EntityType string            `json:"entityType"`
	EntityID   string            `json:"entityId"`
	Changes    map[string]Change `json:"changes"`
	Reason     string            `json:"reason,omitempty"`
}
