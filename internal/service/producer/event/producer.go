package evproducer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/you-humble/mraos/internal/model"
	"github.com/you-humble/mraos/platform/kafka"
)

const headerKind = "kind"

type Converter interface {
	AlertRaisedToPayload(e model.AlertRaisedEvent) ([]byte, error)
	AuditAppendedToPayload(e model.AuditAppendedEvent) ([]byte, error)
}

type service struct {
	producer kafka.Producer
	conv     Converter
	now      func() time.Time
}

func NewEventProducer(producer kafka.Producer, conv Converter) *service {
	return &service{producer: producer, conv: conv, now: time.Now}
}

// AlertsRaised publishes one event per alert keyed by the alert id, so every
// alert's history lands on one partition.
func (s *service) AlertsRaised(ctx context.Context, alerts []model.Alert) error {
	var errs []error
	for _, a := range alerts {
		payload, err := s.conv.AlertRaisedToPayload(model.AlertRaisedEvent{
			EventID:    uuid.New(),
			OccurredAt: s.now(),
			Alert:      a,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("converter alert_raised_to_payload error: %w", err))
			continue
		}

		if err := s.send(ctx, a.ID, model.EventAlertRaised, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *service) AuditAppended(ctx context.Context, entries []model.AuditLogEntry) error {
	var errs []error
	for _, e := range entries {
		payload, err := s.conv.AuditAppendedToPayload(model.AuditAppendedEvent{
			EventID:    uuid.New(),
			OccurredAt: s.now(),
			Entry:      e,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("converter audit_appended_to_payload error: %w", err))
			continue
		}

		if err := s.send(ctx, e.EntityID, model.EventAuditAppended, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *service) send(ctx context.Context, key string, kind model.EventKind, payload []byte) error {
	if err := s.producer.Send(ctx, []byte(key), payload, kafka.Header{Key: headerKind, Value: []byte(kind)}); err != nil {
		return fmt.Errorf("producer to events topic error: %w", err)
	}
	return nil
}
