package service

import (
	"context"
	"errors"
	"sync"

	converter "github.com/you-humble/mraos/internal/converter/telegram"
	"github.com/you-humble/mraos/internal/model"
	"github.com/you-humble/mraos/platform/logger"
)

type MessageSender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// service pushes raised alerts at or above minSeverity to every known chat.
type service struct {
	client      MessageSender
	minSeverity model.AlertSeverity

	mu    sync.RWMutex
	chats map[int64]struct{}
}

func NewNotifierService(client MessageSender, minSeverity model.AlertSeverity, chatIDs ...int64) *service {
	chats := make(map[int64]struct{}, len(chatIDs))
	for _, id := range chatIDs {
		chats[id] = struct{}{}
	}

	return &service{client: client, minSeverity: minSeverity, chats: chats}
}

func (svc *service) AlertsRaised(ctx context.Context, alerts []model.Alert) error {
	var errs []error

	for _, a := range alerts {
		if a.Acknowledged || a.Severity.Rank() < svc.minSeverity.Rank() {
			continue
		}

		msg, err := converter.BuildAlertRaised(a)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		for _, chatID := range svc.chatIDs() {
			if err := svc.client.SendMessage(ctx, chatID, msg); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errors.Join(errs...)
}

// AuditAppended is a no-op: chats only receive alerts.
func (svc *service) AuditAppended(context.Context, []model.AuditLogEntry) error { return nil }

func (svc *service) AddChatID(ctx context.Context, chatID int64) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if _, ok := svc.chats[chatID]; !ok {
		logger.Info(ctx, "Chat subscribed to alerts", logger.Int64("chat_id", chatID))
	}
	svc.chats[chatID] = struct{}{}
}

func (svc *service) chatIDs() []int64 {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	ids := make([]int64, 0, len(svc.chats))
	for id := range svc.chats {
		ids = append(ids, id)
	}
	return ids
}
