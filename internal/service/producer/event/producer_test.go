package evproducer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/mraos/internal/converter"
	"github.com/you-humble/mraos/internal/model"
	"github.com/you-humble/mraos/platform/kafka"
)

type sent struct {
	key     string
	value   []byte
	headers []kafka.Header
}

type fakeProducer struct {
	failKey string
	sent    []sent
}

func (p *fakeProducer) Send(_ context.Context, key, value []byte, headers ...kafka.Header) error {
	if string(key) == p.failKey {
		return errors.New("broker unavailable")
	}
	p.sent = append(p.sent, sent{key: string(key), value: value, headers: headers})
	return nil
}

func TestService_AlertsRaised(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		failKey  string
		wantSent []string
		wantErr  string
	}{
		{name: "one message per alert", wantSent: []string{"a-1", "a-2"}},
		{name: "failed send does not stop the rest", failKey: "a-1", wantSent: []string{"a-2"}, wantErr: "broker unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := &fakeProducer{failKey: tt.failKey}
			svc := NewEventProducer(p, converter.NewKafkaConverter())

			err := svc.AlertsRaised(context.Background(), []model.Alert{
				{ID: "a-1", Severity: model.SeverityWarning},
				{ID: "a-2", Severity: model.SeverityCritical},
			})
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			keys := make([]string, 0, len(p.sent))
			for _, s := range p.sent {
				keys = append(keys, s.key)
				require.Len(t, s.headers, 1)
				assert.Equal(t, "kind", s.headers[0].Key)
				assert.Equal(t, "alert_raised", string(s.headers[0].Value))
				assert.NotEmpty(t, s.value)
			}
			assert.Equal(t, tt.wantSent, keys)
		})
	}
}

func TestService_AuditAppended(t *testing.T) {
	t.Parallel()

	p := &fakeProducer{}
	svc := NewEventProducer(p, converter.NewKafkaConverter())

	err := svc.AuditAppended(context.Background(), []model.AuditLogEntry{
		{ID: "AUDIT-00051", EntityID: "O-100-WO-4500"},
	})
	require.NoError(t, err)
	require.Len(t, p.sent, 1)
	assert.Equal(t, "O-100-WO-4500", p.sent[0].key)
	assert.Equal(t, "audit_appended", string(p.sent[0].headers[0].Value))
}
