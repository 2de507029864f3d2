package envconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/mraos/internal/model"
	"github.com/you-humble/mraos/internal/simulation"
)

func TestSimulationConfigDefaults(t *testing.T) {
	cfg, err := NewSimulationConfig()
	require.NoError(t, err)

	assert.Equal(t, uint64(0), cfg.Seed())
	assert.Equal(t, 5*time.Second, cfg.TickInterval())
	assert.Equal(t, 3*time.Second, cfg.SinkTimeout())
	assert.Equal(t, simulation.DefaultCounts(), cfg.Counts())
	assert.Equal(t, model.Actor{ID: "U-001", Name: "Supervisor"}, cfg.Actor())
}

func TestSimulationConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "zero tick interval", key: "SIM_TICK_INTERVAL", val: "0s"},
		{name: "zero sink timeout", key: "SIM_SINK_TIMEOUT", val: "0s"},
		{name: "negative operators", key: "SIM_OPERATORS", val: "-1"},
		{name: "not a number", key: "SIM_SEED", val: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := NewSimulationConfig()
			assert.Error(t, err)
		})
	}
}

func TestKafkaConfig(t *testing.T) {
	t.Run("disabled without brokers", func(t *testing.T) {
		t.Setenv("KAFKA_ENABLED", "false")

		cfg, err := NewKafkaConfig()
		require.NoError(t, err)
		assert.False(t, cfg.Enabled())
		assert.Equal(t, "mraos.events", cfg.EventsTopic())
		assert.Equal(t, "mraos.commands", cfg.CommandsTopic())
	})

	t.Run("enabled requires brokers", func(t *testing.T) {
		t.Setenv("KAFKA_ENABLED", "true")

		_, err := NewKafkaConfig()
		assert.Error(t, err)
	})

	t.Run("brokers are split on comma", func(t *testing.T) {
		t.Setenv("KAFKA_ENABLED", "true")
		t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

		cfg, err := NewKafkaConfig()
		require.NoError(t, err)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Brokers())
		assert.True(t, cfg.EventsProducerConfig().Producer.Return.Successes)
	})
}

func TestTelegramConfig(t *testing.T) {
	t.Run("parses chat ids and severity", func(t *testing.T) {
		t.Setenv("TELEGRAM_ENABLED", "true")
		t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
		t.Setenv("TELEGRAM_CHAT_IDS", "100,-200")
		t.Setenv("TELEGRAM_MIN_SEVERITY", "warning")

		cfg, err := NewTelegramConfig()
		require.NoError(t, err)
		assert.Equal(t, []int64{100, -200}, cfg.ChatIDs())
		assert.Equal(t, model.SeverityWarning, cfg.MinSeverity())
	})

	t.Run("enabled requires token", func(t *testing.T) {
		t.Setenv("TELEGRAM_ENABLED", "true")
		t.Setenv("TELEGRAM_BOT_TOKEN", "")

		_, err := NewTelegramConfig()
		assert.Error(t, err)
	})

	t.Run("unknown severity", func(t *testing.T) {
		t.Setenv("TELEGRAM_MIN_SEVERITY", "loud")

		_, err := NewTelegramConfig()
		assert.Error(t, err)
	})
}
