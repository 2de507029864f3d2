package config

import (
	"time"

	"github.com/IBM/sarama"

	"github.com/you-humble/mraos/internal/model"
	"github.com/you-humble/mraos/internal/simulation"
)

type Server interface {
	Host() string
	Port() int
	Address() string
	ReadTimeout() time.Duration
	ShutdownTimeout() time.Duration
}

type Logger interface {
	Level() string
	AsJSON() bool
}

type Simulation interface {
	Seed() uint64
	TickInterval() time.Duration
	SinkTimeout() time.Duration
	Counts() simulation.Counts
	Actor() model.Actor
}

type Kafka interface {
	Enabled() bool
	Brokers() []string
	EventsTopic() string
	CommandsTopic() string
	CommandsConsumerGroupID() string
	EventsProducerConfig() *sarama.Config
	CommandsConsumerConfig() *sarama.Config
}

type Telegram interface {
	Enabled() bool
	BotToken() string
	ChatIDs() []int64
	MinSeverity() model.AlertSeverity
}
