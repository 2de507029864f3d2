package envconfig

import (
	"errors"

	"github.com/IBM/sarama"
	"github.com/caarlos0/env/v11"
)

type kafkaEnv struct {
	Enabled                 bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	Brokers                 []string `env:"KAFKA_BROKERS" envSeparator:","`
	EventsTopicName         string   `env:"KAFKA_EVENTS_TOPIC" envDefault:"mraos.events"`
	CommandsTopicName       string   `env:"KAFKA_COMMANDS_TOPIC" envDefault:"mraos.commands"`
	CommandsConsumerGroupID string   `env:"KAFKA_COMMANDS_CONSUMER_GROUP_ID" envDefault:"mraos-commands"`
}

type kafka struct {
	raw kafkaEnv
}

func NewKafkaConfig() (*kafka, error) {
	var raw kafkaEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	if raw.Enabled && len(raw.Brokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}
	return &kafka{raw: raw}, nil
}

func (cfg *kafka) Enabled() bool                   { return cfg.raw.Enabled }
func (cfg *kafka) Brokers() []string               { return cfg.raw.Brokers }
func (cfg *kafka) EventsTopic() string             { return cfg.raw.EventsTopicName }
func (cfg *kafka) CommandsTopic() string           { return cfg.raw.CommandsTopicName }
func (cfg *kafka) CommandsConsumerGroupID() string { return cfg.raw.CommandsConsumerGroupID }

func (cfg *kafka) EventsProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	return config
}

func (cfg *kafka) CommandsConsumerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Version = sarama.V4_0_0_0
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	return config
}
