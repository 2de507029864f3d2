package app

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/go-chi/chi/v5"
	"github.com/go-telegram/bot"

	tgclient "github.com/you-humble/mraos/internal/client/http/telegram"
	"github.com/you-humble/mraos/internal/config"
	"github.com/you-humble/mraos/internal/converter"
	cmdconsumer "github.com/you-humble/mraos/internal/service/consumer/command"
	service "github.com/you-humble/mraos/internal/service/factory"
	notifier "github.com/you-humble/mraos/internal/service/notifier"
	evproducer "github.com/you-humble/mraos/internal/service/producer/event"
	simulator "github.com/you-humble/mraos/internal/service/simulator"
	"github.com/you-humble/mraos/internal/simulation"
	thttp "github.com/you-humble/mraos/internal/transport/http/factory/v1"
	"github.com/you-humble/mraos/platform/closer"
	"github.com/you-humble/mraos/platform/kafka"
	"github.com/you-humble/mraos/platform/kafka/consumer"
	"github.com/you-humble/mraos/platform/kafka/middleware"
	"github.com/you-humble/mraos/platform/kafka/producer"
	"github.com/you-humble/mraos/platform/logger"
)

type Converter interface {
	cmdconsumer.Converter
	evproducer.Converter
}

type FactoryService interface {
	thttp.FactoryService
}

type CommandConsumer interface {
	RunCommandConsume(ctx context.Context) error
}

type Simulator interface {
	Run(ctx context.Context) error
}

type TelegramService interface {
	service.EventSink
	AddChatID(ctx context.Context, chatID int64)
}

type HTTPHandler interface {
	Routes(r chi.Router)
}

type di struct {
	engine service.Engine

	consumerGroup   sarama.ConsumerGroup
	commandsReader  kafka.Consumer
	commandConsumer CommandConsumer

	syncProducer  sarama.SyncProducer
	eventsWriter  kafka.Producer
	eventProducer service.EventSink

	conv Converter

	tgBot     *bot.Bot
	tgClient  notifier.MessageSender
	tgService TelegramService

	service   FactoryService
	simulator Simulator
	handler   HTTPHandler

	router *chi.Mux
}

func NewDI() *di { return &di{} }

func (d *di) Engine(_ context.Context) service.Engine {
	if d.engine == nil {
		cfg := config.C().Simulation

		d.engine = simulation.NewEngine(
			simulation.NewFaker(cfg.Seed()),
			cfg.Counts(),
		)
	}

	return d.engine
}

func (d *di) KafkaConverter(_ context.Context) Converter {
	if d.conv == nil {
		d.conv = converter.NewKafkaConverter()
	}

	return d.conv
}

func (d *di) ConsumerGroup(_ context.Context) sarama.ConsumerGroup {
	if d.consumerGroup == nil {
		cfg := config.C()

		consumerGroup, err := sarama.NewConsumerGroup(
			cfg.Kafka.Brokers(),
			cfg.Kafka.CommandsConsumerGroupID(),
			cfg.Kafka.CommandsConsumerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create consumer group: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka consumer group", func(ctx context.Context) error {
			return consumerGroup.Close()
		})

		d.consumerGroup = consumerGroup
	}

	return d.consumerGroup
}

func (d *di) CommandsReader(ctx context.Context) kafka.Consumer {
	if d.commandsReader == nil {
		d.commandsReader = consumer.NewConsumer(
			d.ConsumerGroup(ctx),
			[]string{
				config.C().Kafka.CommandsTopic(),
			},
			logger.L(),
			middleware.Recovery(logger.L()),
			middleware.Logging(logger.L()),
		)
	}

	return d.commandsReader
}

func (d *di) CommandConsumer(ctx context.Context) CommandConsumer {
	if d.commandConsumer == nil {
		d.commandConsumer = cmdconsumer.NewCommandConsumer(
			d.CommandsReader(ctx),
			d.KafkaConverter(ctx),
			d.FactoryService(ctx),
		)
	}

	return d.commandConsumer
}

func (d *di) SyncProducer(_ context.Context) sarama.SyncProducer {
	if d.syncProducer == nil {
		cfg := config.C()

		p, err := sarama.NewSyncProducer(
			cfg.Kafka.Brokers(),
			cfg.Kafka.EventsProducerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create sync producer: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka sync producer", func(ctx context.Context) error {
			return p.Close()
		})

		d.syncProducer = p
	}

	return d.syncProducer
}

func (d *di) EventsWriter(ctx context.Context) kafka.Producer {
	if d.eventsWriter == nil {
		d.eventsWriter = producer.NewProducer(
			d.SyncProducer(ctx),
			config.C().Kafka.EventsTopic(),
			logger.L(),
		)
	}

	return d.eventsWriter
}

func (d *di) EventProducer(ctx context.Context) service.EventSink {
	if d.eventProducer == nil {
		d.eventProducer = evproducer.NewEventProducer(
			d.EventsWriter(ctx),
			d.KafkaConverter(ctx),
		)
	}

	return d.eventProducer
}

func (d *di) TelegramBot(_ context.Context) *bot.Bot {
	if d.tgBot == nil {
		b, err := bot.New(config.C().Telegram.BotToken())
		if err != nil {
			panic(fmt.Sprintf("failed to create telegram bot: %s\n", err.Error()))
		}
		closer.AddNamed("Telegram Bot", func(ctx context.Context) error {
			_, err := b.Close(ctx)
			return err
		})

		d.tgBot = b
	}

	return d.tgBot
}

func (d *di) TelegramClient(ctx context.Context) notifier.MessageSender {
	if d.tgClient == nil {
		d.tgClient = tgclient.NewClient(d.TelegramBot(ctx))
	}

	return d.tgClient
}

func (d *di) TelegramService(ctx context.Context) TelegramService {
	if d.tgService == nil {
		cfg := config.C().Telegram

		d.tgService = notifier.NewNotifierService(
			d.TelegramClient(ctx),
			cfg.MinSeverity(),
			cfg.ChatIDs()...,
		)
	}

	return d.tgService
}

// EventSinks lists the sinks enabled by configuration.
func (d *di) EventSinks(ctx context.Context) []service.EventSink {
	cfg := config.C()

	var sinks []service.EventSink
	if cfg.Kafka.Enabled() {
		sinks = append(sinks, d.EventProducer(ctx))
	}
	if cfg.Telegram.Enabled() {
		sinks = append(sinks, d.TelegramService(ctx))
	}

	return sinks
}

func (d *di) FactoryService(ctx context.Context) FactoryService {
	if d.service == nil {
		d.service = service.NewFactoryService(
			d.Engine(ctx),
			config.C().Simulation.Actor(),
			d.EventSinks(ctx)...,
		).SetSinkTimeout(config.C().Simulation.SinkTimeout())
	}

	return d.service
}

func (d *di) Simulator(ctx context.Context) Simulator {
	if d.simulator == nil {
		d.simulator = simulator.NewSimulatorService(
			d.FactoryService(ctx),
			config.C().Simulation.TickInterval(),
		)
	}

	return d.simulator
}

func (d *di) FactoryHandler(ctx context.Context) HTTPHandler {
	if d.handler == nil {
		d.handler = thttp.NewFactoryHandler(d.FactoryService(ctx))
	}

	return d.handler
}

func (d *di) Router(_ context.Context) *chi.Mux {
	if d.router == nil {
		d.router = chi.NewRouter()
	}

	return d.router
}
