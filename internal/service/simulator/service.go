package service

import (
	"context"
	"time"

	"github.com/you-humble/mraos/internal/model"
	"github.com/you-humble/mraos/platform/logger"
)

type FactoryTicker interface {
	Tick(ctx context.Context) model.FactoryMetrics
}

type service struct {
	factory   FactoryTicker
	interval  time.Duration
	newTicker func(time.Duration) (<-chan time.Time, func())
}

func NewSimulatorService(factory FactoryTicker, interval time.Duration) *service {
	return &service{
		factory:  factory,
		interval: interval,
		newTicker: func(d time.Duration) (<-chan time.Time, func()) {
			t := time.NewTicker(d)
			return t.C, t.Stop
		},
	}
}

// Run advances the factory once per interval until ctx is done. Ticks never
// overlap: the next one starts only after the previous Tick returned.
func (s *service) Run(ctx context.Context) error {
	logger.Info(ctx, "Starting simulation loop", logger.Duration("interval", s.interval))

	c, stop := s.newTicker(s.interval)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Simulation loop stopped")
			return nil
		case <-c:
			start := time.Now()
			m := s.factory.Tick(ctx)

			logger.Debug(ctx, "Simulation tick",
				logger.Duration("took", time.Since(start)),
				logger.Int("idle_operators", m.IdleOperators),
				logger.Int("idle_machines", m.IdleMachines),
				logger.Int("active_alerts", m.ActiveAlerts),
				logger.Float64("utilization", m.UtilizationPercentage),
			)
		}
	}
}
