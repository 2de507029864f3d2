package envconfig

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/you-humble/mraos/internal/model"
	"github.com/you-humble/mraos/internal/simulation"
)

type simulationEnv struct {
	// Zero picks a random seed.
	Seed         uint64        `env:"SIM_SEED" envDefault:"0"`
	TickInterval time.Duration `env:"SIM_TICK_INTERVAL" envDefault:"5s"`
	SinkTimeout  time.Duration `env:"SIM_SINK_TIMEOUT" envDefault:"3s"`

	Operators    int `env:"SIM_OPERATORS" envDefault:"25"`
	Machines     int `env:"SIM_MACHINES" envDefault:"20"`
	WorkOrders   int `env:"SIM_WORK_ORDERS" envDefault:"30"`
	Materials    int `env:"SIM_MATERIALS" envDefault:"20"`
	AuditEntries int `env:"SIM_AUDIT_ENTRIES" envDefault:"50"`

	SupervisorID   string `env:"SIM_SUPERVISOR_ID" envDefault:"U-001"`
	SupervisorName string `env:"SIM_SUPERVISOR_NAME" envDefault:"Supervisor"`
}

type simulationCfg struct {
	raw simulationEnv
}

func NewSimulationConfig() (*simulationCfg, error) {
	var raw simulationEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}

	if raw.TickInterval <= 0 {
		return nil, errors.New("SIM_TICK_INTERVAL must be positive")
	}
	if raw.SinkTimeout <= 0 {
		return nil, errors.New("SIM_SINK_TIMEOUT must be positive")
	}
	if raw.Operators < 0 || raw.Machines < 0 || raw.WorkOrders < 0 || raw.Materials < 0 || raw.AuditEntries < 0 {
		return nil, errors.New("simulation counts must not be negative")
	}

	return &simulationCfg{raw: raw}, nil
}

func (cfg *simulationCfg) Seed() uint64                { return cfg.raw.Seed }
func (cfg *simulationCfg) TickInterval() time.Duration { return cfg.raw.TickInterval }
func (cfg *simulationCfg) SinkTimeout() time.Duration  { return cfg.raw.SinkTimeout }

func (cfg *simulationCfg) Counts() simulation.Counts {
	return simulation.Counts{
		Operators:    cfg.raw.Operators,
		Machines:     cfg.raw.Machines,
		WorkOrders:   cfg.raw.WorkOrders,
		Materials:    cfg.raw.Materials,
		AuditEntries: cfg.raw.AuditEntries,
	}
}

func (cfg *simulationCfg) Actor() model.Actor {
	return model.Actor{ID: cfg.raw.SupervisorID, Name: cfg.raw.SupervisorName}
}
