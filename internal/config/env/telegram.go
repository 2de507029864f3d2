package envconfig

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/you-humble/mraos/internal/model"
)

type telegramEnv struct {
	Enabled     bool    `env:"TELEGRAM_ENABLED" envDefault:"false"`
	BotToken    string  `env:"TELEGRAM_BOT_TOKEN"`
	ChatIDs     []int64 `env:"TELEGRAM_CHAT_IDS" envSeparator:","`
	MinSeverity string  `env:"TELEGRAM_MIN_SEVERITY" envDefault:"critical"`
}

type telegram struct {
	raw telegramEnv
}

func NewTelegramConfig() (*telegram, error) {
	var raw telegramEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}

	if raw.Enabled && raw.BotToken == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN is required when TELEGRAM_ENABLED is set")
	}
	if model.AlertSeverity(raw.MinSeverity).Rank() == 0 {
		return nil, fmt.Errorf("unknown TELEGRAM_MIN_SEVERITY %q", raw.MinSeverity)
	}

	return &telegram{raw: raw}, nil
}

func (cfg *telegram) Enabled() bool    { return cfg.raw.Enabled }
func (cfg *telegram) BotToken() string { return cfg.raw.BotToken }
func (cfg *telegram) ChatIDs() []int64 { return cfg.raw.ChatIDs }

func (cfg *telegram) MinSeverity() model.AlertSeverity {
	return model.AlertSeverity(cfg.raw.MinSeverity)
}
