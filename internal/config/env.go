package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// BotConfig is the process configuration read from the environment. Postgres
// and Redis connection details stay with their packages.
type BotConfig struct {
	AppPort      string        `envconfig:"APP_PORT" default:"3000" validate:"required,numeric"`
	AppEnv       string        `envconfig:"APP_ENV" default:"development" validate:"oneof=development test staging production"`
	DBHost       string        `envconfig:"DB_HOST" validate:"required"`
	DBName       string        `envconfig:"DB_NAME" validate:"required"`
	RedisAddress string        `envconfig:"REDIS_ADDRESS" validate:"required_if=SessionStore redis"`
	SessionStore string        `envconfig:"SESSION_STORE" default:"memory" validate:"oneof=memory redis"`
	SessionTTL   time.Duration `envconfig:"SESSION_TTL" default:"0s" validate:"gte=0"`
	MessageRate  float64       `envconfig:"MESSAGE_RATE" default:"1" validate:"gte=0"`
	MessageBurst int           `envconfig:"MESSAGE_BURST" default:"5" validate:"gte=0"`
	PairTimeout  time.Duration `envconfig:"WHATSAPP_PAIR_TIMEOUT" default:"2m" validate:"gt=0"`
	TelemetryURL string        `envconfig:"TELEMETRY_WEBHOOK_URL" validate:"omitempty,url"`
	SheetsURL    string        `envconfig:"SHEETS_WEBHOOK_URL" validate:"omitempty,url"`
}

func LoadBotConfig(validate *validator.Validate) (BotConfig, error) {
	var cfg BotConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return BotConfig{}, fmt.Errorf("failed to process env: %w", err)
	}

	if cfg.TelemetryURL == "" {
		cfg.TelemetryURL = cfg.SheetsURL
	}

	if err := validate.Struct(cfg); err != nil {
		return BotConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c BotConfig) IsProduction() bool {
	return c.AppEnv == "production"
}
