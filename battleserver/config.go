package battleserver

import (
	"context"
	"fmt"
	"time"

	"github.com/AmirRezaM75/algobattle/scoring"
	"github.com/caarlos0/env/v11"
)

// Config contains all configuration options for the battle server
type Config struct {
	// Context controls server shutdown. When cancelled, the hub disconnects
	// every listener and running battles stop before their next strategy.
	Context context.Context

	Environment string `env:"APP_ENV"  envDefault:"development"`
	Address     string `env:"HTTP_ADDR" envDefault:":8080"`

	// DispatchBufferSize controls how many outbound events can be queued
	// before broadcasting blocks
	DispatchBufferSize int `env:"DISPATCH_BUFFER_SIZE" envDefault:"500"`

	Battle    BattleConfig
	Rooms     RoomsConfig
	Storage   StorageConfig
	Publisher PublisherConfig
	Router    RouterConfig
}

// BattleConfig contains execution and scoring settings
type BattleConfig struct {
	StrategyTimeout   time.Duration `env:"STRATEGY_TIMEOUT"         envDefault:"5s"`
	CorrectnessWeight float64       `env:"SCORE_CORRECTNESS_WEIGHT" envDefault:"0.5"`
	TimeWeight        float64       `env:"SCORE_TIME_WEIGHT"        envDefault:"0.3"`
	MemoryWeight      float64       `env:"SCORE_MEMORY_WEIGHT"      envDefault:"0.2"`
}

func (battleConfig BattleConfig) Weights() scoring.Weights {
	return scoring.Weights{
		Correctness: battleConfig.CorrectnessWeight,
		Time:        battleConfig.TimeWeight,
		Memory:      battleConfig.MemoryWeight,
	}
}

// RoomsConfig contains room expiry settings
type RoomsConfig struct {
	MaxAge        time.Duration `env:"ROOM_MAX_AGE"        envDefault:"24h"`
	SweepInterval time.Duration `env:"ROOM_SWEEP_INTERVAL" envDefault:"10m"`
}

// StorageConfig contains the SQLite location. An empty path disables
// persistence.
type StorageConfig struct {
	SQLitePath string `env:"SQLITE_PATH"`
}

// PublisherConfig contains configuration for the publisher service
type PublisherConfig struct {
	Redis RedisConfig
}

// RedisConfig contains Redis connection configuration. An empty host
// disables publishing.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST"`
	Port     string `env:"REDIS_PORT"     envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	Channel  string `env:"REDIS_CHANNEL"  envDefault:"battle-service"`
}

// RouterConfig contains router configuration
type RouterConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// LoadConfig reads the configuration from environment variables.
func LoadConfig() (Config, error) {
	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return config, nil
}

func (config Config) Validate() error {
	if err := config.Battle.Weights().Validate(); err != nil {
		return err
	}

	if config.Battle.StrategyTimeout <= 0 {
		return fmt.Errorf("strategy timeout must be positive, got %s", config.Battle.StrategyTimeout)
	}

	if config.Rooms.SweepInterval <= 0 {
		return fmt.Errorf("room sweep interval must be positive, got %s", config.Rooms.SweepInterval)
	}

	return nil
}
