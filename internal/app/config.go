package app

import (
	"time"

	"github.com/rise-and-shine/cqrskit/event/bridge"
	"github.com/rise-and-shine/cqrskit/httpserver"
	"github.com/rise-and-shine/cqrskit/logger"
	"github.com/rise-and-shine/cqrskit/pagination"
	"github.com/rise-and-shine/cqrskit/pg"
	"github.com/rise-and-shine/cqrskit/tracing"
)

// Config is the configuration of the user service, loaded by cfgloader.
type Config struct {
	Service ServiceConfig `yaml:"service"`

	Logger  logger.Config     `yaml:"logger"`
	Tracing tracing.Config    `yaml:"tracing"`
	HTTP    httpserver.Config `yaml:"http"`

	// Postgres selects the bun repository. Users are kept in memory when unset.
	Postgres *pg.Config `yaml:"postgres"`

	Commands   CommandsConfig    `yaml:"commands"`
	Events     EventsConfig      `yaml:"events"`
	Pagination pagination.Config `yaml:"pagination"`
}

type ServiceConfig struct {
	Name    string `yaml:"name"    default:"userdemo"`
	Version string `yaml:"version" default:"0.1.0"`
}

type CommandsConfig struct {
	// Timeout bounds each command execution.
	Timeout time.Duration `yaml:"timeout" default:"5s" validate:"gt=0"`
	// StrictRouting rejects commands that more than one handler can serve.
	StrictRouting bool `yaml:"strict_routing"`
}

type EventsConfig struct {
	MaxRetries int           `yaml:"max_retries" default:"3"     validate:"min=1"`
	RetryDelay time.Duration `yaml:"retry_delay" default:"100ms" validate:"gte=0"`

	// Kafka forwards every user event to a topic when set.
	Kafka *bridge.KafkaConfig `yaml:"kafka"`
}
