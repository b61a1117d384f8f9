package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	NATS      NATSConfig      `yaml:"nats"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Worker    WorkerConfig    `yaml:"worker"`
	Log       LogConfig       `yaml:"log"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// NATSConfig holds the JetStream job-queue settings.
type NATSConfig struct {
	URL        string        `yaml:"url"         env:"NATS_URL"         env-default:"nats://127.0.0.1:4222"`
	MaxDeliver int           `yaml:"max_deliver" env:"NATS_MAX_DELIVER" env-default:"5"`
	AckWait    time.Duration `yaml:"ack_wait"    env:"NATS_ACK_WAIT"    env-default:"1m"`
	MaxAge     time.Duration `yaml:"max_age"     env:"NATS_MAX_AGE"     env-default:"72h"`
}

// AnthropicConfig holds the language-model gateway settings. An empty API
// key disables the model; brain-dump items then keep a static verdict.
type AnthropicConfig struct {
	APIKey string `yaml:"api_key" env:"ANTHROPIC_API_KEY"`
	Model  string `yaml:"model"   env:"ANTHROPIC_MODEL" env-default:"claude-3-5-haiku-latest"`
}

// SchedulerConfig holds the cron specs for the daily loops.
type SchedulerConfig struct {
	RoutineExpansionSpec string `yaml:"routine_expansion_spec" env:"SCHED_ROUTINE_EXPANSION_SPEC" env-default:"5 0 * * *"`
	AlarmSweepSpec       string `yaml:"alarm_sweep_spec"       env:"SCHED_ALARM_SWEEP_SPEC"       env-default:"* * * * *"`
}

// WorkerConfig holds the background-worker settings.
type WorkerConfig struct {
	Concurrency int `yaml:"concurrency" env:"WORKER_CONCURRENCY" env-default:"4"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
