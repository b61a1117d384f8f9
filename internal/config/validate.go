package config

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug/info/warn/error (got %q)", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if c.Database.MaxConns < 1 {
		return fmt.Errorf("database.max_conns must be >= 1 (got %d)", c.Database.MaxConns)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns must not exceed max_conns (%d > %d)",
			c.Database.MinConns, c.Database.MaxConns)
	}

	if c.NATS.MaxDeliver < 1 {
		return fmt.Errorf("nats.max_deliver must be >= 1 (got %d)", c.NATS.MaxDeliver)
	}
	if c.Worker.Concurrency < 1 {
		return fmt.Errorf("worker.concurrency must be >= 1 (got %d)", c.Worker.Concurrency)
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(c.Scheduler.RoutineExpansionSpec); err != nil {
		return fmt.Errorf("scheduler.routine_expansion_spec: %w", err)
	}
	if _, err := parser.Parse(c.Scheduler.AlarmSweepSpec); err != nil {
		return fmt.Errorf("scheduler.alarm_sweep_spec: %w", err)
	}

	return nil
}
