package config

import (
	"cfb-trends-go/database"
	"cfb-trends-go/logging"
)

// ToDatabaseConfig converts Config to database.Config
func (c *Config) ToDatabaseConfig() database.Config {
	return database.Config{
		Host:        c.Database.Host,
		Port:        c.Database.Port,
		Username:    c.Database.Username,
		Password:    c.Database.Password,
		Database:    c.Database.Database,
		PostgresURL: c.Database.PostgresURL,
		Timeout:     c.Database.Timeout,
	}
}

// ToLoggingConfig converts Config to logging.Config
func (c *Config) ToLoggingConfig() logging.Config {
	opts := logging.Config{
		Level:       c.Logging.Level,
		Prefix:      c.Logging.Prefix,
		EnableColor: c.Logging.EnableColor,
	}
	if c.ShouldLogToFile() {
		opts.LogDir = c.Logging.LogDir
	}
	return opts
}

// ShouldLogToFile returns whether file logging is enabled
func (c *Config) ShouldLogToFile() bool {
	return c.Logging.EnableFile && c.Logging.LogDir != ""
}
