package config

import (
	"os"
	"time"

	"traindump/pkg/report"
)

// Default values for configuration.
const (
	DefaultStartDate      = "2020-12-04 20:54:00"
	DefaultDumpFile       = "2020-12-04_20:54:00_v2.dump"
	DefaultTimezone       = "Local"
	DefaultHeaderMode     = report.HeaderModeAware
	DefaultOnMalformed    = report.MalformedFail
	DefaultWebhookTimeout = 10 * time.Second
)

// Environment variable names.
const (
	EnvStartDate  = "TRAINDUMP_START_DATE"
	EnvDumpFile   = "TRAINDUMP_DUMP_FILE"
	EnvTimezone   = "TRAINDUMP_TIMEZONE"
	EnvHeaderMode = "TRAINDUMP_HEADER_MODE"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		StartDate:   DefaultStartDate,
		DumpFile:    DefaultDumpFile,
		DateLayout:  report.DefaultDateLayout,
		Timezone:    DefaultTimezone,
		HeaderMode:  DefaultHeaderMode,
		OnMalformed: DefaultOnMalformed,
	}
}

// ApplyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvironmentOverrides() {
	if v := os.Getenv(EnvStartDate); v != "" {
		c.StartDate = v
	}
	if v := os.Getenv(EnvDumpFile); v != "" {
		c.DumpFile = v
	}
	if v := os.Getenv(EnvTimezone); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv(EnvHeaderMode); v != "" {
		c.HeaderMode = report.HeaderMode(v)
	}
}
