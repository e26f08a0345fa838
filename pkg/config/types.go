// Package config provides settings loading and validation for traindump.
package config

import (
	"time"

	"traindump/pkg/report"
)

// Config is the root settings structure loaded from YAML.
type Config struct {
	// StartDate is the reference date event offsets are added to.
	StartDate string `yaml:"start_date"`

	// DumpFile is the dump to read when none is given on the command line.
	DumpFile string `yaml:"dump_file"`

	// DateLayout is the Go time layout for the start date and event dates.
	// See https://pkg.go.dev/time#pkg-constants for format.
	DateLayout string `yaml:"date_layout"`

	// Timezone is an IANA zone name, "Local" or "UTC".
	Timezone string `yaml:"timezone"`

	// HeaderMode is aware or skip-first-two-lines.
	HeaderMode report.HeaderMode `yaml:"header_mode"`

	// OnMalformed is fail or skip.
	OnMalformed report.MalformedPolicy `yaml:"on_malformed"`

	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`

	// location is the loaded Timezone (populated during validation).
	location *time.Location
}

// Location returns the loaded timezone.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnEvents fires only when at least one event was read (default).
	WebhookTriggerOnEvents WebhookTrigger = "on_events"
	// WebhookTriggerAlways fires after every report.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint the JSON report is posted to.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token. ${VAR} and $VAR are expanded.
	Token string `yaml:"token,omitempty"`

	// Trigger defaults to "on_events" if not specified.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout defaults to 10s if not specified.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
