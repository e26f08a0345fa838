package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"traindump/pkg/report"
)

// Load reads and validates a settings file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.ApplyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors and loads the timezone.
// The start date is checked against the layout so a bad date is reported
// before any dump is opened.
func Validate(cfg *Config) error {
	if cfg.DateLayout == "" {
		cfg.DateLayout = report.DefaultDateLayout
	}

	loc, err := loadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	cfg.location = loc

	if cfg.StartDate == "" {
		return errors.New("start_date: a start date is required")
	}
	if _, err := report.ParseStartDate(cfg.StartDate, cfg.DateLayout, loc); err != nil {
		return fmt.Errorf("start_date: %w", err)
	}

	if cfg.HeaderMode == "" {
		cfg.HeaderMode = DefaultHeaderMode
	}
	if !cfg.HeaderMode.Valid() {
		return fmt.Errorf("header_mode: invalid value %q (must be %s or %s)",
			cfg.HeaderMode, report.HeaderModeAware, report.HeaderModeSkipLines)
	}

	if cfg.OnMalformed == "" {
		cfg.OnMalformed = DefaultOnMalformed
	}
	if !cfg.OnMalformed.Valid() {
		return fmt.Errorf("on_malformed: invalid value %q (must be %s or %s)",
			cfg.OnMalformed, report.MalformedFail, report.MalformedSkip)
	}

	for i := range cfg.Webhooks {
		if err := validateWebhook(&cfg.Webhooks[i]); err != nil {
			name := cfg.Webhooks[i].Name
			if name == "" {
				name = cfg.Webhooks[i].URL
			}
			return fmt.Errorf("webhooks[%d] (%s): %w", i, name, err)
		}
	}

	return nil
}

func loadLocation(name string) (*time.Location, error) {
	switch name {
	case "", "Local", "local":
		return time.Local, nil
	case "UTC", "utc":
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}

func validateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("url must have a host")
	}

	wh.Token = expandEnvVar(wh.Token)

	if wh.Trigger != "" {
		if err := ValidateTrigger(wh.Trigger); err != nil {
			return err
		}
	} else {
		wh.Trigger = WebhookTriggerOnEvents
	}

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	return nil
}

// ValidateTrigger checks that t is a known webhook trigger.
func ValidateTrigger(t WebhookTrigger) error {
	switch t {
	case WebhookTriggerOnEvents, WebhookTriggerAlways, WebhookTriggerNever:
		return nil
	default:
		return fmt.Errorf("invalid trigger %q (must be on_events, always, or never)", t)
	}
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}

	if strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${") {
		return os.Getenv(s[1:])
	}

	return s
}
