package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"traindump/pkg/config"
	"traindump/pkg/dump"
	"traindump/pkg/output"
	"traindump/pkg/report"
	"traindump/pkg/webhook"
)

// ReportOptions holds command-line options for the report command.
type ReportOptions struct {
	ConfigFile  string
	StartDate   string
	HeaderMode  string
	OnMalformed string
	Timezone    string
	DateLayout  string
	Output      string
	Verbose     bool
	Quiet       bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewReportCommand creates the report command.
func NewReportCommand() *cobra.Command {
	opts := &ReportOptions{}

	cmd := &cobra.Command{
		Use:   "report [dump-file]",
		Short: "Print the event report for a dump file",
		Long: `Read a train detector memory dump and print one line per recorded event,
with its absolute date and the time elapsed since the start date.

Header modes:
  aware                 First record is the last-reset timestamp, second is
                        the event index (discarded), the rest are events
  skip-first-two-lines  The first two lines are dropped, every record after
                        them is an event

Reading stops at the first record whose value is 0.

Defaults:
  start date  ` + config.DefaultStartDate + `
  dump file   ` + config.DefaultDumpFile + `

Exit codes:
  0 - Report printed
  2 - Invalid start date, unreadable dump, malformed entry or bad config`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Settings file (YAML)")
	cmd.Flags().StringVarP(&opts.StartDate, "start", "s", "", "Start date (YYYY-MM-DD HH:MM:SS)")
	cmd.Flags().StringVar(&opts.HeaderMode, "header-mode", "", "Dump layout (aware|skip-first-two-lines)")
	cmd.Flags().StringVar(&opts.OnMalformed, "on-malformed", "", "Malformed entry policy (fail|skip)")
	cmd.Flags().StringVar(&opts.Timezone, "timezone", "", "Timezone of the start date (Local, UTC or IANA name)")
	cmd.Flags().StringVar(&opts.DateLayout, "date-layout", "", "Go time layout for the start date and event dates")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show skipped entries and why reading stopped")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no events")

	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", string(config.WebhookTriggerOnEvents), "When to fire webhook (on_events|always|never)")

	return cmd
}

func runReport(cmd *cobra.Command, args []string, opts *ReportOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := zerolog.Ctx(ctx)

	cfg, err := resolveConfig(ctx, cmd, opts)
	if err != nil {
		return err
	}

	dumpPath := cfg.DumpFile
	if len(args) == 1 {
		dumpPath = args[0]
	}

	webhooks, err := collectWebhooks(cfg, opts)
	if err != nil {
		return err
	}

	formatter, err := output.New(opts.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	// The start date is parsed before the dump is opened.
	start, err := report.ParseStartDate(cfg.StartDate, cfg.DateLayout, cfg.Location())
	if err != nil {
		return err
	}

	gen, err := report.NewGenerator(start,
		report.WithHeaderMode(cfg.HeaderMode),
		report.WithMalformedPolicy(cfg.OnMalformed),
		report.WithDateLayout(cfg.DateLayout),
	)
	if err != nil {
		return err
	}

	src, err := dump.Open(dumpPath, gen.SourceOptions()...)
	if err != nil {
		return err
	}
	logger.Debug().
		Str("file", dumpPath).
		Int("lines", src.Lines()).
		Str("header_mode", string(cfg.HeaderMode)).
		Msg("dump loaded")

	r, err := gen.Run(ctx, src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dumpPath, err)
	}

	if err := formatter.Format(ctx, r, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Webhook failures are logged and never fail the report.
	sendWebhooks(ctx, webhooks, r)

	return nil
}

// resolveConfig builds the effective settings: defaults, then the settings
// file or environment, then flags.
func resolveConfig(ctx context.Context, cmd *cobra.Command, opts *ReportOptions) (*config.Config, error) {
	var cfg *config.Config
	if opts.ConfigFile != "" {
		loaded, err := config.Load(ctx, opts.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
		zerolog.Ctx(ctx).Debug().Str("config", opts.ConfigFile).Msg("settings file loaded")
	} else {
		cfg = config.DefaultConfig()
		cfg.ApplyEnvironmentOverrides()
	}

	flags := cmd.Flags()
	if flags.Changed("start") {
		cfg.StartDate = opts.StartDate
	}
	if flags.Changed("header-mode") {
		cfg.HeaderMode = report.HeaderMode(opts.HeaderMode)
	}
	if flags.Changed("on-malformed") {
		cfg.OnMalformed = report.MalformedPolicy(opts.OnMalformed)
	}
	if flags.Changed("timezone") {
		cfg.Timezone = opts.Timezone
	}
	if flags.Changed("date-layout") {
		cfg.DateLayout = opts.DateLayout
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// collectWebhooks merges settings file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *ReportOptions) ([]config.WebhookConfig, error) {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnEvents
		}
		if err := config.ValidateTrigger(trigger); err != nil {
			return nil, fmt.Errorf("webhook-trigger: %w", err)
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks, nil
}

// sendWebhooks posts the report to every webhook whose trigger matches.
func sendWebhooks(ctx context.Context, webhooks []config.WebhookConfig, r *report.Report) {
	if len(webhooks) == 0 {
		return
	}

	logger := zerolog.Ctx(ctx)
	client := webhook.NewClient()

	for _, wh := range webhooks {
		if !webhook.ShouldFire(wh.Trigger, r) {
			continue
		}

		resp := client.Send(ctx, r, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			logger.Info().
				Str("webhook", name).
				Int("status", resp.StatusCode).
				Dur("duration", resp.Duration).
				Msg("webhook sent")
		} else {
			logger.Warn().Str("webhook", name).Err(resp.Error).Msg("webhook failed")
		}
	}
}
