package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"traindump/pkg/config"
	"traindump/pkg/detector"
	"traindump/pkg/report"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output      string
	SampleSize  int
	WriteConfig string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <dump-file>",
		Short: "Suggest the header mode for a dump file",
		Long: `Inspect the first lines of a dump file and suggest which header mode to
read it with.

If the first two lines are records, the dump carries the reset timestamp and
event index header (aware). If they are plain text, they are dropped
(skip-first-two-lines).

Optionally generates a starter settings file with --write-config.

Example:
  traindump detect 2020-12-04_20:54:00_v2.dump
  traindump detect -w traindump.yaml station-4.dump`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 100, "Number of lines to sample")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter settings to file (will not overwrite)")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	dumpFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := os.Stat(dumpFile); os.IsNotExist(err) {
		return fmt.Errorf("dump file not found: %s", dumpFile)
	}

	d := detector.New(detector.WithSampleSize(opts.SampleSize))

	result, err := d.DetectFromFile(ctx, dumpFile)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	w := cmd.OutOrStdout()

	if opts.WriteConfig != "" {
		if err := writeStarterConfig(w, result, dumpFile, opts.WriteConfig); err != nil {
			return err
		}
	}

	switch opts.Output {
	case "json":
		return outputDetectJSON(w, result, dumpFile)
	default:
		return outputDetectText(w, result, dumpFile)
	}
}

func outputDetectText(w io.Writer, result *detector.DetectionResult, dumpFile string) error {
	fmt.Fprintln(w, "=== Header Mode Detection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: %s\n", dumpFile)
	fmt.Fprintf(w, "Lines sampled: %d\n", result.SampledLines)
	fmt.Fprintf(w, "Records: %d\n", result.RecordLines)
	if result.MalformedLines > 0 {
		fmt.Fprintf(w, "Malformed records: %d\n", result.MalformedLines)
	}
	if result.SentinelLine > 0 {
		fmt.Fprintf(w, "Sentinel (value 0) at line: %d\n", result.SentinelLine)
	}
	fmt.Fprintln(w)

	if !result.HasSuggestion() {
		fmt.Fprintln(w, "No header mode detected: "+result.Reason+".")
		return nil
	}

	fmt.Fprintf(w, "Suggested header mode: %s\n", result.Suggested)
	fmt.Fprintf(w, "Reason: %s\n", result.Reason)
	fmt.Fprintln(w)

	if result.Ambiguous {
		fmt.Fprintln(w, "WARNING: the header lines mix records and text.")
		fmt.Fprintln(w, "Check the first lines manually before trusting the report.")
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "--- Configuration snippet (copy to your settings file) ---")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "header_mode: %s\n", result.Suggested)
	fmt.Fprintln(w)

	return nil
}

// JSONDetection is the JSON output of the detect command.
type JSONDetection struct {
	File           string            `json:"file"`
	SampledLines   int               `json:"sampled_lines"`
	RecordLines    int               `json:"record_lines"`
	MalformedLines int               `json:"malformed_lines"`
	SentinelLine   int               `json:"sentinel_line,omitempty"`
	Suggested      report.HeaderMode `json:"suggested_header_mode,omitempty"`
	Ambiguous      bool              `json:"ambiguous,omitempty"`
	Reason         string            `json:"reason"`
}

func outputDetectJSON(w io.Writer, result *detector.DetectionResult, dumpFile string) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(JSONDetection{
		File:           dumpFile,
		SampledLines:   result.SampledLines,
		RecordLines:    result.RecordLines,
		MalformedLines: result.MalformedLines,
		SentinelLine:   result.SentinelLine,
		Suggested:      result.Suggested,
		Ambiguous:      result.Ambiguous,
		Reason:         result.Reason,
	})
}

// starterConfig is the subset of config.Config written by --write-config.
type starterConfig struct {
	StartDate   string                 `yaml:"start_date"`
	DumpFile    string                 `yaml:"dump_file"`
	Timezone    string                 `yaml:"timezone"`
	HeaderMode  report.HeaderMode      `yaml:"header_mode"`
	OnMalformed report.MalformedPolicy `yaml:"on_malformed"`
}

// writeStarterConfig generates a starter settings file with the detected mode.
func writeStarterConfig(w io.Writer, result *detector.DetectionResult, dumpFile, configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	if !result.HasSuggestion() {
		return fmt.Errorf("cannot generate config: %s", result.Reason)
	}

	data, err := generateStarterConfig(dumpFile, result)
	if err != nil {
		return err
	}

	// #nosec G306 - settings file doesn't need restrictive permissions
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(w, "Wrote starter config to: %s\n\n", configPath)
	return nil
}

// generateStarterConfig renders a YAML settings file for dumpFile.
func generateStarterConfig(dumpFile string, result *detector.DetectionResult) ([]byte, error) {
	absDumpFile := dumpFile
	if abs, err := filepath.Abs(dumpFile); err == nil {
		absDumpFile = abs
	}

	body, err := yaml.Marshal(starterConfig{
		StartDate:   config.DefaultStartDate,
		DumpFile:    absDumpFile,
		Timezone:    config.DefaultTimezone,
		HeaderMode:  result.Suggested,
		OnMalformed: config.DefaultOnMalformed,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering config: %w", err)
	}

	header := fmt.Sprintf("# traindump settings\n# Generated by: traindump detect\n# %s\n# Set start_date to the moment the detector was armed.\n\n", result.Reason)
	return append([]byte(header), body...), nil
}
