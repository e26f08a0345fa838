package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"traindump/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a settings file",
		Long: `Validate a traindump settings file without reading any dump.

Checks:
  - YAML syntax
  - Start date against the date layout
  - Timezone, header mode and malformed entry policy
  - Webhook URLs and triggers
  - Dump file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Start date:   %s (%s)\n", cfg.StartDate, cfg.Location())
	fmt.Fprintf(w, "  Header mode:  %s\n", cfg.HeaderMode)
	fmt.Fprintf(w, "  On malformed: %s\n", cfg.OnMalformed)
	fmt.Fprintf(w, "  Webhooks:     %d\n", len(cfg.Webhooks))

	if info, err := os.Stat(cfg.DumpFile); err != nil {
		fmt.Fprintf(w, "\nWarning: dump file %s: %v\n", cfg.DumpFile, err)
	} else if info.IsDir() {
		fmt.Fprintf(w, "\nWarning: dump file %s is a directory\n", cfg.DumpFile)
	} else {
		fmt.Fprintf(w, "\nDump file: %s (%d bytes)\n", cfg.DumpFile, info.Size())
	}

	return nil
}
