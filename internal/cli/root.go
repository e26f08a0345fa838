// Package cli provides the command-line interface for traindump.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"traindump/internal/cli/commands"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 2
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return run(NewRootCommand(), os.Args[1:], os.Stderr)
}

func run(rootCmd *cobra.Command, args []string, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors prevents Cobra from printing this itself
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitOK
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "traindump",
		Short: "Read train detector memory dumps",
		Long: `traindump reads the text memory dump of a train detector and reports each
recorded event as an absolute date and as the time elapsed since a start date.

A dump holds one record per line:

  [0] = 1000   # timestamp since last memory reset
  [4] = 16     # index of the current event address
  [8] = 128    # first event, seconds after the start date
  [16] = 0     # no further events`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log-level %q: %w", logLevel, err)
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Diagnostics level on stderr (debug|info|warn|error)")

	rootCmd.AddCommand(commands.NewReportCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
