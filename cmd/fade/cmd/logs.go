package cmd

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/fade/internal/logging"
	"github.com/Aman-CERP/fade/internal/ui"
)

type logsOptions struct {
	lines   int
	level   string
	filter  string
	logFile string
}

func newLogsCmd() *cobra.Command {
	var opts logsOptions

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent log entries",
		Long: `Show the last entries of fade's log file.

The log file is written when fade runs with --debug.`,
		Example: `  fade logs
  fade logs -n 100
  fade logs --level warn
  fade logs --filter launch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogs(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.lines, "lines", "n", 50, "Number of entries to show")
	cmd.Flags().StringVar(&opts.level, "level", "", "Minimum level (debug|info|warn|error)")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "Only show entries matching pattern (regex)")
	cmd.Flags().StringVar(&opts.logFile, "file", "", "Path to log file")

	return cmd
}

func runLogs(cmd *cobra.Command, opts logsOptions) error {
	path, err := logging.FindLogFile(opts.logFile)
	if err != nil {
		return err
	}

	var pattern *regexp.Regexp
	if opts.filter != "" {
		pattern, err = regexp.Compile(opts.filter)
		if err != nil {
			return fmt.Errorf("invalid filter pattern: %w", err)
		}
	}

	entries, err := logging.Tail(path, opts.lines, opts.level)
	if err != nil {
		return err
	}

	plain := noColor || ui.DetectNoColor() || !ui.IsTTY(cmd.OutOrStdout())

	var sb strings.Builder
	for _, e := range entries {
		if pattern != nil && !pattern.MatchString(e.Raw) {
			continue
		}
		sb.WriteString(logging.FormatEntry(e, plain))
		sb.WriteString("\n")
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), sb.String())
	return err
}
