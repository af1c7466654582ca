package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/fade/internal/catalog"
	"github.com/Aman-CERP/fade/internal/scanner"
	"github.com/Aman-CERP/fade/internal/ui"
)

// scanReport is the JSON form of a scan.
type scanReport struct {
	Roots      []string            `json:"roots"`
	Stats      scanner.Stats       `json:"stats"`
	Candidates []catalog.Candidate `json:"candidates,omitempty"`
}

func newScanCmd() *cobra.Command {
	var (
		list       bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan application roots and report what was found",
		Long: `Walk the configured roots once and print a summary.

Use this to check which roots exist and how many applications each run finds.
Nothing is persisted; every fade process scans on start.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(stderrLogs)
			if err != nil {
				return err
			}
			defer a.close()

			out := newOutput(cmd)
			opts := a.scanOptions()
			if !jsonOutput && ui.IsTTY(cmd.OutOrStdout()) {
				opts.Progress = func(done, total int) {
					out.Progress(done, total, "roots scanned")
				}
			}

			candidates, stats := scanner.New(a.logger).Scan(cmd.Context(), opts)
			if err := cmd.Context().Err(); err != nil {
				return fmt.Errorf("scan interrupted: %w", err)
			}

			if jsonOutput {
				report := scanReport{Roots: opts.Roots, Stats: stats}
				if list {
					report.Candidates = candidates
				}
				return out.JSON(report)
			}

			out.Successf("Found %d applications in %s", stats.Accepted, stats.Duration.Round(time.Millisecond))
			out.Statusf("📁", "Roots: %d (%d missing)", stats.Roots, stats.MissingRoots)
			out.Statusf("🔎", "Files visited: %d", stats.Visited)
			out.Statusf("🚫", "Filtered: %d, duplicates: %d, errors: %d", stats.Denied, stats.Duplicates, stats.Errors)
			if list {
				out.Newline()
				out.Candidates(candidates, false)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "List every application found")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")

	return cmd
}
