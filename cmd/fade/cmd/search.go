package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/fade/internal/catalog"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	limit      int
	jsonOutput bool
	showScore  bool
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search installed applications",
		Long: `Scan the configured roots and print the applications matching query, best first.

Exact name matches rank above prefix matches, which rank above substring and
path matches. Shorter names win among equals.`,
		Example: `  fade search chrome
  fade search "visual studio" --limit 3
  fade search note --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of results (default from config)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&opts.showScore, "score", false, "Show relevance scores")

	return cmd
}

func runSearch(ctx context.Context, cmd *cobra.Command, query string, opts searchOptions) error {
	a, err := newApp(stderrLogs)
	if err != nil {
		return err
	}
	defer a.close()

	engine, err := a.scannedEngine(ctx)
	if err != nil {
		return err
	}
	defer engine.Stop()

	results := engine.Search(query, opts.limit)
	return printCandidates(cmd, results, opts.jsonOutput, opts.showScore)
}

func printCandidates(cmd *cobra.Command, results []catalog.Candidate, jsonOutput, withScore bool) error {
	out := newOutput(cmd)
	if jsonOutput {
		if results == nil {
			results = []catalog.Candidate{}
		}
		return out.JSON(results)
	}
	out.Candidates(results, withScore)
	return nil
}
