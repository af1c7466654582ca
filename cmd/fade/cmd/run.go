package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	ferrors "github.com/Aman-CERP/fade/internal/errors"
	"github.com/Aman-CERP/fade/internal/launcher"
)

func newRunCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run <query>",
		Short: "Launch the best match for query",
		Long:  `Search installed applications and start the top-ranked result.`,
		Example: `  fade run chrome
  fade run calc --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd.Context(), cmd, strings.Join(args, " "), nil, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the match without launching it")

	return cmd
}

func runRun(ctx context.Context, cmd *cobra.Command, query string, d launcher.Dispatcher, dryRun bool) error {
	if strings.TrimSpace(query) == "" {
		return ferrors.ValidationError("query cannot be empty or whitespace only", nil).
			WithSuggestion("Run 'fade recent' to list recently launched applications.")
	}

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

	results := engine.Search(query, 1)
	if len(results) == 0 {
		return ferrors.New(ferrors.ErrCodeUnknownPath, "no application matches \""+query+"\"", nil).
			WithSuggestion("Run 'fade scan --list' to see what was indexed.")
	}

	if d == nil {
		d = launcher.New(nil, a.logger)
	}

	top := results[0]
	out := newOutput(cmd)
	if dryRun {
		out.Candidates(results, true)
		return nil
	}

	if err := launcher.LaunchAndRecord(ctx, d, engine, top); err != nil {
		return err
	}
	out.Successf("Launched %s", top.DisplayName)
	return nil
}
