package cmd

import (
	"github.com/spf13/cobra"
)

func newRecentCmd() *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently launched applications",
		Long: `List the most recently launched applications.

History lives in memory only, so a fresh process lists the first indexed
applications by name instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecent(cmd, limit, jsonOutput)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of results (default from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	return cmd
}

func runRecent(cmd *cobra.Command, limit int, jsonOutput bool) error {
	a, err := newApp(stderrLogs)
	if err != nil {
		return err
	}
	defer a.close()

	engine, err := a.scannedEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer engine.Stop()

	return printCandidates(cmd, engine.Recent(limit), jsonOutput, false)
}
