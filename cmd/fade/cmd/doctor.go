package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/fade/internal/lock"
	"github.com/Aman-CERP/fade/internal/output"
	"github.com/Aman-CERP/fade/internal/preflight"
)

// errCheckFailed is returned when a required doctor check fails.
var errCheckFailed = errors.New("system check failed")

func newDoctorCmd() *cobra.Command {
	var (
		verbose    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that fade can scan and launch on this machine",
		Long: `Run diagnostics before relying on fade.

Checks:
  - Scan roots exist and are readable
  - The state directory (~/.fade) is writable
  - Whether another launcher window holds the instance lock
  - The helper that opens shortcuts is on PATH
  - File descriptor limits (Unix)

Use --verbose for detailed diagnostic information.
Use --json for machine-readable output.`,
		Example: `  fade doctor
  fade doctor --verbose
  fade doctor --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, verbose, jsonOutput)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed diagnostic info")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// doctorReport is the --json shape.
type doctorReport struct {
	Status   string                  `json:"status"`
	Checks   []preflight.CheckResult `json:"checks"`
	Warnings []string                `json:"warnings,omitempty"`
	Errors   []string                `json:"errors,omitempty"`
}

func runDoctor(cmd *cobra.Command, verbose, jsonOutput bool) error {
	a, err := newApp(stderrLogs)
	if err != nil {
		return err
	}
	defer a.close()

	checker := preflight.New(
		preflight.WithVerbose(verbose),
		preflight.WithOutput(cmd.OutOrStdout()),
	)

	results := checker.RunAll(cmd.Context(), preflight.Target{
		Roots:    a.cfg.EffectiveRoots(),
		StateDir: lock.DefaultDir(),
	})

	if jsonOutput {
		report := doctorReport{Status: checker.SummaryStatus(results), Checks: results}
		for _, r := range results {
			if r.IsCritical() {
				report.Errors = append(report.Errors, r.Name+": "+r.Message)
			} else if r.Status != preflight.StatusPass {
				report.Warnings = append(report.Warnings, r.Name+": "+r.Message)
			}
		}
		return output.New(cmd.OutOrStdout()).JSON(report)
	}

	checker.PrintResults(results)

	if checker.HasCriticalFailures(results) {
		return errCheckFailed
	}
	return nil
}
