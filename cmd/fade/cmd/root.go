// Package cmd provides the CLI commands for fade.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/fade/internal/config"
	ferrors "github.com/Aman-CERP/fade/internal/errors"
	"github.com/Aman-CERP/fade/internal/launcher"
	"github.com/Aman-CERP/fade/internal/lock"
	"github.com/Aman-CERP/fade/internal/output"
	"github.com/Aman-CERP/fade/internal/profiling"
	"github.com/Aman-CERP/fade/internal/ui"
	"github.com/Aman-CERP/fade/pkg/version"
)

// Global flags
var (
	debugMode bool
	noColor   bool
)

// Profiling flags
var (
	profileCPU   string
	profileMem   string
	profileTrace string
	profiler     *profiling.Profiler
)

// NewRootCmd creates the root command for the fade CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fade",
		Short: "Find and launch local applications",
		Long: `fade indexes the applications installed on this machine and finds them as you type.

Run 'fade' in a terminal to open the interactive launcher. Type to filter,
use the arrow keys to pick a result and press enter to start it.

The index is rebuilt in the background on every start. Press ctrl+r in the
launcher to rescan.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLauncher(cmd)
		},
	}

	cmd.SetVersionTemplate("fade version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.fade/logs/")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().StringVar(&profileCPU, "profile-cpu", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&profileMem, "profile-mem", "", "Write memory profile to file")
	cmd.PersistentFlags().StringVar(&profileTrace, "profile-trace", "", "Write execution trace to file")

	cmd.PersistentPreRunE = startProfiling
	cmd.PersistentPostRunE = stopProfiling

	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newRecentCmd())
	cmd.AddCommand(newLaunchCmd())
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newLogsCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command with a context canceled on interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprint(root.ErrOrStderr(), ferrors.FormatForCLI(err))
	}
	return err
}

// startProfiling starts CPU and trace profiling if the flags are set.
func startProfiling(_ *cobra.Command, _ []string) error {
	profiler = profiling.NewProfiler()

	if profileCPU != "" {
		if err := profiler.StartCPU(profileCPU); err != nil {
			return err
		}
	}
	if profileTrace != "" {
		if err := profiler.StartTrace(profileTrace); err != nil {
			profiler.Stop()
			return err
		}
	}
	return nil
}

// stopProfiling flushes running profiles and writes the heap profile if requested.
func stopProfiling(_ *cobra.Command, _ []string) error {
	if profiler == nil {
		return nil
	}
	profiler.Stop()

	if profileMem != "" {
		return profiler.WriteHeap(profileMem)
	}
	return nil
}

// runLauncher opens the interactive launcher, or lists recent applications
// when not attached to a terminal.
func runLauncher(cmd *cobra.Command) error {
	ctx := cmd.Context()

	if !ui.Interactive(os.Stdin, cmd.OutOrStdout()) {
		return runRecent(cmd, 0, false)
	}

	a, err := newApp(quietLogs)
	if err != nil {
		return err
	}
	defer a.close()

	instance := lock.New(lock.DefaultDir())
	if err := instance.Acquire(); err != nil {
		return err
	}
	defer func() { _ = instance.Unlock() }()

	engine := a.newEngine()
	engine.StartBackgroundScan(ctx)
	defer engine.Stop()

	return ui.Run(ctx, ui.Options{
		Searcher:   engine,
		Dispatcher: launcher.New(nil, a.logger),
		Limit:      a.cfg.Search.MaxResults,
		Debounce:   a.cfg.UI.Debounce,
		NoColor:    a.noColor(),
		Output:     cmd.OutOrStdout(),
	})
}

// newOutput returns the CLI status writer for cmd.
func newOutput(cmd *cobra.Command) *output.Writer {
	return output.New(cmd.OutOrStdout())
}

func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return config.Load(cwd)
}
