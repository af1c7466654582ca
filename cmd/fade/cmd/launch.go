package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/fade/internal/catalog"
	"github.com/Aman-CERP/fade/internal/launcher"
)

func newLaunchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "launch <path>",
		Short: "Launch an application by path",
		Long: `Start the application at path without waiting for it to exit.

Shortcuts (.lnk) are opened through the desktop shell. Everything else is
started directly with its folder as the working directory.`,
		Example: `  fade launch "C:\Program Files\Mozilla Firefox\firefox.exe"
  fade launch ~/Applications/notes.AppImage`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(stderrLogs)
			if err != nil {
				return err
			}
			defer a.close()

			path := args[0]
			if abs, err := filepath.Abs(path); err == nil && path != "" {
				path = abs
			}

			if err := launcher.New(nil, a.logger).Launch(cmd.Context(), path); err != nil {
				return err
			}

			newOutput(cmd).Successf("Launched %s", catalog.CleanName(filepath.Base(path)))
			return nil
		},
	}
}
