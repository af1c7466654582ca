package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/fade/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage fade's configuration.

Configuration precedence (lowest to highest):
  1. Hardcoded defaults
  2. User config (~/.config/fade/config.yaml)
  3. Project config (.fade.yaml in the working directory)
  4. Environment variables (FADE_ROOTS, FADE_EXTENSIONS, FADE_MAX_RESULTS, FADE_LOG_LEVEL)`,
		Example: `  # Create user config with the defaults
  fade config init

  # Show effective configuration
  fade config show

  # Print user config file path
  fade config path`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create user configuration file",
		Long: `Write the default configuration to the user config file.

With --force an existing file is backed up next to it before being replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, config.GetUserConfigPath(), force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration (a backup is kept)")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var (
		jsonOutput bool
		source     string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long: `Show the configuration after merging all sources, or only the defaults.

The merged view also shows the roots that will actually be scanned.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, jsonOutput, source)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&source, "source", "merged", "Config source: merged, defaults")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print user config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.GetUserConfigPath())
			return err
		},
	}
}

func runConfigInit(cmd *cobra.Command, configPath string, force bool) error {
	out := newOutput(cmd)

	if _, err := os.Stat(configPath); err == nil {
		if !force {
			out.Warning("User configuration already exists")
			out.Statusf("📁", "Location: %s", configPath)
			out.Status("💡", "Use --force to replace it with the defaults (a backup is kept)")
			return nil
		}

		backupPath, err := config.BackupFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to backup config: %w", err)
		}
		out.Statusf("💾", "Backup: %s", backupPath)
	}

	if err := config.NewConfig().WriteYAML(configPath); err != nil {
		return err
	}

	out.Success("Created user configuration")
	out.Statusf("📁", "Location: %s", configPath)
	out.Status("📋", "Next steps:")
	out.Status("", "  1. Add your application folders under scan.roots")
	out.Status("", "  2. Run 'fade config show' to verify")
	out.Status("", "  3. Run 'fade scan' to see what is found")

	return nil
}

// effectiveConfig is the merged view printed by config show.
type effectiveConfig struct {
	config.Config  `yaml:",inline"`
	EffectiveRoots []string `yaml:"effective_roots" json:"effective_roots"`
}

func runConfigShow(cmd *cobra.Command, jsonOutput bool, source string) error {
	out := newOutput(cmd)

	var (
		cfg        *config.Config
		sourceDesc string
		err        error
	)

	switch source {
	case "merged":
		cfg, err = loadConfig()
		if err != nil {
			return err
		}
		cwd, _ := os.Getwd()
		sourceDesc = fmt.Sprintf("merged (defaults + %s + %s + env)",
			config.GetUserConfigPath(), filepath.Join(cwd, config.ProjectConfigName))
	case "defaults":
		cfg = config.NewConfig()
		sourceDesc = "defaults (hardcoded)"
	default:
		return fmt.Errorf("invalid source: %s (use: merged, defaults)", source)
	}

	view := effectiveConfig{Config: *cfg, EffectiveRoots: cfg.EffectiveRoots()}

	if jsonOutput {
		return out.JSON(view)
	}

	out.Statusf("📋", "Configuration source: %s", sourceDesc)
	out.Newline()

	data, err := yaml.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
	return err
}
