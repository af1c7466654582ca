package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/fade/internal/launcher"
	"github.com/Aman-CERP/fade/internal/mcp"
	"github.com/Aman-CERP/fade/internal/search"
	"github.com/Aman-CERP/fade/internal/telemetry"
)

func newServeCmd() *cobra.Command {
	var transport string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve application search over MCP",
		Long: `Start a Model Context Protocol server so AI assistants can search for and
launch local applications.

Tools: search_apps, recent_apps, launch_app, index_status.

stdout carries JSON-RPC only. Use --debug to write logs to ~/.fade/logs/.`,
		Example: `  fade serve
  fade serve --debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(quietLogs)
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			metrics := telemetry.NewQueryMetrics(telemetry.DefaultConfig())
			engine := a.newEngine(search.WithMetrics(metrics))
			engine.StartBackgroundScan(ctx)
			defer engine.Stop()

			srv, err := mcp.NewServer(engine, launcher.New(nil, a.logger), a.logger)
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}
			srv.SetMetrics(metrics)
			return srv.Serve(ctx, transport)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport protocol (stdio)")

	return cmd
}
