package main

import (
	"context"

	"github.com/aretw0/guts/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newMCPCmd(v *viper.Viper) *cobra.Command {
	var transport, addr string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the loaded schemas over the Model Context Protocol",
		Long: `Exposes the validate, convert and list_kinds tools and the guts://kinds
resource to MCP clients, over stdio (default) or streamable HTTP on /mcp.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, v)
			if err != nil {
				return err
			}

			ctx := cli.NewSignalContext(context.Background())
			defer ctx.Cancel()
			return app.ServeMCP(ctx, transport, addr)
		},
	}
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport: stdio or http")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address for the http transport (default from server config)")
	return cmd
}
