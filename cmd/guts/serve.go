package main

import (
	"context"
	"fmt"
	"net"

	"github.com/aretw0/guts/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP validation and conversion server",
		Long: `Serves /validate, /convert, /kinds and /documents over HTTP, with
Prometheus metrics on /metrics. Documents are kept in the configured store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, v)
			if err != nil {
				return err
			}

			ln, err := net.Listen("tcp", app.Config.Server.Addr())
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", app.Config.Server.Addr(), err)
			}

			ctx := cli.NewSignalContext(context.Background())
			defer ctx.Cancel()

			if err := app.Serve(ctx, ln); err != nil {
				return err
			}
			if sig := ctx.Signal(); sig != nil {
				app.Logger.Info("Stopped by signal", "signal", sig.String())
			}
			return nil
		},
	}
	cmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	cmd.Flags().String("host", "", "Interface to listen on")
	cmd.Flags().String("store", "memory", "Document store: memory, file or redis")
	cmd.Flags().String("store-path", ".guts/documents", "Directory of the file store")
	cmd.Flags().String("redis-addr", "localhost:6379", "Redis address for the redis store")
	_ = v.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	_ = v.BindPFlag("server.host", cmd.Flags().Lookup("host"))
	_ = v.BindPFlag("store.backend", cmd.Flags().Lookup("store"))
	_ = v.BindPFlag("store.path", cmd.Flags().Lookup("store-path"))
	_ = v.BindPFlag("store.redis.addr", cmd.Flags().Lookup("redis-addr"))
	return cmd
}
