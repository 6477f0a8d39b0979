package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/guts/internal/cli"
	"github.com/aretw0/guts/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newRootCmd builds the command tree. Each call returns independent flag
// state, bound to its own viper instance.
func newRootCmd() *cobra.Command {
	v := config.New()

	rootCmd := &cobra.Command{
		Use:   "guts",
		Short: "guts validates and converts declarative data records",
		Long: `guts binds YAML and XML documents to record schemas declared in
YAML, TOML or JSON files, validating and regularizing them on the way.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default ./guts.yaml if present)")
	rootCmd.PersistentFlags().StringSliceP("schema", "s", nil, "Schema declaration file (repeatable)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	_ = v.BindPFlag("schemas", rootCmd.PersistentFlags().Lookup("schema"))
	_ = v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(
		newValidateCmd(v),
		newConvertCmd(v),
		newKindsCmd(v),
		newDescribeCmd(v),
		newGraphCmd(v),
		newServeCmd(v),
		newMCPCmd(v),
		newVersionCmd(),
	)
	return rootCmd
}

// loadApp reads configuration and schemas for a command.
func loadApp(cmd *cobra.Command, v *viper.Viper) (*cli.App, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(v, path)
	if err != nil {
		return nil, err
	}
	return cli.NewApp(cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, cli.ErrFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
