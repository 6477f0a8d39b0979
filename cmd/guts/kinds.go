package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newKindsCmd(v *viper.Viper) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "Print the loaded schemas as a declaration document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, v)
			if err != nil {
				return err
			}
			return app.Kinds(format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml, toml or json")
	return cmd
}
