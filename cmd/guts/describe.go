package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newDescribeCmd(v *viper.Viper) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "describe [kind...]",
		Short: "Document the loaded kinds",
		Long:  "Prints each kind with its tag, parent and property table. Output is rendered markdown on a terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, v)
			if err != nil {
				return err
			}
			return app.Describe(args, raw)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print markdown source even on a terminal")
	return cmd
}

func newGraphCmd(v *viper.Viper) *cobra.Command {
	var focus string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print a Mermaid diagram of the loaded kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, v)
			if err != nil {
				return err
			}
			return app.Graph(focus)
		},
	}
	cmd.Flags().StringVar(&focus, "focus", "", "Highlight a kind and its neighbours")
	return cmd
}
