package main

import (
	"github.com/aretw0/guts/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newValidateCmd(v *viper.Viper) *cobra.Command {
	var opts cli.ValidateOptions

	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate records against the loaded schemas",
		Long: `Reads each YAML or XML record (by extension, or --format; "-" reads stdin),
validates it against its kind and reports every failure found.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, v)
			if err != nil {
				return err
			}
			return app.Validate(args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Input format: yaml or xml")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Do not regularize values before checking")
	return cmd
}
