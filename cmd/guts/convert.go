package main

import (
	"github.com/aretw0/guts/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newConvertCmd(v *viper.Viper) *cobra.Command {
	var opts cli.ConvertOptions

	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Convert a record between YAML and XML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, v)
			if err != nil {
				return err
			}
			return app.Convert(args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.From, "from", "", "Input format (default: by extension)")
	cmd.Flags().StringVarP(&opts.To, "to", "t", "", "Output format: yaml or xml")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Do not regularize values before checking")
	cmd.Flags().Int("indent", 0, "XML indentation width")
	cmd.Flags().Bool("header", false, "Write an XML declaration")
	_ = cmd.MarkFlagRequired("to")
	_ = v.BindPFlag("xml.indent", cmd.Flags().Lookup("indent"))
	_ = v.BindPFlag("xml.header", cmd.Flags().Lookup("header"))
	return cmd
}
