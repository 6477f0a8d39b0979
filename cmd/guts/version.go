package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/guts"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of guts",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "guts version %s\n", strings.TrimSpace(guts.Version))
		},
	}
}
