package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anish-94/storyscript/version"
)

func init() {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the compile-target version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version.Current)
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}
