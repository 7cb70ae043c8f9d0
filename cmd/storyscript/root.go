package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storyscript",
	Short: "Compile Storyscript source into a line-indexed JSON script",
	Long: `storyscript provides:
- compile: turn a .story source file into the compiled JSON script.
- tree: print the normalized parse tree, for debugging the grammar.
- grammar: print the grammar this compiler implements.
- cache: inspect or clear the sqlite-backed compile cache.
- version: print the compile-target version stamped into every script.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the CLI. Errors are returned for main to print.
func Execute() error {
	return rootCmd.Execute()
}
