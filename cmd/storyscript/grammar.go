package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anish-94/storyscript/internal/parser/grammar"
)

func init() {
	cmd := &cobra.Command{
		Use:     "grammar",
		Short:   "Print the grammar this compiler implements",
		Example: `  storyscript grammar`,
		Args:    cobra.NoArgs,
		RunE:    runGrammar,
	}
	rootCmd.AddCommand(cmd)
}

func runGrammar(cmd *cobra.Command, args []string) error {
	g := grammar.Default()
	if problems := g.Validate(); len(problems) > 0 {
		return fmt.Errorf("grammar fails validation: %v", problems)
	}
	fmt.Fprint(cmd.OutOrStdout(), g.String())
	return nil
}
