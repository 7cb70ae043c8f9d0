package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	storyscript "github.com/anish-94/storyscript"
	"github.com/anish-94/storyscript/internal/tree"
)

func init() {
	cmd := &cobra.Command{
		Use:     "tree <file>",
		Short:   "Print the normalized parse tree for a Storyscript source file",
		Example: `  storyscript tree story.story`,
		Args:    cobra.ExactArgs(1),
		RunE:    runTree,
	}
	rootCmd.AddCommand(cmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	_, root, err := storyscript.LoadsTree(string(source))
	if err != nil {
		return err
	}

	dumpNode(cmd.OutOrStdout(), root, 0)
	return nil
}

func dumpNode(w io.Writer, n tree.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := n.(type) {
	case *tree.Tree:
		fmt.Fprintf(w, "%s%s\n", indent, v.Data)
		for _, c := range v.Children {
			dumpNode(w, c, depth+1)
		}
	case tree.Token:
		fmt.Fprintf(w, "%s%s %q\n", indent, v.Kind, v.Lexeme)
	default:
		fmt.Fprintf(w, "%s<unknown node>\n", indent)
	}
}
