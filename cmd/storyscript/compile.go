package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	storyscript "github.com/anish-94/storyscript"
	"github.com/anish-94/storyscript/internal/store"
)

var compileFlags = struct {
	output *string
	cached *bool
	cache  *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile <file>",
		Short:   "Compile a Storyscript source file into the JSON script",
		Example: `  storyscript compile story.story -o story.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	compileFlags.cached = cmd.Flags().Bool("cached", false, "re-serve a prior compile of identical source from the cache")
	compileFlags.cache = cmd.Flags().String("cache", defaultCachePath(), "path to the cache database")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	out, err := compileSource(string(source))
	if err != nil {
		return err
	}
	out = append(out, '\n')

	if *compileFlags.output == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(*compileFlags.output, out, 0644)
}

// compileSource compiles source, consulting and populating the sqlite
// cache when --cached is set. Loads is deterministic, so a cache hit on
// identical source text is observably the same as recompiling.
func compileSource(source string) ([]byte, error) {
	if !*compileFlags.cached {
		script, err := storyscript.Loads(source)
		if err != nil {
			return nil, err
		}
		return script.JSON()
	}

	s, err := store.Open(*compileFlags.cache)
	if err != nil {
		return nil, err
	}
	if row, ok, err := s.Get(source); err != nil {
		return nil, err
	} else if ok {
		return []byte(row.Script), nil
	}

	script, err := storyscript.Loads(source)
	if err != nil {
		return nil, err
	}
	out, err := script.JSON()
	if err != nil {
		return nil, err
	}
	if err := s.Put(source, string(out), script.Version()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not cache compile result: %v\n", err)
	}
	return out, nil
}
