package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/anish-94/storyscript/internal/store"
)

var cacheFlags = struct {
	db *string
}{}

// defaultCachePath is $XDG_CACHE_HOME/storyscript/cache.db when the env
// var is set, falling back to a dotfile in the working directory.
func defaultCachePath() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "storyscript", "cache.db")
	}
	return ".storyscript-cache.db"
}

func init() {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the sqlite-backed compile cache",
	}
	cacheFlags.db = cacheCmd.PersistentFlags().String("cache", defaultCachePath(), "path to the cache database")

	showCmd := &cobra.Command{
		Use:     "show",
		Short:   "List every cached compiled script",
		Example: `  storyscript cache show`,
		Args:    cobra.NoArgs,
		RunE:    runCacheShow,
	}
	clearCmd := &cobra.Command{
		Use:     "clear",
		Short:   "Delete every cached compiled script",
		Example: `  storyscript cache clear`,
		Args:    cobra.NoArgs,
		RunE:    runCacheClear,
	}

	cacheCmd.AddCommand(showCmd, clearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheShow(cmd *cobra.Command, args []string) error {
	s, err := store.Open(*cacheFlags.db)
	if err != nil {
		return err
	}
	rows, err := s.All()
	if err != nil {
		return err
	}
	for _, row := range rows {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", row.Hash, row.Version, row.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	s, err := store.Open(*cacheFlags.db)
	if err != nil {
		return err
	}
	return s.Clear()
}
