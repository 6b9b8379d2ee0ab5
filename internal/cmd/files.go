package cmd

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/anthropics/carve/internal/config"
	"github.com/anthropics/carve/internal/discover"
	"github.com/spf13/cobra"
)

// filesCmd represents the files command
var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List the enumerated project files",
	Long: `Files prints the set of project files that forms the universe for
include resolution, one canonical path per line, after applying the built-in
skip directories, the project .gitignore, and any configured excludes.

Useful for checking why an include does or does not resolve.

Examples:
  carve files
  carve files --exclude testdata`,
	Args: cobra.NoArgs,
	RunE: runFiles,
}

var filesExclude []string

func init() {
	rootCmd.AddCommand(filesCmd)

	filesCmd.Flags().StringSliceVar(&filesExclude, "exclude", nil, "Extra directory names to skip")
}

func runFiles(cmd *cobra.Command, args []string) error {
	projectRoot, err := filepath.Abs(".")
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	if carveDir, err := config.FindConfigDir(projectRoot); err == nil {
		projectRoot = filepath.Dir(carveDir)
	}

	cfg, err := config.Load(projectRoot)
	if err != nil {
		return err
	}

	excludes := append(append([]string(nil), cfg.Scan.Exclude...), filesExclude...)
	known, err := discover.Files(projectRoot, excludes)
	if err != nil {
		return fmt.Errorf("enumerating project files: %w", err)
	}

	paths := make([]string, 0, len(known))
	for p := range known {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}
