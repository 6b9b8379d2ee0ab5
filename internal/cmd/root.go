// Package cmd contains all CLI commands for carve.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is the current version of carve
	Version = "0.1.0"

	// Global flags
	verbose      bool
	outputFormat string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "carve",
	Short: "Surgical source-bundle extractor for C-like projects",
	Long: `carve extracts a minimal, self-contained source bundle from a C-like
project rooted at an entry file.

It follows #include dependencies up to a bounded depth, then prunes every
function not transitively reachable from the entry file's code, emitting only
the headers, macros, type declarations, and reachable function bodies needed
to understand or recompile the entry point's logic.

The analysis is deliberately lexical: comments are stripped, blocks are
segmented by brace balance, and reachability is computed over bare
identifiers. Over-inclusion is accepted; a function that might be needed is
always kept.

Examples:
  carve init                        # Write a default .carve/config.yaml
  carve extract src/main.c          # Carve a bundle for main.c
  carve extract --depth 1 -o -      # Shallow bundle to stdout
  carve resolve src/main.c util.h   # Debug one include resolution
  carve status                      # What changed since the last bundle?
  carve serve                       # Expose the extractor over MCP

See 'carve <command> --help' for command-specific options.`,
	Version: Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "yaml", "Structured output format (yaml|json)")
}
