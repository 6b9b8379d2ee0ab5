package cmd

import (
	"fmt"

	"github.com/anthropics/carve/internal/config"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize carve configuration in the current directory",
	Long: `Init creates a .carve directory with a default config.yaml.

The config records the extract defaults (entry file, traversal depth, output
file) and is rewritten after each extract run so repeated invocations can
omit the flags.

Examples:
  carve init          # Create .carve/config.yaml with defaults`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := config.SaveDefault(".")
	if err != nil {
		return err
	}

	fmt.Printf("Initialized carve configuration: %s\n", path)
	return nil
}
