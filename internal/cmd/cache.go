package cmd

import (
	"fmt"
	"os"

	"github.com/anthropics/carve/internal/cache"
	"github.com/anthropics/carve/internal/config"
	"github.com/anthropics/carve/internal/output"
	"github.com/spf13/cobra"
)

// cacheCmd represents the cache command group
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the carve cache database",
	Long: `Cache manages the .carve/cache.db SQLite database that records carved
file hashes and run history.

Examples:
  carve cache stats     # Show cache contents
  carve cache clear     # Remove all cached state`,
}

// cacheStatsCmd represents the cache stats subcommand
var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	Args:  cobra.NoArgs,
	RunE:  runCacheStats,
}

// cacheClearCmd represents the cache clear subcommand
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached file hashes and run history",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func openCache() (*cache.Cache, error) {
	carveDir, err := config.FindConfigDir(".")
	if err != nil {
		return nil, fmt.Errorf("carve not initialized: run 'carve init' or 'carve extract' first")
	}
	return cache.Open(carveDir)
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	c, err := openCache()
	if err != nil {
		return err
	}
	defer c.Close()

	stats, err := c.GetStats()
	if err != nil {
		return err
	}

	return output.Render(os.Stdout, format, stats)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	c, err := openCache()
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Clear(); err != nil {
		return err
	}

	fmt.Println("Cache cleared")
	return nil
}
