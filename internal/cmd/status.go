package cmd

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/anthropics/carve/internal/cache"
	"github.com/anthropics/carve/internal/config"
	"github.com/anthropics/carve/internal/output"
	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report what changed since the last bundle was carved",
	Long: `Status compares the current content of every file that went into the
last bundle against the hashes recorded at carve time, and reports which
files changed or disappeared. A stale bundle is worth re-carving.

Examples:
  carve status
  carve status --format json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// statusReport is the structured result of a status check.
type statusReport struct {
	LastRun   *cache.Run `json:"last_run,omitempty" yaml:"last_run,omitempty"`
	Unchanged int        `json:"unchanged" yaml:"unchanged"`
	Changed   []string   `json:"changed,omitempty" yaml:"changed,omitempty"`
	Missing   []string   `json:"missing,omitempty" yaml:"missing,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	carveDir, err := config.FindConfigDir(".")
	if err != nil {
		return fmt.Errorf("carve not initialized: run 'carve init' or 'carve extract' first")
	}

	c, err := cache.Open(carveDir)
	if err != nil {
		return err
	}
	defer c.Close()

	var report statusReport

	last, err := c.LastRun()
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	report.LastRun = last

	entries, err := c.GetAllFileEntries()
	if err != nil {
		return err
	}

	for _, entry := range entries {
		data, err := os.ReadFile(entry.FilePath)
		if err != nil {
			report.Missing = append(report.Missing, entry.FilePath)
			continue
		}
		if cache.ContentHash(data) != entry.ContentHash {
			report.Changed = append(report.Changed, entry.FilePath)
			continue
		}
		report.Unchanged++
	}

	return output.Render(os.Stdout, format, report)
}
