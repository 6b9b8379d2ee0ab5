package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/anthropics/carve/internal/analyze"
	"github.com/anthropics/carve/internal/cache"
	"github.com/anthropics/carve/internal/config"
	"github.com/anthropics/carve/internal/deps"
	"github.com/anthropics/carve/internal/discover"
	"github.com/anthropics/carve/internal/export"
	"github.com/anthropics/carve/internal/output"
	"github.com/spf13/cobra"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [entry]",
	Short: "Carve a minimal source bundle rooted at an entry file",
	Long: `Extract runs the full pipeline for an entry file:

  1. Enumerates project files (skipping build/VCS/dependency directories)
  2. Follows #include directives breadth-first up to --depth
  3. Segments each discovered file into headers, defines, types, functions
  4. Computes the closure of symbols reachable from the entry file
  5. Emits headers, defines, and types for every file, plus only the
     function bodies that are reachable (the entry file keeps everything)

The entry file may be given as an argument or taken from the configured
extract.entry_file. The settings used are written back to .carve/config.yaml
so the next run can omit them (disable with --no-save).

Examples:
  carve extract src/main.c              # Bundle written to carve.txt
  carve extract --depth 0               # Entry file only, no includes
  carve extract -o - src/main.c         # Bundle to stdout
  carve extract --stats --format json   # Machine-readable run report
  carve extract --dry-run src/main.c    # Report without writing anything`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

// Command-line flags
var (
	extractDepth   int
	extractOutput  string
	extractExclude []string
	extractStats   bool
	extractNoSave  bool
	extractDryRun  bool
)

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().IntVar(&extractDepth, "depth", -1, "Maximum include-traversal depth (default: configured max_depth)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Output file, '-' for stdout (default: configured output)")
	extractCmd.Flags().StringSliceVar(&extractExclude, "exclude", nil, "Extra directory names to skip during enumeration")
	extractCmd.Flags().BoolVar(&extractStats, "stats", false, "Print a structured run report")
	extractCmd.Flags().BoolVar(&extractNoSave, "no-save", false, "Do not persist settings back to the config")
	extractCmd.Flags().BoolVar(&extractDryRun, "dry-run", false, "Compute the bundle but write nothing")
}

// extractReport is the structured result of one extract run.
type extractReport struct {
	Entry           string `json:"entry" yaml:"entry"`
	Output          string `json:"output" yaml:"output"`
	MaxDepth        int    `json:"max_depth" yaml:"max_depth"`
	Files           int    `json:"files" yaml:"files"`
	FunctionsKept   int    `json:"functions_kept" yaml:"functions_kept"`
	FunctionsPruned int    `json:"functions_pruned" yaml:"functions_pruned"`
	Symbols         int    `json:"symbols" yaml:"symbols"`
	Bytes           int    `json:"bytes" yaml:"bytes"`
}

// runExtract implements the extract command logic
func runExtract(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	// Project root: the directory holding .carve if one exists, else cwd
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

	entry := cfg.Extract.EntryFile
	if len(args) > 0 {
		entry = args[0]
	}
	if entry == "" {
		return fmt.Errorf("no entry file: pass one as an argument or set extract.entry_file")
	}
	if _, err := os.Stat(entry); err != nil {
		return fmt.Errorf("entry file %s: %w", entry, err)
	}

	depth := cfg.Extract.MaxDepth
	if extractDepth >= 0 {
		depth = extractDepth
	}
	outFile := cfg.Extract.Output
	if extractOutput != "" {
		outFile = extractOutput
	}
	excludes := append(append([]string(nil), cfg.Scan.Exclude...), extractExclude...)

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing %s and dependencies (depth %d)...\n", filepath.Base(entry), depth)
	}

	known, err := discover.Files(projectRoot, excludes)
	if err != nil {
		return fmt.Errorf("enumerating project files: %w", err)
	}

	files, err := deps.Discover(entry, depth, projectRoot, known, deps.OSReader{})
	if err != nil {
		return err
	}

	used := analyze.Reachable(files)

	var buf bytes.Buffer
	stats, err := export.Write(&buf, files, used, projectRoot)
	if err != nil {
		return err
	}

	report := extractReport{
		Entry:           entry,
		Output:          outFile,
		MaxDepth:        depth,
		Files:           stats.Files,
		FunctionsKept:   stats.FunctionsKept,
		FunctionsPruned: stats.FunctionsPruned,
		Symbols:         len(used),
		Bytes:           buf.Len(),
	}

	if extractDryRun {
		return output.Render(os.Stdout, format, report)
	}

	if outFile == "-" {
		if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("writing bundle: %w", err)
		}
	} else {
		if err := os.WriteFile(outFile, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("writing bundle: %w", err)
		}
	}

	if err := recordRun(projectRoot, files, report); err != nil {
		return err
	}

	if !extractNoSave {
		cfg.Extract = config.ExtractConfig{
			EntryFile: entry,
			MaxDepth:  depth,
			Output:    outFile,
		}
		if _, err := config.Save(projectRoot, cfg); err != nil {
			return err
		}
	}

	if extractStats {
		return output.Render(os.Stdout, format, report)
	}
	if outFile != "-" {
		fmt.Printf("Successfully exported to %s (%d bytes)\n", outFile, report.Bytes)
	}
	return nil
}

// recordRun stores the carved files' content hashes and the run summary in
// the cache so `carve status` can report drift later.
func recordRun(projectRoot string, files map[string]*deps.SourceFile, report extractReport) error {
	carveDir, err := config.EnsureConfigDir(projectRoot)
	if err != nil {
		return err
	}

	c, err := cache.Open(carveDir)
	if err != nil {
		return err
	}
	defer c.Close()

	entries := make([]cache.FileEntry, 0, len(files))
	for path, f := range files {
		entries = append(entries, cache.FileEntry{
			FilePath:    path,
			ContentHash: cache.ContentHash([]byte(f.Raw)),
		})
	}
	if err := c.SetBulkFilesCarved(entries); err != nil {
		return err
	}

	return c.RecordRun(cache.Run{
		EntryFile:       report.Entry,
		Output:          report.Output,
		Files:           report.Files,
		FunctionsKept:   report.FunctionsKept,
		FunctionsPruned: report.FunctionsPruned,
		Bytes:           int64(report.Bytes),
	})
}
