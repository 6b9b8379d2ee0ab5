package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/anthropics/carve/internal/config"
	"github.com/anthropics/carve/internal/deps"
	"github.com/anthropics/carve/internal/discover"
	"github.com/anthropics/carve/internal/output"
	"github.com/spf13/cobra"
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <file> <include>",
	Short: "Debug how one #include string resolves to a project file",
	Long: `Resolve shows the ordered candidate paths tried for an include string
written in the given file, and which one (if any) matched a project file.

The include string is given as written in the directive, without its <> or
"" delimiters.

Examples:
  carve resolve src/main.c util.h
  carve resolve src/main.c ../lib/parse.h --format json`,
	Args: cobra.ExactArgs(2),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

// resolveCandidate is one tried path in a resolution report.
type resolveCandidate struct {
	Path    string `json:"path" yaml:"path"`
	Matched bool   `json:"matched" yaml:"matched"`
}

// resolveReport is the structured result of one resolution.
type resolveReport struct {
	File       string             `json:"file" yaml:"file"`
	Include    string             `json:"include" yaml:"include"`
	Candidates []resolveCandidate `json:"candidates" yaml:"candidates"`
	Resolved   string             `json:"resolved,omitempty" yaml:"resolved,omitempty"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

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

	known, err := discover.Files(projectRoot, cfg.Scan.Exclude)
	if err != nil {
		return fmt.Errorf("enumerating project files: %w", err)
	}

	fromFile, include := args[0], args[1]
	report := resolveReport{File: fromFile, Include: include}

	for _, c := range deps.Candidates(fromFile, include, projectRoot) {
		canon := discover.Canonicalize(c)
		matched := known[canon] && report.Resolved == ""
		report.Candidates = append(report.Candidates, resolveCandidate{Path: c, Matched: matched})
		if matched {
			report.Resolved = canon
		}
	}

	return output.Render(os.Stdout, format, report)
}
