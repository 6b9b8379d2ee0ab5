// Package export emits the final bundle: for every discovered file its
// headers, defines, and types unconditionally, and each function body only
// when the owning file is the entry file or the function's name is in the
// reachability closure.
package export

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/anthropics/carve/internal/deps"
	"github.com/anthropics/carve/internal/lex"
)

// Stats summarizes one export run.
type Stats struct {
	Files           int `json:"files" yaml:"files"`
	FunctionsKept   int `json:"functions_kept" yaml:"functions_kept"`
	FunctionsPruned int `json:"functions_pruned" yaml:"functions_pruned"`
}

// Write composes the bundle into w. Files are emitted sorted by canonical
// path for deterministic output; within a file the order is headers,
// defines, types, then functions in extraction order. The file marker path
// is shown relative to root when possible. Type spans and function bodies
// are whitespace-compacted; directive lines stay verbatim.
func Write(w io.Writer, files map[string]*deps.SourceFile, used map[string]bool, root string) (Stats, error) {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var stats Stats
	stats.Files = len(paths)

	for _, path := range paths {
		f := files[path]
		rel := path
		if r, err := filepath.Rel(root, path); err == nil {
			rel = r
		}

		if _, err := fmt.Fprintf(w, "\n// --- FILE: %s ---\n", rel); err != nil {
			return stats, fmt.Errorf("writing bundle: %w", err)
		}
		for _, h := range f.Blocks.Headers {
			if _, err := fmt.Fprintln(w, h); err != nil {
				return stats, fmt.Errorf("writing bundle: %w", err)
			}
		}
		for _, d := range f.Blocks.Defines {
			if _, err := fmt.Fprintln(w, d); err != nil {
				return stats, fmt.Errorf("writing bundle: %w", err)
			}
		}
		for _, t := range f.Blocks.Types {
			if _, err := fmt.Fprintln(w, lex.CompactWhitespace(t)); err != nil {
				return stats, fmt.Errorf("writing bundle: %w", err)
			}
		}
		for _, name := range f.Blocks.FuncOrder {
			if !f.IsEntry && !used[name] {
				stats.FunctionsPruned++
				continue
			}
			stats.FunctionsKept++
			if _, err := fmt.Fprintln(w, lex.CompactWhitespace(f.Blocks.Functions[name])); err != nil {
				return stats, fmt.Errorf("writing bundle: %w", err)
			}
		}
	}

	return stats, nil
}
