package deps

import (
	"fmt"
	"os"

	"github.com/anthropics/carve/internal/discover"
	"github.com/anthropics/carve/internal/extract"
	"github.com/anthropics/carve/internal/lex"
)

// SourceFile is one discovered file. Identity is the canonical path; a file
// is created once, the first time it is dequeued, and never re-created.
type SourceFile struct {
	Path    string // canonical
	Raw     string
	Blocks  *extract.Blocks
	Depth   int // BFS distance from the entry file
	IsEntry bool
}

// Reader supplies raw file contents for a path. Reads are best-effort:
// contents are treated as opaque bytes, so invalid UTF-8 passes through
// rather than failing the read.
type Reader interface {
	ReadFile(path string) (string, error)
}

// OSReader reads from the local filesystem.
type OSReader struct{}

func (OSReader) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type queueItem struct {
	path  string
	depth int
}

// Discover runs the breadth-first include traversal from entry, bounded by
// maxDepth (inclusive), and returns every discovered file keyed by canonical
// path. The entry file must be readable; any other file that fails to read
// is skipped and the traversal continues. Diamond includes collapse: a file
// is visited at most once no matter how many files include it.
func Discover(entry string, maxDepth int, root string, known map[string]bool, r Reader) (map[string]*SourceFile, error) {
	entryPath := discover.Canonicalize(entry)
	files := make(map[string]*SourceFile)
	visited := make(map[string]bool)
	queue := []queueItem{{entryPath, 0}}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		if visited[item.path] || item.depth > maxDepth {
			continue
		}
		visited[item.path] = true

		raw, err := r.ReadFile(item.path)
		if err != nil {
			if item.path == entryPath {
				return nil, fmt.Errorf("reading entry file %s: %w", entry, err)
			}
			continue
		}

		stripped := lex.StripComments(raw)
		f := &SourceFile{
			Path:    item.path,
			Raw:     raw,
			Blocks:  extract.Parse(stripped),
			Depth:   item.depth,
			IsEntry: item.path == entryPath,
		}
		files[item.path] = f

		for _, inc := range f.Blocks.IncludeTargets() {
			resolved, ok := Resolve(item.path, inc, root, known)
			if ok && !visited[resolved] {
				queue = append(queue, queueItem{resolved, item.depth + 1})
			}
		}
	}

	return files, nil
}
