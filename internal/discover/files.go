// Package discover enumerates the project files that form the universe for
// include resolution. It walks the project root, skipping conventional
// build/VCS/dependency directories and anything matched by the project's
// .gitignore.
package discover

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// skipDirs are directory names never descended into, regardless of gitignore.
var skipDirs = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	"node_modules": {},
	"obj":          {},
	"bin":          {},
	"build":        {},
	"dist":         {},
	"target":       {},
	"vendor":       {},
	"__pycache__":  {},
	".venv":        {},
	"venv":         {},
}

// Canonicalize normalizes a path for identity comparison: absolute, cleaned,
// with symlinks resolved when the path exists. Paths that cannot be made
// absolute are returned cleaned as-is.
func Canonicalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return filepath.Clean(abs)
}

// Files walks root and returns the set of canonical file paths under it,
// excluding skipDirs, dotted directories, symlinks, and .gitignore matches.
// Extra directory names to skip may be supplied via exclude. Unreadable
// entries are omitted rather than failing the walk.
func Files(root string, exclude []string) (map[string]bool, error) {
	root = Canonicalize(root)
	extra := make(map[string]struct{}, len(exclude))
	for _, e := range exclude {
		extra[e] = struct{}{}
	}
	gi := loadGitignore(root)

	known := make(map[string]bool)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		name := d.Name()
		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := skipDirs[name]; skip {
				return filepath.SkipDir
			}
			if _, skip := extra[name]; skip {
				return filepath.SkipDir
			}
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		if gi != nil {
			if rel, err := filepath.Rel(root, path); err == nil && gi.MatchesPath(rel) {
				return nil
			}
		}
		known[Canonicalize(path)] = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return known, nil
}

// loadGitignore parses root's .gitignore if present.
func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
