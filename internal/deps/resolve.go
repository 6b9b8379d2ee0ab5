// Package deps discovers the files reachable from an entry file through
// #include directives: it resolves raw include strings to concrete project
// files and drives a breadth-first, depth-bounded traversal over them.
package deps

import (
	"path/filepath"
	"strings"

	"github.com/anthropics/carve/internal/discover"
)

// Candidates returns the ordered candidate paths tried when resolving an
// include string written in fromFile. The ordering favors a definition file
// (.c/.cpp) next to the including file, then conventional include/src/lib
// roots under the project root. First match wins; there is no scoring.
func Candidates(fromFile, include, root string) []string {
	dir := filepath.Dir(fromFile)
	stem := strings.TrimSuffix(filepath.Base(include), filepath.Ext(include))
	return []string{
		filepath.Join(dir, include),
		filepath.Join(dir, stem+".c"),
		filepath.Join(dir, stem+".cpp"),
		filepath.Join(root, "include", include),
		filepath.Join(root, "src", include),
		filepath.Join(root, "lib", include),
	}
}

// Resolve maps an include string to the canonical path of a project file, or
// returns ok=false when no candidate is part of the known-files universe.
func Resolve(fromFile, include, root string, known map[string]bool) (string, bool) {
	for _, c := range Candidates(fromFile, include, root) {
		canon := discover.Canonicalize(c)
		if known[canon] {
			return canon, true
		}
	}
	return "", false
}
