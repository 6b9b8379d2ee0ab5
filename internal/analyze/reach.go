// Package analyze computes the symbol-reachability closure that decides
// which function bodies survive export.
package analyze

import (
	"github.com/anthropics/carve/internal/deps"
	"github.com/anthropics/carve/internal/lex"
)

// Reachable computes the closure of symbol names used, starting from the
// entry file's raw text and expanding through function bodies: once a
// function's name is in the set, every identifier in its body joins the set
// too. Passes repeat until one adds nothing; the set only grows and is
// bounded by the distinct identifiers in the input, so the loop terminates.
//
// Identifiers are matched lexically, so a local variable spelled like a
// function name keeps that function. Over-inclusion is accepted;
// under-inclusion is not.
func Reachable(files map[string]*deps.SourceFile) map[string]bool {
	used := make(map[string]bool)
	for _, f := range files {
		if !f.IsEntry {
			continue
		}
		for _, id := range lex.Identifiers(f.Raw) {
			used[id] = true
		}
	}

	for {
		before := len(used)
		for _, f := range files {
			for name, body := range f.Blocks.Functions {
				if !used[name] {
					continue
				}
				for _, id := range lex.Identifiers(body) {
					used[id] = true
				}
			}
		}
		if len(used) == before {
			return used
		}
	}
}
