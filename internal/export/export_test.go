package export

import (
	"strings"
	"testing"

	"github.com/anthropics/carve/internal/analyze"
	"github.com/anthropics/carve/internal/deps"
	"github.com/anthropics/carve/internal/extract"
	"github.com/anthropics/carve/internal/lex"
)

func file(path, raw string, isEntry bool) *deps.SourceFile {
	return &deps.SourceFile{
		Path:    path,
		Raw:     raw,
		Blocks:  extract.Parse(lex.StripComments(raw)),
		IsEntry: isEntry,
	}
}

func TestWriteEntryExemption(t *testing.T) {
	// never_called is not in any reachability set, but lives in the entry
	// file, so it must be emitted anyway.
	files := map[string]*deps.SourceFile{
		"/p/main.c": file("/p/main.c", "int main(void) {\n\treturn 0;\n}\n\nint never_called(void) {\n\treturn 9;\n}\n", true),
	}

	var sb strings.Builder
	stats, err := Write(&sb, files, map[string]bool{}, "/p")
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	if !strings.Contains(sb.String(), "never_called") {
		t.Error("entry file function was pruned")
	}
	if stats.FunctionsKept != 2 || stats.FunctionsPruned != 0 {
		t.Errorf("stats = %+v, want 2 kept, 0 pruned", stats)
	}
}

func TestWriteEndToEnd(t *testing.T) {
	mainSrc := `#include "util.h"

int main(void) {
	return helper();
}
`
	utilSrc := `#include <stdlib.h>
#define SCALE 2

typedef struct {
	int v;
} Box;

int helper(void) {
	return SCALE;
}

int dead_code(void) {
	return -1;
}
`
	files := map[string]*deps.SourceFile{
		"/p/main.c": file("/p/main.c", mainSrc, true),
		"/p/util.c": file("/p/util.c", utilSrc, false),
	}

	used := analyze.Reachable(files)

	var sb strings.Builder
	stats, err := Write(&sb, files, used, "/p")
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	out := sb.String()

	// main and helper bodies are present; dead_code is pruned.
	if !strings.Contains(out, "int main(void) {") {
		t.Error("main body missing")
	}
	if !strings.Contains(out, "int helper(void) {") {
		t.Error("helper body missing")
	}
	if strings.Contains(out, "dead_code") {
		t.Error("dead_code body was emitted")
	}

	// Headers, defines, and types from util.c are emitted unconditionally.
	for _, want := range []string{"#include <stdlib.h>", "#define SCALE 2", "Box"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	if stats.Files != 2 {
		t.Errorf("stats.Files = %d, want 2", stats.Files)
	}
	if stats.FunctionsPruned != 1 {
		t.Errorf("stats.FunctionsPruned = %d, want 1", stats.FunctionsPruned)
	}
}

func TestWriteDeterministicOrder(t *testing.T) {
	files := map[string]*deps.SourceFile{
		"/p/b.c": file("/p/b.c", "#define B 1\n", false),
		"/p/a.c": file("/p/a.c", "#define A 1\n", false),
		"/p/c.c": file("/p/c.c", "#define C 1\n", false),
	}

	var first strings.Builder
	if _, err := Write(&first, files, map[string]bool{}, "/p"); err != nil {
		t.Fatalf("write: %v", err)
	}

	aIdx := strings.Index(first.String(), "FILE: a.c")
	bIdx := strings.Index(first.String(), "FILE: b.c")
	cIdx := strings.Index(first.String(), "FILE: c.c")
	if !(aIdx < bIdx && bIdx < cIdx) {
		t.Errorf("files not emitted in sorted order: a=%d b=%d c=%d", aIdx, bIdx, cIdx)
	}

	var second strings.Builder
	if _, err := Write(&second, files, map[string]bool{}, "/p"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if first.String() != second.String() {
		t.Error("two writes of the same input differ")
	}
}

func TestWriteCompactsBodies(t *testing.T) {
	files := map[string]*deps.SourceFile{
		"/p/main.c": file("/p/main.c", "int main(void) {\n\n\n\treturn 0;   \n}\n", true),
	}

	var sb strings.Builder
	if _, err := Write(&sb, files, map[string]bool{}, "/p"); err != nil {
		t.Fatalf("write: %v", err)
	}

	if strings.Contains(sb.String(), "\n\n\n") {
		t.Errorf("blank lines survived compaction:\n%s", sb.String())
	}
	if strings.Contains(sb.String(), "return 0;   ") {
		t.Error("trailing whitespace survived compaction")
	}
}
