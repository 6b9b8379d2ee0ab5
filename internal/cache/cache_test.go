package cache

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
)

func setupTestCache(t *testing.T) *Cache {
	t.Helper()

	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	return c
}

func TestCacheOpenClose(t *testing.T) {
	tmpDir := t.TempDir()

	c, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}

	expectedPath := filepath.Join(tmpDir, "cache.db")
	if c.Path() != expectedPath {
		t.Errorf("path = %q, want %q", c.Path(), expectedPath)
	}
	if c.DB() == nil {
		t.Error("DB() returned nil")
	}

	if err := c.Close(); err != nil {
		t.Errorf("close: %v", err)
	}

	if _, err := os.Stat(expectedPath); err != nil {
		t.Errorf("database file missing after close: %v", err)
	}
}

func TestFileIndexRoundTrip(t *testing.T) {
	c := setupTestCache(t)

	hash := ContentHash([]byte("int main(void) { return 0; }"))
	if err := c.SetFileCarved("/p/main.c", hash); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := c.GetFileHash("/p/main.c")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != hash {
		t.Errorf("hash = %q, want %q", got, hash)
	}

	if _, err := c.GetFileHash("/p/other.c"); err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows for unknown file, got %v", err)
	}
}

func TestIsFileChanged(t *testing.T) {
	c := setupTestCache(t)

	hash := ContentHash([]byte("v1"))
	if err := c.SetFileCarved("/p/a.c", hash); err != nil {
		t.Fatalf("set: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		newHash string
		want    bool
	}{
		{"unchanged", "/p/a.c", hash, false},
		{"changed", "/p/a.c", ContentHash([]byte("v2")), true},
		{"never carved", "/p/new.c", hash, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.IsFileChanged(tt.path, tt.newHash)
			if err != nil {
				t.Fatalf("IsFileChanged: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsFileChanged = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetBulkFilesCarvedReplacesIndex(t *testing.T) {
	c := setupTestCache(t)

	if err := c.SetFileCarved("/p/stale.c", ContentHash([]byte("old"))); err != nil {
		t.Fatalf("seed: %v", err)
	}

	entries := []FileEntry{
		{FilePath: "/p/a.c", ContentHash: ContentHash([]byte("a"))},
		{FilePath: "/p/b.c", ContentHash: ContentHash([]byte("b"))},
	}
	if err := c.SetBulkFilesCarved(entries); err != nil {
		t.Fatalf("bulk set: %v", err)
	}

	all, err := c.GetAllFileEntries()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("index has %d entries, want 2 (stale entry must be gone)", len(all))
	}
	// ORDER BY file_path
	if all[0].FilePath != "/p/a.c" || all[1].FilePath != "/p/b.c" {
		t.Errorf("entries = %v", all)
	}
	for _, e := range all {
		if e.CarvedAt.IsZero() {
			t.Errorf("%s: zero carve time", e.FilePath)
		}
	}
}

func TestRunsRecordAndLast(t *testing.T) {
	c := setupTestCache(t)

	if _, err := c.LastRun(); err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows before any run, got %v", err)
	}

	if err := c.RecordRun(Run{EntryFile: "main.c", Output: "carve.txt", Files: 1, FunctionsKept: 1, Bytes: 10}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := c.RecordRun(Run{EntryFile: "main.c", Output: "carve.txt", Files: 3, FunctionsKept: 4, FunctionsPruned: 2, Bytes: 99}); err != nil {
		t.Fatalf("record: %v", err)
	}

	last, err := c.LastRun()
	if err != nil {
		t.Fatalf("last: %v", err)
	}
	if last.Files != 3 || last.FunctionsKept != 4 || last.FunctionsPruned != 2 || last.Bytes != 99 {
		t.Errorf("last run = %+v, want the second run", last)
	}
	if last.RanAt.IsZero() {
		t.Error("last run has zero timestamp")
	}
}

func TestStatsAndClear(t *testing.T) {
	c := setupTestCache(t)

	if err := c.SetFileCarved("/p/a.c", ContentHash([]byte("a"))); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.RecordRun(Run{EntryFile: "a.c", Output: "carve.txt"}); err != nil {
		t.Fatalf("record: %v", err)
	}

	stats, err := c.GetStats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.FilesIndexed != 1 || stats.Runs != 1 {
		t.Errorf("stats = %+v, want 1 file, 1 run", stats)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	stats, err = c.GetStats()
	if err != nil {
		t.Fatalf("stats after clear: %v", err)
	}
	if stats.FilesIndexed != 0 || stats.Runs != 0 {
		t.Errorf("stats after clear = %+v, want empty", stats)
	}
}
