package cache

import (
	"database/sql"
	"fmt"
	"time"
)

// Run is one recorded extract invocation.
type Run struct {
	EntryFile       string    `json:"entry_file" yaml:"entry_file"`
	Output          string    `json:"output" yaml:"output"`
	Files           int       `json:"files" yaml:"files"`
	FunctionsKept   int       `json:"functions_kept" yaml:"functions_kept"`
	FunctionsPruned int       `json:"functions_pruned" yaml:"functions_pruned"`
	Bytes           int64     `json:"bytes" yaml:"bytes"`
	RanAt           time.Time `json:"ran_at" yaml:"ran_at"`
}

// RecordRun appends a run to the history.
func (c *Cache) RecordRun(r Run) error {
	ranAt := r.RanAt
	if ranAt.IsZero() {
		ranAt = time.Now()
	}
	_, err := c.db.Exec(`
		INSERT INTO runs (entry_file, output, files, functions_kept, functions_pruned, bytes, ran_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.EntryFile, r.Output, r.Files, r.FunctionsKept, r.FunctionsPruned, r.Bytes,
		ranAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// LastRun returns the most recent recorded run.
// Returns sql.ErrNoRows if no run has been recorded.
func (c *Cache) LastRun() (*Run, error) {
	var r Run
	var ranAt string
	err := c.db.QueryRow(`
		SELECT entry_file, output, files, functions_kept, functions_pruned, bytes, ran_at
		FROM runs ORDER BY id DESC LIMIT 1`).
		Scan(&r.EntryFile, &r.Output, &r.Files, &r.FunctionsKept, &r.FunctionsPruned, &r.Bytes, &ranAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get last run: %w", err)
	}
	r.RanAt, _ = time.Parse(time.RFC3339, ranAt)
	return &r, nil
}
