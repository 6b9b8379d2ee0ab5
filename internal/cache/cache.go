// Package cache provides SQLite-backed state for carve runs. The cache is
// stored in .carve/cache.db and records the content hash of every file that
// went into the last bundle, plus a history of runs, so `carve status` can
// report what changed since the bundle was produced.
package cache

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Cache manages the .carve/cache.db SQLite database.
type Cache struct {
	db     *sql.DB
	dbPath string
}

// Open opens or creates the cache database in the specified .carve directory.
// It initializes the schema if the database is new.
func Open(carveDir string) (*Cache, error) {
	dbPath := filepath.Join(carveDir, "cache.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	cache := &Cache{db: db, dbPath: dbPath}

	if err := cache.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return cache, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Clear removes all cached data from both the file index and run history.
func (c *Cache) Clear() error {
	_, err := c.db.Exec("DELETE FROM file_index; DELETE FROM runs;")
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.dbPath
}

// DB returns the underlying database connection for advanced operations.
func (c *Cache) DB() *sql.DB {
	return c.db
}

// Stats returns cache statistics.
type Stats struct {
	FilesIndexed int64 `json:"files_indexed" yaml:"files_indexed"`
	Runs         int64 `json:"runs" yaml:"runs"`
}

// GetStats returns statistics about the cache contents.
func (c *Cache) GetStats() (*Stats, error) {
	var stats Stats

	err := c.db.QueryRow("SELECT COUNT(*) FROM file_index").Scan(&stats.FilesIndexed)
	if err != nil {
		return nil, fmt.Errorf("count file index: %w", err)
	}

	err = c.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&stats.Runs)
	if err != nil {
		return nil, fmt.Errorf("count runs: %w", err)
	}

	return &stats, nil
}
