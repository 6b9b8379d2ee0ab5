package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"
)

// FileEntry holds the carve state for a file.
type FileEntry struct {
	FilePath    string
	ContentHash string
	CarvedAt    time.Time
}

// ContentHash returns the hex sha256 of data, the hash stored in the file
// index.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SetFileCarved records that a file went into a bundle with the given hash.
func (c *Cache) SetFileCarved(path, hash string) error {
	_, err := c.db.Exec(`
		INSERT OR REPLACE INTO file_index (file_path, content_hash, carved_at)
		VALUES (?, ?, ?)`,
		path, hash, time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("set file carved %s: %w", path, err)
	}
	return nil
}

// GetFileHash retrieves the last carved hash for a file.
// Returns sql.ErrNoRows if the file has never been carved.
func (c *Cache) GetFileHash(path string) (string, error) {
	var hash string
	err := c.db.QueryRow("SELECT content_hash FROM file_index WHERE file_path = ?", path).Scan(&hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", err
		}
		return "", fmt.Errorf("get file hash %s: %w", path, err)
	}
	return hash, nil
}

// IsFileChanged checks if a file's content differs from the last carve.
// Returns true if the file has changed or has never been carved.
func (c *Cache) IsFileChanged(path, newHash string) (bool, error) {
	oldHash, err := c.GetFileHash(path)
	if err == sql.ErrNoRows {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return oldHash != newHash, nil
}

// GetAllFileEntries retrieves all file entries from the index.
func (c *Cache) GetAllFileEntries() ([]FileEntry, error) {
	rows, err := c.db.Query(`
		SELECT file_path, content_hash, carved_at FROM file_index ORDER BY file_path`)
	if err != nil {
		return nil, fmt.Errorf("query file entries: %w", err)
	}
	defer rows.Close()

	var entries []FileEntry
	for rows.Next() {
		var entry FileEntry
		var carvedAt string
		if err := rows.Scan(&entry.FilePath, &entry.ContentHash, &carvedAt); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		entry.CarvedAt, _ = time.Parse(time.RFC3339, carvedAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return entries, nil
}

// SetBulkFilesCarved records carve state for multiple files efficiently.
// The previous index is replaced: entries for files not in this run are
// removed so stale paths do not linger.
func (c *Cache) SetBulkFilesCarved(entries []FileEntry) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM file_index"); err != nil {
		tx.Rollback()
		return fmt.Errorf("reset file index: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO file_index (file_path, content_hash, carved_at)
		VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		carvedAt := entry.CarvedAt
		if carvedAt.IsZero() {
			carvedAt = time.Now()
		}
		_, err := stmt.Exec(entry.FilePath, entry.ContentHash, carvedAt.Format(time.RFC3339))
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("save file entry %s: %w", entry.FilePath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
