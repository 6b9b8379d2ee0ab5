package cache

// initSchema creates the cache tables if they do not exist.
func (c *Cache) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS file_index (
		file_path    TEXT PRIMARY KEY,
		content_hash TEXT NOT NULL,
		carved_at    TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS runs (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		entry_file       TEXT NOT NULL,
		output           TEXT NOT NULL,
		files            INTEGER NOT NULL,
		functions_kept   INTEGER NOT NULL,
		functions_pruned INTEGER NOT NULL,
		bytes            INTEGER NOT NULL,
		ran_at           TEXT NOT NULL
	);
	`
	_, err := c.db.Exec(schema)
	return err
}
