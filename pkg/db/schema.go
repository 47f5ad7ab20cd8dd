// Package db provides SQLite storage for the Beancount export history.
package db

// migrations upgrade the export database one schema version at a time.
// The database records the number applied in PRAGMA user_version, so
// entries must only ever be appended.
var migrations = []string{
	// 1: one row per ledger transaction written to a Beancount file.
	`
CREATE TABLE IF NOT EXISTS export_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    transaction_guid TEXT NOT NULL UNIQUE,
    post_date TEXT NOT NULL,            -- YYYY-MM-DD
    amount TEXT NOT NULL,               -- Sum of debits, decimal string
    beancount_file TEXT NOT NULL,       -- Path to Beancount file
    exported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_export_history_date
    ON export_history(post_date);
`,
	// 2: per-file counts for stats.
	`
CREATE INDEX IF NOT EXISTS idx_export_history_file
    ON export_history(beancount_file);
`,
}

// SchemaVersion is the schema version Open migrates to.
var SchemaVersion = len(migrations)
