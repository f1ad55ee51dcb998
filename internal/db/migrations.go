package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    id            INTEGER PRIMARY KEY,
    name          TEXT NOT NULL CHECK (length(name) <= 100),
    item_number   INTEGER NOT NULL,
    price         TEXT NOT NULL,
    quantity      INTEGER NOT NULL,
    date_acquired TEXT NOT NULL
);
`

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: unique indexes back the name and item number rules so
	// concurrent writers cannot both slip past validation.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_items_name ON items(name)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_items_item_number ON items(item_number)`,
}

// Migrate creates the schema and runs the migrations.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
