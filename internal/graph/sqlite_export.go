package graph

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const exportSchema = `
	CREATE TABLE IF NOT EXISTS nodes (
		idx INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		parent TEXT NOT NULL,
		kind TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_nodes_name ON nodes(name);
	CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(parent);
`

// ExportSQLite writes the table to a SQLite database at dbPath as
// nodes(idx, name, parent, kind). Rows already present are replaced.
func ExportSQLite(dbPath string, t *Table) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	defer func() { _ = db.Close() }() // safe to ignore

	if _, err := db.Exec("PRAGMA journal_mode = MEMORY"); err != nil {
		return fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.Exec(exportSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin export: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op once committed

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO nodes (idx, name, parent, kind) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare node insert: %w", err)
	}
	defer func() { _ = stmt.Close() }() // safe to ignore

	for _, n := range t.nodes {
		if _, err := stmt.Exec(n.Idx, n.Name, n.Parent, n.Kind); err != nil {
			return fmt.Errorf("insert node %d: %w", n.Idx, err)
		}
	}
	return tx.Commit()
}
