package ingest

import (
	"database/sql"
	"fmt"

	"github.com/ohler55/ojg/oj"
	_ "modernc.org/sqlite"
)

// StreamSQLite iterates over all records in a SQLite database, calling fn for each one.
// Records live in results(id TEXT, record TEXT) with one JSON document per row.
func StreamSQLite(dbPath string, fn func(recordID string, record any) error) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	defer func() { _ = db.Close() }() // safe to ignore

	rows, err := db.Query("SELECT id, record FROM results")
	if err != nil {
		return fmt.Errorf("query results: %w", err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
		parsed, err := oj.ParseString(raw)
		if err != nil {
			return fmt.Errorf("parse record %s: %w", id, err)
		}
		if err := fn(id, parsed); err != nil {
			return err
		}
	}
	return rows.Err()
}

// LoadSQLite reads every record of a results table into one document keyed
// by record id.
func LoadSQLite(dbPath string) (map[string]any, error) {
	records := make(map[string]any)
	err := StreamSQLite(dbPath, func(id string, record any) error {
		records[id] = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
