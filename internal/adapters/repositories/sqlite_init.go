package repositories

import (
	"collection-route-service/internal/domain"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Initialize the database schema. The statements are portable between
// SQLite (local runs) and Postgres (cmd/dbtool deployments).
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLayoutsQuery := `
	CREATE TABLE IF NOT EXISTS floor_layouts (
		floor_tag TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		layout_json TEXT NOT NULL
	);
	`

	createReadingsQuery := `
	CREATE TABLE IF NOT EXISTS bin_readings (
		floor_tag TEXT NOT NULL,
		bin_id TEXT NOT NULL,
		fill_level REAL NOT NULL,
		recorded_at TEXT NOT NULL,
		PRIMARY KEY (floor_tag, bin_id, recorded_at)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_bin_readings_bin_recorded
	ON bin_readings(floor_tag, bin_id, recorded_at);
	`

	statements := []string{
		createLayoutsQuery,
		createReadingsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the database with floor layouts from a JSON file. Each
// layout row stores the full layout document; every bin's configured
// fill level is also written as an initial sensor reading so planning
// works before the ingestion backend delivers anything.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed layouts: read %q: %w", jsonPath, err)
	}

	var layouts []domain.FloorLayout
	if err := json.Unmarshal(raw, &layouts); err != nil {
		return fmt.Errorf("seed layouts: parse json: %w", err)
	}

	for i, l := range layouts {
		if strings.TrimSpace(string(l.Tag)) == "" {
			return fmt.Errorf("seed layouts: layout at index %d: floor tag cannot be empty", i)
		}
		if l.Width <= 0 || l.Height <= 0 {
			return fmt.Errorf("seed layouts: layout %q: invalid dimensions %dx%d", l.Tag, l.Width, l.Height)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed layouts: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	layoutStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO floor_layouts (
		floor_tag,
		position,
		layout_json
	)
	VALUES (?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed layouts: prepare layout insert: %w", err)
	}
	defer layoutStmt.Close()

	readingStmt, err := tx.Prepare(`
	INSERT OR REPLACE INTO bin_readings (
		floor_tag,
		bin_id,
		fill_level,
		recorded_at
	)
	VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("seed layouts: prepare reading insert: %w", err)
	}
	defer readingStmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)

	for i, l := range layouts {
		doc, err := json.Marshal(l)
		if err != nil {
			return fmt.Errorf("seed layouts: marshal layout %q: %w", l.Tag, err)
		}
		if _, err := layoutStmt.Exec(string(l.Tag), i, string(doc)); err != nil {
			return fmt.Errorf("seed layouts: insert floor_tag=%q: %w", l.Tag, err)
		}

		for _, b := range l.Bins {
			if _, err := readingStmt.Exec(string(l.Tag), b.ID, b.FillLevel, now); err != nil {
				return fmt.Errorf("seed layouts: insert reading floor=%q bin=%q: %w", l.Tag, b.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed layouts: commit tx: %w", err)
	}

	return nil
}
