// Package sqlite provides an indexed view over the open-event history
// for calendar queries. The statistics ledger remains the source of
// truth; the index is derived and can be rebuilt from it at any time.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"readspace/internal/domain"
	"readspace/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Index implements ports.ActivityIndex using SQLite
type Index struct {
	db     *sql.DB
	dbPath string
}

// Ensure Index implements ActivityIndex
var _ ports.ActivityIndex = (*Index)(nil)

// NewIndex creates a new SQLite activity index
func NewIndex() *Index {
	return &Index{}
}

// Open initializes the index inside the given data directory
func (idx *Index) Open(dataDir string) error {
	idx.dbPath = filepath.Join(dataDir, "activity.db")

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", idx.dbPath+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	idx.db = db

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS opens (
			date TEXT NOT NULL,
			file_name TEXT NOT NULL,
			count INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (date, file_name)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_opens_date ON opens(date);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if err := idx.updateMeta(); err != nil {
		db.Close()
		return fmt.Errorf("failed to update metadata: %w", err)
	}

	return nil
}

// Close closes the database connection
func (idx *Index) Close() error {
	if idx.db != nil {
		return idx.db.Close()
	}
	return nil
}

// NeedsFullRebuild returns true if the index should be rebuilt from the
// ledger, which happens after a schema change
func (idx *Index) NeedsFullRebuild() bool {
	var version string
	idx.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	return version != schemaVersion
}

func (idx *Index) updateMeta() error {
	_, err := idx.db.Exec(`
		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?);
	`, schemaVersion)
	return err
}

// Rebuild replaces the index contents with the given ledger
func (idx *Index) Rebuild(ledger domain.Ledger) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM opens"); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO opens (date, file_name, count) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for date, files := range ledger {
		for fileName, count := range files {
			if count <= 0 {
				continue
			}
			if _, err := stmt.Exec(date, fileName, count); err != nil {
				return fmt.Errorf("failed to index %s/%s: %w", date, fileName, err)
			}
		}
	}

	return tx.Commit()
}

// RecordOpen appends one open event for fileName on date
func (idx *Index) RecordOpen(date, fileName string) error {
	_, err := idx.db.Exec(`
		INSERT INTO opens (date, file_name, count) VALUES (?, ?, 1)
		ON CONFLICT (date, file_name) DO UPDATE SET count = count + 1
	`, date, fileName)
	return err
}

// ActiveDates returns dates with at least one open in [from, to],
// inclusive, ascending
func (idx *Index) ActiveDates(from, to string) ([]string, error) {
	rows, err := idx.db.Query(`
		SELECT DISTINCT date FROM opens
		WHERE date >= ? AND date <= ?
		ORDER BY date
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}

	return dates, rows.Err()
}

// TotalsFor returns per-file open counts for one date
func (idx *Index) TotalsFor(date string) (map[string]int, error) {
	rows, err := idx.db.Query(`
		SELECT file_name, count FROM opens WHERE date = ?
	`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := map[string]int{}
	for rows.Next() {
		var fileName string
		var count int
		if err := rows.Scan(&fileName, &count); err != nil {
			return nil, err
		}
		totals[fileName] = count
	}

	return totals, rows.Err()
}

// DayTotals returns aggregate opens per day in [from, to], ascending
func (idx *Index) DayTotals(from, to string) ([]ports.DayTotal, error) {
	rows, err := idx.db.Query(`
		SELECT date, SUM(count) FROM opens
		WHERE date >= ? AND date <= ?
		GROUP BY date
		ORDER BY date
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []ports.DayTotal
	for rows.Next() {
		var t ports.DayTotal
		if err := rows.Scan(&t.Date, &t.Opens); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}
