package storage

import (
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"crime-report/models"
)

const incidentTable = "crime_data"

// SQLiteSource reads incident records from a local SQLite database file.
type SQLiteSource struct {
	db *sql.DB
}

// NewSQLiteSource opens the database file at path read-only. The file must
// already exist; a missing store is fatal rather than a reason to create an
// empty one.
func NewSQLiteSource(path string) (*SQLiteSource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("sqlite: store %q: %w", path, err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	return &SQLiteSource{db: db}, nil
}

// FetchByCategory returns every row whose "Primary Type" contains substring.
func (s *SQLiteSource) FetchByCategory(substring string) (*models.Dataset, error) {
	query := fmt.Sprintf(`SELECT * FROM %s WHERE "Primary Type" LIKE ?`, incidentTable)
	rows, err := s.db.Query(query, "%"+substring+"%")
	if err != nil {
		return nil, fmt.Errorf("sqlite: query: %w", err)
	}
	return scanIncidents(rows)
}

// Close releases the underlying connection.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}
