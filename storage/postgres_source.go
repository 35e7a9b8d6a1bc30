package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"crime-report/models"
)

// PostgresSource reads incident records from a PostgreSQL store. It satisfies
// the same contract as SQLiteSource and is selected via CRIME_DB_BACKEND.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource opens a connection to PostgreSQL and verifies it with a
// single ping. The pipeline has no retry policy, so an unreachable store
// fails immediately.
func NewPostgresSource(dsn string) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return &PostgresSource{db: db}, nil
}

// FetchByCategory returns every row whose "Primary Type" contains substring.
func (p *PostgresSource) FetchByCategory(substring string) (*models.Dataset, error) {
	query := fmt.Sprintf(`SELECT * FROM %s WHERE "Primary Type" LIKE $1`, incidentTable)
	rows, err := p.db.Query(query, "%"+substring+"%")
	if err != nil {
		return nil, fmt.Errorf("postgres: query: %w", err)
	}
	return scanIncidents(rows)
}

// Close releases the underlying connection.
func (p *PostgresSource) Close() error {
	return p.db.Close()
}
