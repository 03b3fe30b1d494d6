package repository

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteRepository implements Repository using SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (and creates if needed) the database at dbPath
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{db: db}, nil
}

func initSchema(db *sql.DB) error {
	createTables := `
	CREATE TABLE IF NOT EXISTS storage (
		key TEXT PRIMARY KEY NOT NULL,
		value TEXT NOT NULL
	);
	`
	_, err := db.Exec(createTables)
	return err
}

// Get returns the value stored under key
func (r *SQLiteRepository) Get(key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM storage WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set upserts the value under key
func (r *SQLiteRepository) Set(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO storage(key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// Delete removes the key
func (r *SQLiteRepository) Delete(key string) error {
	_, err := r.db.Exec(`DELETE FROM storage WHERE key = ?`, key)
	return err
}

// Keys lists stored keys
func (r *SQLiteRepository) Keys() ([]string, error) {
	rows, err := r.db.Query(`SELECT key FROM storage ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
