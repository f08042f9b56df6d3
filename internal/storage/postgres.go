package storage

import (
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
)

// PostgresKV stores key-value entries in a single kv_entries table with a
// JSONB value column. The schema is created by the migration runner at
// startup (see migrations/).
type PostgresKV struct {
	db *sqlx.DB
}

// NewPostgresKV wraps an already-connected database handle.
func NewPostgresKV(db *sqlx.DB) *PostgresKV {
	return &PostgresKV{db: db}
}

// Get returns the JSONB value for key.
func (p *PostgresKV) Get(key string) ([]byte, bool, error) {
	const q = `SELECT value FROM kv_entries WHERE key = $1 LIMIT 1`

	var raw json.RawMessage
	if err := p.db.Get(&raw, q, key); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}
	return raw, true, nil
}

// Set upserts the value for key, fully replacing any previous value.
func (p *PostgresKV) Set(key string, value []byte) error {
	const q = `
        INSERT INTO kv_entries (key, value)
        VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET
            value = EXCLUDED.value,
            updated_at = NOW()`

	stmt, err := p.db.Preparex(q)
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(key, json.RawMessage(value))
	return err
}

// Ping validates the database connection.
func (p *PostgresKV) Ping() error {
	return p.db.Ping()
}

// Close closes the database handle.
func (p *PostgresKV) Close() error {
	return p.db.Close()
}
