package sqlite

import "database/sql"

// schema holds the SQL statements to set up the database.
// These run on startup to ensure tables exist.
// Each collection is one row; the value is the collection's JSON encoding.
const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
