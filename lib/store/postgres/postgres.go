// Package postgres implements the interface for PostgreSQL.
package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq" //nolint:gci // load the postgres driver that is used by the system

	"github.com/tarancss/shipledger/lib/store"
)

const schema = `CREATE TABLE IF NOT EXISTS listener_cursor (
	name    TEXT PRIMARY KEY,
	block   BIGINT NOT NULL,
	events  BIGINT NOT NULL DEFAULT 0,
	updated TIMESTAMPTZ NOT NULL
)`

type Postgres struct {
	db *sql.DB
}

// New returns a postgres client connection to the specified database in 'connection'. The cursor table is created
// if missing.
func New(connection string) (*Postgres, error) {
	db, err := sql.Open("postgres", connection)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to DB in %s: %w", connection, err)
	}

	if _, err = db.Exec(schema); err != nil {
		db.Close()

		return nil, fmt.Errorf("cannot create cursor table: %w", err)
	}

	return &Postgres{db: db}, nil
}

// ClosePostgres will close any database connection. Must be called at termination time.
func (p *Postgres) ClosePostgres() error {
	return p.db.Close()
}

// LoadCursor loads from db the cursor of the named listener.
func (p *Postgres) LoadCursor(name string) (c store.Cursor, err error) {
	row := p.db.QueryRow(`SELECT block, events, updated FROM listener_cursor WHERE name = $1`, name)
	if err = row.Scan(&c.Block, &c.Events, &c.Updated); errors.Is(err, sql.ErrNoRows) {
		err = store.ErrDataNotFound
	}

	return
}

// SaveCursor saves to db the cursor of the named listener.
func (p *Postgres) SaveCursor(name string, c store.Cursor) (err error) {
	_, err = p.db.Exec(`INSERT INTO listener_cursor (name, block, events, updated) VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET block = EXCLUDED.block, events = EXCLUDED.events, updated = EXCLUDED.updated`,
		name, int64(c.Block), int64(c.Events), c.Updated)

	return
}

// DeleteCursor deletes from db the cursor of the named listener.
func (p *Postgres) DeleteCursor(name string) (err error) {
	_, err = p.db.Exec(`DELETE FROM listener_cursor WHERE name = $1`, name)

	return
}
