// Package db implements the opening and graceful closing of database connections.
package db

import (
	"errors"
	"log"

	"github.com/tarancss/shipledger/lib/store"
	"github.com/tarancss/shipledger/lib/store/memory"
	"github.com/tarancss/shipledger/lib/store/mongo"
	"github.com/tarancss/shipledger/lib/store/postgres"
)

const (
	MONGODB  string = "mongodb"
	POSTGRES string = "postgresql"
	MEMORY   string = "memory"
)

// ErrUnknownDB is returned for unsupported database types.
var ErrUnknownDB = errors.New("unknown database type")

// New returns a new database connection according to the options (database type). An empty type uses memory, which
// does not persist the cursor.
func New(options, connection string) (store.DB, error) {
	switch options {
	case MONGODB:
		return mongo.New(connection)
	case POSTGRES:
		return postgres.New(connection)
	case MEMORY, "":
		log.Print("warning: memory store, the listener cursor is lost on exit and events emitted while the " +
			"service is down are not replayed")

		return memory.New(), nil
	}

	return nil, ErrUnknownDB
}

// Close gracefully closes the database connection.
func Close(options string, dh store.DB) error {
	switch options {
	case MONGODB:
		return dh.(*mongo.Mongo).CloseMongo()
	case POSTGRES:
		return dh.(*postgres.Postgres).ClosePostgres()
	}

	return nil
}
