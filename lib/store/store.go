// Package store defines the interface for database implementations of the listener cursor.
package store

import (
	"errors"
)

// DB defines required methods for the event listener.
type DB interface {
	LoadCursor(string) (Cursor, error)
	SaveCursor(string, Cursor) error
	DeleteCursor(string) error
}

// Errors returned
var (
	ErrDataNotFound = errors.New("Data was not found in store")
)
