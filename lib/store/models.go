package store

import "time"

// Cursor contains the fields of a listener position saved to DB. Block is the last block whose events were all
// handled.
type Cursor struct {
	Block   uint64    `json:"block" bson:"block"`
	Events  uint64    `json:"events" bson:"events"`
	Updated time.Time `json:"updated" bson:"updated"`
}
