// Package cursor keeps the position of an event listener: the last block whose events were all handled.
package cursor

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/tarancss/shipledger/lib/store"
)

// Status possible values, control whether a listener is working or is/has to stop
const (
	WORK int = 0
	STOP int = 1
)

// Cursor contains the position of a listener. It is safe for concurrent use.
type Cursor struct {
	l       sync.Mutex
	status  int
	started bool   // false until a first block range is handled
	start   uint64 // first block to handle when not started
	Block   uint64 // last block handled
	Events  uint64 // events handled so far
}

// New loads the cursor of the named listener from db. When none is stored, the cursor starts at block start.
func New(name string, start uint64, db store.DB) (*Cursor, error) {
	var c Cursor

	s, err := db.LoadCursor(name)

	switch {
	case errors.Is(err, store.ErrDataNotFound):
		c.start = start
	case err != nil:
		return nil, err
	default:
		c.FromStore(s)
	}

	log.Printf("[%s] cursor.New next block:%d events:%d", name, c.Next(), c.Events)

	return &c, nil
}

// Next returns the first block not yet handled.
func (c *Cursor) Next() uint64 {
	c.l.Lock()
	defer c.l.Unlock()

	if !c.started {
		return c.start
	}

	return c.Block + 1
}

// Started tells whether a block range was ever handled.
func (c *Cursor) Started() bool {
	c.l.Lock()
	defer c.l.Unlock()

	return c.started
}

// Advance marks every block up to 'to' as handled, adding 'events' to the count.
func (c *Cursor) Advance(to uint64, events int) {
	c.l.Lock()
	defer c.l.Unlock()

	c.started = true
	c.Block = to
	c.Events += uint64(events)
}

// ToStore returns a store.Cursor struct to be saved to store
func (c *Cursor) ToStore() store.Cursor {
	c.l.Lock()
	defer c.l.Unlock()

	return store.Cursor{Block: c.Block, Events: c.Events, Updated: time.Now().UTC()}
}

// FromStore loads the cursor with the values read from store
func (c *Cursor) FromStore(s store.Cursor) {
	c.l.Lock()
	defer c.l.Unlock()

	c.started = true
	c.Block = s.Block
	c.Events = s.Events
}

// Status returns WORK or STOP
func (c *Cursor) Status() int {
	c.l.Lock()
	defer c.l.Unlock()

	return c.status
}

// Stop sets status to STOP
func (c *Cursor) Stop() {
	c.l.Lock()
	c.status = STOP
	c.l.Unlock()
}
