// Package listener implements the ledger event listener. The listener scans the mined blocks in ranges for
// DataCreated events emitted by the contract and hands each of them to its handlers. The last block handled is saved
// to the store, so that a restarted listener resumes where it stopped and replays the events it missed.
package listener

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/tarancss/shipledger/lib/ledger"
	"github.com/tarancss/shipledger/lib/metrics"
	"github.com/tarancss/shipledger/lib/msg"
	"github.com/tarancss/shipledger/lib/store"
	"github.com/tarancss/shipledger/listener/cursor"
)

// Defaults for the listener.
const (
	DefaultMaxRange uint64 = 1000
	DefaultPoll            = 15 * time.Second
)

// Source gives access to the chain head and the DataCreated events. *ledger.Contract implements it.
type Source interface {
	BlockNumber(ctx context.Context) (uint64, error)
	FilterDataCreated(ctx context.Context, from, to uint64) ([]ledger.DataCreated, error)
}

// Handler is called once for every event.
type Handler func(ev ledger.DataCreated) error

// Listener implements the event listener.
type Listener struct {
	name     string
	src      Source
	db       store.DB
	cur      *cursor.Cursor
	handlers []Handler
	Poll     time.Duration
	MaxRange uint64 // blocks filtered per request
}

// New returns a listener named 'name' that starts at the stored cursor or, if there is none, at block start.
func New(name string, src Source, db store.DB, start uint64, handlers ...Handler) (*Listener, error) {
	c, err := cursor.New(name, start, db)
	if err != nil {
		return nil, fmt.Errorf("listener: cannot load cursor: %w", err)
	}

	return &Listener{
		name:     name,
		src:      src,
		db:       db,
		cur:      c,
		handlers: handlers,
		Poll:     DefaultPoll,
		MaxRange: DefaultMaxRange,
	}, nil
}

// Run polls for new events until ctx is done or Stop is called. Errors are logged and the range retried on the next
// poll.
func (l *Listener) Run(ctx context.Context) {
	log.Printf("[%s] Listening from block %d...", l.name, l.cur.Next())

	defer func() {
		if !l.cur.Started() {
			return
		}

		if err := l.db.SaveCursor(l.name, l.cur.ToStore()); err != nil {
			log.Printf("[%s] Error saving cursor to DB, err:%v", l.name, err)
		}

		log.Printf("[%s] Done! block:%d", l.name, l.cur.Block)
	}()

	for l.cur.Status() == cursor.WORK {
		n, err := l.Step(ctx)
		if err != nil {
			log.Printf("[%s] Step err:%v", l.name, err)
		}

		if err == nil && n > 0 {
			// there are more blocks to catch up with
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(l.Poll):
		}
	}
}

// Stop ends Run after the current step.
func (l *Listener) Stop() {
	l.cur.Stop()
}

// Step handles the next range of blocks, returning how many blocks remain to be scanned up to the head.
func (l *Listener) Step(ctx context.Context) (uint64, error) {
	head, err := l.src.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("cannot get head block: %w", err)
	}

	from := l.cur.Next()
	if from > head {
		return 0, nil
	}

	to := head
	if l.MaxRange > 0 && head-from >= l.MaxRange {
		to = from + l.MaxRange - 1
	}

	evs, err := l.src.FilterDataCreated(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("cannot filter blocks %d-%d: %w", from, to, err)
	}

	for _, ev := range evs {
		for _, h := range l.handlers {
			if err := h(ev); err != nil {
				log.Printf("[%s] Handler error for event in tx %s: %v", l.name, ev.Raw.TxHash.Hex(), err)
			}
		}

		metrics.LedgerEvents.WithLabelValues(ledger.EventDataCreated).Inc()
	}

	l.cur.Advance(to, len(evs))
	metrics.ListenerBlock.Set(float64(to))

	if err = l.db.SaveCursor(l.name, l.cur.ToStore()); err != nil {
		return 0, fmt.Errorf("cannot save cursor: %w", err)
	}

	return head - to, nil
}

// LogEvent logs every field of the event, in declaration order.
func LogEvent(ev ledger.DataCreated) error {
	var b strings.Builder

	b.WriteString(ledger.EventDataCreated)

	for i, f := range ev.Fields() {
		fmt.Fprintf(&b, "\n\t%s: %v", ledger.FieldNames[i], f)
	}

	log.Print(b.String())

	return nil
}

// Publish returns a handler that sends every event to the message broker.
func Publish(mb msg.MsgBroker) Handler {
	return func(ev ledger.DataCreated) error {
		return mb.SendEvent(ToMessage(ev))
	}
}

// ToMessage returns the broker message for an event.
func ToMessage(ev ledger.DataCreated) msg.ShipmentEvent {
	return msg.ShipmentEvent{
		TransactionHash:     fmt.Sprintf("0x%x", ev.TransactionHash),
		Username:            ev.Username,
		ShipmentServiceCode: ev.ShipmentServiceCode,
		CarrierName:         ev.CarrierName,
		CreatedAt:           ev.CreatedAt,
		Status:              ev.Status,
		SelectedRate:        decimal(ev.SelectedRate),
		NoOfInstallments:    decimal(ev.NoOfInstallments),
		NetPayable:          decimal(ev.NetPayable),
		PaidAmount:          decimal(ev.PaidAmount),
		InsuranceAmount:     decimal(ev.InsuranceAmount),
		Block:               ev.Raw.BlockNumber,
		TxHash:              ev.Raw.TxHash.Hex(),
	}
}

func decimal(b *big.Int) string {
	if b == nil {
		return "0"
	}

	return b.String()
}
