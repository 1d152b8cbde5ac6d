// Package gateway implements the shipledger REST service.
//
// The service translates HTTP requests into writes and reads of the DataStorage contract. Writes are only replied
// once they are confirmed in a block; composite requests chain several confirmed writes.
package gateway

import (
	"context"
	"log"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/tarancss/shipledger/lib/block"
	"github.com/tarancss/shipledger/lib/ledger"
)

// DefaultTimeout is the read and write timeout of the http server.
const DefaultTimeout = 15 * time.Minute

// Ledger is the access to the DataStorage contract used by the handlers. Writes return confirmed receipts only.
// *ledger.Client implements it.
type Ledger interface {
	CreateData(ctx context.Context, n ledger.NewShipment) (*types.Receipt, error)
	SetInstallmentData(ctx context.Context, hash common.Hash, deadline string, payable *big.Int) (*types.Receipt, error)
	UpdateInstalment(ctx context.Context, hash common.Hash, paid *big.Int, date string) (*types.Receipt, error)
	UpdateStatus(ctx context.Context, hash common.Hash, status string) (*types.Receipt, error)
	AllData(ctx context.Context) ([]ledger.Shipment, error)
	ShipmentByHash(ctx context.Context, hash common.Hash) (ledger.Shipment, error)
	InstalmentByHash(ctx context.Context, hash common.Hash) (ledger.Instalment, error)
	ShipmentByID(ctx context.Context, id *big.Int) (ledger.Shipment, error)
}

// Gateway contains the data necessary to deliver the service
type Gateway struct {
	l       Ledger
	bc      block.Chain
	account string        // address whose balance is reported by the home route
	Timeout time.Duration // http server timeouts, must exceed the confirmation of a composite write

	mu      sync.Mutex
	s       *http.Server   // http server
	ss      *http.Server   // https server
	errs    []error        // errors returned by the servers
	wg      sync.WaitGroup // running servers
	stopped bool           // set by Stop, no server is started afterwards
	sc      chan struct{}  // http server channel used for graceful shutdowns
}

// New returns a pointer to a new Gateway service
func New(l Ledger, bc block.Chain, account string) *Gateway {
	return &Gateway{
		l:       l,
		bc:      bc,
		account: account,
		Timeout: DefaultTimeout,
		sc:      make(chan struct{}),
	}
}

// Stop shuts down the http server implementing the RESTful API. Requests in flight are allowed to finish until ctx
// is done.
func (g *Gateway) Stop(ctx context.Context) {
	g.mu.Lock()
	if g.stopped {
		g.mu.Unlock()

		return
	}

	g.stopped = true
	s, ss := g.s, g.ss
	g.mu.Unlock()

	if s != nil {
		if err := s.Shutdown(ctx); err != nil {
			log.Printf("Error in http server shutdown:%v", err)
		}
	}

	if ss != nil {
		if err := ss.Shutdown(ctx); err != nil {
			log.Printf("Error in https server shutdown:%v", err)
		}
	}

	close(g.sc) // close server channel to indicate shutdown has finished
}
