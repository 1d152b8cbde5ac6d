package ledger

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/tarancss/shipledger/lib/fault"
	"github.com/tarancss/shipledger/lib/metrics"
)

// ErrClosed is returned by Submit once the submitter has been closed.
var ErrClosed = errors.New("submitter is closed")

// DefaultPoll is the interval between confirmation checks.
const DefaultPoll = time.Second

// Transactor packs and sends contract calls. *Contract implements it.
type Transactor interface {
	Pack(method string, params ...interface{}) ([]byte, error)
	Transact(opts *bind.TransactOpts, method string, params ...interface{}) (*types.Transaction, error)
}

// Confirmer looks up sent transactions. *ethclient.Client implements it.
type Confirmer interface {
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

// Submitter sends the writes of one signing identity. Transactions are signed and sent one at a time by a single
// goroutine, so nonces follow submission order; confirmations are awaited by each caller concurrently.
type Submitter struct {
	c       Transactor
	b       Confirmer
	opts    *bind.TransactOpts
	timeout time.Duration // per Submit, 0 means no timeout other than the caller's context
	Poll    time.Duration
	jobs    chan *job
	done    chan struct{}
	once    sync.Once
}

type job struct {
	ctx    context.Context
	method string
	params []interface{}
	res    chan sent
}

type sent struct {
	tx  *types.Transaction
	err error
}

// NewSubmitter returns a running submitter. Close must be called to stop it.
func NewSubmitter(c Transactor, b Confirmer, opts *bind.TransactOpts, timeout time.Duration) *Submitter {
	s := &Submitter{
		c:       c,
		b:       b,
		opts:    opts,
		timeout: timeout,
		Poll:    DefaultPoll,
		jobs:    make(chan *job),
		done:    make(chan struct{}),
	}

	go s.run()

	return s
}

// Close stops the writer goroutine. Pending Submit calls fail with ErrClosed.
func (s *Submitter) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *Submitter) run() {
	for {
		select {
		case j := <-s.jobs:
			opts := *s.opts
			opts.Context = j.ctx
			tx, err := s.c.Transact(&opts, j.method, j.params...)
			j.res <- sent{tx: tx, err: err}
		case <-s.done:
			return
		}
	}
}

// Submit invokes method with params, waits until the transaction is included in a block and returns its receipt.
// It never returns a pending result and never retries. Failures are returned as *fault.Error.
func (s *Submitter) Submit(ctx context.Context, method string, params ...interface{}) (rec *types.Receipt, err error) {
	start := time.Now()

	defer func() {
		result := "success"
		if err != nil {
			result = string(err.(*fault.Error).Kind) //nolint:errorlint // always a *fault.Error
		}

		metrics.LedgerWrites.WithLabelValues(method, result).Inc()
		metrics.LedgerWriteDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	}()

	if _, err = s.c.Pack(method, params...); err != nil {
		return nil, fault.New(fault.Validation, method, err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// 1 and 2: sign with the identity and send, through the single writer
	j := &job{ctx: ctx, method: method, params: params, res: make(chan sent, 1)}

	select {
	case s.jobs <- j:
	case <-ctx.Done():
		return nil, fault.Classify(method, ctx.Err())
	case <-s.done:
		return nil, fault.New(fault.Network, method, ErrClosed)
	}

	var r sent

	select {
	case r = <-j.res:
	case <-ctx.Done():
		return nil, fault.Classify(method, ctx.Err())
	}

	if r.err != nil {
		return nil, fault.Classify(method, r.err)
	}

	hash := r.tx.Hash()
	log.Printf("[submitter] %s sent tx:%s nonce:%d", method, hash.Hex(), r.tx.Nonce())

	// 3: wait for the transaction to be mined
	if err = s.waitMined(ctx, hash); err != nil {
		return nil, fault.Classify(method, err)
	}

	// 4: full receipt
	if rec, err = s.b.TransactionReceipt(ctx, hash); err != nil {
		return nil, fault.Classify(method, err)
	}

	if rec.Status == types.ReceiptStatusFailed {
		return rec, fault.New(fault.Rejected, method, ErrRevertedTx(hash))
	}

	log.Printf("[submitter] %s confirmed tx:%s block:%v", method, hash.Hex(), rec.BlockNumber)

	return rec, nil
}

// waitMined polls the node until the transaction is no longer pending.
func (s *Submitter) waitMined(ctx context.Context, hash common.Hash) error {
	for {
		_, pending, err := s.b.TransactionByHash(ctx, hash)
		if err == nil && !pending {
			return nil
		}

		if err != nil && !errors.Is(err, ethereum.NotFound) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.Poll):
		}
	}
}

// ErrRevertedTx wraps fault.ErrReverted with the hash of the reverted transaction.
func ErrRevertedTx(hash common.Hash) error {
	return &revertError{hash: hash}
}

type revertError struct{ hash common.Hash }

func (e *revertError) Error() string { return fault.ErrReverted.Error() + ": " + e.hash.Hex() }
func (e *revertError) Unwrap() error { return fault.ErrReverted }
