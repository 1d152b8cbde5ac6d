// Package fault classifies the failures of ledger operations into a small set of kinds so that callers never see
// the raw provider errors.
package fault

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/rpc"
)

// Kind of failure.
type Kind string

// Kinds of failure.
const (
	Validation Kind = "validation"
	Network    Kind = "network"
	Rejected   Kind = "ledger-rejected"
	Timeout    Kind = "timeout"
)

// Common ledger failures, always reported as Rejected.
var (
	ErrReverted = errors.New("transaction reverted by the ledger")
	ErrNotFound = errors.New("record not found in the ledger")
	ErrNoLogs   = errors.New("transaction receipt has no logs")
)

// Error is a classified failure. Op names the operation that failed (ie. "createData").
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}

	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an error of the given kind.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Invalid is a shortcut for validation errors built from a message.
func Invalid(op, format string, args ...interface{}) *Error {
	return &Error{Kind: Validation, Op: op, Err: fmt.Errorf(format, args...)}
}

// Classify maps err into an *Error. Errors that are already classified keep their kind; the op is only set when
// missing.
func Classify(op string, err error) *Error {
	if err == nil {
		return nil
	}

	var fe *Error
	if errors.As(err, &fe) {
		if fe.Op == "" {
			return &Error{Kind: fe.Kind, Op: op, Err: fe.Err}
		}

		return fe
	}

	return &Error{Kind: kindOf(err), Op: op, Err: err}
}

func kindOf(err error) Kind {
	var (
		netErr  net.Error
		rpcErr  rpc.Error
		dataErr rpc.DataError
	)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Timeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return Timeout
	case errors.Is(err, ErrReverted), errors.Is(err, ErrNotFound), errors.Is(err, ErrNoLogs),
		errors.Is(err, bind.ErrNoCode):
		return Rejected
	case errors.As(err, &dataErr), errors.As(err, &rpcErr):
		// the node answered with a JSON-RPC error: revert, insufficient funds, nonce too low...
		return Rejected
	}

	// anything else failed on the way to the ledger: dial errors, closed connections, bad http replies...
	return Network
}

// HTTPStatus returns the status code used to reply a failure of the given kind.
func HTTPStatus(err *Error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case err.Kind == Validation:
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	}

	return http.StatusInternalServerError
}

// Body is the machine readable representation of an *Error sent to clients.
type Body struct {
	Kind    Kind   `json:"kind"`
	Op      string `json:"op,omitempty"`
	Message string `json:"message"`
}

// ToBody returns the client representation of err.
func ToBody(err *Error) Body {
	return Body{Kind: err.Kind, Op: err.Op, Message: err.Err.Error()}
}
