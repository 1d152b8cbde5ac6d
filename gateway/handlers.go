package gateway

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/gorilla/mux"

	btypes "github.com/tarancss/shipledger/lib/block/types"
	"github.com/tarancss/shipledger/lib/fault"
	"github.com/tarancss/shipledger/lib/ledger"
	"github.com/tarancss/shipledger/lib/util"
)

// Home is the reply of the home route.
const Home = "My server is running !"

// maxBody limits the size of request bodies.
const maxBody = 1 << 20

// homeHandler logs the balance of the signing account and replies a welcome message. Failures are still replied
// with status 200.
func (g *Gateway) homeHandler(rw http.ResponseWriter, r *http.Request) {
	bal, err := g.bc.Balance(r.Context(), g.account)
	if err != nil {
		fe := fault.Classify("balance", err)
		log.Printf("httpreq %s from %v %s err:%v", reqID(r), r.RemoteAddr, r.RequestURI, err)

		rw.Header().Set("Content-Type", "application/json;charset=utf8")
		_ = json.NewEncoder(rw).Encode(Response{Status: StatusError, Data: ErrorData{Body: fault.ToBody(fe)}})

		return
	}

	log.Printf("httpreq %s from %v %s balance:%s ETH", reqID(r), r.RemoteAddr, r.RequestURI, util.WeiToEther(bal))

	rw.Header().Set("Content-Type", "text/plain;charset=utf8")
	_, _ = io.WriteString(rw, Home)
}

// decode reads the JSON body of r into v.
func decode(r *http.Request, op string, v interface{}) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(v); err != nil {
		return fault.Invalid(op, "cannot decode request body: %v", err)
	}

	return nil
}

// hashVar returns the hash in the uri variable 'name'.
func hashVar(r *http.Request, op, name string) (h common.Hash, err error) {
	if h, err = util.ParseHash(mux.Vars(r)[name]); err != nil {
		return h, fault.Invalid(op, "%s: %v", name, err)
	}

	return h, nil
}

// createHandler stores a new shipment. BNPL shipments also get their installment schedule and first payment, each
// write being confirmed before the next one is sent. If a later write fails, the error reply lists the committed
// steps and the outcome of the create, since the ledger keeps them.
func (g *Gateway) createHandler(rw http.ResponseWriter, r *http.Request) {
	var (
		err error
		out ledger.Outcome
		req ShipmentRequest
	)

	defer func() { reply(rw, r, out, err) }()

	if err = decode(r, ledger.MethodCreateData, &req); err != nil {
		return
	}

	if verr := req.Validate(); verr != nil {
		err = fault.New(fault.Validation, ledger.MethodCreateData, verr)

		return
	}

	// a client disconnect must not stop a composite write halfway: each step is bounded by the confirmation
	// timeout of the submitter instead
	ctx := context.WithoutCancel(r.Context())

	rec, err := g.l.CreateData(ctx, req.Shipment())
	if err != nil {
		return
	}

	if out, err = ledger.CreateOutcome(rec); err != nil {
		return
	}

	if !req.BNPL() {
		return
	}

	completed := []string{ledger.MethodCreateData}
	fail := func(e error) error {
		o := out

		return &stepError{err: fault.Classify("", e), completed: completed, outcome: &o}
	}

	hash := common.HexToHash(out.DataAccessHash)

	if _, err = g.l.SetInstallmentData(ctx, hash, req.InstalmentDeadLine, req.PayableAmount.Int()); err != nil {
		err = fail(err)

		return
	}

	completed = append(completed, ledger.MethodSetInstallmentData)

	if _, err = g.l.UpdateInstalment(ctx, hash, req.PaidAmount[0].Int(), req.PaymentDate[0]); err != nil {
		err = fail(err)

		return
	}
}

// statusHandler updates the status of a shipment. The confirmed receipt is replied.
func (g *Gateway) statusHandler(rw http.ResponseWriter, r *http.Request) {
	var (
		err error
		rec *types.Receipt
		req StatusRequest
	)

	defer func() { reply(rw, r, rec, err) }()

	hash, err := hashVar(r, ledger.MethodUpdateStatus, "transactionHash")
	if err != nil {
		return
	}

	if err = decode(r, ledger.MethodUpdateStatus, &req); err != nil {
		return
	}

	if req.Status == "" {
		err = fault.Invalid(ledger.MethodUpdateStatus, "status is required")

		return
	}

	rec, err = g.l.UpdateStatus(r.Context(), hash, req.Status)
}

// instalmentHandler records an installment payment. The confirmed receipt is replied.
func (g *Gateway) instalmentHandler(rw http.ResponseWriter, r *http.Request) {
	var (
		err error
		rec *types.Receipt
		req InstalmentRequest
	)

	defer func() { reply(rw, r, rec, err) }()

	hash, err := hashVar(r, ledger.MethodUpdateInstalment, "transactionHash")
	if err != nil {
		return
	}

	if err = decode(r, ledger.MethodUpdateInstalment, &req); err != nil {
		return
	}

	if req.PaidAmount == nil || req.PaidDate == "" {
		err = fault.Invalid(ledger.MethodUpdateInstalment, "paidAmount and paidDate are required")

		return
	}

	rec, err = g.l.UpdateInstalment(r.Context(), hash, req.PaidAmount.Int(), req.PaidDate)
}

// allHandler replies every shipment.
func (g *Gateway) allHandler(rw http.ResponseWriter, r *http.Request) {
	var err error

	res := []map[string]interface{}{}

	defer func() { reply(rw, r, res, err) }()

	all, err := g.l.AllData(r.Context())
	if err != nil {
		return
	}

	for _, s := range all {
		res = append(res, s.Record())
	}
}

// detailHandler replies the shipment record merged with its installment record.
func (g *Gateway) detailHandler(rw http.ResponseWriter, r *http.Request) {
	var (
		err error
		res map[string]interface{}
	)

	defer func() { reply(rw, r, res, err) }()

	hash, err := hashVar(r, ledger.MethodGetDataByHash, "transaction_hash")
	if err != nil {
		return
	}

	s, err := g.l.ShipmentByHash(r.Context(), hash)
	if err != nil {
		return
	}

	i, err := g.l.InstalmentByHash(r.Context(), hash)
	if err != nil {
		return
	}

	res = merge(s.Record(), i.Record())
}

// merge returns the union of the records, later ones overriding the keys of earlier ones.
func merge(records ...map[string]interface{}) map[string]interface{} {
	m := make(map[string]interface{})

	for _, r := range records {
		for k, v := range r {
			m[k] = v
		}
	}

	return m
}

// blockInfo is the reply of the block inspection route.
type blockInfo struct {
	Block        uint64         `json:"block"`
	BlockInfo    btypes.Block   `json:"blockInfo"`
	Transactions []btypes.Trans `json:"transactions"`
}

// blockHandler replies the latest block: its number, its header and its transactions.
func (g *Gateway) blockHandler(rw http.ResponseWriter, r *http.Request) {
	var (
		err error
		res blockInfo
	)

	defer func() {
		if err != nil {
			err = fault.Classify("inspectBlock", err)
		}

		reply(rw, r, res, err)
	}()

	if res.Block, err = g.bc.BlockNumber(r.Context()); err != nil {
		return
	}

	var b map[string]interface{}
	if err = g.bc.GetBlock(r.Context(), res.Block, true, &b); err != nil {
		return
	}

	if res.BlockInfo, err = g.bc.DecodeBlock(b); err != nil {
		return
	}

	if res.Transactions, err = g.bc.DecodeTxs(b); err != nil {
		return
	}

	// header with the transaction hashes only
	res.BlockInfo.TxHashes = make([]string, 0, len(res.Transactions))
	for _, t := range res.Transactions {
		res.BlockInfo.TxHashes = append(res.BlockInfo.TxHashes, t.Hash)
	}
}

// byIDHandler replies the shipment stored at the position given.
func (g *Gateway) byIDHandler(rw http.ResponseWriter, r *http.Request) {
	var (
		err error
		res map[string]interface{}
	)

	defer func() { reply(rw, r, res, err) }()

	id, ok := new(big.Int).SetString(mux.Vars(r)["id"], 10)
	if !ok || id.Sign() < 0 {
		err = fault.New(fault.Validation, ledger.MethodUserShipment, ErrBadID)

		return
	}

	s, err := g.l.ShipmentByID(r.Context(), id)
	if err != nil {
		return
	}

	if s.Empty() {
		err = fault.New(fault.Rejected, ledger.MethodUserShipment, fault.ErrNotFound)

		return
	}

	res = s.Record()
}
