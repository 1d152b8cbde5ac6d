package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarancss/shipledger/lib/block/ethereum"
	"github.com/tarancss/shipledger/lib/fault"
	"github.com/tarancss/shipledger/lib/ledger"
)

const account = "0xcba75F167B03e34B8a572c50273C082401b073Ed"

// write is a write received by the mock ledger.
type write struct {
	method    string
	hash      common.Hash
	confirmed bool
}

// mockLedger keeps shipments in memory. Each write is confirmed before it returns, unless it is set to fail.
type mockLedger struct {
	mu          sync.Mutex
	writes      []write
	fail        map[string]error
	shipments   map[common.Hash]ledger.Shipment
	instalments map[common.Hash]ledger.Instalment
	order       []common.Hash
	readErr     error
	onWrite     func(method string)
}

func newMockLedger() *mockLedger {
	return &mockLedger{
		fail:        map[string]error{},
		shipments:   map[common.Hash]ledger.Shipment{},
		instalments: map[common.Hash]ledger.Instalment{},
	}
}

// write records a write; for the previous writes to be confirmed is required before a new one is accepted.
func (m *mockLedger) write(ctx context.Context, method string, hash common.Hash) (*types.Receipt, error) {
	if m.onWrite != nil {
		m.onWrite(method)
	}

	// the submitter stops waiting for the confirmation once ctx is done
	if err := ctx.Err(); err != nil {
		return nil, fault.Classify(method, err)
	}

	for _, w := range m.writes {
		if !w.confirmed {
			return nil, errors.New("write sent before the previous one was confirmed")
		}
	}

	m.writes = append(m.writes, write{method: method, hash: hash})

	if err := m.fail[method]; err != nil {
		return nil, err
	}

	m.writes[len(m.writes)-1].confirmed = true

	return &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      common.BytesToHash([]byte(method + hash.Hex())),
		BlockNumber: big.NewInt(int64(len(m.writes))),
	}, nil
}

func (m *mockLedger) methods() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ms := make([]string, 0, len(m.writes))
	for _, w := range m.writes {
		ms = append(ms, w.method)
	}

	return ms
}

func (m *mockLedger) CreateData(ctx context.Context, n ledger.NewShipment) (*types.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	hash := common.BytesToHash([]byte("shipment-" + n.UserID + n.CreatedAt))

	rec, err := m.write(ctx, ledger.MethodCreateData, hash)
	if err != nil {
		return nil, err
	}

	m.shipments[hash] = ledger.Shipment{
		TransactionHash: hash, UserId: n.UserID, Email: n.Email, ShipmentServiceCode: n.ShipmentServiceCode,
		CarrierName: n.CarrierName, CreatedAt: n.CreatedAt, Status: n.Status, SelectedRate: n.SelectedRate,
		NoOfInstallments: n.NoOfInstallments, NetPayable: n.NetPayable, InsuranceAmount: n.InsuranceAmount,
		PaymentMethod: n.PaymentMethod,
	}
	m.order = append(m.order, hash)

	rec.Logs = []*types.Log{{TxHash: rec.TxHash, Topics: []common.Hash{{0xda}, hash}}}

	return rec, nil
}

func (m *mockLedger) SetInstallmentData(ctx context.Context, hash common.Hash, deadline string,
	payable *big.Int) (*types.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, err := m.write(ctx, ledger.MethodSetInstallmentData, hash)
	if err != nil {
		return nil, err
	}

	m.instalments[hash] = ledger.Instalment{TransactionHash: hash, InstalmentDeadLine: deadline, PayableAmount: payable}

	return rec, nil
}

func (m *mockLedger) UpdateInstalment(ctx context.Context, hash common.Hash, paid *big.Int,
	date string) (*types.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, err := m.write(ctx, ledger.MethodUpdateInstalment, hash)
	if err != nil {
		return nil, err
	}

	i := m.instalments[hash]
	i.PaidAmounts = append(i.PaidAmounts, paid)
	i.PaidDates = append(i.PaidDates, date)
	m.instalments[hash] = i

	return rec, nil
}

func (m *mockLedger) UpdateStatus(ctx context.Context, hash common.Hash, status string) (*types.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.shipments[hash]
	if !ok {
		return nil, fault.New(fault.Rejected, ledger.MethodUpdateStatus, fault.ErrReverted)
	}

	rec, err := m.write(ctx, ledger.MethodUpdateStatus, hash)
	if err != nil {
		return nil, err
	}

	s.Status = status
	m.shipments[hash] = s

	return rec, nil
}

func (m *mockLedger) AllData(ctx context.Context) ([]ledger.Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.readErr != nil {
		return nil, m.readErr
	}

	all := make([]ledger.Shipment, 0, len(m.order))
	for _, h := range m.order {
		all = append(all, m.shipments[h])
	}

	return all, nil
}

func (m *mockLedger) ShipmentByHash(ctx context.Context, hash common.Hash) (ledger.Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.shipments[hash]
	if !ok {
		return s, fault.New(fault.Rejected, ledger.MethodGetDataByHash, fault.ErrNotFound)
	}

	return s, nil
}

func (m *mockLedger) InstalmentByHash(ctx context.Context, hash common.Hash) (ledger.Instalment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.instalments[hash], nil
}

func (m *mockLedger) ShipmentByID(ctx context.Context, id *big.Int) (ledger.Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !id.IsInt64() || id.Int64() >= int64(len(m.order)) {
		return ledger.Shipment{}, nil
	}

	return m.shipments[m.order[id.Int64()]], nil
}

// mockNode replies JSON-RPC requests with the results found in res for each method.
func mockNode(t *testing.T, res map[string]interface{}) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string          `json:"method"`
			ID     json.RawMessage `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("[mock node] cannot decode request: %v", err)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  res[req.Method],
		})
	}))
}

var testBlock = map[string]interface{}{ //nolint:gochecknoglobals // testdata
	"hash":       "0xd44a255e40eee23bd90a54a792f7a35c175400958de22a9bbfe08a7b2c244ed6",
	"parentHash": "0x25e2e6cfc2f49ef320c652d91a7bea99a2d115d29ea832631e5f11911a463158",
	"number":     "0x29bf9b",
	"timestamp":  "0x5a952da9",
	"miner":      "0x00d8ae40d9a06d0e7a2877b62e32eb959afbe16d",
	"gasUsed":    "0x47addd",
	"gasLimit":   "0x47b784",
	"transactions": []interface{}{
		map[string]interface{}{
			"blockNumber": "0x29bf9b", "from": "0xc4581843a8dacd100c7d435bb00b2a20d038e31d", "gas": "0x47b760",
			"gasPrice": "0x174876e800", "hash": "0xc39f3c2c2b5c0a772e8605bbeef7d341937b85e739a3c55d1e7384ac88f31c65",
			"input": "0x4bdb8ab5", "nonce": "0x46", "to": "0x7762440182222620a7435195208038708d27ee41",
			"transactionIndex": "0x0", "value": "0x0",
		},
	},
}

// testServer starts the gateway over a mock ledger and a mock node.
func testServer(t *testing.T) (*httptest.Server, *mockLedger) {
	t.Helper()

	node := mockNode(t, map[string]interface{}{
		"eth_blockNumber":      "0x29bf9b",
		"eth_getBalance":       "0x166c761c586733c0",
		"eth_getBlockByNumber": testBlock,
	})
	t.Cleanup(node.Close)

	bc, err := ethereum.Init(node.URL)
	require.NoError(t, err)
	t.Cleanup(bc.Close)

	m := newMockLedger()
	srv := httptest.NewServer(New(m, bc, account).Router())
	t.Cleanup(srv.Close)

	return srv, m
}

// call makes an http request and decodes the envelope replied.
func call(t *testing.T, method, uri string, body interface{}) (int, Response, map[string]interface{}) {
	t.Helper()

	var b []byte

	switch v := body.(type) {
	case nil:
	case string:
		b = []byte(v)
	default:
		var err error
		b, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, uri, bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	defer res.Body.Close()

	var env Response
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env), "reply must be valid JSON")

	data, _ := env.Data.(map[string]interface{})

	return res.StatusCode, env, data
}

func shipment(method string) ShipmentRequest {
	return ShipmentRequest{
		UserID: "42", Email: "jane@example.com", ShipmentServiceCode: "SVC-1", CarrierName: "DHL",
		CreatedAt: "2023-05-01", Status: "CREATED", SelectedRate: NewAmount(120), NoOfInstallments: NewAmount(3),
		NetPayable: NewAmount(360), InsuranceAmount: NewAmount(20), PaymentMethod: method,
	}
}

func bnpl() ShipmentRequest {
	s := shipment(ledger.PaymentBNPL)
	s.InstalmentDeadLine = "2023-08-01"
	s.PayableAmount = NewAmount(360)
	s.PaidAmount = []*Amount{NewAmount(120)}
	s.PaymentDate = []string{"2023-05-01"}

	return s
}

func TestCreate(t *testing.T) {
	srv, m := testServer(t)

	status, env, data := call(t, http.MethodPost, srv.URL+"/assign-shipment-in-blockchain", shipment("CARD"))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, StatusSuccess, env.Status)
	assert.NotEmpty(t, data["blockChainHash"])
	assert.NotEmpty(t, data["dataAccessHash"])

	// exactly one write
	assert.Equal(t, []string{ledger.MethodCreateData}, m.methods())
}

func TestCreateBNPL(t *testing.T) {
	srv, m := testServer(t)

	status, env, data := call(t, http.MethodPost, srv.URL+"/assign-shipment-in-blockchain", bnpl())
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, StatusSuccess, env.Status)

	// three sequential writes, each confirmed, all on the data access hash of the create
	assert.Equal(t, []string{ledger.MethodCreateData, ledger.MethodSetInstallmentData, ledger.MethodUpdateInstalment},
		m.methods())

	dah := common.HexToHash(data["dataAccessHash"].(string))
	for _, w := range m.writes {
		assert.True(t, w.confirmed)
		assert.Equal(t, dah, w.hash)
	}

	i := m.instalments[dah]
	assert.Equal(t, "2023-08-01", i.InstalmentDeadLine)
	assert.Equal(t, []*big.Int{big.NewInt(120)}, i.PaidAmounts)
	assert.Equal(t, []string{"2023-05-01"}, i.PaidDates)
}

func TestCreateBNPLStepFails(t *testing.T) {
	srv, m := testServer(t)
	m.fail[ledger.MethodSetInstallmentData] = fault.New(fault.Rejected, ledger.MethodSetInstallmentData,
		fault.ErrReverted)

	status, env, data := call(t, http.MethodPost, srv.URL+"/assign-shipment-in-blockchain", bnpl())
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, StatusError, env.Status)
	assert.Equal(t, string(fault.Rejected), data["kind"])
	assert.Equal(t, ledger.MethodSetInstallmentData, data["op"])
	assert.Equal(t, []interface{}{ledger.MethodCreateData}, data["completed"])

	// the create stays committed and is reported
	outcome, ok := data["outcome"].(map[string]interface{})
	require.True(t, ok)

	dah := common.HexToHash(outcome["dataAccessHash"].(string))
	_, committed := m.shipments[dah]
	assert.True(t, committed)
	assert.Equal(t, []string{ledger.MethodCreateData, ledger.MethodSetInstallmentData}, m.methods())
}

func TestCreateBNPLClientGone(t *testing.T) {
	node := mockNode(t, nil)
	defer node.Close()

	bc, err := ethereum.Init(node.URL)
	require.NoError(t, err)

	defer bc.Close()

	m := newMockLedger()
	router := New(m, bc, account).Router()

	b, err := json.Marshal(bnpl())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// the client goes away while the installment schedule is being confirmed
	m.onWrite = func(method string) {
		if method == ledger.MethodSetInstallmentData {
			cancel()
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/assign-shipment-in-blockchain", bytes.NewReader(b)).WithContext(ctx)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{ledger.MethodCreateData, ledger.MethodSetInstallmentData, ledger.MethodUpdateInstalment},
		m.methods())

	for _, w := range m.writes {
		assert.True(t, w.confirmed, w.method)
	}
}

func TestCreateValidation(t *testing.T) {
	srv, m := testServer(t)

	missing := bnpl()
	missing.PaidAmount = nil

	cases := []struct {
		name string
		body interface{}
	}{
		{"bnpl without instalment fields", missing},
		{"bad json", `{"user_id":`},
		{"non numeric amount", `{"user_id":"1","selectedRate":"ten"}`},
		{"negative amount", `{"user_id":"1","selectedRate":-4}`},
		{"fractional amount", `{"user_id":"1","netPayable":1.5}`},
		{"amount above uint256", `{"user_id":"1","netPayable":` +
			`115792089237316195423570985008687907853269984665640564039457584007913129639941}`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			status, env, data := call(t, http.MethodPost, srv.URL+"/assign-shipment-in-blockchain", c.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, StatusError, env.Status)
			assert.Equal(t, string(fault.Validation), data["kind"])
		})
	}

	assert.Empty(t, m.methods())
}

func TestNetworkFailure(t *testing.T) {
	netErr := fault.New(fault.Network, "", errors.New("read tcp: connection reset by peer"))
	hash := common.BytesToHash([]byte("x")).Hex()

	cases := []struct {
		name, method, path, op string
		body                   interface{}
	}{
		{"create", http.MethodPost, "/assign-shipment-in-blockchain", ledger.MethodCreateData, shipment("CARD")},
		{"status", http.MethodPatch, "/update-shipment-status/" + hash, ledger.MethodUpdateStatus,
			StatusRequest{Status: "DELIVERED"}},
		{"instalment", http.MethodPatch, "/update-shipment-instalment/" + hash, ledger.MethodUpdateInstalment,
			InstalmentRequest{PaidAmount: NewAmount(1), PaidDate: "2023-06-01"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv, m := testServer(t)
			m.fail[c.op] = netErr
			x := common.BytesToHash([]byte("x"))
			m.shipments[x] = ledger.Shipment{TransactionHash: x}

			status, env, data := call(t, c.method, srv.URL+c.path, c.body)
			assert.Equal(t, http.StatusInternalServerError, status)
			assert.Equal(t, StatusError, env.Status)
			assert.Equal(t, string(fault.Network), data["kind"])
			assert.NotContains(t, data, "completed")
		})
	}

	srv, m := testServer(t)
	m.readErr = netErr

	status, env, _ := call(t, http.MethodGet, srv.URL+"/all-shipment-blockchain", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, StatusError, env.Status)
}

func TestStatusRoundTrip(t *testing.T) {
	srv, _ := testServer(t)

	_, _, created := call(t, http.MethodPost, srv.URL+"/assign-shipment-in-blockchain", shipment("CARD"))
	dah := created["dataAccessHash"].(string)

	status, env, data := call(t, http.MethodPatch, srv.URL+"/update-shipment-status/"+dah,
		StatusRequest{Status: "DELIVERED"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, StatusSuccess, env.Status)

	// the confirmed receipt is replied
	txHash := common.BytesToHash([]byte(ledger.MethodUpdateStatus + dah)).Hex()
	assert.Equal(t, txHash, data["transactionHash"])
	assert.Equal(t, "0x1", data["status"])
	assert.Equal(t, "0x2", data["blockNumber"])
	assert.Contains(t, data, "logs")

	status, _, data = call(t, http.MethodPatch, srv.URL+"/update-shipment-instalment/"+dah,
		InstalmentRequest{PaidAmount: NewAmount(40), PaidDate: "2023-06-01"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, common.BytesToHash([]byte(ledger.MethodUpdateInstalment+dah)).Hex(), data["transactionHash"])
	assert.Equal(t, "0x1", data["status"])

	status, _, data = call(t, http.MethodGet, srv.URL+"/get-detail/"+dah, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "DELIVERED", data["status"])
	assert.Equal(t, "jane@example.com", data["email"])
}

func TestDetail(t *testing.T) {
	srv, _ := testServer(t)

	_, _, created := call(t, http.MethodPost, srv.URL+"/assign-shipment-in-blockchain", bnpl())
	dah := created["dataAccessHash"].(string)

	status, _, data := call(t, http.MethodGet, srv.URL+"/get-detail/"+dah, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "CREATED", data["status"])
	assert.Equal(t, "2023-08-01", data["instalmentDeadLine"])
	assert.Equal(t, dah, data["transactionHash"])

	status, _, data = call(t, http.MethodGet, srv.URL+"/get-detail/0x1234", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, string(fault.Validation), data["kind"])

	status, _, _ = call(t, http.MethodGet, srv.URL+"/get-detail/"+common.Hash{0x09}.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMerge(t *testing.T) {
	m := merge(map[string]interface{}{"a": 1, "status": "CREATED"}, map[string]interface{}{"status": "PAID", "b": 2})
	assert.Equal(t, map[string]interface{}{"a": 1, "b": 2, "status": "PAID"}, m)

	// shipments without installments keep their fields
	s := ledger.Shipment{TransactionHash: [32]byte{1}, Status: "CREATED"}
	assert.Equal(t, s.Record(), merge(s.Record(), ledger.Instalment{}.Record()))
}

func TestReads(t *testing.T) {
	srv, _ := testServer(t)

	status, env, _ := call(t, http.MethodGet, srv.URL+"/all-shipment-blockchain", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []interface{}{}, env.Data)

	call(t, http.MethodPost, srv.URL+"/assign-shipment-in-blockchain", shipment("CARD"))

	_, env, _ = call(t, http.MethodGet, srv.URL+"/all-shipment-blockchain", nil)
	require.Len(t, env.Data, 1)

	status, _, data := call(t, http.MethodGet, srv.URL+"/get-shipment-by-id/0", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "42", data["userId"])

	status, _, _ = call(t, http.MethodGet, srv.URL+"/get-shipment-by-id/5", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _, _ = call(t, http.MethodGet, srv.URL+"/get-shipment-by-id/abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestInspectingBlock(t *testing.T) {
	srv, _ := testServer(t)

	status, env, data := call(t, http.MethodGet, srv.URL+"/inspecting-block", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, StatusSuccess, env.Status)
	assert.Equal(t, float64(0x29bf9b), data["block"])

	info, ok := data["blockInfo"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, testBlock["hash"], info["hash"])
	assert.Equal(t, testBlock["parentHash"], info["parentHash"])
	assert.Equal(t, testBlock["timestamp"], info["timestamp"])
	assert.Equal(t, []interface{}{"0xc39f3c2c2b5c0a772e8605bbeef7d341937b85e739a3c55d1e7384ac88f31c65"},
		info["transactions"])

	txs, ok := data["transactions"].([]interface{})
	require.True(t, ok)
	require.Len(t, txs, 1)
	assert.Equal(t, "0x7762440182222620a7435195208038708d27ee41", txs[0].(map[string]interface{})["to"])
}

func TestInspectingBlockMalformed(t *testing.T) {
	header := map[string]interface{}{}
	for k, v := range testBlock {
		if k != "timestamp" {
			header[k] = v
		}
	}

	node := mockNode(t, map[string]interface{}{"eth_blockNumber": "0x29bf9b", "eth_getBlockByNumber": header})
	defer node.Close()

	bc, err := ethereum.Init(node.URL)
	require.NoError(t, err)

	defer bc.Close()

	srv := httptest.NewServer(New(newMockLedger(), bc, account).Router())
	defer srv.Close()

	status, env, data := call(t, http.MethodGet, srv.URL+"/inspecting-block", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, StatusError, env.Status)
	assert.Equal(t, "inspectBlock", data["op"])
}

func TestHome(t *testing.T) {
	srv, _ := testServer(t)

	res, err := http.Get(srv.URL + "/")
	require.NoError(t, err)

	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, Home, string(b))
	assert.True(t, strings.HasPrefix(res.Header.Get("Content-Type"), "text/plain"))
	assert.NotEmpty(t, res.Header.Get(requestIDHeader))

	// the node is down: still 200, with an error envelope
	node := mockNode(t, nil)
	bc, err := ethereum.Init(node.URL)
	require.NoError(t, err)
	node.Close()

	defer bc.Close()

	down := httptest.NewServer(New(newMockLedger(), bc, account).Router())
	defer down.Close()

	status, env, data := call(t, http.MethodGet, down.URL+"/", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, StatusError, env.Status)
	assert.Equal(t, string(fault.Network), data["kind"])
}

func TestCORSAndRequestID(t *testing.T) {
	srv, _ := testServer(t)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL+"/all-shipment-blockchain", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set(requestIDHeader, "req-1")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	defer res.Body.Close()

	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
	assert.Empty(t, res.Header.Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "req-1", res.Header.Get(requestIDHeader))
}
