package httpservicetests

import "bytes"
import "encoding/json"
import "net/http"
import "net/http/httptest"
import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/sirgallo/syncpay/pkg/httpservice"
import "github.com/sirgallo/syncpay/pkg/ledger"
import "github.com/sirgallo/syncpay/pkg/replication"
import "github.com/sirgallo/syncpay/pkg/service"


type stubNode struct {
	submitted []ledger.Transaction
	submitErr error
	entries []ledger.LedgerEntry
}

func (node *stubNode) SubmitTransaction(tx ledger.Transaction) (*ledger.LedgerEntry, error) {
	if node.submitErr != nil { return nil, node.submitErr }

	node.submitted = append(node.submitted, tx)
	entry := ledger.LedgerEntry{ Transaction: tx, Term: 1, Sequence: 1, AckCount: 2, Status: ledger.Committed }
	return &entry, nil
}

func (node *stubNode) GetLedger() []ledger.LedgerEntry { return node.entries }

func (node *stubNode) GetStatus() service.NodeStatus {
	return service.NodeStatus{ NodeId: "node-1", Host: "node-1", State: "leader", Term: 1, Leader: "node-1" }
}

func newTestService(node *stubNode) *httpservice.HTTPService {
	return httpservice.NewHTTPService(&httpservice.HTTPServiceOpts{ Port: 8080, Node: node })
}

func TestPaymentRouteAcceptsValidPayment(t *testing.T) {
	node := &stubNode{}
	httpService := newTestService(node)

	body, _ := json.Marshal(httpservice.PaymentRequest{ Sender: "alice", Receiver: "bob", Amount: 150.75 })
	req := httptest.NewRequest(http.MethodPost, httpservice.PaymentRoute, bytes.NewReader(body))
	recorder := httptest.NewRecorder()

	httpService.Mux.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var entry ledger.LedgerEntry
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &entry))
	assert.Equal(t, "alice", entry.Transaction.Sender)
	assert.Equal(t, ledger.Committed, entry.Status)

	require.Len(t, node.submitted, 1)
	assert.Equal(t, 150.75, node.submitted[0].Amount)
}

func TestPaymentRouteRejectsBadJSON(t *testing.T) {
	httpService := newTestService(&stubNode{})

	req := httptest.NewRequest(http.MethodPost, httpservice.PaymentRoute, bytes.NewReader([]byte("{not json")))
	recorder := httptest.NewRecorder()

	httpService.Mux.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestPaymentRouteRedirectsToLeader(t *testing.T) {
	node := &stubNode{ submitErr: &replication.NotLeaderError{ LeaderHint: "node-2" } }
	httpService := newTestService(node)

	body, _ := json.Marshal(httpservice.PaymentRequest{ Sender: "alice", Receiver: "bob", Amount: 10 })
	req := httptest.NewRequest(http.MethodPost, httpservice.PaymentRoute, bytes.NewReader(body))
	recorder := httptest.NewRecorder()

	httpService.Mux.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusMisdirectedRequest, recorder.Code)

	var response httpservice.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "node-2", response.LeaderHint)
	assert.NotEmpty(t, response.RequestId)
}

func TestPaymentRouteMapsSubmitErrors(t *testing.T) {
	cases := []struct {
		submitErr error
		expectedCode int
	}{
		{ replication.ErrInvalidTransaction, http.StatusBadRequest },
		{ replication.ErrConsensusTimeout, http.StatusGatewayTimeout },
		{ replication.ErrStaleTerm, http.StatusConflict },
	}

	for _, tc := range cases {
		httpService := newTestService(&stubNode{ submitErr: tc.submitErr })

		body, _ := json.Marshal(httpservice.PaymentRequest{ Sender: "alice", Receiver: "bob", Amount: 10 })
		req := httptest.NewRequest(http.MethodPost, httpservice.PaymentRoute, bytes.NewReader(body))
		recorder := httptest.NewRecorder()

		httpService.Mux.ServeHTTP(recorder, req)
		assert.Equal(t, tc.expectedCode, recorder.Code)
	}
}

func TestPaymentRouteMethodNotAllowed(t *testing.T) {
	httpService := newTestService(&stubNode{})

	req := httptest.NewRequest(http.MethodGet, httpservice.PaymentRoute, nil)
	recorder := httptest.NewRecorder()

	httpService.Mux.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
}

func TestTransactionsRouteReturnsCommittedView(t *testing.T) {
	node := &stubNode{
		entries: []ledger.LedgerEntry{
			{ Transaction: ledger.Transaction{ Id: "tx-1", Sender: "alice", Receiver: "bob", Amount: 10 }, Term: 1, Sequence: 1, Status: ledger.Committed },
		},
	}

	httpService := newTestService(node)

	req := httptest.NewRequest(http.MethodGet, httpservice.TransactionsRoute, nil)
	recorder := httptest.NewRecorder()

	httpService.Mux.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	var entries []ledger.LedgerEntry
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "tx-1", entries[0].Transaction.Id)
}

func TestTransactionsRouteEmptyLedger(t *testing.T) {
	httpService := newTestService(&stubNode{})

	req := httptest.NewRequest(http.MethodGet, httpservice.TransactionsRoute, nil)
	recorder := httptest.NewRecorder()

	httpService.Mux.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, "[]", recorder.Body.String())
}

func TestStatusAndHealthRoutes(t *testing.T) {
	httpService := newTestService(&stubNode{})

	req := httptest.NewRequest(http.MethodGet, httpservice.StatusRoute, nil)
	recorder := httptest.NewRecorder()
	httpService.Mux.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var status service.NodeStatus
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &status))
	assert.Equal(t, "leader", status.State)

	req = httptest.NewRequest(http.MethodGet, httpservice.HealthRoute, nil)
	recorder = httptest.NewRecorder()
	httpService.Mux.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}
