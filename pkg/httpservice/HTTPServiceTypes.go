package httpservice

import "net/http"
import "time"

import "github.com/sirgallo/syncpay/pkg/ledger"
import "github.com/sirgallo/syncpay/pkg/service"


/*
	ClusterNode is the surface the http layer needs from the node --> the
	handlers stay decoupled from the orchestrator so tests can serve them
	against a stub
*/

type ClusterNode interface {
	SubmitTransaction(tx ledger.Transaction) (*ledger.LedgerEntry, error)
	GetLedger() []ledger.LedgerEntry
	GetStatus() service.NodeStatus
}

type HTTPServiceOpts struct {
	Port int
	Node ClusterNode
}

type HTTPService struct {
	Mux *http.ServeMux
	Port string
	Node ClusterNode
}

type PaymentRequest struct {
	Id       string  `json:"id,omitempty"`
	Sender   string  `json:"sender"`
	Receiver string  `json:"receiver"`
	Amount   float64 `json:"amount"`
}

type ErrorResponse struct {
	Error      string `json:"error"`
	LeaderHint string `json:"leaderHint,omitempty"`
	RequestId  string `json:"requestId"`
}

const PaymentRoute = "/payment"
const TransactionsRoute = "/transactions"
const StatusRoute = "/status"
const HealthRoute = "/health"

const HTTPTimeout = 2 * time.Second
