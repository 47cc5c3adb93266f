package httpservice

import "encoding/json"
import "errors"
import "net/http"

import "github.com/sirgallo/syncpay/pkg/ledger"
import "github.com/sirgallo/syncpay/pkg/replication"


//=========================================== HTTP Service Handlers


/*
	Payment Route:
		POST a payment for submission to the cluster

		only the leader accepts submissions --> a follower responds with a
		redirect hint so the client can resubmit against the leader. a request
		carrying an id the ledger already holds returns the existing entry,
		so client retries are safe
*/

func (httpService *HTTPService) RegisterPaymentRoute() {
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		requestId := httpService.GenerateRequestUUID()

		var requestData PaymentRequest
		if decodeErr := json.NewDecoder(r.Body).Decode(&requestData); decodeErr != nil {
			httpService.respondError(w, http.StatusBadRequest, "failed to parse JSON request body", requestId)
			return
		}

		tx := ledger.Transaction{
			Id: requestData.Id,
			Sender: requestData.Sender,
			Receiver: requestData.Receiver,
			Amount: requestData.Amount,
		}

		entry, submitErr := httpService.Node.SubmitTransaction(tx)
		if submitErr != nil {
			httpService.respondSubmitError(w, submitErr, requestId)
			return
		}

		Log.Info("payment accepted, request:", requestId, "transaction:", entry.Transaction.Id)
		httpService.respondJSON(w, http.StatusCreated, entry)
	}

	httpService.Mux.HandleFunc(PaymentRoute, handler)
}

/*
	Transactions Route:
		GET the committed ledger in (term, sequence) order
*/

func (httpService *HTTPService) RegisterTransactionsRoute() {
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		entries := httpService.Node.GetLedger()
		if entries == nil { entries = []ledger.LedgerEntry{} }

		httpService.respondJSON(w, http.StatusOK, entries)
	}

	httpService.Mux.HandleFunc(TransactionsRoute, handler)
}

/*
	Status Route:
		GET the aggregate node status snapshot
*/

func (httpService *HTTPService) RegisterStatusRoute() {
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		httpService.respondJSON(w, http.StatusOK, httpService.Node.GetStatus())
	}

	httpService.Mux.HandleFunc(StatusRoute, handler)
}

/*
	Health Route:
		GET a liveness probe --> 200 while the process serves requests
*/

func (httpService *HTTPService) RegisterHealthRoute() {
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		httpService.respondJSON(w, http.StatusOK, map[string]string{ "status": "ok" })
	}

	httpService.Mux.HandleFunc(HealthRoute, handler)
}

/*
	map submission failures onto http status codes --> a misdirected
	submission carries the leader hint so clients can redirect
*/

func (httpService *HTTPService) respondSubmitError(w http.ResponseWriter, submitErr error, requestId string) {
	var notLeaderErr *replication.NotLeaderError
	if errors.As(submitErr, &notLeaderErr) {
		response := ErrorResponse{
			Error: notLeaderErr.Error(),
			LeaderHint: notLeaderErr.LeaderHint,
			RequestId: requestId,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMisdirectedRequest)
		json.NewEncoder(w).Encode(response)
		return
	}

	switch {
		case errors.Is(submitErr, replication.ErrInvalidTransaction):
			httpService.respondError(w, http.StatusBadRequest, submitErr.Error(), requestId)
		case errors.Is(submitErr, replication.ErrConsensusTimeout):
			httpService.respondError(w, http.StatusGatewayTimeout, submitErr.Error(), requestId)
		case errors.Is(submitErr, replication.ErrStaleTerm):
			httpService.respondError(w, http.StatusConflict, submitErr.Error(), requestId)
		default:
			httpService.respondError(w, http.StatusInternalServerError, submitErr.Error(), requestId)
	}
}
