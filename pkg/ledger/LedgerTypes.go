package ledger

import "sync"


type CommitStatus string

const (
	Pending   CommitStatus = "pending"
	Committed CommitStatus = "committed"
)

/*
	Transaction is immutable once created by the accepting leader

	Timestamp is the corrected acceptance time in unix nanoseconds, produced by
	the clock synchronizer --> it orders the global view of the ledger but is
	never used to reorder entries that already committed
*/

type Transaction struct {
	Id        string  `cbor:"id" json:"id"`
	Sender    string  `cbor:"sender" json:"sender"`
	Receiver  string  `cbor:"receiver" json:"receiver"`
	Amount    float64 `cbor:"amount" json:"amount"`
	Timestamp int64   `cbor:"timestamp" json:"timestamp"`
}

/*
	LedgerEntry wraps a transaction with its commit metadata

	Term and Sequence identify the slot the accepting leader assigned --> the
	pair is unique across the cluster since sequence numbers are monotonic per
	leader term and at most one leader exists per term
*/

type LedgerEntry struct {
	Transaction Transaction  `cbor:"transaction" json:"transaction"`
	Term        int64        `cbor:"term" json:"term"`
	Sequence    int64        `cbor:"sequence" json:"sequence"`
	AckCount    int64        `cbor:"ackCount" json:"ackCount"`
	Status      CommitStatus `cbor:"status" json:"status"`
}

/*
	the ledger is the append only, id indexed store of transactions

	one exclusive lock guards every mutation (append, ack bookkeeping, the
	pending to committed transition) so concurrent submissions and replications
	never interleave unsafely
*/

type Ledger struct {
	mutex sync.Mutex
	entries map[string]*LedgerEntry
	appendOrder []string
}

type LedgerCounts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Committed int `json:"committed"`
}
