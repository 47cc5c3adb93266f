package replrpc

import "github.com/sirgallo/syncpay/pkg/ledger"


//=========================================== Replication RPC Messages


/*
	Replicate carries one leader accepted transaction with the slot the leader
	assigned --> followers fence on Term before accepting
*/

type Replicate struct {
	LeaderId    string             `cbor:"leaderId"`
	Term        int64              `cbor:"term"`
	Sequence    int64              `cbor:"sequence"`
	Transaction ledger.Transaction `cbor:"transaction"`
}

type ReplicateResponse struct {
	Term           int64 `cbor:"term"`
	Success        bool  `cbor:"success"`
	AlreadyPresent bool  `cbor:"alreadyPresent"`
}

/*
	AppendEntry doubles as the heartbeat --> no transaction payload, just the
	leader's authority claim and its committed sequence watermark for the term
*/

type AppendEntry struct {
	LeaderId       string `cbor:"leaderId"`
	Term           int64  `cbor:"term"`
	CommitSequence int64  `cbor:"commitSequence"`
}

type AppendEntryResponse struct {
	Term    int64 `cbor:"term"`
	Success bool  `cbor:"success"`
}

/*
	PullLedger is the reconciliation pull --> a rejoining node pages through a
	peer's committed entries and merges the ones it is missing
*/

type PullLedger struct {
	RequesterId string `cbor:"requesterId"`
	Offset      int64  `cbor:"offset"`
	Limit       int64  `cbor:"limit"`
}

type PullLedgerResponse struct {
	Entries []ledger.LedgerEntry `cbor:"entries"`
	Total   int64                `cbor:"total"`
}
